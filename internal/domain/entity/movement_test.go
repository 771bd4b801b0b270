package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestValidate_EntradaRequiereBodegaDestino(t *testing.T) {
	m := &entity.StockMovement{Type: entity.MovementTypeIn}
	err := m.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)

	m.ToWarehouseID = strPtr("wh-1")
	assert.NoError(t, m.Validate())
}

func TestValidate_SalidaRequiereBodegaOrigen(t *testing.T) {
	m := &entity.StockMovement{Type: entity.MovementTypeOut}
	err := m.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)

	m.FromWarehouseID = strPtr("wh-1")
	assert.NoError(t, m.Validate())
}

func TestValidate_TrasladoRequiereAmbasBodegas(t *testing.T) {
	m := &entity.StockMovement{Type: entity.MovementTypeTransfer, FromWarehouseID: strPtr("wh-1")}
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidMovement,
		"traslado sin bodega destino debe rechazarse")

	m = &entity.StockMovement{Type: entity.MovementTypeTransfer, ToWarehouseID: strPtr("wh-2")}
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidMovement,
		"traslado sin bodega origen debe rechazarse")

	m = &entity.StockMovement{
		Type:            entity.MovementTypeTransfer,
		FromWarehouseID: strPtr("wh-1"),
		ToWarehouseID:   strPtr("wh-2"),
	}
	assert.NoError(t, m.Validate())
}

func TestValidate_TrasladoMismaBodegaRechazado(t *testing.T) {
	m := &entity.StockMovement{
		Type:            entity.MovementTypeTransfer,
		FromWarehouseID: strPtr("wh-1"),
		ToWarehouseID:   strPtr("wh-1"),
	}
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidMovement)
}

func TestValidate_TipoDesconocidoRechazado(t *testing.T) {
	m := &entity.StockMovement{Type: entity.MovementType("AJUSTE")}
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidMovement)
}

func TestMovementType_Requisitos(t *testing.T) {
	assert.True(t, entity.MovementTypeIn.RequiresDestination())
	assert.False(t, entity.MovementTypeIn.RequiresSource())

	assert.True(t, entity.MovementTypeOut.RequiresSource())
	assert.False(t, entity.MovementTypeOut.RequiresDestination())

	assert.True(t, entity.MovementTypeTransfer.RequiresSource())
	assert.True(t, entity.MovementTypeTransfer.RequiresDestination())

	assert.False(t, entity.MovementType("").Valid())
}
