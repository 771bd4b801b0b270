package inventory

import (
	"context"

	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// ProcessFromRequest adapta el request HTTP al caso de uso
// Process(ctx, MovementInput). actorID viene de la sesión autenticada.
func (uc *ProcessMovementUseCase) ProcessFromRequest(ctx context.Context, actorID string, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInput{
		ActorID:         actorID,
		Type:            entity.MovementType(in.MovementType),
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, MovementItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	movement, err := uc.Process(ctx, input)
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(movement), nil
}

// ToMovementResponse mapea la entidad persistida al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	out := &dto.MovementResponse{
		ID:              m.ID,
		MovementType:    string(m.Type),
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
	for _, item := range m.Items {
		out.Items = append(out.Items, dto.MovementItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			FromStockardID: item.FromStockardID,
			ToStockardID:   item.ToStockardID,
			Quantity:       item.Quantity,
		})
	}
	return out
}
