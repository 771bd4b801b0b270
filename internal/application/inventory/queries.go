package inventory

import (
	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el historial de
// movimientos. El orden (más reciente primero) es un asunto de
// presentación del caller, no un contrato del motor.
type MovementQueryUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movRepo repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo}
}

// GetByID obtiene un movimiento con sus items; nil si no existe.
func (uc *MovementQueryUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	movement, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(movement), nil
}

// List devuelve una página de movimientos.
func (uc *MovementQueryUseCase) List(limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
