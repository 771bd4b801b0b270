package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

// StockardUseCase casos de uso CRUD para stockards creados por operadores.
// El motor de movimientos crea los suyos por su cuenta vía GetOrCreate.
type StockardUseCase struct {
	repo          repository.StockardRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockardUseCase construye el caso de uso.
func NewStockardUseCase(repo repository.StockardRepository, warehouseRepo repository.WarehouseRepository) *StockardUseCase {
	return &StockardUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// Create crea un stockard en una bodega existente. El par (bodega, nombre)
// es único; el repositorio devuelve domain.ErrDuplicate si ya existe.
func (uc *StockardUseCase) Create(in dto.CreateStockardRequest) (*dto.StockardResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	stockard := &entity.Stockard{
		ID:          uuid.New().String(),
		WarehouseID: in.WarehouseID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(stockard); err != nil {
		return nil, err
	}
	return toStockardResponse(stockard), nil
}

// GetByID obtiene un stockard por ID; nil si no existe.
func (uc *StockardUseCase) GetByID(id string) (*dto.StockardResponse, error) {
	stockard, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stockard == nil {
		return nil, nil
	}
	return toStockardResponse(stockard), nil
}

// ListByWarehouse lista los stockards de una bodega con paginación.
func (uc *StockardUseCase) ListByWarehouse(warehouseID string, limit, offset int) (*dto.StockardListResponse, error) {
	list, err := uc.repo.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockardResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockardResponse(s))
	}
	return &dto.StockardListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un stockard por ID.
func (uc *StockardUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toStockardResponse(s *entity.Stockard) *dto.StockardResponse {
	if s == nil {
		return nil
	}
	return &dto.StockardResponse{
		ID:          s.ID,
		WarehouseID: s.WarehouseID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}
