package usecase

import (
	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

// StockQueryUseCase consulta de solo lectura del libro de existencias.
type StockQueryUseCase struct {
	repo repository.StockRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(repo repository.StockRepository) *StockQueryUseCase {
	return &StockQueryUseCase{repo: repo}
}

// List devuelve la vista del libro filtrada por bodega y/o producto.
func (uc *StockQueryUseCase) List(warehouseID, productID string, limit, offset int) (*dto.StockListResponse, error) {
	levels, err := uc.repo.List(warehouseID, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLevelResponse, 0, len(levels))
	for _, lv := range levels {
		items = append(items, dto.StockLevelResponse{
			ProductID:     lv.ProductID,
			ProductName:   lv.ProductName,
			StockardID:    lv.StockardID,
			StockardName:  lv.StockardName,
			WarehouseID:   lv.WarehouseID,
			WarehouseName: lv.WarehouseName,
			Quantity:      lv.Quantity,
			IsInStock:     lv.IsInStock(),
			UpdatedAt:     lv.UpdatedAt,
		})
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
