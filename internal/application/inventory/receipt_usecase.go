package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

// ReceiptLine una línea del comprobante con los nombres ya resueltos.
type ReceiptLine struct {
	ProductName  string
	FromStockard string // vacío si la línea no tiene origen
	ToStockard   string // vacío si la línea no tiene destino
	Quantity     int64
}

// ReceiptPDFGenerator genera el PDF del comprobante de un movimiento.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, movement *entity.StockMovement, fromWarehouse, toWarehouse *entity.Warehouse, lines []ReceiptLine) ([]byte, error)
}

// ReceiptUseCase arma el comprobante imprimible de un movimiento
// persistido: cabecera con referencia y bodegas, tabla de líneas con los
// stockards resueltos por el motor.
type ReceiptUseCase struct {
	movRepo       repository.StockMovementRepository
	warehouseRepo repository.WarehouseRepository
	stockardRepo  repository.StockardRepository
	productRepo   repository.ProductRepository
	pdf           ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	movRepo repository.StockMovementRepository,
	warehouseRepo repository.WarehouseRepository,
	stockardRepo repository.StockardRepository,
	productRepo repository.ProductRepository,
	pdf ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		movRepo:       movRepo,
		warehouseRepo: warehouseRepo,
		stockardRepo:  stockardRepo,
		productRepo:   productRepo,
		pdf:           pdf,
	}
}

// GenerateByID genera el PDF del comprobante del movimiento indicado.
func (uc *ReceiptUseCase) GenerateByID(ctx context.Context, movementID string) ([]byte, error) {
	movement, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}

	fromWarehouse, err := uc.loadWarehouse(movement.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	toWarehouse, err := uc.loadWarehouse(movement.ToWarehouseID)
	if err != nil {
		return nil, err
	}

	lines := make([]ReceiptLine, 0, len(movement.Items))
	for _, item := range movement.Items {
		line := ReceiptLine{Quantity: item.Quantity}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			line.ProductName = product.Name
		}
		if line.FromStockard, err = uc.stockardName(item.FromStockardID); err != nil {
			return nil, err
		}
		if line.ToStockard, err = uc.stockardName(item.ToStockardID); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	out, err := uc.pdf.GenerateReceiptPDF(ctx, movement, fromWarehouse, toWarehouse, lines)
	if err != nil {
		return nil, fmt.Errorf("generar comprobante: %w", err)
	}
	return out, nil
}

func (uc *ReceiptUseCase) loadWarehouse(id *string) (*entity.Warehouse, error) {
	if id == nil {
		return nil, nil
	}
	return uc.warehouseRepo.GetByID(*id)
}

func (uc *ReceiptUseCase) stockardName(id *string) (string, error) {
	if id == nil {
		return "", nil
	}
	stockard, err := uc.stockardRepo.GetByID(*id)
	if err != nil {
		return "", err
	}
	if stockard == nil {
		return "", nil
	}
	return stockard.Name, nil
}
