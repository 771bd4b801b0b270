package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Bodegas-api/internal/domain/inventory"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

// maxReferenceAttempts intentos de inserción con referencia regenerada
// antes de rendirse con ErrDuplicateReference.
const maxReferenceAttempts = 3

// ProcessMovementUseCase procesa movimientos de inventario (IN, OUT,
// TRANSFER) de forma transaccional: valida la cabecera, resuelve los
// stockards de cada línea, aplica los deltas al libro con bloqueo de fila
// (SELECT FOR UPDATE) y persiste cabecera e items como una sola unidad.
type ProcessMovementUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	refGen        *domaininv.ReferenceGenerator
	now           func() time.Time
}

// NewProcessMovementUseCase construye el caso de uso.
func NewProcessMovementUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	refGen *domaininv.ReferenceGenerator,
) *ProcessMovementUseCase {
	return &ProcessMovementUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		refGen:        refGen,
		now:           time.Now,
	}
}

// MovementItemInput una línea solicitada por el caller.
type MovementItemInput struct {
	ProductID string
	Quantity  int64
}

// MovementInput entrada para procesar un movimiento. ActorID viene de la
// sesión del caller, no del payload.
type MovementInput struct {
	ActorID         string
	Type            entity.MovementType
	FromWarehouseID *string
	ToWarehouseID   *string
	ReferenceNumber string
	Notes           string
	Items           []MovementItemInput
}

// Process valida y persiste el movimiento completo. La validación de
// cabecera corre antes de tocar cualquier item; una violación falla rápido
// sin efectos. Las mutaciones del libro, la cabecera y los items de una
// invocación comparten una única transacción: un fallo en el item k
// revierte también los deltas de los items anteriores y los stockards
// destino creados durante la resolución.
func (uc *ProcessMovementUseCase) Process(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	header := &entity.StockMovement{
		Type:            input.Type,
		FromWarehouseID: input.FromWarehouseID,
		ToWarehouseID:   input.ToWarehouseID,
		Notes:           input.Notes,
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un item", domain.ErrInvalidMovement)
	}

	if err := uc.checkWarehouse(input.FromWarehouseID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(input.ToWarehouseID); err != nil {
		return nil, err
	}

	// Los productos se cargan antes de abrir la transacción: un producto
	// inexistente es un error del caller, no un fallo de procesamiento.
	products := make(map[string]*entity.Product, len(input.Items))
	for _, item := range input.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
		}
		products[item.ProductID] = product
	}

	reference := input.ReferenceNumber
	generated := reference == ""
	if generated {
		var err error
		if reference, err = uc.refGen.Generate(); err != nil {
			return nil, err
		}
	}

	// Estrategia de unicidad: generar → intentar insertar → ante violación
	// de la constraint única, regenerar y reintentar hasta el límite. Para
	// referencias aportadas por el caller no se reintenta: la corrección es
	// decisión suya.
	for attempt := 0; ; attempt++ {
		movement, err := uc.processOnce(ctx, input, products, reference)
		if err == nil {
			return movement, nil
		}
		if !errors.Is(err, domain.ErrDuplicateReference) || !generated || attempt+1 >= maxReferenceAttempts {
			return nil, err
		}
		if reference, err = uc.refGen.Generate(); err != nil {
			return nil, err
		}
	}
}

// processOnce ejecuta una transacción completa con la referencia dada.
func (uc *ProcessMovementUseCase) processOnce(
	ctx context.Context,
	input MovementInput,
	products map[string]*entity.Product,
	reference string,
) (*entity.StockMovement, error) {
	now := uc.now()
	movement := &entity.StockMovement{
		ID:              uuid.New().String(),
		Type:            input.Type,
		FromWarehouseID: input.FromWarehouseID,
		ToWarehouseID:   input.ToWarehouseID,
		ReferenceNumber: reference,
		Notes:           input.Notes,
		CreatedAt:       now,
	}
	if input.ActorID != "" {
		actorID := input.ActorID
		movement.CreatedBy = &actorID
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockardRepo repository.StockardRepository,
		stockRepo repository.StockRepository,
	) error {
		// La cabecera primero: la constraint única de reference_number es
		// el guardián definitivo contra referencias duplicadas.
		if err := movRepo.Create(movement); err != nil {
			return err
		}
		for _, in := range input.Items {
			if in.Quantity <= 0 {
				return fmt.Errorf("%w: producto %s", domain.ErrInvalidQuantity, in.ProductID)
			}
			product := products[in.ProductID]
			loc, err := ResolveLocations(stockardRepo, input.Type, product, input.FromWarehouseID, input.ToWarehouseID)
			if err != nil {
				return err
			}
			if err := uc.applyDelta(stockRepo, input.Type, product.ID, loc, in.Quantity, now); err != nil {
				return err
			}
			item := entity.StockMovementItem{
				ID:         uuid.New().String(),
				MovementID: movement.ID,
				ProductID:  product.ID,
				Quantity:   in.Quantity,
			}
			if loc.From != nil {
				fromID := loc.From.ID
				item.FromStockardID = &fromID
			}
			if loc.To != nil {
				toID := loc.To.ID
				item.ToStockardID = &toID
			}
			if err := movRepo.CreateItem(&item); err != nil {
				return err
			}
			movement.Items = append(movement.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// applyDelta aplica la mutación del libro para una línea contra filas
// bloqueadas con FOR UPDATE dentro de la transacción en curso.
func (uc *ProcessMovementUseCase) applyDelta(
	stockRepo repository.StockRepository,
	movementType entity.MovementType,
	productID string,
	loc ResolvedLocations,
	quantity int64,
	now time.Time,
) error {
	switch movementType {
	case entity.MovementTypeIn:
		return uc.creditStock(stockRepo, productID, loc.To, quantity, now)
	case entity.MovementTypeOut:
		return uc.debitStock(stockRepo, productID, loc.From, quantity, now)
	case entity.MovementTypeTransfer:
		if err := uc.debitStock(stockRepo, productID, loc.From, quantity, now); err != nil {
			return err
		}
		return uc.creditStock(stockRepo, productID, loc.To, quantity, now)
	}
	return domain.ErrInvalidMovement
}

// debitStock resta del stockard origen. La fila debe existir con cantidad
// suficiente; de lo contrario el movimiento completo se rechaza y la
// transacción revierte, dejando las cantidades intactas. La suficiencia se
// verifica contra la fila bloqueada con FOR UPDATE y el débito se envía
// como delta negativo: débitos concurrentes quedan serializados por el
// bloqueo de fila.
func (uc *ProcessMovementUseCase) debitStock(stockRepo repository.StockRepository, productID string, from *entity.Stockard, quantity int64, now time.Time) error {
	stock, err := stockRepo.GetForUpdate(productID, from.ID)
	if err != nil {
		return err
	}
	var available int64
	if stock != nil {
		available = stock.Quantity
	}
	if stock == nil || available < quantity {
		return &domain.InsufficientStockError{
			StockardID:   from.ID,
			StockardName: from.Name,
			Available:    available,
			Requested:    quantity,
		}
	}
	stock.Quantity = -quantity
	stock.UpdatedAt = now
	return stockRepo.AdjustQuantity(stock)
}

// creditStock suma en el stockard destino, creando la fila si es el primer
// movimiento para el par (producto, stockard). Se envía solo el delta: la
// suma sobre la cantidad vigente la hace el almacén, de modo que dos
// créditos concurrentes sobre un par todavía sin fila no se pierden.
func (uc *ProcessMovementUseCase) creditStock(stockRepo repository.StockRepository, productID string, to *entity.Stockard, quantity int64, now time.Time) error {
	return stockRepo.AdjustQuantity(&entity.Stock{
		ID:         uuid.New().String(),
		ProductID:  productID,
		StockardID: to.ID,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (uc *ProcessMovementUseCase) checkWarehouse(id *string) error {
	if id == nil {
		return nil
	}
	warehouse, err := uc.warehouseRepo.GetByID(*id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, *id)
	}
	return nil
}
