package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodegas-api/internal/application/inventory"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Bodegas-api/internal/domain/inventory"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional (snapshot + restore)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	warehouses map[string]*entity.Warehouse
	products   map[string]*entity.Product
	stockards  []*entity.Stockard
	stocks     map[string]*entity.Stock // clave productID|stockardID
	movements  map[string]*entity.StockMovement
	items      []*entity.StockMovementItem
	refs       map[string]bool

	seq int // generador de IDs para stockards creados por el motor

	// deltas registra cada ajuste enviado al libro, en orden.
	deltas []int64

	// failCreates fuerza ErrDuplicateReference en los próximos N Create de
	// cabecera, para simular carreras sobre la constraint única.
	failCreates int
}

func newMemStore() *memStore {
	return &memStore{
		warehouses: map[string]*entity.Warehouse{},
		products:   map[string]*entity.Product{},
		stocks:     map[string]*entity.Stock{},
		movements:  map[string]*entity.StockMovement{},
		refs:       map[string]bool{},
	}
}

func stockKey(productID, stockardID string) string { return productID + "|" + stockardID }

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.warehouses {
		w := *v
		c.warehouses[k] = &w
	}
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for _, v := range s.stockards {
		sk := *v
		c.stockards = append(c.stockards, &sk)
	}
	for k, v := range s.stocks {
		st := *v
		c.stocks[k] = &st
	}
	for k, v := range s.movements {
		m := *v
		c.movements[k] = &m
	}
	for _, v := range s.items {
		it := *v
		c.items = append(c.items, &it)
	}
	for k, v := range s.refs {
		c.refs[k] = v
	}
	c.deltas = append(c.deltas, s.deltas...)
	c.seq = s.seq
	return c
}

func (s *memStore) restore(snap *memStore) {
	fail := s.failCreates
	*s = *snap
	s.failCreates = fail
}

func (s *memStore) findStockard(warehouseID, name string) *entity.Stockard {
	for _, sk := range s.stockards {
		if sk.WarehouseID == warehouseID && sk.Name == name {
			return sk
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake sobre el almacén
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if r.s.failCreates > 0 {
		r.s.failCreates--
		return domain.ErrDuplicateReference
	}
	if r.s.refs[m.ReferenceNumber] {
		return domain.ErrDuplicateReference
	}
	cp := *m
	r.s.movements[m.ID] = &cp
	r.s.refs[m.ReferenceNumber] = true
	return nil
}

func (r *fakeMovementRepo) CreateItem(item *entity.StockMovementItem) error {
	cp := *item
	r.s.items = append(r.s.items, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	for _, it := range r.s.items {
		if it.MovementID == id {
			cp.Items = append(cp.Items, *it)
		}
	}
	return &cp, nil
}

func (r *fakeMovementRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMovementRepo) ExistsByReference(reference string) (bool, error) {
	return r.s.refs[reference], nil
}

type fakeStockardRepo struct{ s *memStore }

func (r *fakeStockardRepo) Create(sk *entity.Stockard) error {
	cp := *sk
	r.s.stockards = append(r.s.stockards, &cp)
	return nil
}

func (r *fakeStockardRepo) GetByID(id string) (*entity.Stockard, error) {
	for _, sk := range r.s.stockards {
		if sk.ID == id {
			cp := *sk
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStockardRepo) GetOrCreate(warehouseID, name string) (*entity.Stockard, error) {
	if sk := r.s.findStockard(warehouseID, name); sk != nil {
		cp := *sk
		return &cp, nil
	}
	r.s.seq++
	sk := &entity.Stockard{
		ID:          fmt.Sprintf("sk-gen-%d", r.s.seq),
		WarehouseID: warehouseID,
		Name:        name,
		CreatedAt:   time.Now(),
	}
	r.s.stockards = append(r.s.stockards, sk)
	cp := *sk
	return &cp, nil
}

func (r *fakeStockardRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stockard, error) {
	var out []*entity.Stockard
	for _, sk := range r.s.stockards {
		if sk.WarehouseID == warehouseID {
			cp := *sk
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStockardRepo) FirstHoldingProduct(productID, warehouseID string) (*entity.Stockard, error) {
	var candidates []*entity.Stockard
	for _, sk := range r.s.stockards {
		if sk.WarehouseID != warehouseID {
			continue
		}
		if _, ok := r.s.stocks[stockKey(productID, sk.ID)]; ok {
			candidates = append(candidates, sk)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	cp := *candidates[0]
	return &cp, nil
}

func (r *fakeStockardRepo) Delete(id string) error { return nil }

type fakeStockRepo struct{ s *memStore }

func (r *fakeStockRepo) GetForUpdate(productID, stockardID string) (*entity.Stock, error) {
	st, ok := r.s.stocks[stockKey(productID, stockardID)]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

// AdjustQuantity imita la suma aditiva del almacén: el delta se aplica
// sobre la fila vigente, no sobre lo que el caller haya leído antes.
func (r *fakeStockRepo) AdjustQuantity(stock *entity.Stock) error {
	r.s.deltas = append(r.s.deltas, stock.Quantity)
	key := stockKey(stock.ProductID, stock.StockardID)
	if existing, ok := r.s.stocks[key]; ok {
		existing.Quantity += stock.Quantity
		existing.UpdatedAt = stock.UpdatedAt
		return nil
	}
	cp := *stock
	r.s.stocks[key] = &cp
	return nil
}

func (r *fakeStockRepo) List(warehouseID, productID string, limit, offset int) ([]*entity.StockLevel, error) {
	return nil, nil
}

type fakeWarehouseRepo struct{ s *memStore }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}
func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error { return nil }
func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (r *fakeWarehouseRepo) Delete(id string) error { return nil }

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(id string) error { return nil }

// fakeTxRunner simula la transacción: un error en fn revierte el almacén al
// estado previo.
type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockardRepo repository.StockardRepository,
	stockRepo repository.StockRepository,
) error) error {
	snap := t.s.clone()
	err := fn(&fakeMovementRepo{t.s}, &fakeStockardRepo{t.s}, &fakeStockRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	whSrc      = "wh-src"
	whDst      = "wh-dst"
	prodWidget = "prod-widget"
)

func newEngine(t *testing.T) (*inventory.ProcessMovementUseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	s.warehouses[whSrc] = &entity.Warehouse{ID: whSrc, Name: "Bodega Origen"}
	s.warehouses[whDst] = &entity.Warehouse{ID: whDst, Name: "Bodega Destino"}
	s.products[prodWidget] = &entity.Product{ID: prodWidget, Name: "Widget"}

	refGen := domaininv.NewReferenceGenerator(&fakeMovementRepo{s})
	uc := inventory.NewProcessMovementUseCase(
		&fakeTxRunner{s},
		&fakeWarehouseRepo{s},
		&fakeProductRepo{s},
		refGen,
	)
	return uc, s
}

// seedStock crea un stockard con una fila de stock para Widget.
func seedStock(s *memStore, stockardID, warehouseID, name string, quantity int64) {
	s.stockards = append(s.stockards, &entity.Stockard{
		ID: stockardID, WarehouseID: warehouseID, Name: name,
	})
	s.stocks[stockKey(prodWidget, stockardID)] = &entity.Stock{
		ID: "st-" + stockardID, ProductID: prodWidget, StockardID: stockardID, Quantity: quantity,
	}
}

func quantityAt(s *memStore, stockardID string) int64 {
	st, ok := s.stocks[stockKey(prodWidget, stockardID)]
	if !ok {
		return -1
	}
	return st.Quantity
}

func strPtr(v string) *string { return &v }

func inMovement(qty int64) inventory.MovementInput {
	return inventory.MovementInput{
		ActorID:       "user-1",
		Type:          entity.MovementTypeIn,
		ToWarehouseID: strPtr(whDst),
		Items:         []inventory.MovementItemInput{{ProductID: prodWidget, Quantity: qty}},
	}
}

func outMovement(qty int64) inventory.MovementInput {
	return inventory.MovementInput{
		ActorID:         "user-1",
		Type:            entity.MovementTypeOut,
		FromWarehouseID: strPtr(whSrc),
		Items:           []inventory.MovementItemInput{{ProductID: prodWidget, Quantity: qty}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas (IN)
// ──────────────────────────────────────────────────────────────────────────────

// La primera entrada crea el stockard "<producto> Stock" en la bodega
// destino; la segunda lo reutiliza y acumula.
func TestProcess_Entrada_CreaYReutilizaStockard(t *testing.T) {
	uc, s := newEngine(t)

	mov, err := uc.Process(context.Background(), inMovement(5))
	require.NoError(t, err)
	require.Len(t, mov.Items, 1)

	created := s.findStockard(whDst, "Widget Stock")
	require.NotNil(t, created, "debe crearse el stockard destino del producto")
	assert.Equal(t, int64(5), quantityAt(s, created.ID))
	require.NotNil(t, mov.Items[0].ToStockardID)
	assert.Equal(t, created.ID, *mov.Items[0].ToStockardID)
	assert.Nil(t, mov.Items[0].FromStockardID, "una entrada no tiene stockard origen")

	_, err = uc.Process(context.Background(), inMovement(3))
	require.NoError(t, err)

	assert.Equal(t, int64(8), quantityAt(s, created.ID), "la segunda entrada acumula sobre el mismo stockard")
	count := 0
	for _, sk := range s.stockards {
		if sk.WarehouseID == whDst && sk.Name == "Widget Stock" {
			count++
		}
	}
	assert.Equal(t, 1, count, "no debe duplicarse el stockard destino")
}

func TestProcess_Entrada_RegistraActorYReferencia(t *testing.T) {
	uc, _ := newEngine(t)

	mov, err := uc.Process(context.Background(), inMovement(5))
	require.NoError(t, err)

	require.NotNil(t, mov.CreatedBy)
	assert.Equal(t, "user-1", *mov.CreatedBy)
	assert.Regexp(t, `^INV-\d{8}-\d{4}$`, mov.ReferenceNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas (OUT)
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_Salida_DescuentaDelOrigen(t *testing.T) {
	uc, s := newEngine(t)
	seedStock(s, "sk-1", whSrc, "Widget Stock", 10)

	mov, err := uc.Process(context.Background(), outMovement(4))
	require.NoError(t, err)

	assert.Equal(t, int64(6), quantityAt(s, "sk-1"))
	require.NotNil(t, mov.Items[0].FromStockardID)
	assert.Equal(t, "sk-1", *mov.Items[0].FromStockardID)
	assert.Nil(t, mov.Items[0].ToStockardID, "una salida no tiene stockard destino")
}

// El origen es el primer stockard por nombre ascendente con fila de stock,
// aunque otro tenga más cantidad.
func TestProcess_Salida_OrigenPrimeroPorNombre(t *testing.T) {
	uc, s := newEngine(t)
	seedStock(s, "sk-b", whSrc, "Estante B", 100)
	seedStock(s, "sk-a", whSrc, "Estante A", 10)

	_, err := uc.Process(context.Background(), outMovement(4))
	require.NoError(t, err)

	assert.Equal(t, int64(6), quantityAt(s, "sk-a"), "debe debitar el primero por nombre")
	assert.Equal(t, int64(100), quantityAt(s, "sk-b"), "el otro stockard no se toca")
}

func TestProcess_Salida_StockInsuficiente(t *testing.T) {
	uc, s := newEngine(t)
	seedStock(s, "sk-1", whSrc, "Widget Stock", 6)

	_, err := uc.Process(context.Background(), outMovement(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(6), insufficient.Available)
	assert.Equal(t, int64(10), insufficient.Requested)

	assert.Equal(t, int64(6), quantityAt(s, "sk-1"), "el rechazo no altera la cantidad")
	assert.Empty(t, s.movements, "no debe persistirse la cabecera")
}

func TestProcess_Salida_SinStockDisponible(t *testing.T) {
	uc, s := newEngine(t)
	// Ningún stockard de la bodega origen tiene fila para el producto.

	_, err := uc.Process(context.Background(), outMovement(1))
	assert.ErrorIs(t, err, domain.ErrNoStockAvailable)
	assert.Empty(t, s.movements)
}

// Una fila con cantidad cero cuenta como existente para la resolución, pero
// el débito se rechaza por insuficiencia, no por NO_STOCK_AVAILABLE.
func TestProcess_Salida_FilaEnCeroEsInsuficiente(t *testing.T) {
	uc, s := newEngine(t)
	seedStock(s, "sk-1", whSrc, "Widget Stock", 0)

	_, err := uc.Process(context.Background(), outMovement(1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrNoStockAvailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados (TRANSFER)
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_Traslado_MueveEntreBodegas(t *testing.T) {
	uc, s := newEngine(t)
	seedStock(s, "sk-1", whSrc, "Widget Stock", 6)

	input := inventory.MovementInput{
		ActorID:         "user-1",
		Type:            entity.MovementTypeTransfer,
		FromWarehouseID: strPtr(whSrc),
		ToWarehouseID:   strPtr(whDst),
		Items:           []inventory.MovementItemInput{{ProductID: prodWidget, Quantity: 6}},
	}
	mov, err := uc.Process(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(0), quantityAt(s, "sk-1"), "la fila origen queda en cero, no se elimina")

	dest := s.findStockard(whDst, "Widget Transfer Stock")
	require.NotNil(t, dest, "debe crearse el stockard de traslado en destino")
	assert.Equal(t, int64(6), quantityAt(s, dest.ID))

	require.NotNil(t, mov.Items[0].FromStockardID)
	require.NotNil(t, mov.Items[0].ToStockardID)
	assert.Equal(t, "sk-1", *mov.Items[0].FromStockardID)
	assert.Equal(t, dest.ID, *mov.Items[0].ToStockardID)
}

func TestProcess_Traslado_MismaBodegaRechazado(t *testing.T) {
	uc, _ := newEngine(t)

	input := inventory.MovementInput{
		Type:            entity.MovementTypeTransfer,
		FromWarehouseID: strPtr(whSrc),
		ToWarehouseID:   strPtr(whSrc),
		Items:           []inventory.MovementItemInput{{ProductID: prodWidget, Quantity: 1}},
	}
	_, err := uc.Process(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones de cabecera y entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_SinItemsRechazado(t *testing.T) {
	uc, _ := newEngine(t)

	input := inventory.MovementInput{Type: entity.MovementTypeIn, ToWarehouseID: strPtr(whDst)}
	_, err := uc.Process(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)
}

func TestProcess_CantidadInvalidaRechazada(t *testing.T) {
	uc, s := newEngine(t)

	for _, qty := range []int64{0, -3} {
		_, err := uc.Process(context.Background(), inMovement(qty))
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d debe rechazarse", qty)
	}
	assert.Empty(t, s.movements, "nada debe persistirse")
	assert.Nil(t, s.findStockard(whDst, "Widget Stock"))
}

func TestProcess_BodegaInexistente(t *testing.T) {
	uc, _ := newEngine(t)

	input := inMovement(5)
	input.ToWarehouseID = strPtr("wh-nope")
	_, err := uc.Process(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcess_ProductoInexistente(t *testing.T) {
	uc, _ := newEngine(t)

	input := inMovement(5)
	input.Items[0].ProductID = "prod-nope"
	_, err := uc.Process(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad del movimiento completo
// ──────────────────────────────────────────────────────────────────────────────

// Un fallo en la segunda línea revierte también el débito de la primera.
func TestProcess_FalloEnSegundaLinea_RevierteTodo(t *testing.T) {
	uc, s := newEngine(t)
	seedStock(s, "sk-1", whSrc, "Widget Stock", 10)
	s.products["prod-gadget"] = &entity.Product{ID: "prod-gadget", Name: "Gadget"}
	// Gadget no tiene stock en la bodega origen.

	input := inventory.MovementInput{
		ActorID:         "user-1",
		Type:            entity.MovementTypeOut,
		FromWarehouseID: strPtr(whSrc),
		Items: []inventory.MovementItemInput{
			{ProductID: prodWidget, Quantity: 4},
			{ProductID: "prod-gadget", Quantity: 1},
		},
	}
	_, err := uc.Process(context.Background(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoStockAvailable)

	assert.Equal(t, int64(10), quantityAt(s, "sk-1"), "el débito de la primera línea debe revertirse")
	assert.Empty(t, s.movements)
	assert.Empty(t, s.items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes del libro como deltas
// ──────────────────────────────────────────────────────────────────────────────

// El motor envía al libro el delta de cada línea, nunca un total
// recalculado a partir de una lectura previa: la suma sobre la cantidad
// vigente es del almacén. Si otro movimiento comprometió la fila entre la
// resolución y el ajuste, su crédito no se pisa.
func TestProcess_Entrada_EnviaDeltaNoTotal(t *testing.T) {
	uc, s := newEngine(t)
	// Stockard preexistente con el nombre que usa el motor y fila ya
	// comprometida por un movimiento anterior.
	seedStock(s, "sk-dst", whDst, "Widget Stock", 5)

	_, err := uc.Process(context.Background(), inMovement(3))
	require.NoError(t, err)

	assert.Equal(t, int64(8), quantityAt(s, "sk-dst"), "el crédito acumula sobre lo comprometido")
	require.NotEmpty(t, s.deltas)
	assert.Equal(t, int64(3), s.deltas[len(s.deltas)-1],
		"el ajuste enviado debe ser el delta de la línea, no el total")
}

func TestProcess_Salida_EnviaDeltaNegativo(t *testing.T) {
	uc, s := newEngine(t)
	seedStock(s, "sk-1", whSrc, "Widget Stock", 10)

	_, err := uc.Process(context.Background(), outMovement(4))
	require.NoError(t, err)

	assert.Equal(t, int64(6), quantityAt(s, "sk-1"))
	require.NotEmpty(t, s.deltas)
	assert.Equal(t, int64(-4), s.deltas[len(s.deltas)-1],
		"el débito también viaja como delta, serializado por el bloqueo de fila")
}

// ──────────────────────────────────────────────────────────────────────────────
// Referencias
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_ReferenciaDelCaller_SeRespeta(t *testing.T) {
	uc, _ := newEngine(t)

	input := inMovement(5)
	input.ReferenceNumber = "INV-20261508-0042"
	mov, err := uc.Process(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "INV-20261508-0042", mov.ReferenceNumber)
}

// Una referencia aportada por el caller que ya existe falla sin reintentos.
func TestProcess_ReferenciaDelCallerDuplicada_SinReintento(t *testing.T) {
	uc, s := newEngine(t)

	input := inMovement(5)
	input.ReferenceNumber = "INV-20261508-0042"
	_, err := uc.Process(context.Background(), input)
	require.NoError(t, err)

	before := len(s.movements)
	_, err = uc.Process(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)
	assert.Len(t, s.movements, before, "el duplicado no persiste nada")
}

// Con referencia generada, la colisión en el insert se reintenta con una
// referencia fresca hasta el límite.
func TestProcess_ReferenciaGenerada_ReintentaTrasColision(t *testing.T) {
	uc, s := newEngine(t)
	s.failCreates = 2

	mov, err := uc.Process(context.Background(), inMovement(5))
	require.NoError(t, err, "dos colisiones seguidas caben dentro del límite de reintentos")
	assert.NotEmpty(t, mov.ReferenceNumber)
	assert.Len(t, s.movements, 1)
}

func TestProcess_ReferenciaGenerada_AgotaReintentos(t *testing.T) {
	uc, s := newEngine(t)
	s.failCreates = 3

	_, err := uc.Process(context.Background(), inMovement(5))
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)
	assert.Empty(t, s.movements)
}
