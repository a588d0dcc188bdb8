// Package memory implementa los repositorios en memoria de proceso. Sirve a las pruebas y
// a DB_DRIVER=memory; la exclusión por builty/bodega la aporta el Locker del motor.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
)

// Store guarda todas las entidades detrás de un único RWMutex.
type Store struct {
	mu sync.RWMutex

	rakes map[string]*entity.Rake // por código

	accounts     map[string]*entity.Account
	warehouses   map[string]*entity.Warehouse
	trucks       map[string]*entity.Truck
	truckNumbers map[string]string

	documents  map[string]*entity.TransportDocument
	docOrder   []string
	docNumbers map[string]string
	lrNumbers  map[string]string

	slips       map[string]*entity.LoadingSlip
	slipOrder   []string
	slipSerials map[string]map[int]string

	movements map[string]*entity.StockMovement
	movOrder  []string
	reversals map[string]string

	invoices   map[string]*entity.Invoice
	invOrder   []string
	invNumbers map[string]string
	invByDoc   map[string]string
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		rakes:        make(map[string]*entity.Rake),
		accounts:     make(map[string]*entity.Account),
		warehouses:   make(map[string]*entity.Warehouse),
		trucks:       make(map[string]*entity.Truck),
		truckNumbers: make(map[string]string),
		documents:    make(map[string]*entity.TransportDocument),
		docNumbers:   make(map[string]string),
		lrNumbers:    make(map[string]string),
		slips:        make(map[string]*entity.LoadingSlip),
		slipSerials:  make(map[string]map[int]string),
		movements:    make(map[string]*entity.StockMovement),
		reversals:    make(map[string]string),
		invoices:     make(map[string]*entity.Invoice),
		invNumbers:   make(map[string]string),
		invByDoc:     make(map[string]string),
	}
}

// Repositorios fuera de transacción.
func (s *Store) Rakes() repository.RakeRepository                  { return &rakeRepo{s: s} }
func (s *Store) Accounts() repository.AccountRepository            { return &accountRepo{s: s} }
func (s *Store) Warehouses() repository.WarehouseRepository        { return &warehouseRepo{s: s} }
func (s *Store) Trucks() repository.TruckRepository                { return &truckRepo{s: s} }
func (s *Store) Documents() repository.TransportDocumentRepository { return &documentRepo{s: s} }
func (s *Store) LoadingSlips() repository.LoadingSlipRepository    { return &slipRepo{s: s} }
func (s *Store) Movements() repository.StockMovementRepository     { return &movementRepo{s: s} }
func (s *Store) Invoices() repository.InvoiceRepository            { return &invoiceRepo{s: s} }

// Run ejecuta fn con repos transaccionales: las inserciones quedan en un buffer y se
// aplican todas o ninguna al final, revalidando unicidad y referencias.
func (s *Store) Run(ctx context.Context, fn func(
	docRepo repository.TransportDocumentRepository,
	movRepo repository.StockMovementRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := &tx{s: s}
	if err := fn(&documentRepo{s: s, tx: t}, &movementRepo{s: s, tx: t}, &warehouseRepo{s: s}); err != nil {
		return err
	}
	return t.commit()
}

// RunBilling igual que Run para builties y e-bills.
func (s *Store) RunBilling(ctx context.Context, fn func(
	docRepo repository.TransportDocumentRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := &tx{s: s}
	if err := fn(&documentRepo{s: s, tx: t}, &invoiceRepo{s: s, tx: t}); err != nil {
		return err
	}
	return t.commit()
}

// tx inserciones pendientes de una transacción.
type tx struct {
	s    *Store
	docs []*entity.TransportDocument
	movs []*entity.StockMovement
	invs []*entity.Invoice
}

func (t *tx) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for i, d := range t.docs {
		if err := t.s.checkDocument(d, t.docs[:i]); err != nil {
			return err
		}
	}
	for i, m := range t.movs {
		if err := t.s.checkMovement(m, t.docs, t.movs[:i]); err != nil {
			return err
		}
	}
	for i, inv := range t.invs {
		if err := t.s.checkInvoice(inv, t.docs, t.invs[:i]); err != nil {
			return err
		}
	}
	for _, d := range t.docs {
		t.s.applyDocument(d)
	}
	for _, m := range t.movs {
		t.s.applyMovement(m)
	}
	for _, inv := range t.invs {
		t.s.applyInvoice(inv)
	}
	return nil
}

func (t *tx) document(id string) *entity.TransportDocument {
	if t == nil {
		return nil
	}
	for _, d := range t.docs {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (t *tx) movement(id string) *entity.StockMovement {
	if t == nil {
		return nil
	}
	for _, m := range t.movs {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// checkDocument exige lock tomado.
func (s *Store) checkDocument(d *entity.TransportDocument, pending []*entity.TransportDocument) error {
	if _, ok := s.documents[d.ID]; ok {
		return &domain.UniquenessError{Entity: "transport_document", Field: "id", Value: d.ID}
	}
	if _, ok := s.rakes[d.RakeCode]; !ok {
		return domain.ErrNotFound
	}
	_, numTaken := s.docNumbers[d.Number]
	_, lrTaken := s.lrNumbers[d.LRNumber]
	for _, p := range pending {
		numTaken = numTaken || p.Number == d.Number
		lrTaken = lrTaken || (d.LRNumber != "" && p.LRNumber == d.LRNumber)
	}
	if numTaken {
		return &domain.UniquenessError{Entity: "transport_document", Field: "number", Value: d.Number}
	}
	if d.LRNumber != "" && lrTaken {
		return &domain.UniquenessError{Entity: "transport_document", Field: "lr_number", Value: d.LRNumber}
	}
	return nil
}

func (s *Store) applyDocument(d *entity.TransportDocument) {
	cp := *d
	s.documents[d.ID] = &cp
	s.docOrder = append(s.docOrder, d.ID)
	s.docNumbers[d.Number] = d.ID
	if d.LRNumber != "" {
		s.lrNumbers[d.LRNumber] = d.ID
	}
}

func (s *Store) checkMovement(m *entity.StockMovement, pendingDocs []*entity.TransportDocument, pending []*entity.StockMovement) error {
	if _, ok := s.movements[m.ID]; ok {
		return &domain.UniquenessError{Entity: "stock_movement", Field: "id", Value: m.ID}
	}
	if _, ok := s.warehouses[m.WarehouseID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.documents[m.DocumentID]; !ok && !containsDocument(pendingDocs, m.DocumentID) {
		return domain.ErrNotFound
	}
	if m.ReversalOf == "" {
		return nil
	}
	if _, ok := s.movements[m.ReversalOf]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.reversals[m.ReversalOf]; ok {
		return domain.ErrAlreadyReversed
	}
	for _, p := range pending {
		if p.ReversalOf == m.ReversalOf {
			return domain.ErrAlreadyReversed
		}
	}
	return nil
}

func (s *Store) applyMovement(m *entity.StockMovement) {
	cp := *m
	s.movements[m.ID] = &cp
	s.movOrder = append(s.movOrder, m.ID)
	if m.ReversalOf != "" {
		s.reversals[m.ReversalOf] = m.ID
	}
}

func (s *Store) checkInvoice(inv *entity.Invoice, pendingDocs []*entity.TransportDocument, pending []*entity.Invoice) error {
	if _, ok := s.documents[inv.DocumentID]; !ok && !containsDocument(pendingDocs, inv.DocumentID) {
		return domain.ErrNotFound
	}
	_, numTaken := s.invNumbers[inv.Number]
	_, docTaken := s.invByDoc[inv.DocumentID]
	for _, p := range pending {
		numTaken = numTaken || p.Number == inv.Number
		docTaken = docTaken || p.DocumentID == inv.DocumentID
	}
	if numTaken {
		return &domain.UniquenessError{Entity: "invoice", Field: "number", Value: inv.Number}
	}
	if docTaken {
		return domain.ErrDuplicateInvoice
	}
	return nil
}

func (s *Store) applyInvoice(inv *entity.Invoice) {
	cp := *inv
	if inv.Tax != nil {
		tax := *inv.Tax
		cp.Tax = &tax
	}
	s.invoices[inv.ID] = &cp
	s.invOrder = append(s.invOrder, inv.ID)
	s.invNumbers[inv.Number] = inv.ID
	s.invByDoc[inv.DocumentID] = inv.ID
}

func containsDocument(docs []*entity.TransportDocument, id string) bool {
	for _, d := range docs {
		if d.ID == id {
			return true
		}
	}
	return false
}

// page recorta una lista ya ordenada.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
