package inventory

import (
	"context"

	"github.com/pizzastock/backend/internal/domain/catalog"
	"github.com/pizzastock/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the inventory repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories sharing one
// underlying transaction. The product balance, the batches and the ledger
// must always change together, so every orchestration goes through here.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Batches() inventory.BatchRepository
	Movements() inventory.MovementRepository
	Writeoffs() inventory.WriteoffRepository
	Productions() inventory.ProductionRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests and with backends that handle atomicity elsewhere.
type NoOpTransactionScope struct {
	products    catalog.ProductRepository
	batches     inventory.BatchRepository
	movements   inventory.MovementRepository
	writeoffs   inventory.WriteoffRepository
	productions inventory.ProductionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	products catalog.ProductRepository,
	batches inventory.BatchRepository,
	movements inventory.MovementRepository,
	writeoffs inventory.WriteoffRepository,
	productions inventory.ProductionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		products:    products,
		batches:     batches,
		movements:   movements,
		writeoffs:   writeoffs,
		productions: productions,
	}
}

// Execute runs the function directly, without transaction boundaries.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.products }

// Batches returns the batch repository.
func (s *NoOpTransactionScope) Batches() inventory.BatchRepository { return s.batches }

// Movements returns the movement repository.
func (s *NoOpTransactionScope) Movements() inventory.MovementRepository { return s.movements }

// Writeoffs returns the writeoff repository.
func (s *NoOpTransactionScope) Writeoffs() inventory.WriteoffRepository { return s.writeoffs }

// Productions returns the production run repository.
func (s *NoOpTransactionScope) Productions() inventory.ProductionRepository { return s.productions }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
