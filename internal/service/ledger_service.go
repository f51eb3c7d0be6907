package service

import (
	"errors"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockLedger is the single mutation path for product stock. The movement
// and sales services derive signed deltas and hand them here; the ledger
// persists the new stock level and delegates alert evaluation to the engine.
//
// The ledger never clamps and never rejects a delta that would drive stock
// negative. Availability checks and clamping are the caller's job.
type StockLedger struct {
	productRepo repository.ProductRepository
	engine      *AlertEngine
}

func NewStockLedger(productRepo repository.ProductRepository, engine *AlertEngine) *StockLedger {
	return &StockLedger{productRepo: productRepo, engine: engine}
}

// ApplyDelta adjusts the product's stock by signedDelta (positive increases,
// negative decreases) inside tx, refreshing last_updated, then re-evaluates
// alert state against the before/after values. Must run inside a transaction
// so the row lock covers both steps.
func (l *StockLedger) ApplyDelta(tx *gorm.DB, productID uuid.UUID, signedDelta decimal.Decimal, actorID string) (*model.Product, AlertOutcome, error) {
	product, err := l.productRepo.LockByID(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, AlertOutcome{}, ErrNotFound
		}
		return nil, AlertOutcome{}, err
	}

	before := product.CurrentStock
	after := before.Add(signedDelta)

	if err := l.productRepo.UpdateStock(tx, product.ID, after, actorID); err != nil {
		return nil, AlertOutcome{}, err
	}
	product.CurrentStock = after

	outcome, err := l.engine.Evaluate(tx, product, before, after)
	if err != nil {
		return nil, AlertOutcome{}, err
	}

	return product, outcome, nil
}
