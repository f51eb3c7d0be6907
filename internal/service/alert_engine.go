package service

import (
	"time"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// alertAction is the decision the alert engine takes for one stock mutation.
type alertAction int

const (
	alertNone alertAction = iota
	alertCreate
	alertResolve
)

// decideAlertAction compares the stock value before and after a mutation
// against the minimum level. Creation requires an observed decrease that
// lands at or below the minimum; resolution requires an observed increase
// that lands strictly above it. Anything else is a no-op.
func decideAlertAction(before, after, minimum decimal.Decimal) alertAction {
	switch {
	case after.LessThan(before) && after.LessThanOrEqual(minimum):
		return alertCreate
	case after.GreaterThan(before) && after.GreaterThan(minimum):
		return alertResolve
	default:
		return alertNone
	}
}

// AlertOutcome reports what the engine did after a stock mutation, so the
// calling service can broadcast events once the transaction commits.
type AlertOutcome struct {
	Created  *model.StockAlert
	Resolved bool
}

// AlertEngine maintains the single-active-alert invariant per product. It is
// invoked by the stock ledger after every delta and never mutates stock
// itself.
type AlertEngine struct {
	alertRepo repository.StockAlertRepository
}

func NewAlertEngine(alertRepo repository.StockAlertRepository) *AlertEngine {
	return &AlertEngine{alertRepo: alertRepo}
}

// Evaluate runs inside the mutation's transaction with the product row still
// locked. product.CurrentStock must already hold the post-mutation value.
func (e *AlertEngine) Evaluate(tx *gorm.DB, product *model.Product, before, after decimal.Decimal) (AlertOutcome, error) {
	var outcome AlertOutcome

	switch decideAlertAction(before, after, product.MinimumStockLevel) {
	case alertCreate:
		active, err := e.alertRepo.HasActiveForProduct(tx, product.ID)
		if err != nil {
			return outcome, err
		}
		if active {
			return outcome, nil
		}
		alert := &model.StockAlert{
			ProductID:           product.ID,
			CurrentStockAtAlert: after,
		}
		if err := e.alertRepo.Create(tx, alert); err != nil {
			return outcome, err
		}
		outcome.Created = alert

	case alertResolve:
		if err := e.alertRepo.ResolveAllForProduct(tx, product.ID, time.Now()); err != nil {
			return outcome, err
		}
		outcome.Resolved = true
	}

	return outcome, nil
}
