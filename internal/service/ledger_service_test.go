package service

import (
	"errors"
	"testing"

	"go-cafe-central/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// applyDelta runs one ledger mutation in its own transaction, failing the
// test on error.
func (e *testEnv) applyDelta(t *testing.T, productID uuid.UUID, delta string) (*model.Product, AlertOutcome) {
	t.Helper()
	var product *model.Product
	var outcome AlertOutcome
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var err error
		product, outcome, err = e.ledger.ApplyDelta(tx, productID, dec(t, delta), "system")
		return err
	})
	if err != nil {
		t.Fatalf("apply delta %s: %v", delta, err)
	}
	return product, outcome
}

func TestApplyDeltaAdjustsStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Espresso Beans", "10", "5", "4.00")

	updated, outcome := env.applyDelta(t, product.ID, "-3")
	assertDecimalEqual(t, dec(t, "7"), updated.CurrentStock, "stock after decrease")
	if outcome.Created != nil || outcome.Resolved {
		t.Fatalf("no alert expected while above minimum, got %+v", outcome)
	}

	updated, _ = env.applyDelta(t, product.ID, "2.5")
	assertDecimalEqual(t, dec(t, "9.5"), updated.CurrentStock, "stock after increase")

	fresh := env.reloadProduct(t, product)
	assertDecimalEqual(t, dec(t, "9.5"), fresh.CurrentStock, "persisted stock")
}

func TestApplyDeltaCreatesAlertOnThresholdCross(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Oat Milk", "10", "5", "2.00")

	_, outcome := env.applyDelta(t, product.ID, "-6")
	if outcome.Created == nil {
		t.Fatal("expected an alert on the drop to 4")
	}
	assertDecimalEqual(t, dec(t, "4"), outcome.Created.CurrentStockAtAlert, "stock captured on alert")

	active := env.activeAlerts(t, product)
	if len(active) != 1 {
		t.Fatalf("expected 1 active alert, got %d", len(active))
	}
}

func TestApplyDeltaKeepsSingleActiveAlert(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Whole Milk", "10", "5", "1.50")

	_, first := env.applyDelta(t, product.ID, "-6")
	if first.Created == nil {
		t.Fatal("expected an alert on the first drop")
	}

	_, second := env.applyDelta(t, product.ID, "-2")
	if second.Created != nil {
		t.Fatal("a further decrease must not open a second alert")
	}

	active := env.activeAlerts(t, product)
	if len(active) != 1 {
		t.Fatalf("expected 1 active alert, got %d", len(active))
	}
	assertDecimalEqual(t, dec(t, "4"), active[0].CurrentStockAtAlert, "alert keeps the original stock snapshot")
}

func TestApplyDeltaResolvesOnRecovery(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Cocoa Powder", "10", "5", "3.00")

	env.applyDelta(t, product.ID, "-6")

	_, outcome := env.applyDelta(t, product.ID, "3")
	if !outcome.Resolved {
		t.Fatal("expected the recovery to 7 to resolve the alert")
	}

	if active := env.activeAlerts(t, product); len(active) != 0 {
		t.Fatalf("expected no active alerts, got %d", len(active))
	}

	resolved := true
	alerts, err := env.alerts.FindAll(&resolved)
	if err != nil {
		t.Fatalf("list resolved alerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 resolved alert, got %d", len(alerts))
	}
	if alerts[0].ResolvedTimestamp == nil {
		t.Fatal("system resolution must stamp the resolution time")
	}
	if alerts[0].ResolvedByUserID != nil {
		t.Fatal("system resolution must not attribute a user")
	}
}

func TestApplyDeltaRecoveryToMinimumKeepsAlert(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Green Tea", "10", "5", "2.50")

	env.applyDelta(t, product.ID, "-6")

	// 4 -> 5 lands exactly on the minimum, which still counts as low.
	_, outcome := env.applyDelta(t, product.ID, "1")
	if outcome.Resolved {
		t.Fatal("recovery to exactly the minimum must not resolve")
	}
	if active := env.activeAlerts(t, product); len(active) != 1 {
		t.Fatalf("expected the alert to stay active, got %d", len(active))
	}
}

func TestApplyDeltaAllowsNegativeStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Vanilla Syrup", "10", "5", "6.00")

	updated, outcome := env.applyDelta(t, product.ID, "-15")
	assertDecimalEqual(t, dec(t, "-5"), updated.CurrentStock, "the ledger never clamps")
	if outcome.Created == nil {
		t.Fatal("expected an alert on the drop below the minimum")
	}
}

func TestApplyDeltaUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	err := env.db.Transaction(func(tx *gorm.DB) error {
		_, _, err := env.ledger.ApplyDelta(tx, uuid.New(), dec(t, "1"), "system")
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
