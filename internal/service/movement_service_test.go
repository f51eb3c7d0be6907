package service

import (
	"errors"
	"strings"
	"testing"

	"go-cafe-central/internal/model"

	"github.com/google/uuid"
)

func TestRecordMovementRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Espresso Beans", "10", "5", "4.00")

	for _, qty := range []string{"0", "-2"} {
		_, err := env.movementSvc.Record(&RecordMovementRequest{
			ProductID: product.ID,
			Type:      model.MovementIn,
			Quantity:  dec(t, qty),
		}, "system", "System")
		assertValidationError(t, err, "quantity")
	}

	fresh := env.reloadProduct(t, product)
	assertDecimalEqual(t, dec(t, "10"), fresh.CurrentStock, "stock untouched by rejected movements")
}

func TestRecordMovementRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Oat Milk", "10", "5", "2.00")

	_, err := env.movementSvc.Record(&RecordMovementRequest{
		ProductID: product.ID,
		Type:      model.MovementType("SIDEWAYS"),
		Quantity:  dec(t, "1"),
	}, "system", "System")
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestRecordMovementUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.movementSvc.Record(&RecordMovementRequest{
		ProductID: uuid.New(),
		Type:      model.MovementIn,
		Quantity:  dec(t, "1"),
	}, "system", "System")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordInboundMovement(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Whole Milk", "10", "5", "1.50")

	movement, err := env.movementSvc.Record(&RecordMovementRequest{
		ProductID:   product.ID,
		Type:        model.MovementIn,
		Quantity:    dec(t, "4"),
		Description: "weekly delivery",
	}, "system", "System")
	if err != nil {
		t.Fatalf("record inbound: %v", err)
	}

	assertDecimalEqual(t, dec(t, "4"), movement.Quantity, "recorded quantity")
	fresh := env.reloadProduct(t, product)
	assertDecimalEqual(t, dec(t, "14"), fresh.CurrentStock, "stock after inbound")
}

func TestRecordOutboundMovementTriggersAlert(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Cocoa Powder", "10", "5", "3.00")

	_, err := env.movementSvc.Record(&RecordMovementRequest{
		ProductID: product.ID,
		Type:      model.MovementOut,
		Quantity:  dec(t, "6"),
	}, "system", "System")
	if err != nil {
		t.Fatalf("record outbound: %v", err)
	}

	fresh := env.reloadProduct(t, product)
	assertDecimalEqual(t, dec(t, "4"), fresh.CurrentStock, "stock after outbound")
	if active := env.activeAlerts(t, product); len(active) != 1 {
		t.Fatalf("expected 1 active alert, got %d", len(active))
	}
}

func TestOutboundMovementClampsAtZero(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Vanilla Syrup", "3", "1", "6.00")

	movement, err := env.movementSvc.Record(&RecordMovementRequest{
		ProductID:   product.ID,
		Type:        model.MovementOut,
		Quantity:    dec(t, "10"),
		Description: "spoilage",
	}, "system", "System")
	if err != nil {
		t.Fatalf("clamped outbound must still succeed: %v", err)
	}

	assertDecimalEqual(t, dec(t, "3"), movement.Quantity, "movement stores the applied quantity")
	if !strings.Contains(movement.Description, "requested 10") {
		t.Fatalf("description should note the clamp, got %q", movement.Description)
	}

	fresh := env.reloadProduct(t, product)
	assertDecimalEqual(t, dec(t, "0"), fresh.CurrentStock, "stock floors at zero")
}

func TestDeleteMovementRestoresStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Green Tea", "10", "5", "2.50")

	movement, err := env.movementSvc.Record(&RecordMovementRequest{
		ProductID: product.ID,
		Type:      model.MovementOut,
		Quantity:  dec(t, "6"),
	}, "system", "System")
	if err != nil {
		t.Fatalf("record outbound: %v", err)
	}
	if active := env.activeAlerts(t, product); len(active) != 1 {
		t.Fatalf("expected the outbound to open an alert, got %d", len(active))
	}

	if err := env.movementSvc.Delete(movement.ID, "system", "System"); err != nil {
		t.Fatalf("delete movement: %v", err)
	}

	fresh := env.reloadProduct(t, product)
	assertDecimalEqual(t, dec(t, "10"), fresh.CurrentStock, "deletion reverses the exact quantity")
	if active := env.activeAlerts(t, product); len(active) != 0 {
		t.Fatalf("reversal above the minimum should resolve the alert, got %d active", len(active))
	}

	if _, err := env.movementSvc.GetByID(movement.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected the movement to be gone, got %v", err)
	}
}

func TestDeleteClampedMovementIsExactInverse(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Caramel Sauce", "3", "1", "5.00")

	movement, err := env.movementSvc.Record(&RecordMovementRequest{
		ProductID: product.ID,
		Type:      model.MovementOut,
		Quantity:  dec(t, "10"),
	}, "system", "System")
	if err != nil {
		t.Fatalf("record clamped outbound: %v", err)
	}

	if err := env.movementSvc.Delete(movement.ID, "system", "System"); err != nil {
		t.Fatalf("delete movement: %v", err)
	}

	fresh := env.reloadProduct(t, product)
	assertDecimalEqual(t, dec(t, "3"), fresh.CurrentStock, "reversal restores the pre-movement stock")
}

func TestDeleteMovementNotFound(t *testing.T) {
	env := newTestEnv(t)

	if err := env.movementSvc.Delete(uuid.New(), "system", "System"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Full lifecycle of one product under mixed movements: the alert opens on the
// first threshold cross, resolves on recovery, and reopens on a later clamped
// withdrawal.
func TestLowStockLifecycle(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "House Blend Beans", "10", "5", "8.00")

	record := func(typ model.MovementType, qty string) {
		t.Helper()
		_, err := env.movementSvc.Record(&RecordMovementRequest{
			ProductID: product.ID,
			Type:      typ,
			Quantity:  dec(t, qty),
		}, "system", "System")
		if err != nil {
			t.Fatalf("record %s %s: %v", typ, qty, err)
		}
	}

	record(model.MovementOut, "6")
	fresh := env.reloadProduct(t, product)
	assertDecimalEqual(t, dec(t, "4"), fresh.CurrentStock, "stock after first withdrawal")
	active := env.activeAlerts(t, product)
	if len(active) != 1 {
		t.Fatalf("expected 1 active alert, got %d", len(active))
	}
	assertDecimalEqual(t, dec(t, "4"), active[0].CurrentStockAtAlert, "alert snapshot")

	record(model.MovementIn, "3")
	fresh = env.reloadProduct(t, product)
	assertDecimalEqual(t, dec(t, "7"), fresh.CurrentStock, "stock after restock")
	if active := env.activeAlerts(t, product); len(active) != 0 {
		t.Fatalf("restock above the minimum should resolve, got %d active", len(active))
	}

	record(model.MovementOut, "20")
	fresh = env.reloadProduct(t, product)
	assertDecimalEqual(t, dec(t, "0"), fresh.CurrentStock, "oversized withdrawal clamps to zero")
	active = env.activeAlerts(t, product)
	if len(active) != 1 {
		t.Fatalf("expected a fresh active alert, got %d", len(active))
	}
	assertDecimalEqual(t, dec(t, "0"), active[0].CurrentStockAtAlert, "new alert snapshot")

	all, err := env.alerts.FindAll(nil)
	if err != nil {
		t.Fatalf("list alerts: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 alerts over the lifecycle, got %d", len(all))
	}
}
