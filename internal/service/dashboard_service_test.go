package service

import (
	"testing"
	"time"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"

	"github.com/shopspring/decimal"
)

func newDashboardService(env *testEnv) DashboardService {
	return NewDashboardService(env.movements, env.alerts, env.sessions, env.items, env.db)
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	svc := newDashboardService(env)

	beans := env.createProduct(t, "Espresso Beans", "10", "5", "4.00")
	env.createProduct(t, "Oat Milk", "10", "2", "2.00")
	if err := env.db.Create(&model.Supplier{Name: "Beanfield Roasters"}).Error; err != nil {
		t.Fatalf("create supplier: %v", err)
	}

	env.applyDelta(t, beans.ID, "-6")

	// Today's session with one sold line feeds today's revenue.
	session := env.createSession(t, time.Now())
	if _, err := env.salesSvc.UpsertItem(session.ID, &UpsertSaleItemRequest{
		ProductID:    beans.ID,
		QuantitySold: dec(t, "2"),
		PriceAtSale:  dec(t, "5.00"),
	}, "system", "System"); err != nil {
		t.Fatalf("upsert item: %v", err)
	}

	stats, err := svc.GetDashboardStats()
	if err != nil {
		t.Fatalf("dashboard stats: %v", err)
	}
	if stats.TotalProducts != 2 {
		t.Fatalf("total products: want 2, got %d", stats.TotalProducts)
	}
	if stats.TotalSuppliers != 1 {
		t.Fatalf("total suppliers: want 1, got %d", stats.TotalSuppliers)
	}
	if stats.ActiveAlerts != 1 {
		t.Fatalf("active alerts: want 1, got %d", stats.ActiveAlerts)
	}
	assertDecimalEqual(t, dec(t, "10.00"), stats.TodayRevenue, "today's revenue")
}

func TestStockMovementAggregates(t *testing.T) {
	env := newTestEnv(t)
	svc := newDashboardService(env)
	product := env.createProduct(t, "Whole Milk", "10", "2", "1.50")

	for _, m := range []struct {
		typ model.MovementType
		qty string
	}{
		{model.MovementIn, "4"},
		{model.MovementOut, "2"},
		{model.MovementOut, "1"},
	} {
		if _, err := env.movementSvc.Record(&RecordMovementRequest{
			ProductID: product.ID,
			Type:      m.typ,
			Quantity:  dec(t, m.qty),
		}, "system", "System"); err != nil {
			t.Fatalf("record %s %s: %v", m.typ, m.qty, err)
		}
	}

	aggregates, err := svc.GetStockMovement(7)
	if err != nil {
		t.Fatalf("stock movement aggregates: %v", err)
	}
	if len(aggregates) != 1 {
		t.Fatalf("expected 1 day of aggregates, got %d", len(aggregates))
	}
	assertAggregate(t, aggregates[0], "4", "3")
}

func assertAggregate(t *testing.T, got repository.MovementAggregate, inbound, outbound string) {
	t.Helper()
	gotIn, err := decimal.NewFromString(got.Inbound)
	if err != nil {
		t.Fatalf("parse inbound %q: %v", got.Inbound, err)
	}
	gotOut, err := decimal.NewFromString(got.Outbound)
	if err != nil {
		t.Fatalf("parse outbound %q: %v", got.Outbound, err)
	}
	assertDecimalEqual(t, dec(t, inbound), gotIn, "inbound total")
	assertDecimalEqual(t, dec(t, outbound), gotOut, "outbound total")
}
