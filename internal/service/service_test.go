package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database per test, migrated with
// the full schema including the partial unique index on active alerts.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Supplier{}, &model.Product{},
		&model.StockAlert{}, &model.StockMovement{},
		&model.DailySalesSession{}, &model.SaleItem{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := repository.EnsureAlertIndexes(db); err != nil {
		t.Fatalf("create alert indexes: %v", err)
	}

	return db
}

type testEnv struct {
	db *gorm.DB

	products  repository.ProductRepository
	alerts    repository.StockAlertRepository
	movements repository.StockMovementRepository
	sessions  repository.SalesSessionRepository
	items     repository.SaleItemRepository

	ledger      *StockLedger
	movementSvc MovementService
	salesSvc    SalesService
	alertSvc    AlertService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	products := repository.NewProductRepo(db)
	alerts := repository.NewStockAlertRepo(db)
	movements := repository.NewStockMovementRepo(db)
	sessions := repository.NewSalesSessionRepo(db)
	items := repository.NewSaleItemRepo(db)

	engine := NewAlertEngine(alerts)
	ledger := NewStockLedger(products, engine)

	return &testEnv{
		db:          db,
		products:    products,
		alerts:      alerts,
		movements:   movements,
		sessions:    sessions,
		items:       items,
		ledger:      ledger,
		movementSvc: NewMovementService(movements, products, ledger, db, nil),
		salesSvc:    NewSalesService(sessions, items, products, ledger, db, nil),
		alertSvc:    NewAlertService(alerts, db),
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// createProduct seeds a product with the given stock, minimum level and
// supplier price.
func (e *testEnv) createProduct(t *testing.T, name, stock, minimum, supplierPrice string) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:              name,
		Unit:              model.UnitKilogram,
		CurrentStock:      dec(t, stock),
		MinimumStockLevel: dec(t, minimum),
		SupplierPrice:     dec(t, supplierPrice),
	}
	if err := e.products.Create(product); err != nil {
		t.Fatalf("create product %q: %v", name, err)
	}
	return product
}

func (e *testEnv) reloadProduct(t *testing.T, p *model.Product) *model.Product {
	t.Helper()
	fresh, err := e.products.FindByID(p.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return fresh
}

func (e *testEnv) activeAlerts(t *testing.T, p *model.Product) []model.StockAlert {
	t.Helper()
	unresolved := false
	alerts, err := e.alerts.FindAll(&unresolved)
	if err != nil {
		t.Fatalf("list alerts: %v", err)
	}
	var out []model.StockAlert
	for _, a := range alerts {
		if a.ProductID == p.ID {
			out = append(out, a)
		}
	}
	return out
}

func (e *testEnv) createSession(t *testing.T, day time.Time) *model.DailySalesSession {
	t.Helper()
	session, err := e.salesSvc.CreateSession(&CreateSessionRequest{SaleDate: day}, "system")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session
}

func assertDecimalEqual(t *testing.T, want, got decimal.Decimal, label string) {
	t.Helper()
	if !want.Equal(got) {
		t.Fatalf("%s: want %s, got %s", label, want, got)
	}
}

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error on %q, got nil", field)
	}
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error on %q, got %v", field, err)
	}
	if ve.Field != field {
		t.Fatalf("expected validation error on %q, got field %q (%s)", field, ve.Field, ve.Message)
	}
}
