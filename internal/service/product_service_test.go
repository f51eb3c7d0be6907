package service

import (
	"errors"
	"testing"

	"go-cafe-central/internal/model"
)

func newProductService(env *testEnv) ProductService {
	return NewProductService(env.products, env.items, env.db)
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	svc := newProductService(env)
	env.createProduct(t, "Espresso Beans", "10", "5", "4.00")

	err := svc.Create(&model.Product{
		Name: "Espresso Beans",
		Unit: model.UnitKilogram,
	}, "system")
	assertValidationError(t, err, "name")
}

func TestCreateProductRejectsNegativeStock(t *testing.T) {
	env := newTestEnv(t)
	svc := newProductService(env)

	err := svc.Create(&model.Product{
		Name:         "Oat Milk",
		Unit:         model.UnitLiter,
		CurrentStock: dec(t, "-1"),
	}, "system")
	assertValidationError(t, err, "current_stock")
}

func TestCreateProductAtMinimumOpensNoAlert(t *testing.T) {
	env := newTestEnv(t)
	svc := newProductService(env)

	product := &model.Product{
		Name:              "Whole Milk",
		Unit:              model.UnitLiter,
		CurrentStock:      dec(t, "3"),
		MinimumStockLevel: dec(t, "5"),
	}
	if err := svc.Create(product, "system"); err != nil {
		t.Fatalf("create product: %v", err)
	}

	// Alerts only open on an observed decrease, never at registration.
	if active := env.activeAlerts(t, product); len(active) != 0 {
		t.Fatalf("expected no alert at creation, got %d", len(active))
	}

	// The first decrease then opens one.
	env.applyDelta(t, product.ID, "-1")
	if active := env.activeAlerts(t, product); len(active) != 1 {
		t.Fatalf("expected an alert after the first decrease, got %d", len(active))
	}
}

func TestUpdateProductCannotChangeStock(t *testing.T) {
	env := newTestEnv(t)
	svc := newProductService(env)
	product := env.createProduct(t, "Cocoa Powder", "10", "5", "3.00")

	updated, err := svc.Update(product.ID, &model.Product{
		Name:              "Dutch Cocoa Powder",
		Unit:              model.UnitKilogram,
		CurrentStock:      dec(t, "99"),
		MinimumStockLevel: dec(t, "4"),
		SupplierPrice:     dec(t, "3.25"),
	}, "system")
	if err != nil {
		t.Fatalf("update product: %v", err)
	}

	if updated.Name != "Dutch Cocoa Powder" {
		t.Fatalf("name not updated, got %q", updated.Name)
	}
	assertDecimalEqual(t, dec(t, "4"), updated.MinimumStockLevel, "minimum level updated")
	assertDecimalEqual(t, dec(t, "10"), env.reloadProduct(t, product).CurrentStock, "stock only moves through the ledger")
}

func TestDeleteProductBlockedBySales(t *testing.T) {
	env := newTestEnv(t)
	svc := newProductService(env)
	product := env.createProduct(t, "Croissant", "10", "2", "1.50")
	session := env.createSession(t, testSaleDate)

	item, err := env.salesSvc.UpsertItem(session.ID, &UpsertSaleItemRequest{
		ProductID:    product.ID,
		QuantitySold: dec(t, "2"),
		PriceAtSale:  dec(t, "4.00"),
	}, "system", "System")
	if err != nil {
		t.Fatalf("upsert item: %v", err)
	}

	if err := svc.Delete(product.ID, "system"); !errors.Is(err, ErrProductHasSales) {
		t.Fatalf("expected ErrProductHasSales, got %v", err)
	}

	if err := env.salesSvc.DeleteItem(item.ID, "system", "System"); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if err := svc.Delete(product.ID, "system"); err != nil {
		t.Fatalf("delete after sales removed: %v", err)
	}
	if _, err := svc.GetByID(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected the product to be gone, got %v", err)
	}
}
