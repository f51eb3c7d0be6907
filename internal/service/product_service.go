package service

import (
	"errors"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"
	"go-cafe-central/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(req *model.Product, actorID string) error
	Update(id uuid.UUID, req *model.Product, actorID string) (*model.Product, error)
	Delete(id uuid.UUID, actorID string) error
	GetAll() ([]model.Product, error)
	GetByID(id uuid.UUID) (*model.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	saleItemRepo repository.SaleItemRepository
	db           *gorm.DB
}

func NewProductService(pRepo repository.ProductRepository, siRepo repository.SaleItemRepository, db *gorm.DB) ProductService {
	return &productService{
		productRepo:  pRepo,
		saleItemRepo: siRepo,
		db:           db,
	}
}

// Create registers a new product. A product created already at or below its
// minimum level does not receive an alert here: alert creation is gated on
// an observed stock decrease through the ledger.
func (s *productService) Create(req *model.Product, actorID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return validationErrorf(first.FailedField, "failed on '%s' validation", first.Tag)
	}
	if req.CurrentStock.Sign() < 0 {
		return validationErrorf("current_stock", "cannot be negative")
	}

	existing, _ := s.productRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return validationErrorf("name", "a product with this name already exists")
	}

	req.CreatedBy = actorID
	req.UpdatedBy = actorID
	return s.productRepo.Create(req)
}

// Update edits product identity and thresholds. CurrentStock is deliberately
// not updatable here: stock only moves through the ledger, via movements and
// sale items.
func (s *productService) Update(id uuid.UUID, req *model.Product, actorID string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != existing.Name {
		if dup, _ := s.productRepo.FindByName(req.Name); dup != nil && dup.ID != uuid.Nil {
			return nil, validationErrorf("name", "a product with this name already exists")
		}
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Unit = req.Unit
	existing.MinimumStockLevel = req.MinimumStockLevel
	existing.SupplierPrice = req.SupplierPrice
	existing.SupplierID = req.SupplierID
	existing.UpdatedBy = actorID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		first := errs[0]
		return nil, validationErrorf(first.FailedField, "failed on '%s' validation", first.Tag)
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a product unless sale records still reference it.
func (s *productService) Delete(id uuid.UUID, actorID string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	count, err := s.saleItemRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProductHasSales
	}

	return s.productRepo.Delete(s.db, id)
}

func (s *productService) GetAll() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}
