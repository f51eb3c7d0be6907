package service

import (
	"errors"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"
	"go-cafe-central/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierService interface {
	Create(req *model.Supplier, actorID string) error
	Update(id uuid.UUID, req *model.Supplier, actorID string) (*model.Supplier, error)
	Delete(id uuid.UUID) error
	GetAll() ([]model.Supplier, error)
	GetByID(id uuid.UUID) (*model.Supplier, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: repo}
}

func (s *supplierService) Create(req *model.Supplier, actorID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return validationErrorf(first.FailedField, "failed on '%s' validation", first.Tag)
	}

	existing, _ := s.supplierRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return validationErrorf("name", "a supplier with this name already exists")
	}

	req.CreatedBy = actorID
	req.UpdatedBy = actorID
	return s.supplierRepo.Create(req)
}

func (s *supplierService) Update(id uuid.UUID, req *model.Supplier, actorID string) (*model.Supplier, error) {
	existing, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing.Name = req.Name
	existing.ContactPerson = req.ContactPerson
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address
	existing.DeliveryDays = req.DeliveryDays
	existing.UpdatedBy = actorID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		first := errs[0]
		return nil, validationErrorf(first.FailedField, "failed on '%s' validation", first.Tag)
	}

	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *supplierService) Delete(id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.supplierRepo.Delete(id)
}

func (s *supplierService) GetAll() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *supplierService) GetByID(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return supplier, nil
}
