package service

import (
	"errors"
	"time"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlertService is the alert-management surface: listing and explicit human
// resolution. Unlike the engine's system resolution, manual resolution
// attributes the acting user. This path does not go through the ledger.
type AlertService interface {
	GetAll(resolved *bool) ([]model.StockAlert, error)
	GetByID(id uuid.UUID) (*model.StockAlert, error)
	Resolve(id uuid.UUID, actorID uuid.UUID) (*model.StockAlert, error)
	Unresolve(id uuid.UUID) (*model.StockAlert, error)
}

type alertService struct {
	alertRepo repository.StockAlertRepository
	db        *gorm.DB
}

func NewAlertService(alertRepo repository.StockAlertRepository, db *gorm.DB) AlertService {
	return &alertService{alertRepo: alertRepo, db: db}
}

func (s *alertService) GetAll(resolved *bool) ([]model.StockAlert, error) {
	return s.alertRepo.FindAll(resolved)
}

func (s *alertService) GetByID(id uuid.UUID) (*model.StockAlert, error) {
	alert, err := s.alertRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return alert, nil
}

// Resolve marks the alert resolved by the acting user.
func (s *alertService) Resolve(id uuid.UUID, actorID uuid.UUID) (*model.StockAlert, error) {
	alert, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if alert.Resolved {
		return alert, nil
	}

	now := time.Now()
	alert.Resolved = true
	alert.ResolvedByUserID = &actorID
	alert.ResolvedTimestamp = &now
	alert.UpdatedBy = actorID.String()

	if err := s.alertRepo.Update(alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// Unresolve reopens a resolved alert, clearing the resolution fields. The
// partial unique index rejects this when the product already has another
// active alert; that surfaces as ErrActiveAlertExists.
func (s *alertService) Unresolve(id uuid.UUID) (*model.StockAlert, error) {
	alert, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !alert.Resolved {
		return alert, nil
	}

	active, err := s.alertRepo.HasActiveForProduct(s.db, alert.ProductID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrActiveAlertExists
	}

	alert.Resolved = false
	alert.ResolvedByUserID = nil
	alert.ResolvedByUser = nil
	alert.ResolvedTimestamp = nil

	if err := s.alertRepo.Update(alert); err != nil {
		return nil, err
	}
	return alert, nil
}
