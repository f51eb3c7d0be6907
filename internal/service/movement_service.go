package service

import (
	"errors"
	"fmt"
	"log"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"
	"go-cafe-central/internal/ws"
	"go-cafe-central/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecordMovementRequest is the input for a manual stock adjustment.
type RecordMovementRequest struct {
	ProductID   uuid.UUID          `json:"product_id" validate:"uuid_required"`
	Type        model.MovementType `json:"type" validate:"required,oneof=IN OUT"`
	Quantity    decimal.Decimal    `json:"quantity"`
	Description string             `json:"description"`
}

type MovementService interface {
	Record(req *RecordMovementRequest, actorID, actorName string) (*model.StockMovement, error)
	Delete(id uuid.UUID, actorID, actorName string) error
	GetAll() ([]model.StockMovement, error)
	GetByID(id uuid.UUID) (*model.StockMovement, error)
	GetByProduct(productID uuid.UUID) ([]model.StockMovement, error)
}

type movementService struct {
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
	ledger       *StockLedger
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewMovementService(mRepo repository.StockMovementRepository, pRepo repository.ProductRepository, ledger *StockLedger, db *gorm.DB, hub *ws.Hub) MovementService {
	return &movementService{
		movementRepo: mRepo,
		productRepo:  pRepo,
		ledger:       ledger,
		db:           db,
		wsHub:        hub,
	}
}

// Record creates the audit row and applies the delta through the ledger in
// one transaction. An OUT larger than the available stock is clamped so the
// stock floors at zero; the operation still succeeds and the clamped
// quantity is what gets recorded, keeping delete-reversal exact.
func (s *movementService) Record(req *RecordMovementRequest, actorID, actorName string) (*model.StockMovement, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, validationErrorf(first.FailedField, "failed on '%s' validation", first.Tag)
	}
	if req.Quantity.Sign() <= 0 {
		return nil, validationErrorf("quantity", "must be greater than zero")
	}

	var movement *model.StockMovement
	var product *model.Product
	var outcome AlertOutcome

	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.productRepo.LockByID(tx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		applied := req.Quantity
		description := req.Description
		if req.Type == model.MovementOut && applied.GreaterThan(locked.CurrentStock) {
			log.Printf("WARN: OUT movement of %s clamped to %s for product %q (stock would go negative)",
				applied, locked.CurrentStock, locked.Name)
			description = fmt.Sprintf("%s (requested %s, clamped to available stock)", req.Description, applied)
			applied = locked.CurrentStock
		}

		movement = &model.StockMovement{
			ProductID:   locked.ID,
			Type:        req.Type,
			Quantity:    applied,
			Description: description,
		}
		movement.CreatedBy = actorID
		movement.UpdatedBy = actorID
		if actorUUID, err := uuid.Parse(actorID); err == nil {
			movement.RegisteredByID = &actorUUID
		}

		if err := s.movementRepo.Create(tx, movement); err != nil {
			return err
		}

		product, outcome, err = s.ledger.ApplyDelta(tx, locked.ID, movement.SignedDelta(), actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	broadcastStockChange(s.wsHub, "movement_recorded", product, outcome, actorName)
	return movement, nil
}

// Delete undoes a movement by applying the inverse delta through the ledger
// and removing the audit row. The original record is trusted; the reversal
// is not re-validated against current stock.
func (s *movementService) Delete(id uuid.UUID, actorID, actorName string) error {
	var product *model.Product
	var outcome AlertOutcome

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var movement model.StockMovement
		if err := tx.First(&movement, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var err error
		product, outcome, err = s.ledger.ApplyDelta(tx, movement.ProductID, movement.SignedDelta().Neg(), actorID)
		if err != nil {
			return err
		}

		return s.movementRepo.Delete(tx, movement.ID)
	})
	if err != nil {
		return err
	}

	broadcastStockChange(s.wsHub, "movement_deleted", product, outcome, actorName)
	return nil
}

func (s *movementService) GetAll() ([]model.StockMovement, error) {
	return s.movementRepo.FindAll()
}

// GetByProduct returns the movement history of one product, newest first.
func (s *movementService) GetByProduct(productID uuid.UUID) ([]model.StockMovement, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.movementRepo.FindByProduct(productID)
}

func (s *movementService) GetByID(id uuid.UUID) (*model.StockMovement, error) {
	movement, err := s.movementRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return movement, nil
}
