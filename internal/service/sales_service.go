package service

import (
	"errors"
	"time"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"
	"go-cafe-central/internal/ws"
	"go-cafe-central/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateSessionRequest opens the sales session for one calendar date.
type CreateSessionRequest struct {
	SaleDate time.Time `json:"sale_date" validate:"required"`
	Notes    string    `json:"notes"`
}

// UpsertSaleItemRequest records or edits one product line in a session.
// Subtotal is never accepted from the caller.
type UpsertSaleItemRequest struct {
	ProductID    uuid.UUID       `json:"product_id" validate:"uuid_required"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	PriceAtSale  decimal.Decimal `json:"price_at_sale"`
}

// SessionResponse augments a session with its derived revenue.
type SessionResponse struct {
	model.DailySalesSession
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type SalesService interface {
	CreateSession(req *CreateSessionRequest, actorID string) (*model.DailySalesSession, error)
	GetSession(id uuid.UUID) (*SessionResponse, error)
	GetAllSessions() ([]model.DailySalesSession, error)
	UpdateSessionNotes(id uuid.UUID, notes, actorID string) (*model.DailySalesSession, error)
	DeleteSession(id uuid.UUID, actorID, actorName string) error
	UpsertItem(sessionID uuid.UUID, req *UpsertSaleItemRequest, actorID, actorName string) (*model.SaleItem, error)
	DeleteItem(itemID uuid.UUID, actorID, actorName string) error
}

type salesService struct {
	sessionRepo repository.SalesSessionRepository
	itemRepo    repository.SaleItemRepository
	productRepo repository.ProductRepository
	ledger      *StockLedger
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewSalesService(sessionRepo repository.SalesSessionRepository, itemRepo repository.SaleItemRepository, productRepo repository.ProductRepository, ledger *StockLedger, db *gorm.DB, hub *ws.Hub) SalesService {
	return &salesService{
		sessionRepo: sessionRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		ledger:      ledger,
		db:          db,
		wsHub:       hub,
	}
}

func (s *salesService) CreateSession(req *CreateSessionRequest, actorID string) (*model.DailySalesSession, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, validationErrorf(first.FailedField, "failed on '%s' validation", first.Tag)
	}

	if existing, err := s.sessionRepo.FindByDate(req.SaleDate); err == nil && existing != nil {
		return nil, validationErrorf("sale_date", "a sales session for this date already exists")
	}

	session := &model.DailySalesSession{
		SaleDate: req.SaleDate,
		Notes:    req.Notes,
	}
	session.CreatedBy = actorID
	session.UpdatedBy = actorID
	if actorUUID, err := uuid.Parse(actorID); err == nil {
		session.RegisteredByID = &actorUUID
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *salesService) GetSession(id uuid.UUID) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &SessionResponse{
		DailySalesSession: *session,
		TotalRevenue:      session.TotalRevenue(),
	}, nil
}

func (s *salesService) GetAllSessions() ([]model.DailySalesSession, error) {
	return s.sessionRepo.FindAll()
}

func (s *salesService) UpdateSessionNotes(id uuid.UUID, notes, actorID string) (*model.DailySalesSession, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	session.Notes = notes
	session.UpdatedBy = actorID
	if err := s.sessionRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes the session and its items, returning the sold stock
// of every line to the ledger first so alerts stay consistent. An explicit
// service loop rather than a bare DB cascade, which would skip the ledger.
func (s *salesService) DeleteSession(id uuid.UUID, actorID, actorName string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		session, err := s.sessionRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		for i := range session.Items {
			item := &session.Items[i]
			if _, _, err := s.ledger.ApplyDelta(tx, item.ProductID, item.QuantitySold, actorID); err != nil {
				return err
			}
			if err := s.itemRepo.Delete(tx, item.ID); err != nil {
				return err
			}
		}

		return s.sessionRepo.Delete(tx, session.ID)
	})
}

// UpsertItem creates or edits the (session, product) line. On create the
// stock delta is the full quantity sold; on edit it is the net change
// against the previously recorded quantity, so repeated edits never
// double-count.
func (s *salesService) UpsertItem(sessionID uuid.UUID, req *UpsertSaleItemRequest, actorID, actorName string) (*model.SaleItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, validationErrorf(first.FailedField, "failed on '%s' validation", first.Tag)
	}
	if req.QuantitySold.Sign() <= 0 {
		return nil, validationErrorf("quantity_sold", "must be greater than zero")
	}
	if req.PriceAtSale.Sign() <= 0 {
		return nil, validationErrorf("price_at_sale", "must be greater than zero")
	}

	var item *model.SaleItem
	var product *model.Product
	var outcome AlertOutcome

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var session model.DailySalesSession
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		locked, err := s.productRepo.LockByID(tx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Business rule: cannot sell below the supplier purchase price.
		if req.PriceAtSale.LessThan(locked.SupplierPrice) {
			return validationErrorf("price_at_sale",
				"cannot be below the supplier price of %s", locked.SupplierPrice)
		}

		previousQty := decimal.Zero
		existing, err := s.itemRepo.FindBySessionAndProduct(tx, session.ID, locked.ID)
		switch {
		case err == nil:
			previousQty = existing.QuantitySold
			item = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = &model.SaleItem{
				SessionID: session.ID,
				ProductID: locked.ID,
			}
			item.CreatedBy = actorID
		default:
			return err
		}

		// Only the additional quantity has to be available.
		additional := req.QuantitySold.Sub(previousQty)
		if additional.GreaterThan(locked.CurrentStock) {
			return validationErrorf("quantity_sold",
				"insufficient stock: only %s %s available", locked.CurrentStock, locked.Unit)
		}

		item.QuantitySold = req.QuantitySold
		item.PriceAtSale = req.PriceAtSale
		item.ComputeSubtotal()
		item.UpdatedBy = actorID

		if err := s.itemRepo.Save(tx, item); err != nil {
			return err
		}

		product, outcome, err = s.ledger.ApplyDelta(tx, locked.ID, additional.Neg(), actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	broadcastStockChange(s.wsHub, "sale_item_recorded", product, outcome, actorName)
	return item, nil
}

// DeleteItem reverses the line's full quantity through the ledger, then
// removes it.
func (s *salesService) DeleteItem(itemID uuid.UUID, actorID, actorName string) error {
	var product *model.Product
	var outcome AlertOutcome

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.SaleItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var err error
		product, outcome, err = s.ledger.ApplyDelta(tx, item.ProductID, item.QuantitySold, actorID)
		if err != nil {
			return err
		}

		return s.itemRepo.Delete(tx, item.ID)
	})
	if err != nil {
		return err
	}

	broadcastStockChange(s.wsHub, "sale_item_deleted", product, outcome, actorName)
	return nil
}
