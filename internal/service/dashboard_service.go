package service

import (
	"time"

	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardStats is the overview card data for the landing screen.
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	ActiveAlerts   int64           `json:"active_alerts"`
	TotalSuppliers int64           `json:"total_suppliers"`
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
}

type DashboardService interface {
	GetStockMovement(days int) ([]repository.MovementAggregate, error)
	GetDashboardStats() (*DashboardStats, error)
}

type dashboardService struct {
	movementRepo repository.StockMovementRepository
	alertRepo    repository.StockAlertRepository
	sessionRepo  repository.SalesSessionRepository
	itemRepo     repository.SaleItemRepository
	db           *gorm.DB
}

func NewDashboardService(movementRepo repository.StockMovementRepository, alertRepo repository.StockAlertRepository, sessionRepo repository.SalesSessionRepository, itemRepo repository.SaleItemRepository, db *gorm.DB) DashboardService {
	return &dashboardService{
		movementRepo: movementRepo,
		alertRepo:    alertRepo,
		sessionRepo:  sessionRepo,
		itemRepo:     itemRepo,
		db:           db,
	}
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.MovementAggregate, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.movementRepo.GetDailyAggregates(startDate, endDate)
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{TodayRevenue: decimal.Zero}

	if err := s.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Supplier{}).Count(&stats.TotalSuppliers).Error; err != nil {
		return nil, err
	}

	active, err := s.alertRepo.CountActive()
	if err != nil {
		return nil, err
	}
	stats.ActiveAlerts = active

	// Today's revenue is the derived sum over today's session, if one exists.
	if session, err := s.sessionRepo.FindByDate(time.Now()); err == nil {
		items, err := s.itemRepo.FindBySession(session.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			stats.TodayRevenue = stats.TodayRevenue.Add(item.Subtotal)
		}
	}

	return stats, nil
}
