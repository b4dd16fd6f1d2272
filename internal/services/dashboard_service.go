// internal/services/dashboard_service.go
package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/drivelane/dealer-backend/internal/models"
)

// DashboardService computes the tenant admin dashboard counters.
type DashboardService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalClients        int64   `json:"total_clients"`
	NewClientsThisMonth int64   `json:"new_clients_this_month"`
	TotalVehicles       int64   `json:"total_vehicles"`
	AvailableVehicles   int64   `json:"available_vehicles"`
	SoldThisMonth       int64   `json:"sold_this_month"`
	ActiveStaff         int64   `json:"active_staff"`
	PendingFIRequests   int64   `json:"pending_fi_requests"`
	FIRequestsThisMonth int64   `json:"fi_requests_this_month"`
	ClientGrowth        float64 `json:"client_growth"`
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

func (s *DashboardService) GetStats(tenantID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	s.db.Model(&models.Client{}).Where("tenant_id = ?", tenantID).Count(&stats.TotalClients)
	s.db.Model(&models.Client{}).Where("tenant_id = ? AND created_at >= ?", tenantID, monthStart).
		Count(&stats.NewClientsThisMonth)

	s.db.Model(&models.Vehicle{}).Where("tenant_id = ?", tenantID).Count(&stats.TotalVehicles)
	s.db.Model(&models.Vehicle{}).Where("tenant_id = ? AND status = ?", tenantID, models.VehicleStatusAvailable).
		Count(&stats.AvailableVehicles)
	s.db.Model(&models.Vehicle{}).Where("tenant_id = ? AND status = ? AND updated_at >= ?",
		tenantID, models.VehicleStatusSold, monthStart).Count(&stats.SoldThisMonth)

	s.db.Model(&models.User{}).Where("tenant_id = ? AND status = ?", tenantID, models.UserStatusActive).
		Count(&stats.ActiveStaff)

	s.db.Model(&models.FIRequest{}).
		Where("tenant_id = ? AND status IN ?", tenantID, []models.RequestStatus{
			models.RequestStatusSubmitted,
			models.RequestStatusUnderReview,
			models.RequestStatusPendingInfo,
		}).Count(&stats.PendingFIRequests)
	s.db.Model(&models.FIRequest{}).Where("tenant_id = ? AND created_at >= ?", tenantID, monthStart).
		Count(&stats.FIRequestsThisMonth)

	var lastMonthClients int64
	s.db.Model(&models.Client{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, lastMonthStart, monthStart).
		Count(&lastMonthClients)
	if lastMonthClients > 0 {
		stats.ClientGrowth = float64(stats.NewClientsThisMonth-lastMonthClients) / float64(lastMonthClients) * 100
	}

	return stats, nil
}
