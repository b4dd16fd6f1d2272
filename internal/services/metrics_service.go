// internal/services/metrics_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/drivelane/dealer-backend/internal/models"
)

// MetricsService computes read-only statistics over a tenant's F&I
// requests. Everything is reduced in memory over the fetched set; tenant
// volumes are small enough that nothing here needs to stream.
type MetricsService struct {
	db *gorm.DB
}

type SellerMetrics struct {
	SellerName   string  `json:"seller_name"`
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	Rejected     int     `json:"rejected"`
	ApprovalRate float64 `json:"approval_rate"`
}

type CreditRangeMetrics struct {
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	Rejected     int     `json:"rejected"`
	ApprovalRate float64 `json:"approval_rate"`
}

type FIMetrics struct {
	StartDate             time.Time                                     `json:"start_date"`
	EndDate               time.Time                                     `json:"end_date"`
	TotalRequests         int                                           `json:"total_requests"`
	ApprovalRate          float64                                       `json:"approval_rate"`
	AverageProcessingTime float64                                       `json:"average_processing_time"` // hours
	ByStatus              map[models.RequestStatus]int                  `json:"by_status"`
	BySeller              map[string]SellerMetrics                      `json:"by_seller"`
	ByCreditRange         map[models.CreditRange]CreditRangeMetrics     `json:"by_credit_range"`
	AverageIncome         float64                                       `json:"average_income"`
	AverageCreditScore    float64                                       `json:"average_credit_score"`
	AverageDownPayment    float64                                       `json:"average_down_payment"`
	AverageLoanAmount     float64                                       `json:"average_loan_amount"`
}

func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db}
}

// FIRequestMetrics aggregates the tenant's requests created in
// [start, end]. Zero times default the range to the last 30 days.
func (s *MetricsService) FIRequestMetrics(tenantID uuid.UUID, start, end time.Time) (*FIMetrics, error) {
	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -30)
	}

	var requests []models.FIRequest
	if err := s.db.Where("tenant_id = ? AND created_at >= ? AND created_at <= ?",
		tenantID, start, end).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch requests: %w", err)
	}

	// One client lookup per request. Fine at dealership volumes; batching
	// would be the first thing to revisit if that changes.
	clients := make(map[uuid.UUID]*models.Client)
	for i := range requests {
		if _, seen := clients[requests[i].ClientID]; seen {
			continue
		}
		var client models.Client
		if err := s.db.First(&client, requests[i].ClientID).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch client %s: %w", requests[i].ClientID, err)
		}
		clients[requests[i].ClientID] = &client
	}

	sellerNames := s.resolveSellerNames(requests)

	metrics := ComputeFIMetrics(requests, clients, sellerNames)
	metrics.StartDate = start
	metrics.EndDate = end
	return metrics, nil
}

// resolveSellerNames is best-effort: a failed lookup falls back to the
// raw id so the report never fails over a missing user row.
func (s *MetricsService) resolveSellerNames(requests []models.FIRequest) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	for i := range requests {
		id := requests[i].CreatedBy
		if _, seen := names[id]; seen {
			continue
		}
		var user models.User
		if err := s.db.Select("username", "email").First(&user, id).Error; err != nil {
			logrus.WithError(err).WithField("user_id", id).
				Warn("Seller name lookup failed, using raw id")
			names[id] = id.String()
			continue
		}
		names[id] = user.DisplayName()
	}
	return names
}

// ComputeFIMetrics reduces a fetched request set. Pure; the caller owns
// all store round-trips.
func ComputeFIMetrics(requests []models.FIRequest, clients map[uuid.UUID]*models.Client, sellerNames map[uuid.UUID]string) *FIMetrics {
	metrics := &FIMetrics{
		TotalRequests: len(requests),
		ByStatus:      make(map[models.RequestStatus]int, len(models.AllRequestStatuses)),
		BySeller:      make(map[string]SellerMetrics),
		ByCreditRange: make(map[models.CreditRange]CreditRangeMetrics, len(models.AllCreditRanges)),
	}

	// Zero-fill so every status and bucket is always present.
	for _, status := range models.AllRequestStatuses {
		metrics.ByStatus[status] = 0
	}
	for _, bucket := range models.AllCreditRanges {
		metrics.ByCreditRange[bucket] = CreditRangeMetrics{}
	}

	var (
		approved        int
		processingHours float64
		processedCount  int
		incomeSum       float64
		incomeCount     int
		scoreSum        int
		scoreCount      int
		downPaymentSum  float64
		loanAmountSum   float64
		financedCount   int
	)

	for i := range requests {
		req := &requests[i]

		metrics.ByStatus[req.Status]++
		if req.Status == models.RequestStatusApproved {
			approved++
		}

		// Processing time needs both timestamps.
		if req.SubmittedAt != nil && req.ReviewedAt != nil {
			processingHours += req.ReviewedAt.Sub(*req.SubmittedAt).Hours()
			processedCount++
		}

		// Per-seller breakdown, keyed by resolved display name.
		sellerKey := sellerNames[req.CreatedBy]
		if sellerKey == "" {
			sellerKey = req.CreatedBy.String()
		}
		seller := metrics.BySeller[sellerKey]
		seller.SellerName = sellerKey
		seller.Total++
		if req.Status == models.RequestStatusApproved {
			seller.Approved++
		}
		if req.Status == models.RequestStatusRejected {
			seller.Rejected++
		}
		metrics.BySeller[sellerKey] = seller

		// Per-credit-range breakdown over the fixed buckets.
		if bucket := req.CreditInfo.CreditRange; bucket.IsValid() {
			br := metrics.ByCreditRange[bucket]
			br.Total++
			if req.Status == models.RequestStatusApproved {
				br.Approved++
			}
			if req.Status == models.RequestStatusRejected {
				br.Rejected++
			}
			metrics.ByCreditRange[bucket] = br
		}

		// Averages only count present, positive values.
		if req.Employment.MonthlyIncome != nil && req.Employment.MonthlyIncome.IsPositive() {
			incomeSum += req.Employment.MonthlyIncome.InexactFloat64()
			incomeCount++
		}
		if req.CreditInfo.CreditScore != nil && *req.CreditInfo.CreditScore > 0 {
			scoreSum += *req.CreditInfo.CreditScore
			scoreCount++
		}

		// Financing averages require the client join and both fields.
		if client := clients[req.ClientID]; client != nil {
			if client.VehiclePrice != nil && client.DownPayment != nil {
				downPaymentSum += client.DownPayment.InexactFloat64()
				loanAmountSum += client.LoanAmount().InexactFloat64()
				financedCount++
			}
		}
	}

	if metrics.TotalRequests > 0 {
		metrics.ApprovalRate = float64(approved) / float64(metrics.TotalRequests) * 100
	}
	if processedCount > 0 {
		metrics.AverageProcessingTime = processingHours / float64(processedCount)
	}
	if incomeCount > 0 {
		metrics.AverageIncome = incomeSum / float64(incomeCount)
	}
	if scoreCount > 0 {
		metrics.AverageCreditScore = float64(scoreSum) / float64(scoreCount)
	}
	if financedCount > 0 {
		metrics.AverageDownPayment = downPaymentSum / float64(financedCount)
		metrics.AverageLoanAmount = loanAmountSum / float64(financedCount)
	}

	for key, seller := range metrics.BySeller {
		if seller.Total > 0 {
			seller.ApprovalRate = float64(seller.Approved) / float64(seller.Total) * 100
			metrics.BySeller[key] = seller
		}
	}
	for bucket, br := range metrics.ByCreditRange {
		if br.Total > 0 {
			br.ApprovalRate = float64(br.Approved) / float64(br.Total) * 100
			metrics.ByCreditRange[bucket] = br
		}
	}

	return metrics
}
