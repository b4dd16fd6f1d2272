// internal/services/metrics_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelane/dealer-backend/internal/models"
)

func decimalPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func intPtr(v int) *int {
	return &v
}

func TestComputeFIMetricsEmptySet(t *testing.T) {
	metrics := ComputeFIMetrics(nil, nil, nil)

	assert.Equal(t, 0, metrics.TotalRequests)
	assert.Zero(t, metrics.ApprovalRate)
	assert.Zero(t, metrics.AverageProcessingTime)

	// Every status and credit bucket is present even with no data.
	require.Len(t, metrics.ByStatus, len(models.AllRequestStatuses))
	for _, status := range models.AllRequestStatuses {
		count, ok := metrics.ByStatus[status]
		assert.True(t, ok, string(status))
		assert.Zero(t, count)
	}
	require.Len(t, metrics.ByCreditRange, len(models.AllCreditRanges))
	for _, bucket := range models.AllCreditRanges {
		br, ok := metrics.ByCreditRange[bucket]
		assert.True(t, ok, string(bucket))
		assert.Zero(t, br.Total)
	}
	assert.Empty(t, metrics.BySeller)
}

func TestComputeFIMetricsApprovalRate(t *testing.T) {
	sellerID := uuid.New()
	requests := []models.FIRequest{
		{Status: models.RequestStatusApproved, CreatedBy: sellerID},
		{Status: models.RequestStatusApproved, CreatedBy: sellerID},
		{Status: models.RequestStatusRejected, CreatedBy: sellerID},
		{Status: models.RequestStatusUnderReview, CreatedBy: sellerID},
	}

	metrics := ComputeFIMetrics(requests, nil, map[uuid.UUID]string{sellerID: "Ana Ruiz"})

	assert.Equal(t, 4, metrics.TotalRequests)
	assert.InDelta(t, 50.0, metrics.ApprovalRate, 0.001)
	assert.Equal(t, 2, metrics.ByStatus[models.RequestStatusApproved])
	assert.Equal(t, 1, metrics.ByStatus[models.RequestStatusRejected])
	assert.Equal(t, 1, metrics.ByStatus[models.RequestStatusUnderReview])
	assert.Equal(t, 0, metrics.ByStatus[models.RequestStatusDraft])

	seller, ok := metrics.BySeller["Ana Ruiz"]
	require.True(t, ok)
	assert.Equal(t, 4, seller.Total)
	assert.Equal(t, 2, seller.Approved)
	assert.Equal(t, 1, seller.Rejected)
	assert.InDelta(t, 50.0, seller.ApprovalRate, 0.001)
}

func TestComputeFIMetricsProcessingTime(t *testing.T) {
	submitted := time.Now().Add(-48 * time.Hour)
	reviewedFast := submitted.Add(6 * time.Hour)
	reviewedSlow := submitted.Add(18 * time.Hour)

	requests := []models.FIRequest{
		{Status: models.RequestStatusApproved, SubmittedAt: &submitted, ReviewedAt: &reviewedFast},
		{Status: models.RequestStatusRejected, SubmittedAt: &submitted, ReviewedAt: &reviewedSlow},
		// No review yet, excluded from the average.
		{Status: models.RequestStatusSubmitted, SubmittedAt: &submitted},
	}

	metrics := ComputeFIMetrics(requests, nil, nil)

	assert.InDelta(t, 12.0, metrics.AverageProcessingTime, 0.001)
}

func TestComputeFIMetricsCreditRanges(t *testing.T) {
	requests := []models.FIRequest{
		{
			Status:     models.RequestStatusApproved,
			CreditInfo: models.CreditInfo{CreditRange: models.CreditRangeExcellent},
		},
		{
			Status:     models.RequestStatusRejected,
			CreditInfo: models.CreditInfo{CreditRange: models.CreditRangePoor},
		},
		{
			Status:     models.RequestStatusApproved,
			CreditInfo: models.CreditInfo{CreditRange: models.CreditRangePoor},
		},
		// Unknown bucket is ignored rather than invented.
		{
			Status:     models.RequestStatusApproved,
			CreditInfo: models.CreditInfo{CreditRange: "platinum"},
		},
	}

	metrics := ComputeFIMetrics(requests, nil, nil)

	excellent := metrics.ByCreditRange[models.CreditRangeExcellent]
	assert.Equal(t, 1, excellent.Total)
	assert.Equal(t, 1, excellent.Approved)
	assert.InDelta(t, 100.0, excellent.ApprovalRate, 0.001)

	poor := metrics.ByCreditRange[models.CreditRangePoor]
	assert.Equal(t, 2, poor.Total)
	assert.Equal(t, 1, poor.Approved)
	assert.Equal(t, 1, poor.Rejected)
	assert.InDelta(t, 50.0, poor.ApprovalRate, 0.001)

	noCredit := metrics.ByCreditRange[models.CreditRangeNoCredit]
	assert.Zero(t, noCredit.Total)

	total := 0
	for _, br := range metrics.ByCreditRange {
		total += br.Total
	}
	assert.Equal(t, 3, total)
}

func TestComputeFIMetricsAverages(t *testing.T) {
	clientID := uuid.New()
	clients := map[uuid.UUID]*models.Client{
		clientID: {
			VehiclePrice: decimalPtr("30000"),
			DownPayment:  decimalPtr("5000"),
		},
	}

	requests := []models.FIRequest{
		{
			ClientID: clientID,
			Status:   models.RequestStatusApproved,
			Employment: models.EmploymentInfo{
				MonthlyIncome: decimalPtr("4000"),
			},
			CreditInfo: models.CreditInfo{
				CreditRange: models.CreditRangeGood,
				CreditScore: intPtr(700),
			},
		},
		{
			Status: models.RequestStatusSubmitted,
			Employment: models.EmploymentInfo{
				MonthlyIncome: decimalPtr("6000"),
			},
			CreditInfo: models.CreditInfo{
				CreditRange: models.CreditRangeFair,
				CreditScore: nil,
			},
		},
		// Zero income and score are treated as absent.
		{
			Status: models.RequestStatusDraft,
			Employment: models.EmploymentInfo{
				MonthlyIncome: decimalPtr("0"),
			},
			CreditInfo: models.CreditInfo{
				CreditRange: models.CreditRangeNoCredit,
				CreditScore: intPtr(0),
			},
		},
	}

	metrics := ComputeFIMetrics(requests, clients, nil)

	assert.InDelta(t, 5000.0, metrics.AverageIncome, 0.001)
	assert.InDelta(t, 700.0, metrics.AverageCreditScore, 0.001)
	assert.InDelta(t, 5000.0, metrics.AverageDownPayment, 0.001)
	assert.InDelta(t, 25000.0, metrics.AverageLoanAmount, 0.001)
}

func TestComputeFIMetricsSellerFallback(t *testing.T) {
	sellerID := uuid.New()
	requests := []models.FIRequest{
		{Status: models.RequestStatusApproved, CreatedBy: sellerID},
	}

	// No resolved name: the raw id keys the breakdown.
	metrics := ComputeFIMetrics(requests, nil, nil)

	seller, ok := metrics.BySeller[sellerID.String()]
	require.True(t, ok)
	assert.Equal(t, 1, seller.Total)
}
