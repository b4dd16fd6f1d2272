// internal/models/common_test.go
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStatusIsValid(t *testing.T) {
	for _, status := range AllRequestStatuses {
		assert.True(t, status.IsValid(), string(status))
	}
	assert.False(t, RequestStatus("cancelled").IsValid())
	assert.False(t, RequestStatus("").IsValid())
}

func TestCreditRangeIsValid(t *testing.T) {
	for _, bucket := range AllCreditRanges {
		assert.True(t, bucket.IsValid(), string(bucket))
	}
	assert.False(t, CreditRange("unknown").IsValid())
	assert.False(t, CreditRange("").IsValid())
}

func TestRequestHistoryRoundTrip(t *testing.T) {
	history := RequestHistory{
		{
			Action:         "submitted",
			PerformedBy:    uuid.New(),
			Timestamp:      time.Now().UTC().Truncate(time.Second),
			PreviousStatus: RequestStatusDraft,
			NewStatus:      RequestStatusSubmitted,
			Notes:          "initial submit",
		},
	}

	value, err := history.Value()
	require.NoError(t, err)

	var scanned RequestHistory
	require.NoError(t, scanned.Scan(value))

	require.Len(t, scanned, 1)
	assert.Equal(t, history[0].Action, scanned[0].Action)
	assert.Equal(t, history[0].PerformedBy, scanned[0].PerformedBy)
	assert.Equal(t, history[0].PreviousStatus, scanned[0].PreviousStatus)
	assert.Equal(t, history[0].NewStatus, scanned[0].NewStatus)
	assert.Equal(t, history[0].Notes, scanned[0].Notes)
}

func TestRequestHistoryNilHandling(t *testing.T) {
	// A nil history still serializes as an empty array, never SQL NULL.
	var history RequestHistory
	value, err := history.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)

	// Scanning NULL yields an empty, appendable slice.
	var scanned RequestHistory
	require.NoError(t, scanned.Scan(nil))
	assert.NotNil(t, scanned)
	assert.Empty(t, scanned)
}
