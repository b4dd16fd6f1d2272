// internal/models/fi_request_test.go
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelane/dealer-backend/internal/apperrors"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{RequestStatusDraft, RequestStatusSubmitted, true},
		{RequestStatusDraft, RequestStatusApproved, false},
		{RequestStatusDraft, RequestStatusUnderReview, false},
		{RequestStatusSubmitted, RequestStatusUnderReview, true},
		{RequestStatusSubmitted, RequestStatusApproved, false},
		{RequestStatusUnderReview, RequestStatusPreApproved, true},
		{RequestStatusUnderReview, RequestStatusApproved, true},
		{RequestStatusUnderReview, RequestStatusPendingInfo, true},
		{RequestStatusUnderReview, RequestStatusRejected, true},
		{RequestStatusUnderReview, RequestStatusDraft, false},
		{RequestStatusApproved, RequestStatusRejected, false},
		{RequestStatusRejected, RequestStatusUnderReview, false},
		{RequestStatusPreApproved, RequestStatusApproved, false},
		{RequestStatusPendingInfo, RequestStatusSubmitted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, RequestStatusApproved.IsTerminal())
	assert.True(t, RequestStatusRejected.IsTerminal())
	assert.False(t, RequestStatusDraft.IsTerminal())
	assert.False(t, RequestStatusPreApproved.IsTerminal())
	assert.False(t, RequestStatusPendingInfo.IsTerminal())
}

func TestApplyTransitionAppendsHistory(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	req := &FIRequest{Status: RequestStatusDraft}

	entry, err := req.ApplyTransition(RequestStatusSubmitted, userID, "ready for review", now)
	require.NoError(t, err)

	assert.Equal(t, RequestStatusSubmitted, req.Status)
	require.Len(t, req.History, 1)
	assert.Equal(t, "submitted", entry.Action)
	assert.Equal(t, userID, entry.PerformedBy)
	assert.Equal(t, RequestStatusDraft, entry.PreviousStatus)
	assert.Equal(t, RequestStatusSubmitted, entry.NewStatus)
	assert.Equal(t, "ready for review", entry.Notes)

	require.NotNil(t, req.SubmittedAt)
	assert.Equal(t, now, *req.SubmittedAt)
	assert.Nil(t, req.ReviewedAt)
}

func TestApplyTransitionRejectsInvalidEdge(t *testing.T) {
	req := &FIRequest{Status: RequestStatusDraft}

	_, err := req.ApplyTransition(RequestStatusApproved, uuid.New(), "", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	var transitionErr *apperrors.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "draft", transitionErr.Current)
	assert.Equal(t, "approved", transitionErr.Requested)

	// Nothing changed on the rejected path.
	assert.Equal(t, RequestStatusDraft, req.Status)
	assert.Empty(t, req.History)
	assert.Nil(t, req.SubmittedAt)
}

func TestApplyTransitionStampsReviewedAtOnce(t *testing.T) {
	userID := uuid.New()
	base := time.Now()

	req := &FIRequest{Status: RequestStatusDraft}

	_, err := req.ApplyTransition(RequestStatusSubmitted, userID, "", base)
	require.NoError(t, err)
	_, err = req.ApplyTransition(RequestStatusUnderReview, userID, "", base.Add(time.Hour))
	require.NoError(t, err)

	assert.Nil(t, req.ReviewedAt)

	reviewTime := base.Add(2 * time.Hour)
	_, err = req.ApplyTransition(RequestStatusApproved, userID, "looks good", reviewTime)
	require.NoError(t, err)

	require.NotNil(t, req.ReviewedAt)
	assert.Equal(t, reviewTime, *req.ReviewedAt)

	// SubmittedAt kept its original stamp.
	require.NotNil(t, req.SubmittedAt)
	assert.Equal(t, base, *req.SubmittedAt)

	require.Len(t, req.History, 3)
	assert.Equal(t, "submitted", req.History[0].Action)
	assert.Equal(t, "review_started", req.History[1].Action)
	assert.Equal(t, "approved", req.History[2].Action)
}

func TestIsReviewTarget(t *testing.T) {
	assert.False(t, RequestStatusDraft.IsReviewTarget())
	assert.False(t, RequestStatusSubmitted.IsReviewTarget())
	assert.False(t, RequestStatus("cancelled").IsReviewTarget())

	assert.True(t, RequestStatusUnderReview.IsReviewTarget())
	assert.True(t, RequestStatusPreApproved.IsReviewTarget())
	assert.True(t, RequestStatusApproved.IsReviewTarget())
	assert.True(t, RequestStatusPendingInfo.IsReviewTarget())
	assert.True(t, RequestStatusRejected.IsReviewTarget())
}

func TestActionForStatus(t *testing.T) {
	assert.Equal(t, "submitted", ActionForStatus(RequestStatusSubmitted))
	assert.Equal(t, "review_started", ActionForStatus(RequestStatusUnderReview))
	assert.Equal(t, "pre_approved", ActionForStatus(RequestStatusPreApproved))
	assert.Equal(t, "approved", ActionForStatus(RequestStatusApproved))
	assert.Equal(t, "info_requested", ActionForStatus(RequestStatusPendingInfo))
	assert.Equal(t, "rejected", ActionForStatus(RequestStatusRejected))
}

func TestIsReviewer(t *testing.T) {
	assert.True(t, UserRoleAdmin.IsReviewer())
	assert.True(t, UserRoleDealer.IsReviewer())
	assert.True(t, UserRoleFIManager.IsReviewer())
	assert.False(t, UserRoleSeller.IsReviewer())
}
