// internal/services/firequest_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/drivelane/dealer-backend/internal/apperrors"
	"github.com/drivelane/dealer-backend/internal/models"
)

func TestCreateRejectsNonSellerRoles(t *testing.T) {
	svc := NewFIRequestService(nil, nil)

	roles := []models.UserRole{
		models.UserRoleAdmin,
		models.UserRoleDealer,
		models.UserRoleFIManager,
	}
	for _, role := range roles {
		actor := Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: role}
		_, err := svc.Create(actor, &CreateFIRequestRequest{ClientID: uuid.New()})

		var forbidden *apperrors.ForbiddenError
		assert.ErrorAs(t, err, &forbidden, "role %s", role)
	}
}

func TestReviewRejectsSellerSideStatuses(t *testing.T) {
	svc := NewFIRequestService(nil, nil)
	actor := Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: models.UserRoleFIManager}

	// A reviewer must not reach submitted (or draft) through review: the
	// draft -> submitted edge is valid in the workflow graph, but it
	// belongs to the creator and carries the notification fan-out.
	for _, status := range []models.RequestStatus{
		models.RequestStatusDraft,
		models.RequestStatusSubmitted,
	} {
		_, err := svc.Review(actor, uuid.New(), &ReviewFIRequestRequest{Status: status})
		assert.ErrorIs(t, err, apperrors.ErrValidation, "status %s", status)
	}
}

func TestReviewRequiresReviewerRole(t *testing.T) {
	svc := NewFIRequestService(nil, nil)
	actor := Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: models.UserRoleSeller}

	_, err := svc.Review(actor, uuid.New(), &ReviewFIRequestRequest{
		Status: models.RequestStatusUnderReview,
	})

	var forbidden *apperrors.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestSubmitRequiresCreator(t *testing.T) {
	creator := uuid.New()
	request := &models.FIRequest{Status: models.RequestStatusDraft, CreatedBy: creator}

	err := ensureCreator(request, Actor{UserID: uuid.New(), Role: models.UserRoleDealer})
	var forbidden *apperrors.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)

	assert.NoError(t, ensureCreator(request, Actor{UserID: creator, Role: models.UserRoleSeller}))
}
