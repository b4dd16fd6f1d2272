// internal/services/notification_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/drivelane/dealer-backend/internal/models"
)

func staffUser(role models.UserRole, status models.UserStatus) models.User {
	user := models.User{Role: role, Status: status}
	user.ID = uuid.New()
	return user
}

func TestSubmissionRecipientsManagerConfigured(t *testing.T) {
	manager := staffUser(models.UserRoleFIManager, models.UserStatusActive)
	users := []models.User{
		staffUser(models.UserRoleDealer, models.UserStatusActive),
		manager,
		staffUser(models.UserRoleDealer, models.UserStatusActive),
	}
	tenant := &models.Tenant{FIManagerID: &manager.ID}

	recipients := submissionRecipients(tenant, users)

	assert.Len(t, recipients, 1)
	assert.Equal(t, manager.ID, recipients[0].ID)

	// A manager without contact details is reached in-app only.
	assert.Equal(t,
		[]models.NotificationChannel{models.NotificationChannelInApp},
		ChannelsFor(&recipients[0]))
}

func TestSubmissionRecipientsManagerWinsEvenWhenInactive(t *testing.T) {
	manager := staffUser(models.UserRoleFIManager, models.UserStatusSuspended)
	users := []models.User{
		staffUser(models.UserRoleDealer, models.UserStatusActive),
		manager,
	}
	tenant := &models.Tenant{FIManagerID: &manager.ID}

	recipients := submissionRecipients(tenant, users)

	assert.Len(t, recipients, 1)
	assert.Equal(t, manager.ID, recipients[0].ID)
}

func TestSubmissionRecipientsFallBackToActiveDealers(t *testing.T) {
	active1 := staffUser(models.UserRoleDealer, models.UserStatusActive)
	active2 := staffUser(models.UserRoleDealer, models.UserStatusActive)
	users := []models.User{
		active1,
		staffUser(models.UserRoleDealer, models.UserStatusSuspended),
		staffUser(models.UserRoleSeller, models.UserStatusActive),
		active2,
	}

	recipients := submissionRecipients(&models.Tenant{}, users)

	assert.Len(t, recipients, 2)
	assert.Equal(t, active1.ID, recipients[0].ID)
	assert.Equal(t, active2.ID, recipients[1].ID)
}

func TestSubmissionRecipientsManagerMissing(t *testing.T) {
	gone := uuid.New()
	users := []models.User{staffUser(models.UserRoleDealer, models.UserStatusActive)}

	recipients := submissionRecipients(&models.Tenant{FIManagerID: &gone}, users)

	assert.Empty(t, recipients)
}

func TestChannelsFor(t *testing.T) {
	cases := []struct {
		name     string
		user     models.User
		expected []models.NotificationChannel
	}{
		{
			name: "in-app only",
			user: models.User{},
			expected: []models.NotificationChannel{
				models.NotificationChannelInApp,
			},
		},
		{
			name: "email on file",
			user: models.User{Email: "fi@dealer.test"},
			expected: []models.NotificationChannel{
				models.NotificationChannelInApp,
				models.NotificationChannelEmail,
			},
		},
		{
			name: "phone on file",
			user: models.User{Phone: "+15555550123"},
			expected: []models.NotificationChannel{
				models.NotificationChannelInApp,
				models.NotificationChannelSMS,
			},
		},
		{
			name: "all channels",
			user: models.User{Email: "fi@dealer.test", Phone: "+15555550123"},
			expected: []models.NotificationChannel{
				models.NotificationChannelInApp,
				models.NotificationChannelEmail,
				models.NotificationChannelSMS,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ChannelsFor(&tc.user))
		})
	}
}
