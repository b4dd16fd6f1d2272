// internal/services/notification_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/drivelane/dealer-backend/internal/apperrors"
	"github.com/drivelane/dealer-backend/internal/config"
	"github.com/drivelane/dealer-backend/internal/models"
	"github.com/drivelane/dealer-backend/internal/utils"
)

type NotificationService struct {
	db         *gorm.DB
	config     *config.Config
	httpClient *http.Client
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.SMS.TimeoutSec) * time.Second,
		},
	}
}

// FanOutSubmission notifies whoever reviews F&I requests for the tenant:
// the designated F&I manager when one is configured, otherwise every
// active dealer. Each recipient gets an in-app notification plus
// best-effort email and SMS. Every failure is logged and swallowed; a
// submit must succeed even when every channel fails.
func (s *NotificationService) FanOutSubmission(request *models.FIRequest) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, request.TenantID).Error; err != nil {
		logrus.WithError(err).WithField("tenant_id", request.TenantID).
			Error("Fan-out aborted: tenant lookup failed")
		return
	}

	recipients, err := s.resolveRecipients(&tenant)
	if err != nil {
		logrus.WithError(err).WithField("tenant_id", tenant.ID).
			Error("Fan-out aborted: recipient lookup failed")
		return
	}
	if len(recipients) == 0 {
		logrus.WithField("tenant_id", tenant.ID).
			Warn("Fan-out found no reviewers to notify")
		return
	}

	applicant := request.PersonalInfo.FirstName + " " + request.PersonalInfo.LastName
	title := "New F&I request submitted"
	message := fmt.Sprintf("A finance request for %s is waiting for review.", applicant)

	for i := range recipients {
		s.notifyUser(&recipients[i], request, title, message)
	}
}

func (s *NotificationService) resolveRecipients(tenant *models.Tenant) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("tenant_id = ?", tenant.ID).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("recipient lookup: %w", err)
	}
	return submissionRecipients(tenant, users), nil
}

// submissionRecipients selects who hears about a submission from the
// tenant's users: the configured F&I manager when one is set, otherwise
// every active dealer. A configured manager is the sole recipient even
// when inactive.
func submissionRecipients(tenant *models.Tenant, users []models.User) []models.User {
	if tenant.FIManagerID != nil {
		for i := range users {
			if users[i].ID == *tenant.FIManagerID {
				return users[i : i+1]
			}
		}
		return nil
	}

	var dealers []models.User
	for i := range users {
		if users[i].Role == models.UserRoleDealer && users[i].Status == models.UserStatusActive {
			dealers = append(dealers, users[i])
		}
	}
	return dealers
}

// ChannelsFor lists the channels a recipient can be reached on. The
// in-app channel is always present.
func ChannelsFor(user *models.User) []models.NotificationChannel {
	channels := []models.NotificationChannel{models.NotificationChannelInApp}
	if user.Email != "" {
		channels = append(channels, models.NotificationChannelEmail)
	}
	if user.Phone != "" {
		channels = append(channels, models.NotificationChannelSMS)
	}
	return channels
}

func (s *NotificationService) notifyUser(user *models.User, request *models.FIRequest, title, message string) {
	for _, channel := range ChannelsFor(user) {
		var err error
		switch channel {
		case models.NotificationChannelInApp:
			err = s.createInApp(user, request, title, message)
		case models.NotificationChannelEmail:
			err = s.sendSubmissionEmail(user, request, title)
		case models.NotificationChannelSMS:
			err = s.sendSMS(user.Phone, message)
		}
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"channel":    channel,
				"user_id":    user.ID,
				"request_id": request.ID,
			}).Error("Notification channel failed")
		}
	}
}

func (s *NotificationService) createInApp(user *models.User, request *models.FIRequest, title, message string) error {
	notification := &models.Notification{
		TenantID:            request.TenantID,
		UserID:              user.ID,
		Type:                "fi_request_submitted",
		Title:               title,
		Message:             message,
		Priority:            "high",
		RelatedResourceType: "fi_request",
		RelatedResourceID:   &request.ID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *NotificationService) sendSubmissionEmail(user *models.User, request *models.FIRequest, subject string) error {
	tmpl := s.getEmailTemplate("fi_request_submitted")

	data := map[string]interface{}{
		"RecipientName": user.DisplayName(),
		"ApplicantName": request.PersonalInfo.FirstName + " " + request.PersonalInfo.LastName,
		"RequestURL":    fmt.Sprintf("%s/fi-requests/%s", s.config.Frontend.BaseURL, request.ID),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// Generic notification reads, backing the notifications API.

func (s *NotificationService) ListForUser(tenantID, userID uuid.UUID, params utils.PaginationParams, unreadOnly bool) ([]models.Notification, int64, error) {
	query := s.db.Model(&models.Notification{}).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID)
	if unreadOnly {
		query = query.Where("status = ?", "unread")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "read_at", "priority"})
	query = utils.ApplyPagination(query, params)

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, total, nil
}

func (s *NotificationService) MarkRead(tenantID, userID, notificationID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.Where("id = ? AND tenant_id = ? AND user_id = ?",
		notificationID, tenantID, userID).First(&notification).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &apperrors.NotFoundError{Resource: "notification"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	notification.Status = "read"
	notification.ReadAt = &now
	if err := s.db.Save(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return &notification, nil
}

// Helper methods
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).
			Info("Email sending skipped: SMTP not configured")
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

type smsPayload struct {
	To   string `json:"to"`
	From string `json:"from"`
	Body string `json:"body"`
}

func (s *NotificationService) sendSMS(to, body string) error {
	if s.config.SMS.GatewayURL == "" {
		logrus.WithField("to", to).Info("SMS sending skipped: gateway not configured")
		return nil
	}

	payload, err := json.Marshal(smsPayload{
		To:   to,
		From: s.config.SMS.FromNumber,
		Body: body,
	})
	if err != nil {
		return fmt.Errorf("failed to encode SMS payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.config.SMS.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.SMS.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("SMS gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"fi_request_submitted": {
			Subject: "New F&I Request",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>New F&amp;I request</h2>
	<p>Hello {{.RecipientName}},</p>
	<p>A finance request for {{.ApplicantName}} was just submitted and is waiting for review.</p>
	<a href="{{.RequestURL}}">Review Request</a>
	<p>Best regards,<br>Drivelane</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
