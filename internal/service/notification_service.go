package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/faisalcam/cctv-shop-api/internal/models"
	"github.com/faisalcam/cctv-shop-api/pkg/config"
	"github.com/faisalcam/cctv-shop-api/pkg/jobs"
)

const (
	jobClaimCreated  = "claim.created"
	jobClaimResolved = "claim.resolved"
)

type claimMessage struct {
	ClaimID      string
	CustomerName string
	PhoneNumber  string
	Status       models.ClaimStatus
}

// NotificationService sends WhatsApp/SMS updates to customers about their
// claims. Sends run on a background queue so the HTTP path never blocks on
// the Twilio API.
type NotificationService struct {
	client *twilio.RestClient
	queue  *jobs.Queue
	cfg    config.NotificationsConfig
	logger *zap.Logger
}

// NewNotificationService constructs the service. When notifications are
// disabled the service is inert and safe to call.
func NewNotificationService(cfg config.NotificationsConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &NotificationService{cfg: cfg, logger: logger}
	if !cfg.Enabled {
		return s
	}

	s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	s.queue = jobs.NewQueue("notifications", s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the background send workers.
func (s *NotificationService) Start(ctx context.Context) {
	if s.queue != nil {
		s.queue.Start(ctx)
	}
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	if s.queue != nil {
		s.queue.Stop()
	}
}

// ClaimCreated notifies the customer that their claim was received.
func (s *NotificationService) ClaimCreated(claim *models.WarrantyClaim) {
	s.enqueue(jobClaimCreated, claim)
}

// ClaimResolved notifies the customer of the decision on their claim.
func (s *NotificationService) ClaimResolved(claim *models.WarrantyClaim) {
	s.enqueue(jobClaimResolved, claim)
}

func (s *NotificationService) enqueue(jobType string, claim *models.WarrantyClaim) {
	if s.queue == nil {
		return
	}
	msg := claimMessage{
		ClaimID:      claim.ClaimID,
		CustomerName: claim.CustomerName,
		PhoneNumber:  claim.PhoneNumber,
		Status:       claim.ClaimStatus,
	}
	if err := s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: jobType, Payload: msg}); err != nil {
		s.logger.Warn("failed to enqueue claim notification", zap.String("claim_id", claim.ClaimID), zap.Error(err))
	}
}

func (s *NotificationService) handle(_ context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(claimMessage)
	if !ok {
		s.logger.Error("unexpected notification payload", zap.String("job_id", job.ID))
		return nil
	}

	var body string
	switch job.Type {
	case jobClaimCreated:
		body = fmt.Sprintf("Hi %s, we received your warranty claim %s. Our team will review it and get back to you shortly.", msg.CustomerName, msg.ClaimID)
	case jobClaimResolved:
		body = fmt.Sprintf("Hi %s, your warranty claim %s has been %s. Contact us if you have any questions.", msg.CustomerName, msg.ClaimID, msg.Status)
	default:
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if s.cfg.WhatsAppNumber != "" {
		params.SetTo("whatsapp:" + msg.PhoneNumber)
		params.SetFrom("whatsapp:" + s.cfg.WhatsAppNumber)
	} else {
		params.SetTo(msg.PhoneNumber)
		params.SetFrom(s.cfg.FromNumber)
	}

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send claim notification %s: %w", msg.ClaimID, err)
	}
	s.logger.Info("claim notification sent", zap.String("claim_id", msg.ClaimID), zap.String("type", job.Type))
	return nil
}
