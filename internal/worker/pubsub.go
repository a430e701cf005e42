package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// PubSubHandler handles Pub/Sub messages for the worker.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	dispatchJob      *DispatchJob
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	DispatchJob      *DispatchJob
	Logger           zerolog.Logger
}

// DispatchMessage represents a notification dispatch job message.
type DispatchMessage struct {
	JobType   string `json:"job_type"`
	BatchSize int    `json:"batch_size,omitempty"`
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)

	// Configure receive settings.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 10
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		dispatchJob:      cfg.DispatchJob,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	startTime := time.Now()

	logger := h.logger.With().
		Str("message_id", msg.ID).
		Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
		Logger()

	logger.Debug().Msg("received pubsub message")

	// Parse message.
	var dispatchMsg DispatchMessage
	if err := json.Unmarshal(msg.Data, &dispatchMsg); err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		msg.Nack()
		return
	}

	// Handle based on job type.
	var err error
	switch dispatchMsg.JobType {
	case "notification_dispatch":
		err = h.handleDispatch(ctx, dispatchMsg)
	case "health_check":
		err = h.handleHealthCheck(ctx)
	default:
		logger.Warn().Str("job_type", dispatchMsg.JobType).Msg("unknown job type")
		msg.Ack() // Ack unknown messages to prevent redelivery
		return
	}

	if err != nil {
		logger.Error().Err(err).Msg("job failed")
		msg.Nack()
		return
	}

	duration := time.Since(startTime)
	logger.Info().
		Str("job_type", dispatchMsg.JobType).
		Dur("duration", duration).
		Msg("job completed successfully")

	msg.Ack()
}

func (h *PubSubHandler) handleDispatch(ctx context.Context, msg DispatchMessage) error {
	h.logger.Info().
		Int("batch_size", msg.BatchSize).
		Msg("starting notification dispatch")

	job := h.dispatchJob
	if msg.BatchSize > 0 {
		// One-off batch override for this message.
		cfg := job.config
		cfg.BatchSize = msg.BatchSize
		job = NewDispatchJob(DispatchJobConfig{
			Config:        cfg,
			Logger:        h.logger,
			Notifications: h.dispatchJob.notifications,
			Notifier:      h.dispatchJob.notifier,
		})
	}

	result, err := job.Run(ctx)
	if err != nil {
		return err
	}

	h.logger.Info().
		Dur("duration", result.Duration).
		Int("pending", result.Pending).
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Msg("notification dispatch completed")

	// A failed delivery batch should be redelivered and retried.
	if result.Failed > result.Sent && result.Failed > 0 {
		return fmt.Errorf("too many dispatch failures: %d/%d", result.Failed, result.Pending)
	}

	return nil
}

func (h *PubSubHandler) handleHealthCheck(ctx context.Context) error {
	h.logger.Debug().Msg("running health check")

	// A pending-queue read verifies store connectivity without delivering
	// anything.
	if _, err := h.dispatchJob.notifications.ListPending(ctx, 1); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	h.logger.Debug().Msg("health check passed")
	return nil
}
