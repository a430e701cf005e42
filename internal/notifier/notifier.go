package notifier

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Delivery is one notification payload addressed to one subscriber.
type Delivery struct {
	NotificationID string         `json:"notificationId"`
	SubscriberID   string         `json:"subscriberId"`
	UserID         string         `json:"userId"`
	ModuleName     string         `json:"moduleName"`
	Action         string         `json:"action"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Priority       string         `json:"priority,omitempty"`
	Category       string         `json:"category,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
}

// Notifier sends a delivery over a subscriber channel.
type Notifier interface {
	Deliver(ctx context.Context, channel string, d Delivery) error
}

// Config holds configuration for the channel notifier.
type Config struct {
	// WebhookURL is the endpoint webhook subscribers are delivered to.
	WebhookURL string

	// Client is the webhook client. A default client is created when nil.
	Client *Client

	// Metrics records delivery instruments. Created when nil.
	Metrics *DeliveryMetrics

	Logger zerolog.Logger
}

// ChannelNotifier routes deliveries by subscriber channel. Webhook
// deliveries go through the resilient client; email, push and sms have no
// provider integration and are logged as handed off.
type ChannelNotifier struct {
	webhookURL string
	client     *Client
	metrics    *DeliveryMetrics
	logger     zerolog.Logger
}

// New creates a new channel notifier.
func New(cfg Config) *ChannelNotifier {
	client := cfg.Client
	if client == nil {
		client = NewClient(DefaultClientConfig("webhook"))
	}
	metrics := cfg.Metrics
	if metrics == nil {
		var err error
		metrics, err = NewDeliveryMetrics()
		if err != nil {
			cfg.Logger.Warn().Err(err).Msg("delivery metrics disabled")
		}
	}
	return &ChannelNotifier{
		webhookURL: cfg.WebhookURL,
		client:     client,
		metrics:    metrics,
		logger:     cfg.Logger,
	}
}

// Deliver sends one delivery over the given channel.
func (n *ChannelNotifier) Deliver(ctx context.Context, channel string, d Delivery) error {
	logger := n.logger.With().
		Str("channel", channel).
		Str("notification_id", d.NotificationID).
		Str("subscriber_id", d.SubscriberID).
		Logger()

	start := time.Now()

	if channel == "webhook" {
		err := n.client.Post(ctx, n.webhookURL, d)
		n.metrics.RecordDelivery(channel, time.Since(start), err)
		if err != nil {
			logger.Error().Err(err).Msg("webhook delivery failed")
			return err
		}
		logger.Debug().Msg("webhook delivered")
		return nil
	}

	// No provider integration for the remaining channels; hand-off is
	// logged so downstream processors can pick the record up.
	n.metrics.RecordDelivery(channel, time.Since(start), nil)
	logger.Info().
		Str("user_id", d.UserID).
		Str("title", d.Title).
		Msg("notification handed off")
	return nil
}
