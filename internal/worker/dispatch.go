package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/aquagrid/aquagrid/internal/notification"
	"github.com/aquagrid/aquagrid/internal/notifier"
)

// subscriberPageSize is how many subscribers are loaded per page while
// dispatching one notification.
const subscriberPageSize = 100

// DispatchJob drains pending notifications and delivers them to their
// subscribers over each subscriber's channel.
type DispatchJob struct {
	config        DispatchConfig
	logger        zerolog.Logger
	notifications *notification.Service
	notifier      notifier.Notifier

	metrics *DispatchMetrics
}

// DispatchMetrics tracks dispatch job statistics.
type DispatchMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRuns           int64
	NotificationsSent   int64
	NotificationsFailed int64
	DeliveriesWebhook   int64
	DeliveriesOther     int64

	// Timings
	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// DispatchJobConfig holds configuration for creating a DispatchJob.
type DispatchJobConfig struct {
	Config        DispatchConfig
	Logger        zerolog.Logger
	Notifications *notification.Service
	Notifier      notifier.Notifier
}

// NewDispatchJob creates a new dispatch job processor.
func NewDispatchJob(cfg DispatchJobConfig) *DispatchJob {
	return &DispatchJob{
		config:        cfg.Config.withDefaults(),
		logger:        cfg.Logger,
		notifications: cfg.Notifications,
		notifier:      cfg.Notifier,
		metrics:       &DispatchMetrics{},
	}
}

// DispatchResult contains the result of one dispatch run.
type DispatchResult struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Pending   int
	Sent      int
	Failed    int
	Errors    []DispatchError
}

// DispatchError records a delivery failure for one subscriber.
type DispatchError struct {
	NotificationID string
	SubscriberID   string
	Channel        string
	Error          string
}

// Run drains one batch of pending notifications.
func (j *DispatchJob) Run(ctx context.Context) (*DispatchResult, error) {
	startTime := time.Now()
	result := &DispatchResult{StartTime: startTime}

	pending, err := j.notifications.ListPending(ctx, j.config.BatchSize)
	if err != nil {
		return nil, err
	}
	result.Pending = len(pending)

	j.logger.Info().
		Int("pending", result.Pending).
		Int("concurrency", j.config.Concurrency).
		Msg("starting notification dispatch")

	notificationsChan := make(chan *notification.Notification, len(pending))
	resultsChan := make(chan dispatchOutcome, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.dispatchWorker(ctx, notificationsChan, resultsChan)
		}()
	}

	for _, n := range pending {
		notificationsChan <- n
	}
	close(notificationsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for outcome := range resultsChan {
		if outcome.sent {
			result.Sent++
		} else {
			result.Failed++
		}
		result.Errors = append(result.Errors, outcome.errors...)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Msg("notification dispatch completed")

	return result, nil
}

type dispatchOutcome struct {
	notificationID string
	sent           bool
	errors         []DispatchError
}

func (j *DispatchJob) dispatchWorker(ctx context.Context, notifications <-chan *notification.Notification, results chan<- dispatchOutcome) {
	for n := range notifications {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.dispatchNotification(ctx, n)
		}
	}
}

// dispatchNotification delivers one notification to all of its
// subscribers and transitions its status. Every subscriber must succeed
// for the notification to move to sent.
func (j *DispatchJob) dispatchNotification(ctx context.Context, n *notification.Notification) dispatchOutcome {
	outcome := dispatchOutcome{notificationID: n.ID, sent: true}

	dispatchCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	subscribers, err := j.loadSubscribers(dispatchCtx, n.ID)
	if err != nil {
		outcome.sent = false
		outcome.errors = append(outcome.errors, DispatchError{
			NotificationID: n.ID,
			Error:          err.Error(),
		})
		j.markFailed(dispatchCtx, n.ID)
		return outcome
	}

	for _, sub := range subscribers {
		channel := sub.Channel()
		if err := j.notifier.Deliver(dispatchCtx, channel, buildDelivery(n, sub)); err != nil {
			outcome.sent = false
			outcome.errors = append(outcome.errors, DispatchError{
				NotificationID: n.ID,
				SubscriberID:   sub.ID,
				Channel:        channel,
				Error:          err.Error(),
			})
			continue
		}

		if channel == "webhook" {
			atomic.AddInt64(&j.metrics.DeliveriesWebhook, 1)
		} else {
			atomic.AddInt64(&j.metrics.DeliveriesOther, 1)
		}

		if err := j.notifications.MarkDelivered(dispatchCtx, sub.ID, time.Now()); err != nil {
			j.logger.Warn().Err(err).
				Str("subscriber_id", sub.ID).
				Msg("failed to stamp delivery time")
		}
	}

	status := "sent"
	if !outcome.sent {
		status = "failed"
	}
	if err := j.notifications.SetStatus(dispatchCtx, n.ID, status); err != nil {
		j.logger.Error().Err(err).
			Str("notification_id", n.ID).
			Str("status", status).
			Msg("failed to update notification status")
	}

	return outcome
}

func (j *DispatchJob) loadSubscribers(ctx context.Context, notificationID string) ([]*notification.Subscriber, error) {
	var all []*notification.Subscriber
	for page := 1; ; page++ {
		result, err := j.notifications.ListSubscribers(ctx, notificationID, notification.ListOptions{
			Page:  page,
			Limit: subscriberPageSize,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if len(all) >= result.Total || len(result.Items) == 0 {
			return all, nil
		}
	}
}

func (j *DispatchJob) markFailed(ctx context.Context, notificationID string) {
	if err := j.notifications.SetStatus(ctx, notificationID, "failed"); err != nil {
		j.logger.Error().Err(err).
			Str("notification_id", notificationID).
			Msg("failed to mark notification failed")
	}
}

// buildDelivery flattens a notification payload and subscriber into the
// wire format handed to the notifier.
func buildDelivery(n *notification.Notification, sub *notification.Subscriber) notifier.Delivery {
	d := notifier.Delivery{
		NotificationID: n.ID,
		SubscriberID:   sub.ID,
	}
	d.UserID, _ = sub.Attrs["userId"].(string)
	d.ModuleName, _ = n.Attrs["moduleName"].(string)
	d.Action, _ = n.Attrs["action"].(string)

	payload, _ := n.Attrs["payload"].(map[string]any)
	if payload != nil {
		d.Title, _ = payload["title"].(string)
		d.Message, _ = payload["message"].(string)
		d.Priority, _ = payload["priority"].(string)
		d.Category, _ = payload["category"].(string)
		d.Data, _ = payload["data"].(map[string]any)
	}
	return d
}

func (j *DispatchJob) updateMetrics(result *DispatchResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.NotificationsSent += int64(result.Sent)
	j.metrics.NotificationsFailed += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *DispatchJob) GetMetrics() DispatchMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return DispatchMetrics{
		TotalRuns:           j.metrics.TotalRuns,
		NotificationsSent:   j.metrics.NotificationsSent,
		NotificationsFailed: j.metrics.NotificationsFailed,
		DeliveriesWebhook:   atomic.LoadInt64(&j.metrics.DeliveriesWebhook),
		DeliveriesOther:     atomic.LoadInt64(&j.metrics.DeliveriesOther),
		LastRunAt:           j.metrics.LastRunAt,
		LastRunDuration:     j.metrics.LastRunDuration,
		TotalDuration:       j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *DispatchJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":           m.TotalRuns,
		"notifications_sent":   m.NotificationsSent,
		"notifications_failed": m.NotificationsFailed,
		"deliveries_webhook":   m.DeliveriesWebhook,
		"deliveries_other":     m.DeliveriesOther,
		"last_run_at":          m.LastRunAt,
		"last_run_duration":    m.LastRunDuration.String(),
		"total_duration":       m.TotalDuration.String(),
	}
}
