package notification_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aquagrid/aquagrid/internal/notification"
	"github.com/aquagrid/aquagrid/internal/schema"
)

func validNotification() map[string]any {
	return map[string]any{
		"moduleName": "schedules",
		"action":     "run-completed",
		"payload": map[string]any{
			"title":   "Watering finished",
			"message": "Zone North lawn finished its 07:00 run.",
		},
	}
}

func TestService_Create_PayloadDefaults(t *testing.T) {
	service := notification.NewService(notification.NewInMemoryRepository())

	created, err := service.Create(context.Background(), validNotification())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Attrs["status"] != "pending" {
		t.Errorf("expected default status pending, got %v", created.Attrs["status"])
	}

	payload, ok := created.Attrs["payload"].(map[string]any)
	if !ok {
		t.Fatalf("expected payload object, got %T", created.Attrs["payload"])
	}
	if payload["priority"] != "normal" {
		t.Errorf("expected default priority normal, got %v", payload["priority"])
	}
	data, ok := payload["data"].(map[string]any)
	if !ok || len(data) != 0 {
		t.Errorf("expected empty default data map, got %v", payload["data"])
	}
}

func TestService_Create_PayloadRequiredFields(t *testing.T) {
	service := notification.NewService(notification.NewInMemoryRepository())
	ctx := context.Background()

	attrs := validNotification()
	delete(attrs["payload"].(map[string]any), "title")

	_, err := service.Create(ctx, attrs)
	verr, ok := schema.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !verr.Has("payload.title") {
		t.Errorf("expected error at payload.title, got %v", verr.Fields)
	}

	attrs = validNotification()
	attrs["payload"].(map[string]any)["message"] = strings.Repeat("m", 1001)
	_, err = service.Create(ctx, attrs)
	verr, ok = schema.AsValidation(err)
	if !ok || !verr.Has("payload.message") {
		t.Errorf("expected error at payload.message, got %v", err)
	}
}

func TestService_Create_MissingPayload(t *testing.T) {
	service := notification.NewService(notification.NewInMemoryRepository())

	_, err := service.Create(context.Background(), map[string]any{
		"moduleName": "pumps",
		"action":     "fault",
	})

	verr, ok := schema.AsValidation(err)
	if !ok || !verr.Has("payload") {
		t.Errorf("expected error at payload, got %v", err)
	}
}

func TestService_Subscribe(t *testing.T) {
	service := notification.NewService(notification.NewInMemoryRepository())
	ctx := context.Background()

	n, err := service.Create(ctx, validNotification())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sub, err := service.Subscribe(ctx, n.ID, map[string]any{
		"userId":  "usr_1",
		"channel": "email",
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if !strings.HasPrefix(sub.ID, "sub_") {
		t.Errorf("expected subscriber ID prefix sub_, got %q", sub.ID)
	}
	if sub.Attrs["seen"] != false {
		t.Errorf("expected seen to default to false, got %v", sub.Attrs["seen"])
	}
	if sub.Attrs["notificationId"] != n.ID {
		t.Errorf("expected notificationId %q, got %v", n.ID, sub.Attrs["notificationId"])
	}
}

func TestService_Subscribe_InvalidChannel(t *testing.T) {
	service := notification.NewService(notification.NewInMemoryRepository())
	ctx := context.Background()

	n, err := service.Create(ctx, validNotification())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = service.Subscribe(ctx, n.ID, map[string]any{
		"userId":  "usr_1",
		"channel": "carrier-pigeon",
	})

	verr, ok := schema.AsValidation(err)
	if !ok || !verr.Has("channel") {
		t.Errorf("expected channel violation, got %v", err)
	}
}

func TestService_Subscribe_UnknownNotification(t *testing.T) {
	service := notification.NewService(notification.NewInMemoryRepository())

	_, err := service.Subscribe(context.Background(), "ntf_missing", map[string]any{"userId": "u"})
	if err != notification.ErrNotificationNotFound {
		t.Errorf("expected ErrNotificationNotFound, got %v", err)
	}
}

func TestService_PendingQueueAndStatus(t *testing.T) {
	service := notification.NewService(notification.NewInMemoryRepository())
	ctx := context.Background()

	n, err := service.Create(ctx, validNotification())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pending, err := service.ListPending(ctx, 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != n.ID {
		t.Fatalf("expected one pending notification, got %d", len(pending))
	}

	if err := service.SetStatus(ctx, n.ID, "sent"); err != nil {
		t.Fatalf("set status: %v", err)
	}

	pending, err = service.ListPending(ctx, 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected empty pending queue after dispatch, got %d", len(pending))
	}

	if err := service.SetStatus(ctx, n.ID, "resent"); err == nil {
		t.Error("expected invalid status to be rejected")
	}
}

func TestService_MarkSeen(t *testing.T) {
	service := notification.NewService(notification.NewInMemoryRepository())
	ctx := context.Background()

	n, _ := service.Create(ctx, validNotification())
	sub, _ := service.Subscribe(ctx, n.ID, map[string]any{"userId": "usr_1", "channel": "push"})

	seen, err := service.MarkSeen(ctx, sub.ID)
	if err != nil {
		t.Fatalf("mark seen: %v", err)
	}
	if seen.Attrs["seen"] != true {
		t.Errorf("expected seen true, got %v", seen.Attrs["seen"])
	}
	if _, ok := seen.Attrs["seenAt"]; !ok {
		t.Error("expected seenAt to be stamped")
	}
}
