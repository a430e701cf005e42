package pump_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aquagrid/aquagrid/internal/pump"
	"github.com/aquagrid/aquagrid/internal/schema"
)

func TestService_Create_DefaultsStatus(t *testing.T) {
	service := pump.NewService(pump.NewInMemoryRepository())
	ctx := context.Background()

	created, err := service.Create(ctx, map[string]any{"name": "North field pump"})
	if err != nil {
		t.Fatalf("failed to create pump: %v", err)
	}

	if !strings.HasPrefix(created.ID, "pmp_") {
		t.Errorf("expected pump ID to start with 'pmp_', got %q", created.ID)
	}
	if created.Attrs["status"] != "inactive" {
		t.Errorf("expected default status inactive, got %v", created.Attrs["status"])
	}
}

func TestService_Create_ValidationErrors(t *testing.T) {
	service := pump.NewService(pump.NewInMemoryRepository())
	ctx := context.Background()

	tests := []struct {
		name      string
		attrs     map[string]any
		wantField string
	}{
		{
			name:      "missing name",
			attrs:     map[string]any{"type": "centrifugal"},
			wantField: "name",
		},
		{
			name:      "name too long",
			attrs:     map[string]any{"name": strings.Repeat("a", 101)},
			wantField: "name",
		},
		{
			name:      "unknown type",
			attrs:     map[string]any{"name": "p", "type": "axial"},
			wantField: "type",
		},
		{
			name:      "pressure above maximum",
			attrs:     map[string]any{"name": "p", "pressure": 201.0},
			wantField: "pressure",
		},
		{
			name:      "flow rate below minimum",
			attrs:     map[string]any{"name": "p", "flowRate": -1.0},
			wantField: "flowRate",
		},
		{
			name: "health temperature out of range",
			attrs: map[string]any{
				"name":   "p",
				"health": map[string]any{"temperature": 101.0},
			},
			wantField: "health.temperature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.attrs)
			verr, ok := schema.AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !verr.Has(tt.wantField) {
				t.Errorf("expected error at %q, got %v", tt.wantField, verr.Fields)
			}
		})
	}
}

func TestService_Create_BoundaryValuesAccepted(t *testing.T) {
	service := pump.NewService(pump.NewInMemoryRepository())
	ctx := context.Background()

	_, err := service.Create(ctx, map[string]any{
		"name":     "boundary pump",
		"pressure": 200.0,
		"flowRate": 0.0,
		"health":   map[string]any{"temperature": 0.0, "efficiency": 100.0, "vibration": 0.0},
	})
	if err != nil {
		t.Fatalf("boundary values must be accepted: %v", err)
	}
}

func TestService_Update_DoesNotReapplyDefaults(t *testing.T) {
	service := pump.NewService(pump.NewInMemoryRepository())
	ctx := context.Background()

	created, err := service.Create(ctx, map[string]any{"name": "p", "status": "active"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.Update(ctx, created.ID, map[string]any{"pressure": 50.0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Attrs["status"] != "active" {
		t.Errorf("update must not touch unsupplied fields, status = %v", updated.Attrs["status"])
	}
	if updated.Attrs["pressure"] != 50.0 {
		t.Errorf("expected pressure 50, got %v", updated.Attrs["pressure"])
	}
}

func TestService_Update_NotFound(t *testing.T) {
	service := pump.NewService(pump.NewInMemoryRepository())

	_, err := service.Update(context.Background(), "pmp_missing", map[string]any{"name": "x"})
	if err != pump.ErrPumpNotFound {
		t.Errorf("expected ErrPumpNotFound, got %v", err)
	}
}

func TestService_RoundTrip(t *testing.T) {
	service := pump.NewService(pump.NewInMemoryRepository())
	ctx := context.Background()

	created, err := service.Create(ctx, map[string]any{
		"name":     "round trip",
		"type":     "submersible",
		"flowRate": 1200.5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := service.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	for _, field := range []string{"name", "type", "status", "flowRate"} {
		if got.Attrs[field] != created.Attrs[field] {
			t.Errorf("field %q changed across round trip: %v != %v", field, got.Attrs[field], created.Attrs[field])
		}
	}
}
