package zone_test

import (
	"context"
	"testing"

	"github.com/aquagrid/aquagrid/internal/schema"
	"github.com/aquagrid/aquagrid/internal/zone"
)

func validAttrs() map[string]any {
	return map[string]any{
		"name":           "North lawn",
		"pumpId":         "pmp_123",
		"area":           250.0,
		"vegetationType": "grass",
		"soilType":       "loam",
		"coordinates": []any{
			map[string]any{"latitude": 36.8, "longitude": 10.2},
			map[string]any{"latitude": 36.81, "longitude": 10.21},
		},
	}
}

func TestService_Create_DefaultsStatusActive(t *testing.T) {
	service := zone.NewService(zone.NewInMemoryRepository())

	created, err := service.Create(context.Background(), validAttrs())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Attrs["status"] != "active" {
		t.Errorf("expected default status active, got %v", created.Attrs["status"])
	}
}

func TestService_Create_RejectsEmptyCoordinates(t *testing.T) {
	service := zone.NewService(zone.NewInMemoryRepository())

	attrs := validAttrs()
	attrs["coordinates"] = []any{}

	_, err := service.Create(context.Background(), attrs)
	verr, ok := schema.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !verr.Has("coordinates") {
		t.Errorf("expected error at coordinates, got %v", verr.Fields)
	}
}

func TestService_Create_CoordinatePointRules(t *testing.T) {
	service := zone.NewService(zone.NewInMemoryRepository())
	ctx := context.Background()

	tests := []struct {
		name      string
		point     map[string]any
		wantField string
	}{
		{
			name:      "latitude out of range",
			point:     map[string]any{"latitude": 91.0, "longitude": 10.0},
			wantField: "coordinates.0.latitude",
		},
		{
			name:      "longitude out of range",
			point:     map[string]any{"latitude": 36.0, "longitude": -181.0},
			wantField: "coordinates.0.longitude",
		},
		{
			name:      "missing longitude",
			point:     map[string]any{"latitude": 36.0},
			wantField: "coordinates.0.longitude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := validAttrs()
			attrs["coordinates"] = []any{tt.point}

			_, err := service.Create(ctx, attrs)
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

func TestService_Create_RequiresPumpReference(t *testing.T) {
	service := zone.NewService(zone.NewInMemoryRepository())

	attrs := validAttrs()
	delete(attrs, "pumpId")

	_, err := service.Create(context.Background(), attrs)
	verr, ok := schema.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !verr.Has("pumpId") {
		t.Errorf("expected error at pumpId, got %v", verr.Fields)
	}
}

func TestService_Create_EnumFields(t *testing.T) {
	service := zone.NewService(zone.NewInMemoryRepository())
	ctx := context.Background()

	for _, soil := range zone.SoilTypes {
		attrs := validAttrs()
		attrs["soilType"] = soil
		if _, err := service.Create(ctx, attrs); err != nil {
			t.Errorf("soil type %q must be accepted: %v", soil, err)
		}
	}

	attrs := validAttrs()
	attrs["soilType"] = "gravel"
	_, err := service.Create(ctx, attrs)
	verr, ok := schema.AsValidation(err)
	if !ok || !verr.Has("soilType") {
		t.Errorf("expected soilType violation, got %v", err)
	}
}
