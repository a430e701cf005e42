package schema_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquagrid/aquagrid/internal/schema"
)

func testSchema() schema.Schema {
	return schema.Schema{
		Name: "widget",
		Fields: map[string]schema.Field{
			"name":   {Kind: schema.String, Required: true, MaxLen: 10},
			"status": {Kind: schema.String, Enum: []string{"on", "off"}, Default: "off"},
			"level":  {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(100)},
			"count":  {Kind: schema.Int, Min: schema.Bound(1), Max: schema.Bound(5)},
			"code": {
				Kind:       schema.String,
				Pattern:    regexp.MustCompile(`^[A-Z]{3}$`),
				PatternMsg: "must be three uppercase letters",
			},
			"health": {
				Kind: schema.Object,
				Fields: map[string]schema.Field{
					"temperature": {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(100)},
					"serial":      {Kind: schema.String, Required: true},
				},
			},
			"points": {
				Kind: schema.Array,
				Elem: &schema.Field{
					Kind: schema.Object,
					Fields: map[string]schema.Field{
						"lat": {Kind: schema.Float, Required: true, Min: schema.Bound(-90), Max: schema.Bound(90)},
					},
				},
			},
			"tags": {Kind: schema.Array, AllowEmpty: true, Elem: &schema.Field{Kind: schema.String}},
		},
	}
}

func TestValidate_RequiredField(t *testing.T) {
	s := testSchema()

	_, err := s.Validate(map[string]any{})

	verr, ok := schema.AsValidation(err)
	require.True(t, ok)
	assert.True(t, verr.Has("name"))
	assert.Contains(t, verr.Fields["name"], "is required")
}

func TestValidate_AppliesDefaults(t *testing.T) {
	s := testSchema()

	doc, err := s.Validate(map[string]any{"name": "pump-a"})

	require.NoError(t, err)
	assert.Equal(t, "off", doc["status"])
	_, present := doc["health"]
	assert.False(t, present, "absent optional object must stay absent")
}

func TestValidate_NumericBounds(t *testing.T) {
	s := testSchema()

	tests := []struct {
		name  string
		level float64
		valid bool
	}{
		{"at minimum", 0, true},
		{"at maximum", 100, true},
		{"below minimum", -1, false},
		{"above maximum", 101, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Validate(map[string]any{"name": "w", "level": tt.level})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				verr, ok := schema.AsValidation(err)
				require.True(t, ok)
				assert.True(t, verr.Has("level"))
			}
		})
	}
}

func TestValidate_IntCoercion(t *testing.T) {
	s := testSchema()

	// JSON decoding hands every number over as float64.
	doc, err := s.Validate(map[string]any{"name": "w", "count": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, doc["count"])

	_, err = s.Validate(map[string]any{"name": "w", "count": 3.5})
	verr, ok := schema.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields["count"], "must be an integer")
}

func TestValidate_EnumMembership(t *testing.T) {
	s := testSchema()

	for _, member := range []string{"on", "off"} {
		_, err := s.Validate(map[string]any{"name": "w", "status": member})
		assert.NoError(t, err, member)
	}

	_, err := s.Validate(map[string]any{"name": "w", "status": "standby"})
	verr, ok := schema.AsValidation(err)
	require.True(t, ok)
	assert.True(t, verr.Has("status"))
}

func TestValidate_Pattern(t *testing.T) {
	s := testSchema()

	_, err := s.Validate(map[string]any{"name": "w", "code": "ABC"})
	assert.NoError(t, err)

	_, err = s.Validate(map[string]any{"name": "w", "code": "abc"})
	verr, ok := schema.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields["code"], "must be three uppercase letters")
}

func TestValidate_NestedObject(t *testing.T) {
	s := testSchema()

	// Once the object is present, its required children and ranges apply.
	_, err := s.Validate(map[string]any{
		"name":   "w",
		"health": map[string]any{"temperature": 150.0},
	})

	verr, ok := schema.AsValidation(err)
	require.True(t, ok)
	assert.True(t, verr.Has("health.temperature"))
	assert.True(t, verr.Has("health.serial"))
}

func TestValidate_ArrayElements(t *testing.T) {
	s := testSchema()

	_, err := s.Validate(map[string]any{
		"name": "w",
		"points": []any{
			map[string]any{"lat": 45.0},
			map[string]any{"lat": 95.0},
			map[string]any{},
		},
	})

	verr, ok := schema.AsValidation(err)
	require.True(t, ok)
	assert.True(t, verr.Has("points.1.lat"))
	assert.Contains(t, verr.Fields["points.2.lat"], "is required")
}

func TestValidate_EmptyArrayPolicy(t *testing.T) {
	s := testSchema()

	_, err := s.Validate(map[string]any{"name": "w", "points": []any{}})
	verr, ok := schema.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields["points"], "must not be empty")

	_, err = s.Validate(map[string]any{"name": "w", "tags": []any{}})
	assert.NoError(t, err)
}

func TestValidate_AccumulatesAllViolations(t *testing.T) {
	s := testSchema()

	_, err := s.Validate(map[string]any{
		"status": "standby",
		"level":  200.0,
		"code":   "nope",
	})

	verr, ok := schema.AsValidation(err)
	require.True(t, ok)
	for _, path := range []string{"name", "status", "level", "code"} {
		assert.True(t, verr.Has(path), path)
	}
}

func TestValidate_DropsUnknownKeys(t *testing.T) {
	s := testSchema()

	doc, err := s.Validate(map[string]any{"name": "w", "bogus": 1})

	require.NoError(t, err)
	_, present := doc["bogus"]
	assert.False(t, present)
}

func TestValidate_DefaultCascade(t *testing.T) {
	s := schema.Schema{
		Name: "prefs",
		Fields: map[string]schema.Field{
			"dashboard": {
				Kind:    schema.Object,
				Default: schema.EmptyDoc(),
				Fields: map[string]schema.Field{
					"defaultView":     {Kind: schema.String, Default: "overview"},
					"refreshInterval": {Kind: schema.Int, Default: 60},
				},
			},
		},
	}

	doc, err := s.Validate(map[string]any{})

	require.NoError(t, err)
	dashboard, ok := doc["dashboard"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "overview", dashboard["defaultView"])
	assert.Equal(t, 60, dashboard["refreshInterval"])
}

func TestValidatePartial_SkipsRequiredAndDefaults(t *testing.T) {
	s := testSchema()

	doc, err := s.ValidatePartial(map[string]any{"level": 50.0})

	require.NoError(t, err)
	assert.Equal(t, 50.0, doc["level"])
	_, present := doc["status"]
	assert.False(t, present, "defaults must not reapply on update")
	_, present = doc["name"]
	assert.False(t, present)
}

func TestValidatePartial_ChecksSuppliedFields(t *testing.T) {
	s := testSchema()

	_, err := s.ValidatePartial(map[string]any{"level": 101.0, "status": "standby"})

	verr, ok := schema.AsValidation(err)
	require.True(t, ok)
	assert.True(t, verr.Has("level"))
	assert.True(t, verr.Has("status"))
}

func TestValidatePartial_NewlyIntroducedObjectGetsChildDefaults(t *testing.T) {
	s := schema.Schema{
		Name: "prefs",
		Fields: map[string]schema.Field{
			"email": {
				Kind: schema.Object,
				Fields: map[string]schema.Field{
					"enabled":       {Kind: schema.Bool, Default: true},
					"weeklyReports": {Kind: schema.Bool, Default: false},
				},
			},
		},
	}

	doc, err := s.ValidatePartial(map[string]any{
		"email": map[string]any{"weeklyReports": true},
	})

	require.NoError(t, err)
	email, ok := doc["email"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, email["enabled"])
	assert.Equal(t, true, email["weeklyReports"])
}
