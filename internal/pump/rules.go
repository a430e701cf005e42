package pump

import "github.com/aquagrid/aquagrid/internal/schema"

// Pump enum members.
var (
	Types    = []string{"centrifugal", "submersible", "diaphragm", "peristaltic"}
	Statuses = []string{"active", "inactive", "maintenance", "fault"}
)

// Rules is the declarative validation table for pump records. A new pump
// without an explicit status starts inactive. The health block is optional
// as a whole; once present, its readings are range-checked.
var Rules = schema.Schema{
	Name: "pump",
	Fields: map[string]schema.Field{
		"name":     {Kind: schema.String, Required: true, MaxLen: 100},
		"type":     {Kind: schema.String, Enum: Types},
		"status":   {Kind: schema.String, Enum: Statuses, Default: "inactive"},
		"flowRate": {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(10000)},
		"pressure": {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(200)},
		"health": {
			Kind: schema.Object,
			Fields: map[string]schema.Field{
				"temperature":     {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(100)},
				"efficiency":      {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(100)},
				"vibration":       {Kind: schema.Float, Min: schema.Bound(0)},
				"lastMaintenance": {Kind: schema.Time},
				"maintenanceDue":  {Kind: schema.Time},
			},
		},
	},
}
