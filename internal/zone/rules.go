package zone

import "github.com/aquagrid/aquagrid/internal/schema"

// Zone enum members.
var (
	Statuses        = []string{"active", "inactive", "maintenance"}
	VegetationTypes = []string{"grass", "trees", "shrubs", "flowers", "crops", "mixed"}
	SoilTypes       = []string{"clay", "sandy", "loam", "silt", "peat"}
)

// Rules is the declarative validation table for zone records. The
// coordinate polygon must not be empty when supplied, and every point
// needs both a latitude and a longitude.
var Rules = schema.Schema{
	Name: "zone",
	Fields: map[string]schema.Field{
		"name":           {Kind: schema.String, MaxLen: 100},
		"pumpId":         {Kind: schema.String, Required: true},
		"status":         {Kind: schema.String, Enum: Statuses, Default: "active"},
		"area":           {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(1000000)},
		"vegetationType": {Kind: schema.String, Enum: VegetationTypes},
		"soilType":       {Kind: schema.String, Enum: SoilTypes},
		"coordinates": {
			Kind: schema.Array,
			Elem: &schema.Field{
				Kind: schema.Object,
				Fields: map[string]schema.Field{
					"latitude":  {Kind: schema.Float, Required: true, Min: schema.Bound(-90), Max: schema.Bound(90)},
					"longitude": {Kind: schema.Float, Required: true, Min: schema.Bound(-180), Max: schema.Bound(180)},
				},
			},
		},
	},
}
