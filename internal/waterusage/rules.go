package waterusage

import "github.com/aquagrid/aquagrid/internal/schema"

// Rules is the declarative validation table for water usage records. The
// period endpoints carry no ordering constraint: equal start and end dates
// are legitimate and reversed periods are not rejected.
var Rules = schema.Schema{
	Name: "waterUsage",
	Fields: map[string]schema.Field{
		"zoneId":          {Kind: schema.String, Required: true},
		"startDate":       {Kind: schema.Time, Required: true},
		"endDate":         {Kind: schema.Time, Required: true},
		"waterUsedLiters": {Kind: schema.Float, Required: true, Min: schema.Bound(0)},
		"durationMinutes": {Kind: schema.Float, Required: true, Min: schema.Bound(0)},
		"averageFlowRate": {Kind: schema.Float, Required: true, Min: schema.Bound(0)},
		"weatherConditions": {
			Kind: schema.Object,
			Fields: map[string]schema.Field{
				"temperature":   {Kind: schema.Float, Min: schema.Bound(-50), Max: schema.Bound(60)},
				"humidity":      {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(100)},
				"windSpeed":     {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(100)},
				"precipitation": {Kind: schema.Float, Min: schema.Bound(0)},
			},
		},
	},
}
