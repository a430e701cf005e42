package schedule

import (
	"regexp"

	"github.com/aquagrid/aquagrid/internal/schema"
)

// Schedule enum members.
var Types = []string{"interval", "calendar", "weather", "sensor"}

// timeHHMM validates a 24-hour HH:MM time string.
var timeHHMM = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Rules is the declarative validation table for schedule records. The days
// set only carries meaning for calendar schedules but is not type-gated;
// an interval schedule may legitimately submit an empty days array. New
// schedules are enabled unless stated otherwise.
var Rules = schema.Schema{
	Name: "schedule",
	Fields: map[string]schema.Field{
		"zoneId": {Kind: schema.String, Required: true},
		"type":   {Kind: schema.String, Enum: Types},
		"days": {
			Kind:       schema.Array,
			AllowEmpty: true,
			Elem:       &schema.Field{Kind: schema.Int, Min: schema.Bound(0), Max: schema.Bound(6)},
		},
		"startTime": {
			Kind:       schema.String,
			Pattern:    timeHHMM,
			PatternMsg: "must be in HH:MM format",
		},
		"duration": {Kind: schema.Int, Min: schema.Bound(1), Max: schema.Bound(1440)},
		"enabled":  {Kind: schema.Bool, Default: true},
		"weatherConditions": {
			Kind: schema.Object,
			Fields: map[string]schema.Field{
				"minTemperature": {Kind: schema.Float, Min: schema.Bound(-50), Max: schema.Bound(60)},
				"maxTemperature": {Kind: schema.Float, Min: schema.Bound(-50), Max: schema.Bound(60)},
				"maxHumidity":    {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(100)},
				"maxWindSpeed":   {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(100)},
				"noRain":         {Kind: schema.Bool},
			},
		},
		"sensorThresholds": {
			Kind: schema.Object,
			Fields: map[string]schema.Field{
				"soilMoisture": {Kind: schema.Float, Min: schema.Bound(0), Max: schema.Bound(100)},
				"temperature":  {Kind: schema.Float, Min: schema.Bound(-50), Max: schema.Bound(60)},
			},
		},
	},
}
