package user

import (
	"regexp"

	"github.com/aquagrid/aquagrid/internal/schema"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rules is the validation schema for user records. Contact, address and
// password hold identifiers of the referenced records.
var Rules = schema.Schema{
	Name: "user",
	Fields: map[string]schema.Field{
		"contact":       {Kind: schema.String, Required: true},
		"address":       {Kind: schema.String, Required: true},
		"password":      {Kind: schema.String, Required: true},
		"blocked":       {Kind: schema.Bool, Default: true},
		"creation_date": {Kind: schema.Time},
	},
}

// ContactRules is the validation schema for user contact records.
var ContactRules = schema.Schema{
	Name: "userContact",
	Fields: map[string]schema.Field{
		"email": {
			Kind:       schema.String,
			Required:   true,
			Pattern:    emailPattern,
			PatternMsg: "must be a valid email address",
		},
		"firstName":   {Kind: schema.String, Required: true},
		"lastName":    {Kind: schema.String, Required: true},
		"last_update": {Kind: schema.Time},
	},
}

// AddressRules is the validation schema for user address records.
var AddressRules = schema.Schema{
	Name: "userAddress",
	Fields: map[string]schema.Field{
		"city":    {Kind: schema.String},
		"street":  {Kind: schema.String},
		"codeZip": {Kind: schema.Int},
		"country": {Kind: schema.String, Default: "Tunisia"},
	},
}

// PasswordRules is the validation schema for user password records. The
// hashing step runs after validation, in the service.
var PasswordRules = schema.Schema{
	Name: "userPassword",
	Fields: map[string]schema.Field{
		"password":    {Kind: schema.String, Required: true},
		"last_update": {Kind: schema.Time},
	},
}

// PreferencesRules is the validation schema for user preferences records.
// The notification and dashboard blocks default as whole objects so a
// freshly created record carries every toggle.
var PreferencesRules = schema.Schema{
	Name: "userPreferences",
	Fields: map[string]schema.Field{
		"userId":   {Kind: schema.String, Required: true},
		"language": {Kind: schema.String, Enum: []string{"en", "es", "fr", "de", "it", "pt"}},
		"timezone": {Kind: schema.String},
		"emailNotifications": {
			Kind:    schema.Object,
			Default: schema.EmptyDoc(),
			Fields: map[string]schema.Field{
				"enabled":              {Kind: schema.Bool, Default: true},
				"scheduleUpdates":      {Kind: schema.Bool, Default: true},
				"systemAlerts":         {Kind: schema.Bool, Default: true},
				"maintenanceReminders": {Kind: schema.Bool, Default: true},
				"weeklyReports":        {Kind: schema.Bool, Default: false},
			},
		},
		"pushNotifications": {
			Kind:    schema.Object,
			Default: schema.EmptyDoc(),
			Fields: map[string]schema.Field{
				"enabled":              {Kind: schema.Bool, Default: true},
				"scheduleUpdates":      {Kind: schema.Bool, Default: true},
				"systemAlerts":         {Kind: schema.Bool, Default: true},
				"maintenanceReminders": {Kind: schema.Bool, Default: true},
			},
		},
		"dashboard": {
			Kind:    schema.Object,
			Default: schema.EmptyDoc(),
			Fields: map[string]schema.Field{
				"defaultView": {
					Kind:    schema.String,
					Enum:    []string{"overview", "zones", "pumps", "schedules"},
					Default: "overview",
				},
				"refreshInterval": {
					Kind:    schema.Int,
					Min:     schema.Bound(30),
					Max:     schema.Bound(300),
					Default: 60,
				},
				"showWeather":    {Kind: schema.Bool, Default: true},
				"showWaterUsage": {Kind: schema.Bool, Default: true},
			},
		},
	},
}
