package auth

import "github.com/aquagrid/aquagrid/internal/schema"

// SessionRules is the validation schema for session records.
var SessionRules = schema.Schema{
	Name: "session",
	Fields: map[string]schema.Field{
		"userId":       {Kind: schema.String, Required: true},
		"refreshToken": {Kind: schema.String, Required: true},
		"userAgent":    {Kind: schema.String, MaxLen: 500},
		"ipAddress":    {Kind: schema.String, MaxLen: 45},
		"expiresAt":    {Kind: schema.Time, Required: true},
		"isValid":      {Kind: schema.Bool, Default: true},
	},
}
