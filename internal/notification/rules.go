package notification

import "github.com/aquagrid/aquagrid/internal/schema"

// Notification enum members.
var (
	Statuses   = []string{"pending", "sent", "failed", "cancelled"}
	Priorities = []string{"low", "normal", "high", "urgent"}
	Channels   = []string{"email", "push", "sms", "webhook"}
)

// Rules is the declarative validation table for notification records.
var Rules = schema.Schema{
	Name: "notification",
	Fields: map[string]schema.Field{
		"moduleName": {Kind: schema.String, Required: true, MaxLen: 100},
		"action":     {Kind: schema.String, Required: true, MaxLen: 100},
		"status":     {Kind: schema.String, Enum: Statuses, Default: "pending"},
		"payload": {
			Kind:     schema.Object,
			Required: true,
			Fields: map[string]schema.Field{
				"title":    {Kind: schema.String, Required: true, MaxLen: 200},
				"message":  {Kind: schema.String, Required: true, MaxLen: 1000},
				"data":     {Kind: schema.Map, Default: schema.EmptyDoc()},
				"priority": {Kind: schema.String, Enum: Priorities, Default: "normal"},
				"category": {Kind: schema.String, MaxLen: 50},
			},
		},
	},
}

// SubscriberRules is the declarative validation table for notification
// subscriber records.
var SubscriberRules = schema.Schema{
	Name: "notificationSubscriber",
	Fields: map[string]schema.Field{
		"notificationId": {Kind: schema.String, Required: true},
		"userId":         {Kind: schema.String, Required: true},
		"channel":        {Kind: schema.String, Enum: Channels},
		"seen":           {Kind: schema.Bool, Default: false},
		"seenAt":         {Kind: schema.Time},
		"sentAt":         {Kind: schema.Time},
	},
}
