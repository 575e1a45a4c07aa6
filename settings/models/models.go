package models

import "time"

// ---- Account Settings ----

type AccountSettings struct {
	AgencyName string `json:"agencyName"`
	Timezone   string `json:"timezone"`
	Currency   string `json:"currency"`
	Theme      string `json:"theme"`
}

type UpdateAccountSettingsRequest struct {
	AgencyName *string `json:"agencyName"`
	Timezone   *string `json:"timezone"`
	Currency   *string `json:"currency"`
	Theme      *string `json:"theme"`
}

// ---- Notifications ----

type NotificationSettings struct {
	EmailEnabled bool    `json:"emailEnabled"`
	SlackEnabled bool    `json:"slackEnabled"`
	WebhookURL   *string `json:"webhookUrl,omitempty"`
	DigestHour   int     `json:"digestHour"`
}

type UpdateNotificationSettingsRequest struct {
	EmailEnabled *bool   `json:"emailEnabled"`
	SlackEnabled *bool   `json:"slackEnabled"`
	WebhookURL   *string `json:"webhookUrl"`
	DigestHour   *int    `json:"digestHour"`
}

// ---- Outreach Templates ----

// Template is an outreach message template. Placeholders in the subject and
// body use the {{variable}} form.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Variables []string  `json:"variables"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateTemplateRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type UpdateTemplateRequest struct {
	Name    *string `json:"name"`
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
}

// RenderRequest supplies values for a template's placeholders.
type RenderRequest struct {
	Variables map[string]string `json:"variables"`
}

// RenderResponse is the substituted template. Missing lists placeholders
// that had no value and were left untouched.
type RenderResponse struct {
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	Missing []string `json:"missing,omitempty"`
}
