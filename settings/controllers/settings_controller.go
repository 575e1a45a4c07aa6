package controllers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	m "github.com/mostafaosama999/Marketing-agent-sub006/settings/models"
	u "github.com/mostafaosama999/Marketing-agent-sub006/settings/utils"
)

// In-memory store. The sidecar keeps no database of its own.
var (
	mu       sync.Mutex
	nextID   = 1
	account  = m.AccountSettings{AgencyName: "Demo Agency", Timezone: "UTC", Currency: "USD", Theme: "system"}
	notify   = m.NotificationSettings{EmailEnabled: true, SlackEnabled: false, DigestHour: 9}
	tmplByID = map[string]*m.Template{}
)

func init() {
	seedTemplate("Welcome", "Welcome to {{agency}}, {{client}}!",
		"Hi {{client}},\n\nThanks for choosing {{agency}}. Your account manager is {{manager}}.\n")
	seedTemplate("Monthly report", "{{client}}: your {{month}} results",
		"Hi {{client}},\n\nYour {{month}} campaign report is attached.\n")
}

func seedTemplate(name, subject, body string) {
	now := time.Now()
	t := &m.Template{
		ID:        fmt.Sprintf("tpl_%d", nextID),
		Name:      name,
		Subject:   subject,
		Body:      body,
		Variables: u.ExtractVariables(subject + " " + body),
		CreatedAt: now,
		UpdatedAt: now,
	}
	nextID++
	tmplByID[t.ID] = t
}

// Account

func GetAccountSettings(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	u.JSON(c, http.StatusOK, account)
}

func UpdateAccountSettings(c *gin.Context) {
	var req m.UpdateAccountSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	if req.AgencyName != nil {
		account.AgencyName = *req.AgencyName
	}
	if req.Timezone != nil {
		account.Timezone = *req.Timezone
	}
	if req.Currency != nil {
		account.Currency = *req.Currency
	}
	if req.Theme != nil {
		account.Theme = *req.Theme
	}
	u.JSON(c, http.StatusOK, account)
}

// Notifications

func GetNotificationSettings(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	u.JSON(c, http.StatusOK, notify)
}

func UpdateNotificationSettings(c *gin.Context) {
	var req m.UpdateNotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	if req.EmailEnabled != nil {
		notify.EmailEnabled = *req.EmailEnabled
	}
	if req.SlackEnabled != nil {
		notify.SlackEnabled = *req.SlackEnabled
	}
	if req.WebhookURL != nil {
		notify.WebhookURL = req.WebhookURL
	}
	if req.DigestHour != nil {
		if *req.DigestHour < 0 || *req.DigestHour > 23 {
			u.Error(c, http.StatusBadRequest, "digestHour must be 0-23")
			return
		}
		notify.DigestHour = *req.DigestHour
	}
	u.JSON(c, http.StatusOK, notify)
}

// Outreach templates

func ListTemplates(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	templates := make([]*m.Template, 0, len(tmplByID))
	for _, t := range tmplByID {
		templates = append(templates, t)
	}
	u.JSON(c, http.StatusOK, templates)
}

func GetTemplate(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	t, ok := tmplByID[c.Param("id")]
	if !ok {
		u.Error(c, http.StatusNotFound, "template not found")
		return
	}
	u.JSON(c, http.StatusOK, t)
}

func CreateTemplate(c *gin.Context) {
	var req m.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Body == "" {
		u.Error(c, http.StatusBadRequest, "name and body are required")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	now := time.Now()
	t := &m.Template{
		ID:        fmt.Sprintf("tpl_%d", nextID),
		Name:      req.Name,
		Subject:   req.Subject,
		Body:      req.Body,
		Variables: u.ExtractVariables(req.Subject + " " + req.Body),
		CreatedAt: now,
		UpdatedAt: now,
	}
	nextID++
	tmplByID[t.ID] = t
	u.JSON(c, http.StatusCreated, t)
}

func UpdateTemplate(c *gin.Context) {
	var req m.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	t, ok := tmplByID[c.Param("id")]
	if !ok {
		u.Error(c, http.StatusNotFound, "template not found")
		return
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Subject != nil {
		t.Subject = *req.Subject
	}
	if req.Body != nil {
		t.Body = *req.Body
	}
	t.Variables = u.ExtractVariables(t.Subject + " " + t.Body)
	t.UpdatedAt = time.Now()
	u.JSON(c, http.StatusOK, t)
}

func DeleteTemplate(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := tmplByID[c.Param("id")]; !ok {
		u.Error(c, http.StatusNotFound, "template not found")
		return
	}
	delete(tmplByID, c.Param("id"))
	u.JSON(c, http.StatusNoContent, nil)
}

func RenderTemplate(c *gin.Context) {
	var req m.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	t, ok := tmplByID[c.Param("id")]
	if !ok {
		u.Error(c, http.StatusNotFound, "template not found")
		return
	}

	subject, missingSubject := u.Substitute(t.Subject, req.Variables)
	body, missingBody := u.Substitute(t.Body, req.Variables)

	seen := map[string]bool{}
	var missing []string
	for _, name := range append(missingSubject, missingBody...) {
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
	}

	u.JSON(c, http.StatusOK, m.RenderResponse{Subject: subject, Body: body, Missing: missing})
}
