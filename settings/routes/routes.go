package routes

import (
	"github.com/gin-gonic/gin"

	c "github.com/mostafaosama999/Marketing-agent-sub006/settings/controllers"
)

func RegisterSettingsRoutes(r *gin.Engine) {
	// Account
	r.GET("/account/settings", c.GetAccountSettings)
	r.PUT("/account/settings", c.UpdateAccountSettings)

	// Notifications
	r.GET("/notifications/settings", c.GetNotificationSettings)
	r.PUT("/notifications/settings", c.UpdateNotificationSettings)

	// Outreach templates
	r.GET("/templates", c.ListTemplates)
	r.POST("/templates", c.CreateTemplate)
	r.GET("/templates/:id", c.GetTemplate)
	r.PUT("/templates/:id", c.UpdateTemplate)
	r.DELETE("/templates/:id", c.DeleteTemplate)
	r.POST("/templates/:id/render", c.RenderTemplate)
}
