package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theprojectseo/internal/db"
	"github.com/theprojectseo/internal/service"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
)

// ShowLoginPage renders the login page
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Admin login",
	})
}

// Login checks the credentials and answers an HTMX error fragment on failure
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := db.Authenticate(a.db, username, password)
	if err != nil {
		a.logger.Info("admin login failed", zap.String("username", username))
		a.renderHTML(c, http.StatusUnauthorized, "login_error.html", gin.H{"error": "Invalid username or password"})
		return
	}

	// session
	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "login_error.html", gin.H{"error": "Could not save session"})
		return
	}

	if c.GetHeader("HX-Request") != "" {
		c.Header("HX-Redirect", "/admin/dashboard")
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout clears the session
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard renders lead counts and today's sessions
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	now := a.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts, err := a.leads.Counts(startOfDay)
	if err != nil {
		_ = c.Error(err)
	}
	sessionsToday, err := a.analytics.SessionsSince(startOfDay)
	if err != nil {
		_ = c.Error(err)
	}
	recent, err := a.leads.List(service.LeadFilter{PageSize: 5})
	if err != nil {
		_ = c.Error(err)
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":         "Dashboard",
		"username":      session.Get(sessionUsernameKey),
		"leadCount":     counts.Total,
		"newLeadCount":  counts.New,
		"leadsToday":    counts.Since,
		"sessionsToday": sessionsToday,
		"recentLeads":   recent.Leads,
		"pageCount":     len(a.catalog.Routes()),
	})
}

// ShowAnalytics renders the traffic overview
func (a *API) ShowAnalytics(c *gin.Context) {
	overview, err := a.analytics.Overview(a.now())
	if err != nil {
		_ = c.Error(err)
		a.logger.Error("load analytics", zap.Error(err))
		a.renderHTML(c, http.StatusInternalServerError, "analytics.html", gin.H{
			"title": "Analytics",
			"error": "Analytics are unavailable right now.",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "analytics.html", gin.H{
		"title":    "Analytics",
		"username": sessions.Default(c).Get(sessionUsernameKey),
		"overview": overview,
	})
}

// ShowLeads lists leads, filtered by the status and page query parameters
func (a *API) ShowLeads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	filter := service.LeadFilter{
		Status: db.LeadStatus(c.Query("status")),
		Page:   page,
	}

	result, err := a.leads.List(filter)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidLeadStatus) {
			status = http.StatusBadRequest
		} else {
			_ = c.Error(err)
		}
		a.renderHTML(c, status, "leads.html", gin.H{
			"title":    "Leads",
			"error":    err.Error(),
			"page":     1,
			"pages":    0,
			"filter":   db.LeadStatus(""),
			"statuses": db.LeadStatuses(),
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "leads.html", gin.H{
		"title":    "Leads",
		"username": sessions.Default(c).Get(sessionUsernameKey),
		"leads":    result.Leads,
		"total":    result.Total,
		"page":     result.Page,
		"pages":    result.TotalPages,
		"filter":   filter.Status,
		"statuses": db.LeadStatuses(),
	})
}

type leadStatusRequest struct {
	Status db.LeadStatus `form:"status" json:"status" binding:"required"`
}

// UpdateLeadStatus changes the status of one lead
func (a *API) UpdateLeadStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req leadStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "status is required")
		return
	}

	lead, err := a.leads.UpdateStatus(id, req.Status)
	switch {
	case errors.Is(err, service.ErrInvalidLeadStatus):
		respondError(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrLeadNotFound):
		respondError(c, http.StatusNotFound, err.Error())
		return
	case err != nil:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "failed to update lead")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": lead.ID, "status": lead.Status})
}

// AuthRequired redirects requests without an admin session to the login page
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(sessionUserIDKey)
		if userID == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
