package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theprojectseo/internal/service"
)

// TrackSession records the first beacon of a browser tab.
func (a *API) TrackSession(c *gin.Context) {
	var input service.SessionInput
	if !bindJSON(c, &input, "invalid session payload") {
		return
	}

	if _, _, err := a.tracking.RecordSession(c.Request.Context(), input, a.now()); err != nil {
		a.trackingFailed(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TrackPageView records time on page and scroll depth for one page.
func (a *API) TrackPageView(c *gin.Context) {
	var input service.PageViewInput
	if !bindJSON(c, &input, "invalid page view payload") {
		return
	}

	if _, err := a.tracking.RecordPageView(c.Request.Context(), input, a.now()); err != nil {
		a.trackingFailed(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) trackingFailed(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidTracking) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	_ = c.Error(err)
	a.logger.Error("record tracking", zap.String("path", c.Request.URL.Path), zap.Error(err))
	respondError(c, http.StatusInternalServerError, "tracking unavailable")
}
