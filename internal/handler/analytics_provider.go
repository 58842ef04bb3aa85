package handler

import (
	"time"

	"github.com/theprojectseo/internal/service"
)

type analyticsProvider interface {
	Overview(now time.Time) (service.Overview, error)
	SessionsSince(since time.Time) (int64, error)
}
