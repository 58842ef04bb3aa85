package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/theprojectseo/internal/db"
	"github.com/theprojectseo/internal/seo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidTracking marks a beacon with missing or malformed fields.
var ErrInvalidTracking = errors.New("invalid tracking payload")

// Views shorter than MinPageViewDuration are bounces and not stored.
const MinPageViewDuration = 500 * time.Millisecond

// Referrer sources.
const (
	SourceDirect     = "direct"
	SourceInternal   = "internal"
	SourceGoogle     = "google"
	SourceBing       = "bing"
	SourceYahoo      = "yahoo"
	SourceDuckDuckGo = "duckduckgo"
	SourceBaidu      = "baidu"
	SourceYandex     = "yandex"
	SourceFacebook   = "facebook"
	SourceTwitter    = "twitter"
	SourceLinkedIn   = "linkedin"
	SourceReddit     = "reddit"
	SourceReferral   = "referral"
)

// ReferrerInfo is the classified origin of a session.
type ReferrerInfo struct {
	Source string
	Query  string
}

type searchEngine struct {
	source string
	match  func(host string) bool
	param  string
}

var searchEngines = []searchEngine{
	{SourceGoogle, hasLabel("google"), "q"},
	{SourceBing, hasDomain("bing.com"), "q"},
	{SourceYahoo, func(h string) bool { return hasDomain("yahoo.com")(h) || strings.HasPrefix(h, "search.yahoo.") }, "p"},
	{SourceDuckDuckGo, hasDomain("duckduckgo.com"), "q"},
	{SourceBaidu, hasDomain("baidu.com"), "wd"},
	{SourceYandex, hasLabel("yandex"), "text"},
}

var socialNetworks = []struct {
	source  string
	domains []string
}{
	{SourceFacebook, []string{"facebook.com", "fb.com"}},
	{SourceTwitter, []string{"twitter.com", "x.com", "t.co"}},
	{SourceLinkedIn, []string{"linkedin.com", "lnkd.in"}},
	{SourceReddit, []string{"reddit.com"}},
}

func hasDomain(domain string) func(string) bool {
	return func(host string) bool {
		return host == domain || strings.HasSuffix(host, "."+domain)
	}
}

func hasLabel(label string) func(string) bool {
	return func(host string) bool {
		for _, part := range strings.Split(host, ".") {
			if part == label {
				return true
			}
		}
		return false
	}
}

// ParseReferrer classifies a document.referrer value. Hosts under any of
// internalHosts count as internal navigation. An empty or unparsable
// referrer is direct traffic.
func ParseReferrer(ref string, internalHosts ...string) ReferrerInfo {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ReferrerInfo{Source: SourceDirect}
	}
	u, err := url.Parse(ref)
	if err != nil || u.Hostname() == "" {
		return ReferrerInfo{Source: SourceDirect}
	}

	host := strings.ToLower(u.Hostname())
	for _, internal := range internalHosts {
		internal = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(internal)), "www.")
		if internal != "" && hasDomain(internal)(host) {
			return ReferrerInfo{Source: SourceInternal}
		}
	}

	for _, engine := range searchEngines {
		if engine.match(host) {
			return ReferrerInfo{Source: engine.source, Query: strings.TrimSpace(u.Query().Get(engine.param))}
		}
	}
	for _, network := range socialNetworks {
		for _, domain := range network.domains {
			if hasDomain(domain)(host) {
				return ReferrerInfo{Source: network.source}
			}
		}
	}
	return ReferrerInfo{Source: SourceReferral}
}

// DeviceType buckets a viewport width.
func DeviceType(width int) string {
	switch {
	case width < 768:
		return "mobile"
	case width < 1024:
		return "tablet"
	default:
		return "desktop"
	}
}

// SessionInput is posted once per browser tab.
type SessionInput struct {
	SessionID   string `json:"session_id" binding:"required"`
	LandingPage string `json:"landing_page" binding:"max=512"`
	Referrer    string `json:"referrer" binding:"max=1000"`
	ScreenWidth int    `json:"screen_width" binding:"gte=0"`
}

// PageViewInput is posted when a page is hidden or unloaded.
type PageViewInput struct {
	SessionID    string `json:"session_id" binding:"required"`
	PagePath     string `json:"page_path" binding:"required,max=512"`
	TimeOnPageMs int64  `json:"time_on_page_ms" binding:"gte=0"`
	ScrollDepth  int    `json:"scroll_depth"`
}

// TrackingService records anonymous sessions and page views.
type TrackingService struct {
	db            *gorm.DB
	internalHosts []string
}

// NewTrackingService returns a TrackingService. internalHosts are the site's
// own hostnames, never counted as referrers.
func NewTrackingService(gdb *gorm.DB, internalHosts ...string) *TrackingService {
	return &TrackingService{db: gdb, internalHosts: internalHosts}
}

// RecordSession stores a session. A repeated session_id keeps the first
// record and reports created as false.
func (s *TrackingService) RecordSession(ctx context.Context, in SessionInput, now time.Time) (*db.TrackingSession, bool, error) {
	id, err := parseSessionID(in.SessionID)
	if err != nil {
		return nil, false, err
	}
	if in.ScreenWidth < 0 {
		return nil, false, fmt.Errorf("%w: negative screen width", ErrInvalidTracking)
	}

	info := ParseReferrer(in.Referrer, s.internalHosts...)
	session := db.TrackingSession{
		SessionID:      id,
		LandingPage:    cleanPath(in.LandingPage),
		Referrer:       strings.TrimSpace(in.Referrer),
		ReferrerSource: info.Source,
		SearchQuery:    info.Query,
		DeviceType:     DeviceType(in.ScreenWidth),
		ScreenWidth:    in.ScreenWidth,
		CreatedAt:      now.UTC(),
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoNothing: true,
	}).Create(&session)
	if result.Error != nil {
		return nil, false, result.Error
	}
	return &session, result.RowsAffected == 1, nil
}

// RecordPageView stores a page view, or returns (nil, nil) when the visit was
// shorter than MinPageViewDuration.
func (s *TrackingService) RecordPageView(ctx context.Context, in PageViewInput, now time.Time) (*db.PageView, error) {
	id, err := parseSessionID(in.SessionID)
	if err != nil {
		return nil, err
	}
	path := cleanPath(in.PagePath)
	if strings.TrimSpace(in.PagePath) == "" {
		return nil, fmt.Errorf("%w: page_path is required", ErrInvalidTracking)
	}
	if time.Duration(in.TimeOnPageMs)*time.Millisecond < MinPageViewDuration {
		return nil, nil
	}

	view := db.PageView{
		SessionID:    id,
		PagePath:     path,
		PageType:     string(seo.PageType(path)),
		TimeOnPageMs: in.TimeOnPageMs,
		ScrollDepth:  clampScroll(in.ScrollDepth),
		CreatedAt:    now.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

func parseSessionID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: session_id must be a uuid", ErrInvalidTracking)
	}
	return id.String(), nil
}

func clampScroll(depth int) int {
	if depth < 0 {
		return 0
	}
	if depth > 100 {
		return 100
	}
	return depth
}

// cleanPath keeps only the path of a URL or path-with-query.
func cleanPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "/"
	}
	if u, err := url.Parse(raw); err == nil {
		raw = u.Path
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	if len(raw) > 1 {
		raw = strings.TrimSuffix(raw, "/")
	}
	return raw
}
