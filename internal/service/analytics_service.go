package service

import (
	"fmt"
	"math"
	"time"

	"github.com/theprojectseo/internal/db"
	"gorm.io/gorm"
)

const (
	topPagesLimit       = 30
	recentSessionsLimit = 20
)

// AnalyticsService aggregates sessions and page views for the admin overview.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb}
}

// PeriodStats is the traffic of one time window.
type PeriodStats struct {
	Days           int
	Sessions       int64
	PageViews      int64
	UniquePages    int64
	AvgTimeMs      float64
	AvgScrollDepth float64
}

// SourceCount is the number of sessions from one source.
type SourceCount struct {
	Source string
	Count  int64
}

// DeviceCount is the number of sessions per device type.
type DeviceCount struct {
	DeviceType string
	Count      int64
}

type TopPage struct {
	PagePath       string
	Views          int64
	AvgTimeMs      float64
	AvgScrollDepth float64
}

// Overview is everything the analytics page shows.
type Overview struct {
	Periods        []PeriodStats
	Sources        []SourceCount
	TotalSessions  int64
	Devices        []DeviceCount
	TopPages       []TopPage
	RecentSessions []db.TrackingSession
}

// Stats counts sessions and views in the days before now.
func (s *AnalyticsService) Stats(now time.Time, days int) (PeriodStats, error) {
	stats := PeriodStats{Days: days}
	since := now.UTC().AddDate(0, 0, -days)

	if err := s.db.Model(&db.TrackingSession{}).
		Where("created_at >= ?", since).
		Count(&stats.Sessions).Error; err != nil {
		return stats, err
	}

	var row struct {
		PageViews      int64
		UniquePages    int64
		AvgTimeMs      float64
		AvgScrollDepth float64
	}
	if err := s.db.Model(&db.PageView{}).
		Select("COUNT(*) AS page_views, COUNT(DISTINCT page_path) AS unique_pages, "+
			"COALESCE(AVG(time_on_page_ms), 0) AS avg_time_ms, COALESCE(AVG(scroll_depth), 0) AS avg_scroll_depth").
		Where("created_at >= ?", since).
		Scan(&row).Error; err != nil {
		return stats, err
	}
	stats.PageViews = row.PageViews
	stats.UniquePages = row.UniquePages
	stats.AvgTimeMs = row.AvgTimeMs
	stats.AvgScrollDepth = row.AvgScrollDepth
	return stats, nil
}

// Sources returns sessions per source, largest first.
func (s *AnalyticsService) Sources() ([]SourceCount, error) {
	var rows []SourceCount
	err := s.db.Model(&db.TrackingSession{}).
		Select("COALESCE(NULLIF(referrer_source, ''), 'unknown') AS source, COUNT(*) AS count").
		Group("source").
		Order("count DESC").Order("source").
		Scan(&rows).Error
	return rows, err
}

// Devices returns sessions per device type, largest first.
func (s *AnalyticsService) Devices() ([]DeviceCount, error) {
	var rows []DeviceCount
	err := s.db.Model(&db.TrackingSession{}).
		Select("COALESCE(NULLIF(device_type, ''), 'unknown') AS device_type, COUNT(*) AS count").
		Group("device_type").
		Order("count DESC").Order("device_type").
		Scan(&rows).Error
	return rows, err
}

// TopPages returns the most viewed pages.
func (s *AnalyticsService) TopPages(limit int) ([]TopPage, error) {
	if limit <= 0 {
		limit = topPagesLimit
	}
	var rows []TopPage
	err := s.db.Model(&db.PageView{}).
		Select("page_path, COUNT(*) AS views, AVG(time_on_page_ms) AS avg_time_ms, AVG(scroll_depth) AS avg_scroll_depth").
		Group("page_path").
		Order("views DESC").Order("page_path").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (s *AnalyticsService) RecentSessions(limit int) ([]db.TrackingSession, error) {
	if limit <= 0 {
		limit = recentSessionsLimit
	}
	var sessions []db.TrackingSession
	err := s.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&sessions).Error
	return sessions, err
}

// SessionsSince counts sessions created after since.
func (s *AnalyticsService) SessionsSince(since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&db.TrackingSession{}).Where("created_at >= ?", since.UTC()).Count(&count).Error
	return count, err
}

// Overview collects the 1, 7 and 30 day stats along with sources, devices,
// top pages and recent sessions.
func (s *AnalyticsService) Overview(now time.Time) (Overview, error) {
	var overview Overview
	for _, days := range []int{1, 7, 30} {
		stats, err := s.Stats(now, days)
		if err != nil {
			return overview, fmt.Errorf("stats %dd: %w", days, err)
		}
		overview.Periods = append(overview.Periods, stats)
	}

	var err error
	if overview.Sources, err = s.Sources(); err != nil {
		return overview, fmt.Errorf("sources: %w", err)
	}
	for _, src := range overview.Sources {
		overview.TotalSessions += src.Count
	}
	if overview.Devices, err = s.Devices(); err != nil {
		return overview, fmt.Errorf("devices: %w", err)
	}
	if overview.TopPages, err = s.TopPages(topPagesLimit); err != nil {
		return overview, fmt.Errorf("top pages: %w", err)
	}
	if overview.RecentSessions, err = s.RecentSessions(recentSessionsLimit); err != nil {
		return overview, fmt.Errorf("recent sessions: %w", err)
	}
	return overview, nil
}

// FormatDuration renders milliseconds as "850ms", "12.3s" or "2m 5s".
func FormatDuration(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", int64(math.Round(ms)))
	}
	seconds := ms / 1000
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int64(seconds / 60)
	rest := int64(math.Round(math.Mod(seconds, 60)))
	if rest == 60 {
		minutes++
		rest = 0
	}
	return fmt.Sprintf("%dm %ds", minutes, rest)
}

// Percent renders n/total with one decimal, "0%" when total is zero.
func Percent(n, total int64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
