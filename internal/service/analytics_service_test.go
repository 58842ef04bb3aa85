package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/theprojectseo/internal/db"
	"gorm.io/gorm"
)

func seedTraffic(t *testing.T, gdb *gorm.DB, now time.Time) {
	t.Helper()

	sessions := []db.TrackingSession{
		{SessionID: "s1", ReferrerSource: SourceGoogle, DeviceType: "desktop", CreatedAt: now.Add(-2 * time.Hour)},
		{SessionID: "s2", ReferrerSource: SourceGoogle, DeviceType: "mobile", CreatedAt: now.Add(-3 * 24 * time.Hour)},
		{SessionID: "s3", ReferrerSource: SourceDirect, DeviceType: "mobile", CreatedAt: now.Add(-10 * 24 * time.Hour)},
		{SessionID: "s4", ReferrerSource: SourceReddit, DeviceType: "tablet", CreatedAt: now.Add(-40 * 24 * time.Hour)},
	}
	if err := gdb.Create(&sessions).Error; err != nil {
		t.Fatalf("failed to seed sessions: %v", err)
	}

	views := []db.PageView{
		{SessionID: "s1", PagePath: "/", TimeOnPageMs: 1000, ScrollDepth: 50, CreatedAt: now.Add(-2 * time.Hour)},
		{SessionID: "s1", PagePath: "/pricing", TimeOnPageMs: 3000, ScrollDepth: 100, CreatedAt: now.Add(-time.Hour)},
		{SessionID: "s2", PagePath: "/", TimeOnPageMs: 2000, ScrollDepth: 20, CreatedAt: now.Add(-3 * 24 * time.Hour)},
		{SessionID: "s3", PagePath: "/", TimeOnPageMs: 6000, ScrollDepth: 90, CreatedAt: now.Add(-10 * 24 * time.Hour)},
	}
	if err := gdb.Create(&views).Error; err != nil {
		t.Fatalf("failed to seed page views: %v", err)
	}
}

func TestAnalyticsPeriodStats(t *testing.T) {
	gdb := newTestDB(t)
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	seedTraffic(t, gdb, now)
	svc := NewAnalyticsService(gdb)

	day, err := svc.Stats(now, 1)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if day.Sessions != 1 || day.PageViews != 2 || day.UniquePages != 2 {
		t.Fatalf("unexpected 1d stats: %+v", day)
	}
	if day.AvgTimeMs != 2000 || day.AvgScrollDepth != 75 {
		t.Fatalf("unexpected 1d averages: %+v", day)
	}

	month, err := svc.Stats(now, 30)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if month.Sessions != 3 || month.PageViews != 4 || month.UniquePages != 2 {
		t.Fatalf("unexpected 30d stats: %+v", month)
	}
}

func TestAnalyticsEmptyStats(t *testing.T) {
	svc := NewAnalyticsService(newTestDB(t))

	stats, err := svc.Stats(time.Now(), 7)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Sessions != 0 || stats.PageViews != 0 || stats.AvgTimeMs != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestAnalyticsOverview(t *testing.T) {
	gdb := newTestDB(t)
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	seedTraffic(t, gdb, now)
	svc := NewAnalyticsService(gdb)

	overview, err := svc.Overview(now)
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}

	if len(overview.Periods) != 3 || overview.Periods[1].Days != 7 || overview.Periods[1].Sessions != 2 {
		t.Fatalf("unexpected periods: %+v", overview.Periods)
	}
	if overview.TotalSessions != 4 {
		t.Fatalf("expected 4 sessions, got %d", overview.TotalSessions)
	}
	if overview.Sources[0].Source != SourceGoogle || overview.Sources[0].Count != 2 {
		t.Fatalf("expected google first, got %+v", overview.Sources)
	}
	if overview.Devices[0].DeviceType != "mobile" || overview.Devices[0].Count != 2 {
		t.Fatalf("expected mobile first, got %+v", overview.Devices)
	}
	if overview.TopPages[0].PagePath != "/" || overview.TopPages[0].Views != 3 {
		t.Fatalf("expected / as top page, got %+v", overview.TopPages)
	}
	if overview.TopPages[0].AvgTimeMs != 3000 {
		t.Fatalf("expected avg 3000ms on /, got %v", overview.TopPages[0].AvgTimeMs)
	}
	if len(overview.RecentSessions) != 4 || overview.RecentSessions[0].SessionID != "s1" {
		t.Fatalf("expected newest session first, got %+v", overview.RecentSessions)
	}

	since, err := svc.SessionsSince(now.Add(-24 * time.Hour))
	if err != nil || since != 1 {
		t.Fatalf("expected 1 session today, got %d (%v)", since, err)
	}
}

func TestAnalyticsTopPagesLimit(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAnalyticsService(gdb)
	now := time.Now().UTC()

	for i := 0; i < 35; i++ {
		view := db.PageView{SessionID: "s", PagePath: fmt.Sprintf("/p/%02d", i), TimeOnPageMs: 1000, CreatedAt: now}
		if err := gdb.Create(&view).Error; err != nil {
			t.Fatalf("failed to seed view: %v", err)
		}
	}

	pages, err := svc.TopPages(0)
	if err != nil {
		t.Fatalf("top pages failed: %v", err)
	}
	if len(pages) != 30 {
		t.Fatalf("expected default limit of 30, got %d", len(pages))
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[float64]string{
		0:       "0ms",
		850:     "850ms",
		999.6:   "1000ms",
		1000:    "1.0s",
		12345:   "12.3s",
		59_999:  "60.0s",
		60_000:  "1m 0s",
		125_000: "2m 5s",
		179_700: "3m 0s",
	}
	for ms, want := range cases {
		if got := FormatDuration(ms); got != want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", ms, got, want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(1, 8); got != "12.5%" {
		t.Fatalf("expected 12.5%%, got %s", got)
	}
	if got := Percent(3, 3); got != "100.0%" {
		t.Fatalf("expected 100.0%%, got %s", got)
	}
	if got := Percent(5, 0); got != "0%" {
		t.Fatalf("expected 0%%, got %s", got)
	}
}
