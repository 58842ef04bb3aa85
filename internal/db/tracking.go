package db

import "time"

// TrackingSession 记录一次浏览会话的来源与设备信息。
type TrackingSession struct {
	ID             uint   `gorm:"primaryKey"`
	SessionID      string `gorm:"size:64;uniqueIndex;not null"`
	LandingPage    string `gorm:"size:512"`
	Referrer       string `gorm:"size:1000"`
	ReferrerSource string `gorm:"size:32;index"`
	SearchQuery    string `gorm:"size:500"`
	DeviceType     string `gorm:"size:16"`
	ScreenWidth    int
	CreatedAt      time.Time `gorm:"index"`
}

// TableName 指定自定义表名。
func (TrackingSession) TableName() string {
	return "tracking_sessions"
}

// PageView 记录会话内单个页面的停留时长与滚动深度。
type PageView struct {
	ID           uint      `gorm:"primaryKey"`
	SessionID    string    `gorm:"size:64;index;not null"`
	PagePath     string    `gorm:"size:512;index;not null"`
	PageType     string    `gorm:"size:32"`
	TimeOnPageMs int64     `gorm:"not null;default:0"`
	ScrollDepth  int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"index"`
}

// TableName 指定自定义表名。
func (PageView) TableName() string {
	return "page_views"
}
