package db

import "time"

// LeadStatus 描述线索在销售流程中的阶段。
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusClosed    LeadStatus = "closed"
)

// LeadStatuses 按流程顺序列出全部状态。
func LeadStatuses() []LeadStatus {
	return []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusClosed}
}

// Valid 判断状态是否合法。
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusClosed:
		return true
	}
	return false
}

// Lead 记录一次联系表单提交。
type Lead struct {
	ID              uint       `gorm:"primaryKey"`
	FirstName       string     `gorm:"size:100;not null"`
	LastName        string     `gorm:"size:100;not null"`
	Email           string     `gorm:"size:255;not null;index"`
	Company         string     `gorm:"size:200"`
	Phone           string     `gorm:"size:50"`
	WebsiteURL      string     `gorm:"size:500"`
	ServiceInterest string     `gorm:"size:100"`
	MonthlyBudget   string     `gorm:"size:50"`
	Message         string     `gorm:"type:text"`
	SourcePage      string     `gorm:"size:255;not null"`
	SourceURL       string     `gorm:"size:1000"`
	UTMSource       string     `gorm:"size:255"`
	UTMMedium       string     `gorm:"size:255"`
	UTMCampaign     string     `gorm:"size:255"`
	UTMTerm         string     `gorm:"size:255"`
	UTMContent      string     `gorm:"size:255"`
	Referrer        string     `gorm:"size:1000"`
	Status          LeadStatus `gorm:"size:20;not null;default:new;index"`
	CreatedAt       time.Time  `gorm:"index"`
	UpdatedAt       time.Time
}

// FullName 拼接姓名。
func (l Lead) FullName() string {
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}
