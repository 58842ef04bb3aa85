package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/theprojectseo/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	// ErrInvalidLeadStatus is returned for a status outside db.LeadStatuses.
	ErrInvalidLeadStatus = errors.New("invalid lead status")
)

// ValidationError carries the first user-facing problem with a submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// LeadInput is the contact form payload. Form names match the public form fields.
type LeadInput struct {
	FirstName       string `form:"firstName" json:"firstName" binding:"required,max=100"`
	LastName        string `form:"lastName" json:"lastName" binding:"required,max=100"`
	Email           string `form:"email" json:"email" binding:"required,email,max=255"`
	Company         string `form:"company" json:"company" binding:"max=200"`
	Phone           string `form:"phone" json:"phone" binding:"max=50"`
	WebsiteURL      string `form:"websiteUrl" json:"websiteUrl" binding:"max=500"`
	ServiceInterest string `form:"serviceInterest" json:"serviceInterest" binding:"max=100"`
	MonthlyBudget   string `form:"monthlyBudget" json:"monthlyBudget" binding:"max=50"`
	Message         string `form:"message" json:"message" binding:"max=5000"`
	SourcePage      string `form:"sourcePage" json:"sourcePage" binding:"max=255"`
	SourceURL       string `form:"sourceUrl" json:"sourceUrl" binding:"max=1000"`
	UTMSource       string `form:"utmSource" json:"utmSource" binding:"max=255"`
	UTMMedium       string `form:"utmMedium" json:"utmMedium" binding:"max=255"`
	UTMCampaign     string `form:"utmCampaign" json:"utmCampaign" binding:"max=255"`
	UTMTerm         string `form:"utmTerm" json:"utmTerm" binding:"max=255"`
	UTMContent      string `form:"utmContent" json:"utmContent" binding:"max=255"`
	Referrer        string `form:"referrer" json:"referrer" binding:"max=1000"`
}

var leadFieldMessages = map[string]string{
	"FirstName": "First name is required",
	"LastName":  "Last name is required",
	"Email":     "Valid email is required",
}

// LeadValidationMessage turns a binding or validation error into the single
// message shown under the form.
func LeadValidationMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "max" {
			return fmt.Sprintf("%s is too long", humanizeField(fe.Field()))
		}
		if msg, ok := leadFieldMessages[fe.Field()]; ok {
			return msg
		}
		return fmt.Sprintf("%s is invalid", humanizeField(fe.Field()))
	}
	return "Invalid form data"
}

var leadFieldLabels = map[string]string{
	"FirstName":       "First name",
	"LastName":        "Last name",
	"Email":           "Email",
	"Company":         "Company",
	"Phone":           "Phone",
	"WebsiteURL":      "Website",
	"ServiceInterest": "Service interest",
	"MonthlyBudget":   "Monthly budget",
	"Message":         "Message",
	"SourcePage":      "Source page",
	"SourceURL":       "Source URL",
	"UTMSource":       "UTM source",
	"UTMMedium":       "UTM medium",
	"UTMCampaign":     "UTM campaign",
	"UTMTerm":         "UTM term",
	"UTMContent":      "UTM content",
	"Referrer":        "Referrer",
}

func humanizeField(name string) string {
	if label, ok := leadFieldLabels[name]; ok {
		return label
	}
	return name
}

func (in *LeadInput) normalize() {
	for _, field := range []*string{
		&in.FirstName, &in.LastName, &in.Email, &in.Company, &in.Phone, &in.WebsiteURL,
		&in.ServiceInterest, &in.MonthlyBudget, &in.Message, &in.SourcePage, &in.SourceURL,
		&in.UTMSource, &in.UTMMedium, &in.UTMCampaign, &in.UTMTerm, &in.UTMContent, &in.Referrer,
	} {
		*field = strings.TrimSpace(*field)
	}
	in.Email = strings.ToLower(in.Email)
}

// Validate checks the required fields in form order and reports the first
// failure. An empty source page is accepted and reported as "Unknown".
func (in LeadInput) Validate() error {
	if in.FirstName == "" {
		return &ValidationError{Field: "firstName", Message: leadFieldMessages["FirstName"]}
	}
	if in.LastName == "" {
		return &ValidationError{Field: "lastName", Message: leadFieldMessages["LastName"]}
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return &ValidationError{Field: "email", Message: leadFieldMessages["Email"]}
	}
	return nil
}

// LeadService stores leads, fans out notifications and backs the admin list.
type LeadService struct {
	db        *gorm.DB
	logger    *zap.Logger
	notifiers []Notifier
	timeout   time.Duration
	wg        sync.WaitGroup
}

// NewLeadService returns a LeadService. Without notifiers leads are only stored.
func NewLeadService(gdb *gorm.DB, logger *zap.Logger, notifiers ...Notifier) *LeadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadService{db: gdb, logger: logger, notifiers: notifiers, timeout: notificationTimeout}
}

// WithNotifyTimeout sets the timeout of each notification.
func (s *LeadService) WithNotifyTimeout(d time.Duration) *LeadService {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Submit validates and stores a lead, then notifies every channel in the background.
// Notification failures never fail the submission.
func (s *LeadService) Submit(ctx context.Context, input LeadInput) (*db.Lead, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	lead := db.Lead{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		Company:         input.Company,
		Phone:           input.Phone,
		WebsiteURL:      input.WebsiteURL,
		ServiceInterest: input.ServiceInterest,
		MonthlyBudget:   input.MonthlyBudget,
		Message:         input.Message,
		SourcePage:      input.SourcePage,
		SourceURL:       input.SourceURL,
		UTMSource:       input.UTMSource,
		UTMMedium:       input.UTMMedium,
		UTMCampaign:     input.UTMCampaign,
		UTMTerm:         input.UTMTerm,
		UTMContent:      input.UTMContent,
		Referrer:        input.Referrer,
		Status:          db.LeadStatusNew,
	}
	if err := s.db.WithContext(ctx).Create(&lead).Error; err != nil {
		return nil, fmt.Errorf("store lead: %w", err)
	}

	s.notify(lead)
	return &lead, nil
}

func (s *LeadService) notify(lead db.Lead) {
	for _, n := range s.notifiers {
		s.wg.Add(1)
		go func(n Notifier) {
			defer s.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if err := n.Notify(ctx, lead); err != nil {
				s.logger.Warn("lead notification failed",
					zap.String("notifier", n.Name()),
					zap.Uint("lead_id", lead.ID),
					zap.Error(err))
				sentry.CaptureException(err)
				return
			}
			s.logger.Debug("lead notification sent", zap.String("notifier", n.Name()), zap.Uint("lead_id", lead.ID))
		}(n)
	}
}

// Wait blocks until in-flight notifications finish.
func (s *LeadService) Wait() {
	s.wg.Wait()
}

type LeadFilter struct {
	Status   db.LeadStatus
	Page     int
	PageSize int
}

// LeadPage is one page of the admin lead list.
type LeadPage struct {
	Leads      []db.Lead
	Total      int64
	Page       int
	TotalPages int
}

// List returns leads newest first.
func (s *LeadService) List(filter LeadFilter) (LeadPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 25
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return LeadPage{}, fmt.Errorf("%w: %s", ErrInvalidLeadStatus, filter.Status)
	}

	query := s.db.Model(&db.Lead{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	result := LeadPage{Page: filter.Page}
	if err := query.Count(&result.Total).Error; err != nil {
		return LeadPage{}, err
	}
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&result.Leads).Error; err != nil {
		return LeadPage{}, err
	}
	result.TotalPages = int((result.Total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return result, nil
}

func (s *LeadService) UpdateStatus(id uint, status db.LeadStatus) (*db.Lead, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLeadStatus, status)
	}

	var lead db.Lead
	if err := s.db.First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	if err := s.db.Model(&lead).Update("status", status).Error; err != nil {
		return nil, err
	}
	lead.Status = status
	return &lead, nil
}

// LeadCounts feeds the dashboard.
type LeadCounts struct {
	Total int64
	New   int64
	Since int64
}

// Counts returns the total, the leads still new and those created after since.
func (s *LeadService) Counts(since time.Time) (LeadCounts, error) {
	var counts LeadCounts
	if err := s.db.Model(&db.Lead{}).Count(&counts.Total).Error; err != nil {
		return counts, err
	}
	if err := s.db.Model(&db.Lead{}).Where("status = ?", db.LeadStatusNew).Count(&counts.New).Error; err != nil {
		return counts, err
	}
	if err := s.db.Model(&db.Lead{}).Where("created_at >= ?", since.UTC()).Count(&counts.Since).Error; err != nil {
		return counts, err
	}
	return counts, nil
}
