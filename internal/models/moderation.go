package models

import "time"

type Block struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	BlockerID string    `gorm:"type:uuid;index:idx_block_pair;not null" json:"blocker_id"`
	BlockedID string    `gorm:"type:uuid;index:idx_block_pair;not null" json:"blocked_id"`
	Reason    string    `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReportReason string

const (
	ReportReasonHarassment        ReportReason = "harassment"
	ReportReasonFakeProfile       ReportReason = "fake_profile"
	ReportReasonInappropriate     ReportReason = "inappropriate_content"
	ReportReasonSpam              ReportReason = "spam"
	ReportReasonUnderageSuspicion ReportReason = "underage"
	ReportReasonOther             ReportReason = "other"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

type ReportedContentType string

const (
	ContentTypeProfile    ReportedContentType = "profile"
	ContentTypeMessage    ReportedContentType = "message"
	ContentTypeConfession ReportedContentType = "confession"
	ContentTypeEvent      ReportedContentType = "event"
	ContentTypePhoto      ReportedContentType = "photo"
)

type Report struct {
	ID                  string              `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID          string              `gorm:"type:uuid;index;not null" json:"reporter_id"`
	ReportedUserID      string              `gorm:"type:uuid;index" json:"reported_user_id,omitempty"`
	ReportedContentType ReportedContentType `gorm:"size:20;not null" json:"reported_content_type"`
	ReportedContentID   string              `gorm:"type:uuid" json:"reported_content_id,omitempty"`
	Reason              ReportReason        `gorm:"size:30;not null" json:"reason"`
	Description         string              `gorm:"type:text" json:"description,omitempty"`
	Status              ReportStatus        `gorm:"size:20;default:'pending';not null" json:"status"`
	ReviewedBy          string              `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt          *time.Time          `json:"reviewed_at,omitempty"`
	ActionTaken         string              `gorm:"size:255" json:"action_taken,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// AssignForReview moves a pending report into review under a moderator.
func (r *Report) AssignForReview(moderatorID string, now time.Time) {
	r.Status = ReportStatusReviewing
	r.ReviewedBy = moderatorID
	t := now
	r.ReviewedAt = &t
}

func (r *Report) Resolve(action string, now time.Time) {
	r.Status = ReportStatusResolved
	r.ActionTaken = action
	t := now
	r.ReviewedAt = &t
}

func (r *Report) Dismiss(now time.Time) {
	r.Status = ReportStatusDismissed
	t := now
	r.ReviewedAt = &t
}

func (r *Report) Pending() bool {
	return r.Status == ReportStatusPending
}

func (r *Report) DaysOpen(now time.Time) int {
	return int(now.Sub(r.CreatedAt).Hours() / 24)
}
