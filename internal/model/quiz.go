package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title              string     `json:"title" gorm:"size:200;not null"`
	Description        string     `json:"description,omitempty" gorm:"type:text"`
	SubjectID          uuid.UUID  `json:"subject_id" gorm:"type:uuid;not null;index"`
	Subject            Subject    `json:"subject,omitempty" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE;"`
	CreatedByID        uuid.UUID  `json:"created_by_id" gorm:"type:uuid;not null;index"`
	CreatedBy          User       `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE;"`
	TimeLimit          int        `json:"time_limit" gorm:"not null"` // minutes
	IsPublished        bool       `json:"is_published" gorm:"not null;default:false"`
	ScheduledStart     *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd       *time.Time `json:"scheduled_end,omitempty"`
	AllowReview        bool       `json:"allow_review" gorm:"not null"`
	ShowScore          bool       `json:"show_score" gorm:"not null"`
	RandomizeQuestions bool       `json:"randomize_questions" gorm:"not null;default:false"`
	RandomizeChoices   bool       `json:"randomize_choices" gorm:"not null;default:false"`
	Questions          []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	ensureID(&q.ID)
	return nil
}

// IsAvailableAt reports whether students may attempt the quiz at now.
// Both schedule bounds are inclusive.
func (q *Quiz) IsAvailableAt(now time.Time) bool {
	if !q.IsPublished {
		return false
	}
	if q.ScheduledStart != nil && now.Before(*q.ScheduledStart) {
		return false
	}
	if q.ScheduledEnd != nil && now.After(*q.ScheduledEnd) {
		return false
	}
	return true
}

// MinutesUntilStart is nil when no start is scheduled, otherwise the whole
// minutes left before the start, clamped at zero.
func (q *Quiz) MinutesUntilStart(now time.Time) *int {
	return minutesUntil(q.ScheduledStart, now)
}

// MinutesUntilEnd mirrors MinutesUntilStart for the scheduled end.
func (q *Quiz) MinutesUntilEnd(now time.Time) *int {
	return minutesUntil(q.ScheduledEnd, now)
}

func minutesUntil(t *time.Time, now time.Time) *int {
	if t == nil {
		return nil
	}
	minutes := int(t.Sub(now) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	return &minutes
}

// HasValidSchedule is false when both bounds are set and end is not after start.
func (q *Quiz) HasValidSchedule() bool {
	if q.ScheduledStart == nil || q.ScheduledEnd == nil {
		return true
	}
	return q.ScheduledEnd.After(*q.ScheduledStart)
}
