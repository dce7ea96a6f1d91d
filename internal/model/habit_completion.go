package model

import "time"

// DayKeyFormat is the calendar-day key used by the one-completion-per-day
// unique index. Days are keyed in the server's local time zone.
const DayKeyFormat = "2006-01-02"

func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// HabitCompletion is one completed day for a habit. The unique index on
// (habit_id, completed_on) makes the one-per-day invariant structural:
// a concurrent duplicate toggle loses the insert race with a duplicate-key
// error instead of double-counting the streak.
type HabitCompletion struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	HabitID     uint64    `gorm:"column:habit_id;index:idx_habit_day,unique;not null" json:"habitId"`
	UserUID     string    `gorm:"column:user_uid;size:128;index;not null" json:"userUid"`
	CompletedAt time.Time `gorm:"column:completed_at;not null" json:"completedAt"`
	CompletedOn string    `gorm:"column:completed_on;size:10;index:idx_habit_day,unique;not null" json:"completedOn"`

	ImpactCreated bool         `gorm:"column:impact_created;not null;default:false" json:"impactCreated"`
	ImpactID      *string      `gorm:"column:impact_id;size:128" json:"impactId,omitempty"`
	ImpactAction  ImpactAction `gorm:"column:impact_action;size:32;not null" json:"impactAction"`
	ImpactAmount  uint         `gorm:"column:impact_amount;not null" json:"impactAmount"`

	EmotionalFeedback *int `gorm:"column:emotional_feedback" json:"emotionalFeedback,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (HabitCompletion) TableName() string {
	return "habit_completions"
}
