package model

import "time"

// User rows are upserted on the first authenticated request and never deleted.
// The counters are mutated with atomic SQL expressions, not read-modify-write.
type User struct {
	UID           string `gorm:"column:uid;primaryKey;size:128" json:"uid"`
	Email         string `gorm:"column:email;size:255" json:"email"`
	Name          string `gorm:"column:name;size:255" json:"name"`
	TreesPlanted  int    `gorm:"column:trees_planted;not null;default:0" json:"treesPlanted"`
	CurrentStreak int    `gorm:"column:current_streak;not null;default:0" json:"currentStreak"`
	LongestStreak int    `gorm:"column:longest_streak;not null;default:0" json:"longestStreak"`

	OnboardingCompleted bool               `gorm:"column:onboarding_completed;not null;default:false" json:"onboardingCompleted"`
	OnboardingProfile   *OnboardingProfile `gorm:"column:onboarding_profile;serializer:json" json:"onboardingProfile,omitempty"`
	CelebrationPrefs    *CelebrationPrefs  `gorm:"column:celebration_prefs;serializer:json" json:"celebrationPrefs,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
