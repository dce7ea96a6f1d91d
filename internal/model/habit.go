package model

import "time"

type HabitCategory string

const (
	CategoryHealth         HabitCategory = "health"
	CategoryFitness        HabitCategory = "fitness"
	CategoryMindfulness    HabitCategory = "mindfulness"
	CategoryProductivity   HabitCategory = "productivity"
	CategorySustainability HabitCategory = "sustainability"
	CategoryLearning       HabitCategory = "learning"
)

func (c HabitCategory) Valid() bool {
	switch c {
	case CategoryHealth, CategoryFitness, CategoryMindfulness,
		CategoryProductivity, CategorySustainability, CategoryLearning:
		return true
	}
	return false
}

// Habit belongs to one user. Streak is reversible; TotalImpactEarned is
// monotone and is not decremented when a completion is undone, because the
// partner-side impact has already been fulfilled.
type Habit struct {
	ID                uint64        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserUID           string        `gorm:"column:user_uid;size:128;index;not null" json:"userUid"`
	Name              string        `gorm:"size:120;not null" json:"name"`
	Description       string        `gorm:"type:text" json:"description"`
	Icon              string        `gorm:"size:32" json:"icon"`
	Category          HabitCategory `gorm:"size:32;not null" json:"category"`
	IsActive          bool          `gorm:"column:is_active;not null;default:true" json:"isActive"`
	Streak            uint          `gorm:"not null;default:0" json:"streak"`
	ImpactAction      ImpactAction  `gorm:"column:impact_action;size:32;not null" json:"impactAction"`
	ImpactAmount      uint          `gorm:"column:impact_amount;not null" json:"impactAmount"`
	TotalImpactEarned uint64        `gorm:"column:total_impact_earned;not null;default:0" json:"totalImpactEarned"`
	CreatedAt         time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Habit) TableName() string {
	return "habits"
}
