package repository

import (
	"context"
	"errors"

	"github.com/sproutly/sprout-backend/internal/model"
	"gorm.io/gorm"
)

type CompletionRepository interface {
	FindByHabitAndDay(ctx context.Context, habitID uint64, day string) (*model.HabitCompletion, error)
	FindByID(ctx context.Context, id uint64) (*model.HabitCompletion, error)
	// Complete inserts the completion and bumps the habit counters in one
	// transaction. Returns gorm.ErrDuplicatedKey when a concurrent toggle for
	// the same habit/day won the insert race.
	Complete(ctx context.Context, c *model.HabitCompletion) error
	// Uncomplete deletes the completion and decrements the habit streak,
	// floored at zero. total_impact_earned is deliberately not reversed: the
	// partner-side impact is already fulfilled.
	Uncomplete(ctx context.Context, completionID, habitID uint64) error
	MarkImpact(ctx context.Context, completionID uint64, impactID string) error
	SetFeedback(ctx context.Context, completionID uint64, uid string, rating int) error
	ListByUserBetween(ctx context.Context, uid string, fromDay, toDay string) ([]model.HabitCompletion, error)
	// ListImpact returns impact-created completions newest first; limit <= 0
	// means no limit.
	ListImpact(ctx context.Context, uid string, limit int) ([]model.HabitCompletion, error)
	SetDB(db *gorm.DB)
}

type completionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *completionRepository) FindByHabitAndDay(ctx context.Context, habitID uint64, day string) (*model.HabitCompletion, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var c model.HabitCompletion
	err := r.db.WithContext(ctx).
		Where("habit_id = ? AND completed_on = ?", habitID, day).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *completionRepository) FindByID(ctx context.Context, id uint64) (*model.HabitCompletion, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var c model.HabitCompletion
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *completionRepository) Complete(ctx context.Context, c *model.HabitCompletion) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&model.Habit{}).
			Where("id = ?", c.HabitID).
			Updates(map[string]interface{}{
				"streak":              gorm.Expr("streak + 1"),
				"total_impact_earned": gorm.Expr("total_impact_earned + ?", c.ImpactAmount),
			}).Error
	})
}

func (r *completionRepository) Uncomplete(ctx context.Context, completionID, habitID uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.HabitCompletion{}, completionID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.Habit{}).
			Where("id = ?", habitID).
			Update("streak", gorm.Expr("GREATEST(CAST(streak AS SIGNED) - 1, 0)")).Error
	})
}

func (r *completionRepository) MarkImpact(ctx context.Context, completionID uint64, impactID string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Model(&model.HabitCompletion{}).
		Where("id = ?", completionID).
		Updates(map[string]interface{}{
			"impact_created": true,
			"impact_id":      impactID,
		}).Error
}

func (r *completionRepository) SetFeedback(ctx context.Context, completionID uint64, uid string, rating int) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	res := r.db.WithContext(ctx).Model(&model.HabitCompletion{}).
		Where("id = ? AND user_uid = ?", completionID, uid).
		Update("emotional_feedback", rating)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *completionRepository) ListByUserBetween(ctx context.Context, uid string, fromDay, toDay string) ([]model.HabitCompletion, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.HabitCompletion
	if err := r.db.WithContext(ctx).
		Where("user_uid = ? AND completed_on >= ? AND completed_on <= ?", uid, fromDay, toDay).
		Order("completed_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *completionRepository) ListImpact(ctx context.Context, uid string, limit int) ([]model.HabitCompletion, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).
		Where("user_uid = ? AND impact_created = ?", uid, true).
		Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []model.HabitCompletion
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
