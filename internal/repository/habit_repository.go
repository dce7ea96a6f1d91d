package repository

import (
	"context"

	"github.com/sproutly/sprout-backend/internal/model"
	"gorm.io/gorm"
)

type HabitRepository interface {
	Create(ctx context.Context, h *model.Habit) error
	// FindOwned loads an active habit and checks ownership in the query so a
	// foreign habit id reads as not found, not forbidden.
	FindOwned(ctx context.Context, id uint64, uid string) (*model.Habit, error)
	ListActive(ctx context.Context, uid string) ([]model.Habit, error)
	Update(ctx context.Context, h *model.Habit) error
	Deactivate(ctx context.Context, id uint64) error
	SetDB(db *gorm.DB)
}

type habitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *habitRepository) Create(ctx context.Context, h *model.Habit) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *habitRepository) FindOwned(ctx context.Context, id uint64, uid string) (*model.Habit, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var h model.Habit
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_uid = ? AND is_active = ?", id, uid, true).
		First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *habitRepository) ListActive(ctx context.Context, uid string) ([]model.Habit, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Habit
	if err := r.db.WithContext(ctx).
		Where("user_uid = ? AND is_active = ?", uid, true).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *habitRepository) Update(ctx context.Context, h *model.Habit) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *habitRepository) Deactivate(ctx context.Context, id uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Model(&model.Habit{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
