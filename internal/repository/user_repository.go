package repository

import (
	"context"

	"github.com/sproutly/sprout-backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	// Upsert creates the user row on first login and refreshes email/name
	// from the identity token on subsequent logins.
	Upsert(ctx context.Context, uid, email, name string) (*model.User, error)
	Get(ctx context.Context, uid string) (*model.User, error)
	// RecordTreeImpact bumps trees_planted and the streak counters after a
	// successful tree-planting partner call.
	RecordTreeImpact(ctx context.Context, uid string, trees int, habitStreak int) error
	SaveOnboarding(ctx context.Context, uid string, profile *model.OnboardingProfile, prefs *model.CelebrationPrefs) error
	SetDB(db *gorm.DB)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *userRepository) Upsert(ctx context.Context, uid, email, name string) (*model.User, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	u := model.User{UID: uid}
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Attrs(&model.User{UID: uid, Email: email, Name: name}).
		FirstOrCreate(&u).Error; err != nil {
		return nil, err
	}
	if (email != "" && u.Email != email) || (name != "" && u.Name != name) {
		updates := map[string]interface{}{}
		if email != "" {
			updates["email"] = email
			u.Email = email
		}
		if name != "" {
			updates["name"] = name
			u.Name = name
		}
		if err := r.db.WithContext(ctx).Model(&model.User{}).
			Where("uid = ?", uid).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &u, nil
}

func (r *userRepository) Get(ctx context.Context, uid string) (*model.User, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var u model.User
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) RecordTreeImpact(ctx context.Context, uid string, trees int, habitStreak int) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	if trees <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"trees_planted":  gorm.Expr("trees_planted + ?", trees),
			"current_streak": habitStreak,
			"longest_streak": gorm.Expr("GREATEST(longest_streak, ?)", habitStreak),
		}).Error
}

func (r *userRepository) SaveOnboarding(ctx context.Context, uid string, profile *model.OnboardingProfile, prefs *model.CelebrationPrefs) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	// Struct-based update so the serializer:json fields are encoded.
	return r.db.WithContext(ctx).Model(&model.User{UID: uid}).
		Select("OnboardingCompleted", "OnboardingProfile", "CelebrationPrefs").
		Updates(&model.User{
			OnboardingCompleted: true,
			OnboardingProfile:   profile,
			CelebrationPrefs:    prefs,
		}).Error
}
