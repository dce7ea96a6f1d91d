package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sproutly/sprout-backend/internal/ai"
	"github.com/sproutly/sprout-backend/internal/impact"
	"github.com/sproutly/sprout-backend/internal/model"
	"github.com/sproutly/sprout-backend/internal/repository"
	"github.com/sproutly/sprout-backend/internal/reqctx"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type CreateHabitInput struct {
	Name         string
	Description  string
	Icon         string
	Category     model.HabitCategory
	ImpactAction model.ImpactAction
	ImpactAmount uint
}

type UpdateHabitInput struct {
	Name        *string
	Description *string
	Icon        *string
}

type ToggleResult struct {
	Completed     bool               `json:"completed"`
	Streak        uint               `json:"streak"`
	ImpactCreated bool               `json:"impactCreated"`
	ImpactID      *string            `json:"impactId,omitempty"`
	ImpactAction  model.ImpactAction `json:"impactAction"`
	ImpactAmount  uint               `json:"impactAmount"`
}

type HabitService interface {
	Create(ctx context.Context, uid string, in CreateHabitInput) (*model.Habit, error)
	List(ctx context.Context, uid string) ([]model.Habit, error)
	Update(ctx context.Context, uid string, id uint64, in UpdateHabitInput) (*model.Habit, error)
	Delete(ctx context.Context, uid string, id uint64) error
	Toggle(ctx context.Context, uid string, id uint64, date time.Time) (*ToggleResult, error)
	Celebration(ctx context.Context, uid string, id uint64) (*ai.CelebrationMessage, error)
	RecordFeedback(ctx context.Context, uid string, completionID uint64, rating int) error
}

type habitService struct {
	habits      repository.HabitRepository
	completions repository.CompletionRepository
	users       repository.UserRepository
	partner     impact.Adapter
	celebrator  *ai.Celebrator
}

func NewHabitService(habits repository.HabitRepository, completions repository.CompletionRepository, users repository.UserRepository, partner impact.Adapter, celebrator *ai.Celebrator) HabitService {
	return &habitService{
		habits:      habits,
		completions: completions,
		users:       users,
		partner:     partner,
		celebrator:  celebrator,
	}
}

func (s *habitService) Create(ctx context.Context, uid string, in CreateHabitInput) (*model.Habit, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 120 {
		return nil, errors.New("invalid name")
	}
	if !in.Category.Valid() {
		return nil, errors.New("invalid category")
	}
	if !in.ImpactAction.Valid() {
		return nil, errors.New("invalid impactAction")
	}
	if in.ImpactAmount == 0 {
		return nil, errors.New("impactAmount must be positive")
	}
	h := &model.Habit{
		UserUID:      uid,
		Name:         in.Name,
		Description:  strings.TrimSpace(in.Description),
		Icon:         strings.TrimSpace(in.Icon),
		Category:     in.Category,
		IsActive:     true,
		ImpactAction: in.ImpactAction,
		ImpactAmount: in.ImpactAmount,
	}
	if err := s.habits.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *habitService) List(ctx context.Context, uid string) ([]model.Habit, error) {
	return s.habits.ListActive(ctx, uid)
}

func (s *habitService) Update(ctx context.Context, uid string, id uint64, in UpdateHabitInput) (*model.Habit, error) {
	h, err := s.findOwned(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > 120 {
			return nil, errors.New("invalid name")
		}
		h.Name = name
	}
	if in.Description != nil {
		h.Description = strings.TrimSpace(*in.Description)
	}
	if in.Icon != nil {
		h.Icon = strings.TrimSpace(*in.Icon)
	}
	if err := s.habits.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *habitService) Delete(ctx context.Context, uid string, id uint64) error {
	h, err := s.findOwned(ctx, id, uid)
	if err != nil {
		return err
	}
	return s.habits.Deactivate(ctx, h.ID)
}

// Toggle flips the completion state of a habit for the given calendar day.
//
// Un-complete removes the completion row and decrements the streak (floored
// at zero) but does not reverse total_impact_earned or the partner call: the
// impact was already fulfilled externally and cannot be clawed back.
//
// Complete writes the completion and counter bumps in one transaction, then
// calls the impact partner. Partner failure is logged and reported as
// impactCreated=false; it never fails the toggle.
func (s *habitService) Toggle(ctx context.Context, uid string, id uint64, date time.Time) (*ToggleResult, error) {
	habit, err := s.findOwned(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	ctx = reqctx.WithHabitID(ctx, habit.ID)
	day := model.DayKey(date)

	existing, err := s.completions.FindByHabitAndDay(ctx, habit.ID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.completions.Uncomplete(ctx, existing.ID, habit.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// A concurrent un-complete already removed the row.
				return nil, ErrNotFound
			}
			return nil, err
		}
		streak := habit.Streak
		if streak > 0 {
			streak--
		}
		return &ToggleResult{
			Completed:    false,
			Streak:       streak,
			ImpactAction: habit.ImpactAction,
			ImpactAmount: habit.ImpactAmount,
		}, nil
	}

	completion := &model.HabitCompletion{
		HabitID:      habit.ID,
		UserUID:      uid,
		CompletedAt:  date,
		CompletedOn:  day,
		ImpactAction: habit.ImpactAction,
		ImpactAmount: habit.ImpactAmount,
	}
	if err := s.completions.Complete(ctx, completion); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent toggle for the same day won the insert race. The
			// habit is completed; this request created no impact.
			log.Printf("[impact] rid=%s habit=%d stage=duplicate_completion day=%s", reqctx.RID(ctx), habit.ID, day)
			return &ToggleResult{
				Completed:    true,
				Streak:       habit.Streak + 1,
				ImpactAction: habit.ImpactAction,
				ImpactAmount: habit.ImpactAmount,
			}, nil
		}
		return nil, err
	}
	newStreak := habit.Streak + 1

	description := fmt.Sprintf("%s: %s, day %d of the streak", habit.Name, habit.ImpactAction.Describe(habit.ImpactAmount), newStreak)
	res := s.partner.CreateImpact(ctx, impact.Request{Action: habit.ImpactAction, Amount: habit.ImpactAmount}, description)

	result := &ToggleResult{
		Completed:    true,
		Streak:       newStreak,
		ImpactAction: habit.ImpactAction,
		ImpactAmount: habit.ImpactAmount,
	}
	if !res.Success {
		log.Printf("[impact] rid=%s habit=%d stage=impact_skipped err=%s", reqctx.RID(ctx), habit.ID, res.Err)
		return result, nil
	}
	result.ImpactCreated = true
	result.ImpactID = &res.ImpactID
	if err := s.completions.MarkImpact(ctx, completion.ID, res.ImpactID); err != nil {
		log.Printf("[impact] rid=%s habit=%d stage=mark_impact_fail err=%v", reqctx.RID(ctx), habit.ID, err)
	}
	if habit.ImpactAction == model.ActionPlantTree {
		if err := s.users.RecordTreeImpact(ctx, uid, int(habit.ImpactAmount), int(newStreak)); err != nil {
			log.Printf("[impact] rid=%s habit=%d stage=user_counters_fail err=%v", reqctx.RID(ctx), habit.ID, err)
		}
	}
	return result, nil
}

func (s *habitService) Celebration(ctx context.Context, uid string, id uint64) (*ai.CelebrationMessage, error) {
	habit, err := s.findOwned(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	prefs := model.CelebrationPrefs{}
	if user, err := s.users.Get(ctx, uid); err == nil && user.CelebrationPrefs != nil {
		prefs = *user.CelebrationPrefs
	}
	msg := s.celebrator.Celebrate(ctx, ai.CelebrationContext{
		HabitName:    habit.Name,
		Streak:       habit.Streak,
		ImpactAction: habit.ImpactAction,
		ImpactAmount: habit.ImpactAmount,
		Prefs:        prefs,
	})
	return &msg, nil
}

func (s *habitService) RecordFeedback(ctx context.Context, uid string, completionID uint64, rating int) error {
	if rating < 1 || rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if err := s.completions.SetFeedback(ctx, completionID, uid, rating); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *habitService) findOwned(ctx context.Context, id uint64, uid string) (*model.Habit, error) {
	h, err := s.habits.FindOwned(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}
