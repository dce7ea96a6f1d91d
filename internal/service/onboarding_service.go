package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sproutly/sprout-backend/internal/ai"
	"github.com/sproutly/sprout-backend/internal/model"
	"github.com/sproutly/sprout-backend/internal/repository"
)

const maxSelectedBehaviors = 3

type OnboardingService interface {
	// Advance runs one conversation turn. The client holds the conversation
	// state and echoes it back, so nothing is persisted until completion.
	Advance(ctx context.Context, state ai.ConversationState, userMessage string) ai.EngineResponse
	// Complete persists the profile and prefs, marks onboarding done, and in
	// automatic mode materializes the selected behaviors as habits.
	Complete(ctx context.Context, uid string, profile model.OnboardingProfile, prefs model.CelebrationPrefs) ([]model.Habit, error)
}

type onboardingService struct {
	engine *ai.Engine
	users  repository.UserRepository
	habits repository.HabitRepository
}

func NewOnboardingService(engine *ai.Engine, users repository.UserRepository, habits repository.HabitRepository) OnboardingService {
	return &onboardingService{engine: engine, users: users, habits: habits}
}

func (s *onboardingService) Advance(ctx context.Context, state ai.ConversationState, userMessage string) ai.EngineResponse {
	return s.engine.Advance(ctx, state, userMessage)
}

func (s *onboardingService) Complete(ctx context.Context, uid string, profile model.OnboardingProfile, prefs model.CelebrationPrefs) ([]model.Habit, error) {
	if strings.TrimSpace(profile.Aspiration) == "" {
		return nil, errors.New("aspiration is required")
	}
	switch profile.CreationMode {
	case model.CreationModeAutomatic, model.CreationModeManual:
	default:
		return nil, errors.New("creationMode must be automatic or manual")
	}
	if len(profile.Behaviors) > maxSelectedBehaviors {
		profile.Behaviors = profile.Behaviors[:maxSelectedBehaviors]
	}
	normPrefs := prefs.Normalize()

	if err := s.users.SaveOnboarding(ctx, uid, &profile, &normPrefs); err != nil {
		return nil, err
	}

	created := []model.Habit{}
	if profile.CreationMode == model.CreationModeAutomatic {
		for _, b := range profile.Behaviors {
			action := b.ImpactAction
			if !action.Valid() {
				action = model.ActionPlantTree
			}
			amount := b.ImpactAmount
			if amount == 0 {
				amount = 1
			}
			category := b.Category
			if !category.Valid() {
				category = model.CategorySustainability
			}
			h := model.Habit{
				UserUID:      uid,
				Name:         b.Name,
				Description:  b.Rationale,
				Icon:         b.Icon,
				Category:     category,
				IsActive:     true,
				ImpactAction: action,
				ImpactAmount: amount,
			}
			if err := s.habits.Create(ctx, &h); err != nil {
				return created, err
			}
			created = append(created, h)
		}
	}
	return created, nil
}
