package service

import (
	"context"
	"testing"

	"github.com/sproutly/sprout-backend/internal/ai"
	"github.com/sproutly/sprout-backend/internal/model"
)

func newOnboardingFixture() (OnboardingService, *fakeUserRepo, *fakeHabitRepo) {
	users := newFakeUserRepo()
	users.users[testUID] = &model.User{UID: testUID}
	habits := newFakeHabitRepo()
	svc := NewOnboardingService(ai.NewEngine(failLLM{}), users, habits)
	return svc, users, habits
}

func sampleBehaviors(n int) []model.Behavior {
	all := model.AllImpactActions()
	out := make([]model.Behavior, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Behavior{
			Name:         "Habit " + string(rune('A'+i)),
			Category:     model.CategoryHealth,
			ImpactAction: all[i%len(all)],
			ImpactAmount: 1,
		})
	}
	return out
}

func TestCompleteAutomaticCreatesHabits(t *testing.T) {
	svc, users, habits := newOnboardingFixture()
	profile := model.OnboardingProfile{
		Aspiration:   "move more",
		Behaviors:    sampleBehaviors(3),
		CreationMode: model.CreationModeAutomatic,
	}
	created, err := svc.Complete(context.Background(), testUID, profile, model.CelebrationPrefs{Tone: model.TonePlayful, Verbosity: model.VerbosityHype})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("created=%d want 3", len(created))
	}
	list, _ := habits.ListActive(context.Background(), testUID)
	if len(list) != 3 {
		t.Fatalf("persisted=%d want 3", len(list))
	}
	u, _ := users.Get(context.Background(), testUID)
	if !u.OnboardingCompleted {
		t.Fatalf("onboarding not marked complete")
	}
	if u.CelebrationPrefs == nil || u.CelebrationPrefs.Tone != model.TonePlayful {
		t.Fatalf("prefs=%+v", u.CelebrationPrefs)
	}
}

func TestCompleteManualCreatesNothing(t *testing.T) {
	svc, users, habits := newOnboardingFixture()
	profile := model.OnboardingProfile{
		Aspiration:   "read more",
		Behaviors:    sampleBehaviors(2),
		CreationMode: model.CreationModeManual,
	}
	created, err := svc.Complete(context.Background(), testUID, profile, model.CelebrationPrefs{})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("created=%d want 0", len(created))
	}
	list, _ := habits.ListActive(context.Background(), testUID)
	if len(list) != 0 {
		t.Fatalf("persisted=%d want 0", len(list))
	}
	u, _ := users.Get(context.Background(), testUID)
	if !u.OnboardingCompleted {
		t.Fatalf("onboarding not marked complete")
	}
}

func TestCompleteCapsBehaviorsAtThree(t *testing.T) {
	svc, _, habits := newOnboardingFixture()
	profile := model.OnboardingProfile{
		Aspiration:   "everything at once",
		Behaviors:    sampleBehaviors(5),
		CreationMode: model.CreationModeAutomatic,
	}
	created, err := svc.Complete(context.Background(), testUID, profile, model.CelebrationPrefs{})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("created=%d want 3", len(created))
	}
	list, _ := habits.ListActive(context.Background(), testUID)
	if len(list) != 3 {
		t.Fatalf("persisted=%d want 3", len(list))
	}
}

func TestCompleteValidation(t *testing.T) {
	svc, _, _ := newOnboardingFixture()
	tests := []struct {
		name    string
		profile model.OnboardingProfile
	}{
		{"missing aspiration", model.OnboardingProfile{CreationMode: model.CreationModeManual}},
		{"bad mode", model.OnboardingProfile{Aspiration: "x", CreationMode: "later"}},
		{"empty mode", model.OnboardingProfile{Aspiration: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Complete(context.Background(), testUID, tt.profile, model.CelebrationPrefs{}); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestCompleteSanitizesBehaviorDefaults(t *testing.T) {
	svc, _, habits := newOnboardingFixture()
	profile := model.OnboardingProfile{
		Aspiration: "less plastic",
		Behaviors: []model.Behavior{
			{Name: "Bring a bag", Category: "shopping", ImpactAction: "donate_money"},
		},
		CreationMode: model.CreationModeAutomatic,
	}
	created, err := svc.Complete(context.Background(), testUID, profile, model.CelebrationPrefs{})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created=%d", len(created))
	}
	list, _ := habits.ListActive(context.Background(), testUID)
	h := list[0]
	if !h.ImpactAction.Valid() || !h.Category.Valid() || h.ImpactAmount == 0 {
		t.Fatalf("habit not sanitized: %+v", h)
	}
}
