package service

import (
	"context"
	"testing"
	"time"

	"github.com/sproutly/sprout-backend/internal/model"
)

func TestDashboardWeeklyProgress(t *testing.T) {
	habits := newFakeHabitRepo()
	completions := newFakeCompletionRepo(habits)
	users := newFakeUserRepo()
	users.users[testUID] = &model.User{UID: testUID, Name: "Test User"}

	habitSvc := NewHabitService(habits, completions, users, &fakeAdapter{}, nil)
	for i := 0; i < 2; i++ {
		if _, err := habitSvc.Create(context.Background(), testUID, CreateHabitInput{
			Name:         "Habit",
			Category:     model.CategoryHealth,
			ImpactAction: model.ActionPlantTree,
			ImpactAmount: 1,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	today := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	// Complete habit 1 today and yesterday, habit 2 only today.
	for _, tc := range []struct {
		habitID uint64
		day     time.Time
	}{
		{1, today},
		{1, today.AddDate(0, 0, -1)},
		{2, today},
	} {
		if _, err := habitSvc.Toggle(context.Background(), testUID, tc.habitID, tc.day); err != nil {
			t.Fatalf("toggle habit %d: %v", tc.habitID, err)
		}
	}

	svc := NewInsightService(users, habits, completions)
	view, err := svc.Dashboard(context.Background(), testUID, today)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(view.Habits) != 2 {
		t.Fatalf("habits=%d", len(view.Habits))
	}
	if len(view.TodayCompletions) != 2 {
		t.Fatalf("today=%d want 2", len(view.TodayCompletions))
	}
	if len(view.WeeklyProgress) != 7 {
		t.Fatalf("weekly=%d want 7", len(view.WeeklyProgress))
	}
	last := view.WeeklyProgress[6]
	if last.Day != model.DayKey(today) || last.Completed != 2 || last.Total != 2 {
		t.Fatalf("today progress=%+v", last)
	}
	yesterday := view.WeeklyProgress[5]
	if yesterday.Completed != 1 {
		t.Fatalf("yesterday progress=%+v", yesterday)
	}
	if view.WeeklyProgress[0].Completed != 0 {
		t.Fatalf("week start progress=%+v", view.WeeklyProgress[0])
	}
}

func TestAnalyticsGroupsImpactByAction(t *testing.T) {
	habits := newFakeHabitRepo()
	completions := newFakeCompletionRepo(habits)
	users := newFakeUserRepo()
	users.users[testUID] = &model.User{UID: testUID}

	habitSvc := NewHabitService(habits, completions, users, &fakeAdapter{}, nil)
	for _, in := range []CreateHabitInput{
		{Name: "A", Category: model.CategoryHealth, ImpactAction: model.ActionPlantTree, ImpactAmount: 2},
		{Name: "B", Category: model.CategoryHealth, ImpactAction: model.ActionPlantTree, ImpactAmount: 1},
		{Name: "C", Category: model.CategoryHealth, ImpactAction: model.ActionProvideWater, ImpactAmount: 5},
	} {
		if _, err := habitSvc.Create(context.Background(), testUID, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	day := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	for id := uint64(1); id <= 3; id++ {
		if _, err := habitSvc.Toggle(context.Background(), testUID, id, day); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	svc := NewInsightService(users, habits, completions)
	view, err := svc.Analytics(context.Background(), testUID)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if got := view.ImpactSummary[string(model.ActionPlantTree)]; got != 3 {
		t.Fatalf("plant_tree total=%d want 3", got)
	}
	if got := view.ImpactSummary[string(model.ActionProvideWater)]; got != 5 {
		t.Fatalf("provide_water total=%d want 5", got)
	}
}

func TestRecentImpactOnlyIncludesFulfilled(t *testing.T) {
	habits := newFakeHabitRepo()
	completions := newFakeCompletionRepo(habits)
	users := newFakeUserRepo()
	users.users[testUID] = &model.User{UID: testUID}

	okAdapter := &fakeAdapter{}
	habitSvc := NewHabitService(habits, completions, users, okAdapter, nil)
	h1, _ := habitSvc.Create(context.Background(), testUID, CreateHabitInput{Name: "A", Category: model.CategoryHealth, ImpactAction: model.ActionPlantTree, ImpactAmount: 1})
	if _, err := habitSvc.Toggle(context.Background(), testUID, h1.ID, time.Now()); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	okAdapter.fail = true
	h2, _ := habitSvc.Create(context.Background(), testUID, CreateHabitInput{Name: "B", Category: model.CategoryHealth, ImpactAction: model.ActionPlantKelp, ImpactAmount: 1})
	if _, err := habitSvc.Toggle(context.Background(), testUID, h2.ID, time.Now()); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	svc := NewInsightService(users, habits, completions)
	list, err := svc.RecentImpact(context.Background(), testUID)
	if err != nil {
		t.Fatalf("recent impact: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("recent=%d want 1 (failed partner call must not appear)", len(list))
	}
	if list[0].HabitID != h1.ID {
		t.Fatalf("wrong completion: %+v", list[0])
	}
}
