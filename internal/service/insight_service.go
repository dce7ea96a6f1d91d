package service

import (
	"context"
	"errors"
	"time"

	"github.com/sproutly/sprout-backend/internal/model"
	"github.com/sproutly/sprout-backend/internal/repository"
	"gorm.io/gorm"
)

type DayProgress struct {
	Day       string `json:"day"` // YYYY-MM-DD
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type DashboardView struct {
	User             *model.User             `json:"user"`
	Habits           []model.Habit           `json:"habits"`
	TodayCompletions []model.HabitCompletion `json:"todayCompletions"`
	WeeklyProgress   []DayProgress           `json:"weeklyProgress"`
}

type HabitStats struct {
	Habit             model.Habit `json:"habit"`
	TotalImpactEarned uint64      `json:"totalImpactEarned"`
	Streak            uint        `json:"streak"`
}

type AnalyticsView struct {
	Habits        []HabitStats      `json:"habits"`
	ImpactSummary map[string]uint64 `json:"impactSummary"` // by impact action
}

// InsightService serves the read-only dashboard, analytics, and impact
// history views.
type InsightService interface {
	Dashboard(ctx context.Context, uid string, date time.Time) (*DashboardView, error)
	Analytics(ctx context.Context, uid string) (*AnalyticsView, error)
	RecentImpact(ctx context.Context, uid string) ([]model.HabitCompletion, error)
	ImpactTimeline(ctx context.Context, uid string) ([]model.HabitCompletion, error)
}

type insightService struct {
	users       repository.UserRepository
	habits      repository.HabitRepository
	completions repository.CompletionRepository
}

func NewInsightService(users repository.UserRepository, habits repository.HabitRepository, completions repository.CompletionRepository) InsightService {
	return &insightService{users: users, habits: habits, completions: completions}
}

const recentImpactLimit = 10

func (s *insightService) Dashboard(ctx context.Context, uid string, date time.Time) (*DashboardView, error) {
	user, err := s.users.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	habits, err := s.habits.ListActive(ctx, uid)
	if err != nil {
		return nil, err
	}

	day := model.DayKey(date)
	weekStart := model.DayKey(date.AddDate(0, 0, -6))
	completions, err := s.completions.ListByUserBetween(ctx, uid, weekStart, day)
	if err != nil {
		return nil, err
	}

	byDay := map[string]int{}
	today := make([]model.HabitCompletion, 0, len(habits))
	for _, c := range completions {
		byDay[c.CompletedOn]++
		if c.CompletedOn == day {
			today = append(today, c)
		}
	}
	weekly := make([]DayProgress, 0, 7)
	for i := 6; i >= 0; i-- {
		d := model.DayKey(date.AddDate(0, 0, -i))
		weekly = append(weekly, DayProgress{
			Day:       d,
			Completed: byDay[d],
			Total:     len(habits),
		})
	}

	return &DashboardView{
		User:             user,
		Habits:           habits,
		TodayCompletions: today,
		WeeklyProgress:   weekly,
	}, nil
}

func (s *insightService) Analytics(ctx context.Context, uid string) (*AnalyticsView, error) {
	habits, err := s.habits.ListActive(ctx, uid)
	if err != nil {
		return nil, err
	}
	view := &AnalyticsView{
		Habits:        make([]HabitStats, 0, len(habits)),
		ImpactSummary: map[string]uint64{},
	}
	for _, h := range habits {
		view.Habits = append(view.Habits, HabitStats{
			Habit:             h,
			TotalImpactEarned: h.TotalImpactEarned,
			Streak:            h.Streak,
		})
		view.ImpactSummary[string(h.ImpactAction)] += h.TotalImpactEarned
	}
	return view, nil
}

func (s *insightService) RecentImpact(ctx context.Context, uid string) ([]model.HabitCompletion, error) {
	return s.completions.ListImpact(ctx, uid, recentImpactLimit)
}

func (s *insightService) ImpactTimeline(ctx context.Context, uid string) ([]model.HabitCompletion, error) {
	return s.completions.ListImpact(ctx, uid, 0)
}
