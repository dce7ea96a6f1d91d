package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sproutly/sprout-backend/internal/model"
)

func TestCelebrateFallbackMentionsHabitAndStreak(t *testing.T) {
	tests := []struct {
		name string
		llm  *fakeClient
	}{
		{"call error", &fakeClient{err: errors.New("deadline exceeded")}},
		{"not json", &fakeClient{reply: "congrats!!"}},
		{"missing fields", &fakeClient{reply: `{"title":"Yay","message":""}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewCelebrator(tt.llm)
			msg := g.Celebrate(context.Background(), CelebrationContext{
				HabitName:    "Evening walk",
				Streak:       7,
				ImpactAction: model.ActionPlantTree,
				ImpactAmount: 2,
			})
			if msg.Message == "" || msg.Title == "" {
				t.Fatalf("empty fallback: %+v", msg)
			}
			if !strings.Contains(msg.Title+" "+msg.Message, "Evening walk") {
				t.Fatalf("habit name missing: %+v", msg)
			}
			if !strings.Contains(msg.Message, fmt.Sprintf("%d", 7)) {
				t.Fatalf("streak missing: %+v", msg)
			}
		})
	}
}

func TestCelebrateUsesModelOutput(t *testing.T) {
	llm := &fakeClient{reply: `{"title":"Seven in a row","message":"A week of walks.","motivationalNote":"Keep going."}`}
	g := NewCelebrator(llm)
	msg := g.Celebrate(context.Background(), CelebrationContext{HabitName: "Evening walk", Streak: 7})
	if msg.Title != "Seven in a row" {
		t.Fatalf("title=%q", msg.Title)
	}
	if llm.calls != 1 {
		t.Fatalf("calls=%d", llm.calls)
	}
}
