package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/sproutly/sprout-backend/internal/model"
)

func assertThreeDistinct(t *testing.T, behaviors []model.Behavior) {
	t.Helper()
	if len(behaviors) != 3 {
		t.Fatalf("len=%d want 3", len(behaviors))
	}
	seen := map[model.ImpactAction]bool{}
	for _, b := range behaviors {
		if !b.ImpactAction.Valid() {
			t.Fatalf("invalid action %q", b.ImpactAction)
		}
		if seen[b.ImpactAction] {
			t.Fatalf("duplicate action %q", b.ImpactAction)
		}
		seen[b.ImpactAction] = true
	}
}

func TestRecommendAlwaysThreeDistinct(t *testing.T) {
	tests := []struct {
		name string
		llm  *fakeClient
	}{
		{"call error", &fakeClient{err: errors.New("timeout")}},
		{"not json", &fakeClient{reply: "here are some ideas"}},
		{"two items", &fakeClient{reply: `[{"name":"A","impactAction":"plant_tree"},{"name":"B","impactAction":"plant_kelp"}]`}},
		{"four items", &fakeClient{reply: `[{"name":"A"},{"name":"B"},{"name":"C"},{"name":"D"}]`}},
		{"duplicate actions", &fakeClient{reply: `[
			{"name":"A","impactAction":"plant_tree","impactAmount":1},
			{"name":"B","impactAction":"plant_tree","impactAmount":1},
			{"name":"C","impactAction":"plant_tree","impactAmount":1}
		]`}},
		{"invalid action", &fakeClient{reply: `[
			{"name":"A","impactAction":"donate_money","impactAmount":1},
			{"name":"B","impactAction":"plant_kelp","impactAmount":1},
			{"name":"C","impactAction":"sponsor_bees","impactAmount":1}
		]`}},
		{"all valid distinct", &fakeClient{reply: `[
			{"name":"A","impactAction":"offset_carbon","impactAmount":1},
			{"name":"B","impactAction":"plant_kelp","impactAmount":1},
			{"name":"C","impactAction":"sponsor_bees","impactAmount":1}
		]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecommender(tt.llm)
			got := r.Recommend(context.Background(), "waste less plastic", "")
			assertThreeDistinct(t, got)
		})
	}
}

func TestRecommendKeepsValidDistinctActions(t *testing.T) {
	llm := &fakeClient{reply: `[
		{"name":"A","impactAction":"offset_carbon","impactAmount":1},
		{"name":"B","impactAction":"plant_kelp","impactAmount":1},
		{"name":"C","impactAction":"sponsor_bees","impactAmount":1}
	]`}
	got := NewRecommender(llm).Recommend(context.Background(), "x", "")
	want := []model.ImpactAction{model.ActionOffsetCarbon, model.ActionPlantKelp, model.ActionSponsorBees}
	for i, b := range got {
		if b.ImpactAction != want[i] {
			t.Fatalf("action[%d]=%s want %s", i, b.ImpactAction, want[i])
		}
	}
}

func TestFallbackBehaviorsAreDistinct(t *testing.T) {
	assertThreeDistinct(t, fallbackBehaviors())
}
