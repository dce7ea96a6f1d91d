package ai

import (
	"context"
	"log"

	"github.com/sproutly/sprout-backend/internal/model"
	"github.com/sproutly/sprout-backend/internal/reqctx"
)

// Recommender produces exactly three behaviors with pairwise-distinct impact
// actions. It never returns an error; any model failure yields the fixed
// offline list.
type Recommender struct {
	llm Client
}

func NewRecommender(llm Client) *Recommender {
	return &Recommender{llm: llm}
}

func (r *Recommender) Recommend(ctx context.Context, aspiration, userContext string) []model.Behavior {
	rid := reqctx.RID(ctx)
	if aspiration == "" {
		aspiration = "build one small positive daily habit"
	}
	raw, err := r.llm.GenerateJSON(ctx, buildRecommendPrompt(aspiration, userContext))
	if err != nil {
		log.Printf("[chat] rid=%s stage=recommend_fail err=%v", rid, err)
		return fallbackBehaviors()
	}
	behaviors, err := decodeBehaviors(raw)
	if err != nil {
		log.Printf("[chat] rid=%s stage=recommend_bad_shape err=%v", rid, err)
		return fallbackBehaviors()
	}
	return ensureDistinctActions(behaviors)
}

// ensureDistinctActions keeps the model's actions when all three are valid
// and pairwise distinct; otherwise it reassigns by positional index from the
// canonical order, which guarantees uniqueness whatever the model returned.
func ensureDistinctActions(behaviors []model.Behavior) []model.Behavior {
	seen := map[model.ImpactAction]bool{}
	distinct := true
	for _, b := range behaviors {
		if !b.ImpactAction.Valid() || seen[b.ImpactAction] {
			distinct = false
			break
		}
		seen[b.ImpactAction] = true
	}
	if distinct {
		return behaviors
	}
	all := model.AllImpactActions()
	for i := range behaviors {
		behaviors[i].ImpactAction = all[i]
	}
	return behaviors
}

// fallbackBehaviors is the deterministic recommendation trio used when the
// model is unavailable. It spans tree planting, plastic rescue, and water.
func fallbackBehaviors() []model.Behavior {
	return []model.Behavior{
		{
			Name:         "Morning glass of water",
			Rationale:    "A tiny anchor habit that starts the day with a win.",
			AbilityScore: 5,
			Trigger:      "Right after you wake up",
			Category:     model.CategoryHealth,
			Icon:         "💧",
			ImpactAction: model.ActionPlantTree,
			ImpactAmount: 1,
		},
		{
			Name:         "Two-minute tidy",
			Rationale:    "Clearing one surface lowers friction for everything after it.",
			AbilityScore: 4,
			Trigger:      "When you finish dinner",
			Category:     model.CategoryProductivity,
			Icon:         "🧹",
			ImpactAction: model.ActionRescuePlastic,
			ImpactAmount: 2,
		},
		{
			Name:         "Step outside and breathe",
			Rationale:    "Sixty seconds of daylight resets focus and mood.",
			AbilityScore: 5,
			Trigger:      "After your first meeting of the day",
			Category:     model.CategoryMindfulness,
			Icon:         "🌤️",
			ImpactAction: model.ActionProvideWater,
			ImpactAmount: 5,
		},
	}
}
