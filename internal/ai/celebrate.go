package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sproutly/sprout-backend/internal/model"
	"github.com/sproutly/sprout-backend/internal/reqctx"
)

type CelebrationContext struct {
	HabitName    string
	Streak       uint
	ImpactAction model.ImpactAction
	ImpactAmount uint
	Prefs        model.CelebrationPrefs
}

type CelebrationMessage struct {
	Title            string `json:"title"`
	Message          string `json:"message"`
	MotivationalNote string `json:"motivationalNote"`
	ProgressInsight  string `json:"progressInsight,omitempty"`
}

// celebrationTimeout bounds the model call so the post-completion UI never
// stalls on a slow upstream.
const celebrationTimeout = 10 * time.Second

// Celebrator generates the post-completion congratulation. It never fails:
// any model problem substitutes the deterministic template.
type Celebrator struct {
	llm Client
}

func NewCelebrator(llm Client) *Celebrator {
	return &Celebrator{llm: llm}
}

func (g *Celebrator) Celebrate(ctx context.Context, cc CelebrationContext) CelebrationMessage {
	rid := reqctx.RID(ctx)
	ctx, cancel := context.WithTimeout(ctx, celebrationTimeout)
	defer cancel()

	raw, err := g.llm.GenerateJSON(ctx, buildCelebrationPrompt(cc))
	if err != nil {
		log.Printf("[celebrate] rid=%s stage=gen_fail habit=%q err=%v", rid, cc.HabitName, err)
		return fallbackCelebration(cc)
	}
	msg, err := decodeCelebration(raw)
	if err != nil {
		log.Printf("[celebrate] rid=%s stage=bad_shape habit=%q err=%v", rid, cc.HabitName, err)
		return fallbackCelebration(cc)
	}
	return *msg
}

func fallbackCelebration(cc CelebrationContext) CelebrationMessage {
	impact := cc.ImpactAction.Describe(cc.ImpactAmount)
	msg := CelebrationMessage{
		Title:            fmt.Sprintf("%s: done!", cc.HabitName),
		Message:          fmt.Sprintf("You completed %s. That's a %d-day streak, and %s because of it.", cc.HabitName, cc.Streak, impact),
		MotivationalNote: "Small actions, repeated, change more than you think.",
	}
	if cc.Streak > 1 {
		msg.ProgressInsight = fmt.Sprintf("%d days in a row and counting.", cc.Streak)
	}
	return msg
}
