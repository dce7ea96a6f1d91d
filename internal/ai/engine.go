package ai

import (
	"context"
	"log"
	"strings"

	"github.com/sproutly/sprout-backend/internal/model"
	"github.com/sproutly/sprout-backend/internal/reqctx"
)

type Phase string

const (
	PhaseWelcome            Phase = "welcome"
	PhaseClarifyAspiration  Phase = "clarify_aspiration"
	PhaseRecommendBehaviors Phase = "recommend_behaviors"
)

// ConversationData is the partial profile accumulated across turns. The
// client echoes it back with every request, so the engine itself is stateless.
type ConversationData struct {
	Aspiration  string   `json:"aspiration,omitempty"`
	Motivations []string `json:"motivations,omitempty"`
	Obstacles   []string `json:"obstacles,omitempty"`
	Context     string   `json:"context,omitempty"`
}

func (d ConversationData) summary() string {
	var b strings.Builder
	if d.Aspiration != "" {
		b.WriteString("aspiration: " + d.Aspiration + "\n")
	}
	if len(d.Motivations) > 0 {
		b.WriteString("motivations: " + strings.Join(d.Motivations, "; ") + "\n")
	}
	if len(d.Obstacles) > 0 {
		b.WriteString("obstacles: " + strings.Join(d.Obstacles, "; ") + "\n")
	}
	if d.Context != "" {
		b.WriteString("context: " + d.Context + "\n")
	}
	if b.Len() == 0 {
		return "(nothing yet)\n"
	}
	return b.String()
}

// merge folds model-extracted fields into the running profile. Existing
// values win only when the model returned nothing for them.
func (d ConversationData) merge(in *ConversationData) ConversationData {
	if in == nil {
		return d
	}
	if in.Aspiration != "" {
		d.Aspiration = in.Aspiration
	}
	if len(in.Motivations) > 0 {
		d.Motivations = append(d.Motivations, in.Motivations...)
	}
	if len(in.Obstacles) > 0 {
		d.Obstacles = append(d.Obstacles, in.Obstacles...)
	}
	if in.Context != "" {
		d.Context = in.Context
	}
	return d
}

type ConversationState struct {
	Phase        Phase            `json:"phase"`
	MessageCount int              `json:"messageCount"`
	Data         ConversationData `json:"data"`
}

type EngineResponse struct {
	Message     string           `json:"message"`
	NextPhase   Phase            `json:"nextPhase"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Data        ConversationData `json:"updatedData"`
	Behaviors   []model.Behavior `json:"behaviors,omitempty"`
}

// Engine runs the three-phase onboarding dialogue. It never returns an
// error: LLM failures produce an apology reply that holds the current phase
// so the user can retry.
type Engine struct {
	llm         Client
	recommender *Recommender
}

func NewEngine(llm Client) *Engine {
	return &Engine{llm: llm, recommender: NewRecommender(llm)}
}

const apologyMessage = "Sorry, I lost my train of thought for a second. Could you say that again?"

// forcedCutoverAt is the number of prior user messages after which the next
// turn always lands in recommend_behaviors, whatever the model says. The
// dialogue never exceeds three user turns before a concrete recommendation.
const forcedCutoverAt = 2

func (e *Engine) Advance(ctx context.Context, state ConversationState, userMessage string) EngineResponse {
	rid := reqctx.RID(ctx)
	if state.Phase == "" {
		state.Phase = PhaseWelcome
	}

	if state.MessageCount >= forcedCutoverAt {
		data := state.Data
		if data.Aspiration == "" {
			data.Aspiration = strings.TrimSpace(userMessage)
		}
		log.Printf("[chat] rid=%s stage=forced_cutover messages=%d", rid, state.MessageCount)
		behaviors := e.recommender.Recommend(ctx, data.Aspiration, data.Context)
		return EngineResponse{
			Message:     "Here are three small habits I put together for you. Each one creates real environmental impact every time you complete it.",
			NextPhase:   PhaseRecommendBehaviors,
			Suggestions: []string{"Create these habits for me", "I'll add my own"},
			Data:        data,
			Behaviors:   behaviors,
		}
	}

	prompt := buildTurnPrompt(state.Phase, state.Data, userMessage)
	raw, err := e.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		log.Printf("[chat] rid=%s stage=turn_fail phase=%s err=%v", rid, state.Phase, err)
		return EngineResponse{Message: apologyMessage, NextPhase: state.Phase, Data: state.Data}
	}
	turn, err := decodeTurn(raw)
	if err != nil {
		log.Printf("[chat] rid=%s stage=turn_bad_shape phase=%s err=%v", rid, state.Phase, err)
		return EngineResponse{Message: apologyMessage, NextPhase: state.Phase, Data: state.Data}
	}

	data := state.Data.merge(turn.Data)
	resp := EngineResponse{
		Message:     turn.Message,
		NextPhase:   Phase(turn.NextPhase),
		Suggestions: turn.Suggestions,
		Data:        data,
	}
	// The model may decide it has heard enough before the forced cutover.
	if resp.NextPhase == PhaseRecommendBehaviors {
		resp.Behaviors = e.recommender.Recommend(ctx, data.Aspiration, data.Context)
	}
	return resp
}
