package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sproutly/sprout-backend/internal/model"
)

// ErrBadShape marks model output that parsed as JSON but failed schema
// validation. Both parse and shape failures take the fallback path.
var ErrBadShape = errors.New("bad_shape")

// stripFences removes a markdown code fence if the model wrapped its JSON in
// one despite the JSON response type.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

// turnPayload is the structured reply expected from the model on each
// onboarding turn.
type turnPayload struct {
	Message     string            `json:"message"`
	NextPhase   string            `json:"nextPhase"`
	Suggestions []string          `json:"suggestions"`
	Data        *ConversationData `json:"data"`
}

func decodeTurn(raw string) (*turnPayload, error) {
	var p turnPayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadShape, err)
	}
	if strings.TrimSpace(p.Message) == "" {
		return nil, fmt.Errorf("%w: empty message", ErrBadShape)
	}
	switch Phase(p.NextPhase) {
	case PhaseWelcome, PhaseClarifyAspiration, PhaseRecommendBehaviors:
	default:
		return nil, fmt.Errorf("%w: unknown phase %q", ErrBadShape, p.NextPhase)
	}
	return &p, nil
}

type behaviorPayload struct {
	Name         string `json:"name"`
	Rationale    string `json:"rationale"`
	AbilityScore int    `json:"abilityScore"`
	Trigger      string `json:"trigger"`
	Category     string `json:"category"`
	Icon         string `json:"icon"`
	ImpactAction string `json:"impactAction"`
	ImpactAmount uint   `json:"impactAmount"`
}

// decodeBehaviors requires exactly three well-formed behaviors. Anything
// else is a shape error and the caller falls back to the deterministic list.
func decodeBehaviors(raw string) ([]model.Behavior, error) {
	var payload []behaviorPayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadShape, err)
	}
	if len(payload) != 3 {
		return nil, fmt.Errorf("%w: expected 3 behaviors, got %d", ErrBadShape, len(payload))
	}
	out := make([]model.Behavior, 0, 3)
	for i, p := range payload {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: behavior %d has no name", ErrBadShape, i)
		}
		score := p.AbilityScore
		if score < 1 {
			score = 1
		}
		if score > 5 {
			score = 5
		}
		cat := model.HabitCategory(p.Category)
		if !cat.Valid() {
			cat = model.CategorySustainability
		}
		amount := p.ImpactAmount
		if amount == 0 {
			amount = 1
		}
		out = append(out, model.Behavior{
			Name:         strings.TrimSpace(p.Name),
			Rationale:    strings.TrimSpace(p.Rationale),
			AbilityScore: score,
			Trigger:      strings.TrimSpace(p.Trigger),
			Category:     cat,
			Icon:         strings.TrimSpace(p.Icon),
			ImpactAction: model.ImpactAction(p.ImpactAction),
			ImpactAmount: amount,
		})
	}
	return out, nil
}

func decodeCelebration(raw string) (*CelebrationMessage, error) {
	var m CelebrationMessage
	if err := json.Unmarshal([]byte(stripFences(raw)), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadShape, err)
	}
	if strings.TrimSpace(m.Title) == "" || strings.TrimSpace(m.Message) == "" {
		return nil, fmt.Errorf("%w: missing title or message", ErrBadShape)
	}
	return &m, nil
}
