package ai

import (
	"fmt"
	"strings"

	"github.com/sproutly/sprout-backend/internal/model"
)

const turnBasePrompt = `You are the onboarding guide for a habit app that pairs personal habits with real environmental impact (tree planting, ocean cleanup, carbon offset and similar).
Reply with a single JSON object: {"message": string, "nextPhase": "welcome"|"clarify_aspiration"|"recommend_behaviors", "suggestions": [string], "data": {"aspiration": string, "motivations": [string], "obstacles": [string], "context": string}}.
Keep "message" to at most three sentences. "suggestions" are at most three short tappable replies. Put anything you learned about the user into "data"; omit fields you learned nothing about.`

var phasePrompts = map[Phase]string{
	PhaseWelcome: `Current phase: welcome.
Greet the user briefly and ask what they want to change about their daily life. When the user states a clear aspiration, set nextPhase to "clarify_aspiration" and record the aspiration in data.`,
	PhaseClarifyAspiration: `Current phase: clarify_aspiration.
The user has stated an aspiration. Ask one focused follow-up about their motivation or biggest obstacle, and record what you learn in data. Stay in "clarify_aspiration" unless you have enough to recommend habits, in which case set nextPhase to "recommend_behaviors".`,
	PhaseRecommendBehaviors: `Current phase: recommend_behaviors.
Summarize what you heard in one sentence and tell the user you have three small habits ready for them. Keep nextPhase as "recommend_behaviors".`,
}

func buildTurnPrompt(phase Phase, data ConversationData, userMessage string) string {
	var b strings.Builder
	b.WriteString(turnBasePrompt)
	b.WriteString("\n\n")
	b.WriteString(phasePrompts[phase])
	b.WriteString("\n\nProfile so far:\n")
	b.WriteString(data.summary())
	b.WriteString("\nUser message: ")
	b.WriteString(userMessage)
	return b.String()
}

const recommendPrompt = `You design tiny daily habits for a habit app that pairs each completion with environmental impact.
Reply with a JSON array of exactly 3 objects: {"name": string, "rationale": string, "abilityScore": 1-5, "trigger": string, "category": "health"|"fitness"|"mindfulness"|"productivity"|"sustainability"|"learning", "icon": string (one emoji), "impactAction": "plant_tree"|"rescue_plastic"|"offset_carbon"|"plant_kelp"|"provide_water"|"sponsor_bees", "impactAmount": positive integer}.
Each habit must take under five minutes, start from the user's stated aspiration, and carry a different impactAction. "trigger" is an existing daily moment the habit attaches to.`

func buildRecommendPrompt(aspiration, context string) string {
	var b strings.Builder
	b.WriteString(recommendPrompt)
	b.WriteString("\n\nAspiration: ")
	b.WriteString(aspiration)
	if context != "" {
		b.WriteString("\nContext: ")
		b.WriteString(context)
	}
	return b.String()
}

var tonePrompts = map[string]string{
	model.ToneWarm:      "Write like a warm, encouraging friend.",
	model.ToneDirect:    "Write like a no-nonsense coach. Short declarative sentences, no filler.",
	model.TonePlayful:   "Write playfully, with light humor. One emoji is fine.",
	model.ToneScientist: "Write like a behavioral scientist: cite the mechanism behind the habit loop or streak effect.",
}

var verbosityPrompts = map[string]string{
	model.VerbosityMinimal:  "Keep every field to one short sentence and omit progressInsight.",
	model.VerbosityStandard: "Keep fields to one or two sentences each.",
	model.VerbosityHype:     "Make it energetic and celebratory. progressInsight should make the cumulative impact feel big.",
}

const celebrateBasePrompt = `A user just completed a habit that triggers real environmental impact.
Reply with a single JSON object: {"title": string, "message": string, "motivationalNote": string, "progressInsight": string (optional)}.`

func buildCelebrationPrompt(cc CelebrationContext) string {
	prefs := cc.Prefs.Normalize()
	var b strings.Builder
	b.WriteString(celebrateBasePrompt)
	b.WriteString("\n")
	b.WriteString(tonePrompts[prefs.Tone])
	b.WriteString("\n")
	b.WriteString(verbosityPrompts[prefs.Verbosity])
	fmt.Fprintf(&b, "\n\nHabit: %s\nStreak: %d days\nImpact this completion: %s\n", cc.HabitName, cc.Streak, cc.ImpactAction.Describe(cc.ImpactAmount))
	return b.String()
}
