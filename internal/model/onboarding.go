package model

// Behavior is a recommendation unit produced during onboarding. Behaviors are
// ephemeral until the user accepts them, at which point they become Habits.
type Behavior struct {
	Name         string        `json:"name"`
	Rationale    string        `json:"rationale"`
	AbilityScore int           `json:"abilityScore"` // 1-5, how easy the behavior is to start
	Trigger      string        `json:"trigger"`
	Category     HabitCategory `json:"category"`
	Icon         string        `json:"icon"`
	ImpactAction ImpactAction  `json:"impactAction"`
	ImpactAmount uint          `json:"impactAmount"`
}

const (
	CreationModeAutomatic = "automatic"
	CreationModeManual    = "manual"
)

// OnboardingProfile accumulates across the onboarding conversation and is
// persisted onto the user when onboarding completes.
type OnboardingProfile struct {
	Aspiration   string     `json:"aspiration"`
	Motivations  []string   `json:"motivations,omitempty"`
	Obstacles    []string   `json:"obstacles,omitempty"`
	Context      string     `json:"context,omitempty"`
	Behaviors    []Behavior `json:"behaviors,omitempty"`
	CreationMode string     `json:"creationMode,omitempty"`
}

const (
	ToneWarm      = "warm"
	ToneDirect    = "direct"
	TonePlayful   = "playful"
	ToneScientist = "scientist"

	VerbosityMinimal  = "minimal"
	VerbosityStandard = "standard"
	VerbosityHype     = "hype"
)

type CelebrationPrefs struct {
	Tone      string `json:"tone"`
	Verbosity string `json:"verbosity"`
}

// Normalize replaces unknown values with the defaults (warm/standard).
func (p CelebrationPrefs) Normalize() CelebrationPrefs {
	switch p.Tone {
	case ToneWarm, ToneDirect, TonePlayful, ToneScientist:
	default:
		p.Tone = ToneWarm
	}
	switch p.Verbosity {
	case VerbosityMinimal, VerbosityStandard, VerbosityHype:
	default:
		p.Verbosity = VerbosityStandard
	}
	return p
}
