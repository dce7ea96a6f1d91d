package model

import "fmt"

// ImpactAction is the single action enumeration shared by all impact
// partners. Partner-specific wire names are translated inside the adapters.
type ImpactAction string

const (
	ActionPlantTree     ImpactAction = "plant_tree"
	ActionRescuePlastic ImpactAction = "rescue_plastic"
	ActionOffsetCarbon  ImpactAction = "offset_carbon"
	ActionPlantKelp     ImpactAction = "plant_kelp"
	ActionProvideWater  ImpactAction = "provide_water"
	ActionSponsorBees   ImpactAction = "sponsor_bees"
)

func AllImpactActions() []ImpactAction {
	return []ImpactAction{
		ActionPlantTree,
		ActionRescuePlastic,
		ActionOffsetCarbon,
		ActionPlantKelp,
		ActionProvideWater,
		ActionSponsorBees,
	}
}

func (a ImpactAction) Valid() bool {
	switch a {
	case ActionPlantTree, ActionRescuePlastic, ActionOffsetCarbon,
		ActionPlantKelp, ActionProvideWater, ActionSponsorBees:
		return true
	}
	return false
}

// Describe renders a short human-readable impact phrase, e.g. "2 trees planted".
func (a ImpactAction) Describe(amount uint) string {
	switch a {
	case ActionPlantTree:
		if amount == 1 {
			return "1 tree planted"
		}
		return fmt.Sprintf("%d trees planted", amount)
	case ActionRescuePlastic:
		return fmt.Sprintf("%d bottles of ocean plastic rescued", amount)
	case ActionOffsetCarbon:
		return fmt.Sprintf("%d kg of CO2 offset", amount)
	case ActionPlantKelp:
		return fmt.Sprintf("%d kelp planted", amount)
	case ActionProvideWater:
		return fmt.Sprintf("%d liters of clean water provided", amount)
	case ActionSponsorBees:
		return fmt.Sprintf("%d bees sponsored", amount)
	}
	return fmt.Sprintf("%d impact units", amount)
}
