package impact

import (
	"context"

	"github.com/sproutly/sprout-backend/internal/config"
	"github.com/sproutly/sprout-backend/internal/model"
)

// Router picks a concrete partner per action: the dedicated tree partner for
// plant_tree when configured, the multi-action partner for everything else,
// and the mock when neither is available.
type Router struct {
	tree     Adapter
	multi    Adapter
	fallback Adapter
}

func NewRouter(cfg *config.Config) *Router {
	r := &Router{fallback: NewMockAdapter()}
	if cfg.DigitalHumaniAPIKey != "" && cfg.DigitalHumaniEnterpriseID != "" {
		r.tree = NewDigitalHumaniAdapter(cfg.DigitalHumaniBaseURL, cfg.DigitalHumaniAPIKey, cfg.DigitalHumaniEnterpriseID, cfg.DigitalHumaniProjectID, nil)
	}
	if cfg.GreensparkAPIKey != "" {
		r.multi = NewGreensparkAdapter(cfg.GreensparkBaseURL, cfg.GreensparkAPIKey, nil)
	}
	return r
}

func (r *Router) Name() string { return "router" }

func (r *Router) CreateImpact(ctx context.Context, req Request, description string) Result {
	if req.Action == model.ActionPlantTree && r.tree != nil {
		return r.tree.CreateImpact(ctx, req, description)
	}
	if r.multi != nil {
		return r.multi.CreateImpact(ctx, req, description)
	}
	return r.fallback.CreateImpact(ctx, req, description)
}
