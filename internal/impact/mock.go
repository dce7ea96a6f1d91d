package impact

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/sproutly/sprout-backend/internal/reqctx"
)

// MockAdapter fulfills impact requests locally. Used in development and as
// the fallback when no partner key is configured, so the completion flow
// behaves identically with or without partner credentials.
type MockAdapter struct{}

func NewMockAdapter() *MockAdapter { return &MockAdapter{} }

func (a *MockAdapter) Name() string { return "mock" }

func (a *MockAdapter) CreateImpact(ctx context.Context, req Request, description string) Result {
	id := "mock-" + uuid.NewString()
	log.Printf("[impact] rid=%s habit=%d stage=partner_ok partner=mock action=%s amount=%d impact_id=%s", reqctx.RID(ctx), reqctx.HabitID(ctx), req.Action, req.Amount, id)
	return Result{Success: true, ImpactID: id}
}
