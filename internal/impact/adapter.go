// Package impact integrates the environmental-impact fulfillment partners.
// Adapters never return a Go error for remote failures: HTTP error statuses,
// network errors, and malformed partner responses all become Result.Success
// false, because habit completion must never be blocked by a partner outage.
package impact

import (
	"context"

	"github.com/sproutly/sprout-backend/internal/model"
)

type Request struct {
	Action model.ImpactAction
	Amount uint
}

type Result struct {
	Success  bool
	ImpactID string
	Err      string
}

type Adapter interface {
	// CreateImpact fulfills one impact request. The description is a short
	// human-readable line shown in the partner's ledger.
	CreateImpact(ctx context.Context, req Request, description string) Result
	Name() string
}
