package impact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sproutly/sprout-backend/internal/model"
	"github.com/sproutly/sprout-backend/internal/reqctx"
)

// DigitalHumaniAdapter plants trees through the DigitalHumani reforestation
// API. It only understands plant_tree; other actions report unsupported.
type DigitalHumaniAdapter struct {
	baseURL      string
	apiKey       string
	enterpriseID string
	projectID    string
	client       *http.Client
}

func NewDigitalHumaniAdapter(baseURL, apiKey, enterpriseID, projectID string, httpClient *http.Client) *DigitalHumaniAdapter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &DigitalHumaniAdapter{
		baseURL:      baseURL,
		apiKey:       apiKey,
		enterpriseID: enterpriseID,
		projectID:    projectID,
		client:       httpClient,
	}
}

func (a *DigitalHumaniAdapter) Name() string { return "digitalhumani" }

type digitalHumaniRequest struct {
	EnterpriseID string `json:"enterpriseId"`
	ProjectID    string `json:"projectId"`
	User         string `json:"user"`
	TreeCount    uint   `json:"treeCount"`
}

type digitalHumaniResponse struct {
	UUID string `json:"uuid"`
}

func (a *DigitalHumaniAdapter) CreateImpact(ctx context.Context, req Request, description string) Result {
	rid := reqctx.RID(ctx)
	if req.Action != model.ActionPlantTree {
		return Result{Err: fmt.Sprintf("digitalhumani does not support action %q", req.Action)}
	}
	body, _ := json.Marshal(digitalHumaniRequest{
		EnterpriseID: a.enterpriseID,
		ProjectID:    a.projectID,
		User:         description,
		TreeCount:    req.Amount,
	})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/tree", bytes.NewReader(body))
	if err != nil {
		return Result{Err: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", a.apiKey)

	start := time.Now()
	log.Printf("[impact] rid=%s habit=%d stage=partner_start partner=%s action=%s amount=%d", rid, reqctx.HabitID(ctx), a.Name(), req.Action, req.Amount)
	resp, err := a.client.Do(httpReq)
	if err != nil {
		log.Printf("[impact] rid=%s stage=partner_fail partner=%s err=%v", rid, a.Name(), err)
		return Result{Err: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("[impact] rid=%s stage=partner_fail partner=%s status=%d", rid, a.Name(), resp.StatusCode)
		return Result{Err: fmt.Sprintf("partner returned status %d", resp.StatusCode)}
	}
	var out digitalHumaniResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("[impact] rid=%s stage=partner_fail partner=%s err=decode: %v", rid, a.Name(), err)
		return Result{Err: fmt.Sprintf("decode partner response: %v", err)}
	}
	if out.UUID == "" {
		return Result{Err: "partner response missing uuid"}
	}
	log.Printf("[impact] rid=%s stage=partner_ok partner=%s impact_id=%s tookMs=%d", rid, a.Name(), out.UUID, time.Since(start).Milliseconds())
	return Result{Success: true, ImpactID: out.UUID}
}
