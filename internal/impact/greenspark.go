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

// GreensparkAdapter covers all six impact actions through a multi-action
// partner. The partner's wire format predates the unified enumeration, so
// actions are translated at this edge and never leak into the domain.
type GreensparkAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGreensparkAdapter(baseURL, apiKey string, httpClient *http.Client) *GreensparkAdapter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &GreensparkAdapter{baseURL: baseURL, apiKey: apiKey, client: httpClient}
}

func (a *GreensparkAdapter) Name() string { return "greenspark" }

// legacyActionFor maps the unified enumeration to the partner's older
// plant_tree/clean_ocean/capture_carbon/donate_money vocabulary.
func legacyActionFor(action model.ImpactAction) (string, bool) {
	switch action {
	case model.ActionPlantTree:
		return "plant_tree", true
	case model.ActionRescuePlastic, model.ActionPlantKelp:
		return "clean_ocean", true
	case model.ActionOffsetCarbon:
		return "capture_carbon", true
	case model.ActionProvideWater, model.ActionSponsorBees:
		return "donate_money", true
	}
	return "", false
}

type greensparkRequest struct {
	Type        string `json:"type"`
	Amount      uint   `json:"amount"`
	Description string `json:"description"`
}

type greensparkResponse struct {
	ImpactID string `json:"impactId"`
	ID       string `json:"id"`
}

func (a *GreensparkAdapter) CreateImpact(ctx context.Context, req Request, description string) Result {
	rid := reqctx.RID(ctx)
	legacy, ok := legacyActionFor(req.Action)
	if !ok {
		return Result{Err: fmt.Sprintf("greenspark does not support action %q", req.Action)}
	}
	body, _ := json.Marshal(greensparkRequest{
		Type:        legacy,
		Amount:      req.Amount,
		Description: description,
	})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/impacts", bytes.NewReader(body))
	if err != nil {
		return Result{Err: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)

	start := time.Now()
	log.Printf("[impact] rid=%s habit=%d stage=partner_start partner=%s action=%s legacy=%s amount=%d", rid, reqctx.HabitID(ctx), a.Name(), req.Action, legacy, req.Amount)
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
	var out greensparkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("[impact] rid=%s stage=partner_fail partner=%s err=decode: %v", rid, a.Name(), err)
		return Result{Err: fmt.Sprintf("decode partner response: %v", err)}
	}
	impactID := out.ImpactID
	if impactID == "" {
		impactID = out.ID
	}
	if impactID == "" {
		return Result{Err: "partner response missing impact id"}
	}
	log.Printf("[impact] rid=%s stage=partner_ok partner=%s impact_id=%s tookMs=%d", rid, a.Name(), impactID, time.Since(start).Milliseconds())
	return Result{Success: true, ImpactID: impactID}
}
