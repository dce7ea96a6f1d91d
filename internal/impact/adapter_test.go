package impact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sproutly/sprout-backend/internal/model"
)

func TestDigitalHumaniCreateImpact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tree" {
			t.Errorf("path=%s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "key-1" {
			t.Errorf("missing api key header")
		}
		var req digitalHumaniRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.TreeCount != 2 || req.EnterpriseID != "ent-1" {
			t.Errorf("request=%+v", req)
		}
		json.NewEncoder(w).Encode(digitalHumaniResponse{UUID: "dh-123"})
	}))
	defer srv.Close()

	a := NewDigitalHumaniAdapter(srv.URL, "key-1", "ent-1", "proj-1", srv.Client())
	res := a.CreateImpact(context.Background(), Request{Action: model.ActionPlantTree, Amount: 2}, "Walk: 2 trees planted, day 3 of the streak")
	if !res.Success {
		t.Fatalf("success=false err=%s", res.Err)
	}
	if res.ImpactID != "dh-123" {
		t.Fatalf("impact id=%s", res.ImpactID)
	}
}

func TestDigitalHumaniRejectsNonTreeActions(t *testing.T) {
	a := NewDigitalHumaniAdapter("http://unused", "k", "e", "p", nil)
	res := a.CreateImpact(context.Background(), Request{Action: model.ActionSponsorBees, Amount: 1}, "")
	if res.Success {
		t.Fatalf("expected unsupported action failure")
	}
	if res.Err == "" {
		t.Fatalf("expected error text")
	}
}

func TestAdaptersNeverPanicOnRemoteFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"missing id", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{}"))
		}},
	}
	for _, tt := range tests {
		t.Run("digitalhumani/"+tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			a := NewDigitalHumaniAdapter(srv.URL, "k", "e", "p", srv.Client())
			res := a.CreateImpact(context.Background(), Request{Action: model.ActionPlantTree, Amount: 1}, "")
			if res.Success {
				t.Fatalf("success on failure response")
			}
			if res.Err == "" {
				t.Fatalf("empty error text")
			}
		})
		t.Run("greenspark/"+tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			a := NewGreensparkAdapter(srv.URL, "k", srv.Client())
			res := a.CreateImpact(context.Background(), Request{Action: model.ActionOffsetCarbon, Amount: 1}, "")
			if res.Success {
				t.Fatalf("success on failure response")
			}
		})
	}
}

func TestGreensparkNetworkErrorIsNonFatal(t *testing.T) {
	// Closed server: connection refused must come back as a Result, not an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	a := NewGreensparkAdapter(srv.URL, "k", nil)
	res := a.CreateImpact(context.Background(), Request{Action: model.ActionProvideWater, Amount: 1}, "")
	if res.Success || res.Err == "" {
		t.Fatalf("expected network failure result, got %+v", res)
	}
}

func TestGreensparkLegacyTranslation(t *testing.T) {
	tests := []struct {
		action model.ImpactAction
		legacy string
	}{
		{model.ActionPlantTree, "plant_tree"},
		{model.ActionRescuePlastic, "clean_ocean"},
		{model.ActionPlantKelp, "clean_ocean"},
		{model.ActionOffsetCarbon, "capture_carbon"},
		{model.ActionProvideWater, "donate_money"},
		{model.ActionSponsorBees, "donate_money"},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			var gotType string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req greensparkRequest
				json.NewDecoder(r.Body).Decode(&req)
				gotType = req.Type
				json.NewEncoder(w).Encode(greensparkResponse{ImpactID: "gs-1"})
			}))
			defer srv.Close()
			a := NewGreensparkAdapter(srv.URL, "k", srv.Client())
			res := a.CreateImpact(context.Background(), Request{Action: tt.action, Amount: 1}, "")
			if !res.Success {
				t.Fatalf("err=%s", res.Err)
			}
			if gotType != tt.legacy {
				t.Fatalf("legacy=%s want %s", gotType, tt.legacy)
			}
		})
	}
}

func TestMockAdapterAlwaysSucceeds(t *testing.T) {
	a := NewMockAdapter()
	for _, action := range model.AllImpactActions() {
		res := a.CreateImpact(context.Background(), Request{Action: action, Amount: 3}, "desc")
		if !res.Success || res.ImpactID == "" {
			t.Fatalf("mock failed for %s: %+v", action, res)
		}
	}
}
