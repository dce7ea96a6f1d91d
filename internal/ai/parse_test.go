package ai

import (
	"strings"
	"testing"
)

func TestDecodeTurn(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"basic", `{"message":"hi","nextPhase":"welcome","suggestions":["a"]}`, false},
		{"fenced", "```json\n{\"message\":\"hi\",\"nextPhase\":\"clarify_aspiration\"}\n```", false},
		{"with data", `{"message":"ok","nextPhase":"clarify_aspiration","data":{"aspiration":"run more"}}`, false},
		{"not json", "sorry, here is my answer", true},
		{"empty message", `{"message":"  ","nextPhase":"welcome"}`, true},
		{"unknown phase", `{"message":"hi","nextPhase":"wrap_up"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeTurn(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Message == "" {
				t.Fatalf("message is empty")
			}
		})
	}
}

func TestDecodeTurnMergesData(t *testing.T) {
	got, err := decodeTurn(`{"message":"ok","nextPhase":"clarify_aspiration","data":{"aspiration":"sleep earlier","obstacles":["phone in bed"]}}`)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Data == nil || got.Data.Aspiration != "sleep earlier" {
		t.Fatalf("data not decoded: %+v", got.Data)
	}
}

func TestDecodeBehaviors(t *testing.T) {
	three := `[
		{"name":"A","abilityScore":3,"category":"health","impactAction":"plant_tree","impactAmount":1},
		{"name":"B","abilityScore":9,"category":"fitness","impactAction":"rescue_plastic","impactAmount":2},
		{"name":"C","abilityScore":0,"category":"bogus","impactAction":"provide_water"}
	]`
	got, err := decodeBehaviors(three)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len=%d want 3", len(got))
	}
	if got[1].AbilityScore != 5 || got[2].AbilityScore != 1 {
		t.Fatalf("ability scores not clamped: %d %d", got[1].AbilityScore, got[2].AbilityScore)
	}
	if got[2].ImpactAmount != 1 {
		t.Fatalf("zero amount not defaulted: %d", got[2].ImpactAmount)
	}

	for _, bad := range []string{
		`[]`,
		`[{"name":"A"},{"name":"B"}]`,
		`[{"name":"A"},{"name":"B"},{"name":""}]`,
		`{"name":"not an array"}`,
	} {
		if _, err := decodeBehaviors(bad); err == nil {
			t.Fatalf("expected shape error for %s", bad)
		}
	}
}

func TestDecodeCelebration(t *testing.T) {
	if _, err := decodeCelebration(`{"title":"Nice","message":"Well done"}`); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := decodeCelebration(`{"title":"","message":"Well done"}`); err == nil {
		t.Fatalf("expected error for empty title")
	}
}

func TestStripFences(t *testing.T) {
	in := "```json\n{\"a\":1}\n```"
	if got := stripFences(in); !strings.HasPrefix(got, "{") || !strings.HasSuffix(got, "}") {
		t.Fatalf("fences not stripped: %q", got)
	}
	if got := stripFences(`{"a":1}`); got != `{"a":1}` {
		t.Fatalf("plain json mangled: %q", got)
	}
}
