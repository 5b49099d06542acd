package rules

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate, got %v", err)
	}
}

func TestValidateRejectsHolecardingUnderENHC(t *testing.T) {
	r := Default()
	r.GameType = ENHC
	r.Holecarding = true
	if err := r.Validate(); err == nil {
		t.Error("expected error for --holecarding without AHC")
	}
}

func TestValidateRejectsBadPenetration(t *testing.T) {
	r := Default()
	r.Penetration = r.TotalCards()
	if err := r.Validate(); err == nil {
		t.Error("expected error when penetration >= total cards")
	}
}

func TestValidateRejectsLateSurrenderUnderENHC(t *testing.T) {
	r := Default()
	r.GameType = ENHC
	r.Surrender = SurrenderLate
	if err := r.Validate(); err == nil {
		t.Error("expected error: ENHC never peeks, so late surrender cannot be offered")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	r := Default()
	r.GameType = ENHC
	r.Surrender = SurrenderEarly
	r.DAS = true
	r.Soft17 = H17
	r.Decks = 4

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Rules
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != r {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, r)
	}
}

func TestLoadHCLOverlayKeepsBaseForUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.hcl")
	content := "game_type = \"enhc\"\nsoft17 = \"h17\"\ndecks = 4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadHCLOverlay(path, Default())
	if err != nil {
		t.Fatalf("LoadHCLOverlay: %v", err)
	}
	if got.GameType != ENHC || got.Soft17 != H17 || got.Decks != 4 {
		t.Errorf("overlay fields not applied: %+v", got)
	}
	// Fields absent from the file keep the base values.
	if got.BJPays != 1.5 || got.MaxSplits != Default().MaxSplits {
		t.Errorf("unset fields must keep base defaults: %+v", got)
	}
}

func TestLoadHCLOverlayMissingFile(t *testing.T) {
	if _, err := LoadHCLOverlay(filepath.Join(t.TempDir(), "nope.hcl"), Default()); err == nil {
		t.Error("expected error for a missing config file")
	}
}

func TestJSONEnumerants(t *testing.T) {
	r := Default()
	r.GameType = ENHC
	r.Surrender = SurrenderEarly
	r.DoubleDown = DoubleHard9to11
	data, _ := json.Marshal(r)
	var m map[string]any
	json.Unmarshal(data, &m)

	if m["game_type"] != "enhc" {
		t.Errorf("game_type = %v, want enhc", m["game_type"])
	}
	if m["surrender"] != "early_surrender" {
		t.Errorf("surrender = %v, want early_surrender", m["surrender"])
	}
	if m["double_down"] != "hard_9_to_11" {
		t.Errorf("double_down = %v, want hard_9_to_11", m["double_down"])
	}
}
