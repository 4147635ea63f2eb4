package theme

import "testing"

func TestResolve_KnownThemes(t *testing.T) {
	for _, id := range IDs() {
		cfg := Resolve(id)
		if cfg.ID != id {
			t.Errorf("theme %s: resolved as %s", id, cfg.ID)
		}
		if cfg.MapStyleURL == "" {
			t.Errorf("theme %s: empty map style", id)
		}
		if cfg.UnselectedIcon == "" || cfg.SelectedIcon == "" || cfg.OriginIcon == "" {
			t.Errorf("theme %s: missing icon asset", id)
		}
		if cfg.RouteLineColor == "" {
			t.Errorf("theme %s: empty route line color", id)
		}
	}
}

func TestResolve_UnknownFallsBackToBlue(t *testing.T) {
	tests := []ID{"", "magenta", "BLUE", "0"}

	for _, id := range tests {
		cfg := Resolve(id)
		if cfg.ID != Blue {
			t.Errorf("Resolve(%q): expected blue fallback, got %s", id, cfg.ID)
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	a := Resolve(Purple)
	b := Resolve(Purple)
	if a != b {
		t.Error("Resolve must be a pure lookup")
	}
}
