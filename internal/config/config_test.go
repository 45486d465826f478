package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	parsed, err := ParseBomberman(defaultBombermanYAML)
	if err != nil {
		t.Fatalf("ParseBomberman(embedded) failed: %v", err)
	}

	if !reflect.DeepEqual(parsed, DefaultBombermanConfig()) {
		t.Errorf("embedded yaml and DefaultBombermanConfig() disagree:\n%+v\n%+v", parsed, DefaultBombermanConfig())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := ParseBomberman([]byte("grid:\n  rows: 13\nspecies:\n  ballom: {speed: 2, score: 50}\n"))
	if err != nil {
		t.Fatalf("ParseBomberman() failed: %v", err)
	}

	if cfg.Grid.Rows != 13 {
		t.Errorf("Grid.Rows = %d, expected 13", cfg.Grid.Rows)
	}
	if cfg.Grid.Cols != 30 {
		t.Errorf("Grid.Cols = %d, expected default 30", cfg.Grid.Cols)
	}
	if cfg.Species["ballom"].Score != 50 {
		t.Errorf("ballom score = %d, expected 50", cfg.Species["ballom"].Score)
	}
	if _, ok := cfg.Species["pontan"]; !ok {
		t.Error("unlisted species should keep their defaults")
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := ParseBomberman([]byte("grid: [not, a, map")); err == nil {
		t.Error("ParseBomberman() accepted malformed yaml")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("stage:\n  time_limit_s: 42\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBomberman(path)
	if err != nil {
		t.Fatalf("LoadBomberman() failed: %v", err)
	}
	if cfg.Stage.TimeLimitS != 42 {
		t.Errorf("TimeLimitS = %d, expected 42", cfg.Stage.TimeLimitS)
	}

	if _, err := LoadBomberman(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadBomberman() with a missing custom path should fail")
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadBomberman("")
	if err != nil {
		t.Fatalf("LoadBomberman() failed: %v", err)
	}
	if cfg.Grid.Rows != 20 || cfg.Grid.Cols != 30 {
		t.Errorf("grid = %dx%d, expected 20x30", cfg.Grid.Rows, cfg.Grid.Cols)
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "bomberman.yaml"), []byte("player:\n  lives: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBomberman("")
	if err != nil {
		t.Fatalf("LoadBomberman() failed: %v", err)
	}
	if cfg.Player.Lives != 9 {
		t.Errorf("Lives = %d, expected 9 from ./configs", cfg.Player.Lives)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		lives     int
		timeLimit int
		advance   bool
	}{
		{DifficultyEasy, 5, 300, true},
		{DifficultyNormal, 3, 200, true},
		{DifficultyHard, 2, 150, true},
		{DifficultyFixed, 3, 200, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBombermanConfig()
			ApplyBombermanPreset(&cfg, tc.preset)

			if cfg.Player.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Player.Lives, tc.lives)
			}
			if cfg.Stage.TimeLimitS != tc.timeLimit {
				t.Errorf("TimeLimitS = %d, expected %d", cfg.Stage.TimeLimitS, tc.timeLimit)
			}
			if cfg.Stage.Advance != tc.advance {
				t.Errorf("Advance = %v, expected %v", cfg.Stage.Advance, tc.advance)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("ParsePreset() accepted an unknown preset")
	}
}

func TestApplyStartStage(t *testing.T) {
	cfg := DefaultBombermanConfig()
	ApplyStartStage(&cfg, 0)
	if cfg.Stage.Start != 1 {
		t.Errorf("Start = %d after zero override, expected 1", cfg.Stage.Start)
	}
	ApplyStartStage(&cfg, 12)
	if cfg.Stage.Start != 12 {
		t.Errorf("Start = %d, expected 12", cfg.Stage.Start)
	}
}
