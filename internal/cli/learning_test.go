package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/khanglvm/liftsearch/internal/config"
)

func TestLearningCommandGroup(t *testing.T) {
	cmd := NewLearningCmd()

	want := map[string]bool{
		"status": false, "aliases": false, "alias": false, "export": false,
		"cleanup": false, "disable": false, "enable": false,
	}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestLearningAliasFlow(t *testing.T) {
	withHome(t)

	output, err := execute(t, NewLearningCmd(), "alias", "Front Squat", "zercher-ish")
	if err != nil {
		t.Fatalf("alias failed: %v", err)
	}
	if !strings.Contains(output, `"zercher-ish" now finds Front Squat`) {
		t.Errorf("unexpected output:\n%s", output)
	}

	output, err = execute(t, NewLearningCmd(), "aliases", "sys-front-squat")
	if err != nil {
		t.Fatalf("aliases failed: %v", err)
	}
	if !strings.Contains(output, "zercher-ish") || !strings.Contains(output, "manual") {
		t.Errorf("unexpected aliases output:\n%s", output)
	}

	output, err = execute(t, NewLearningCmd(), "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(output, "Tracking enabled:  true") || !strings.Contains(output, "manual:") {
		t.Errorf("unexpected status output:\n%s", output)
	}
}

func TestLearningExport(t *testing.T) {
	home := withHome(t)

	execute(t, NewSelectCmd(), "squat", "sys-squat")

	out := filepath.Join(home, "learning.json")
	if _, err := execute(t, NewLearningCmd(), "export", "--output", out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	output, err := execute(t, NewLearningCmd(), "export")
	if err != nil {
		t.Fatalf("export to stdout failed: %v", err)
	}

	var data struct {
		Usage map[string]struct {
			Count int `json:"count"`
		} `json:"usage"`
	}
	if err := json.Unmarshal([]byte(output), &data); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if data.Usage["sys-squat"].Count != 1 {
		t.Errorf("expected one recorded selection, got %+v", data.Usage)
	}
}

func TestLearningToggle(t *testing.T) {
	withHome(t)

	if _, err := execute(t, NewLearningCmd(), "disable"); err != nil {
		t.Fatalf("disable failed: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	if cfg.Learning.Enabled {
		t.Error("learning should be disabled in config")
	}

	output, _ := execute(t, NewSelectCmd(), "squat", "sys-squat")
	if !strings.Contains(output, "Learning is disabled") {
		t.Errorf("select should be a no-op when disabled:\n%s", output)
	}

	execute(t, NewLearningCmd(), "enable")
	cfg, _ = config.Load()
	if !cfg.Learning.Enabled {
		t.Error("learning should be enabled again")
	}
}

func TestLearningCleanup(t *testing.T) {
	withHome(t)

	output, err := execute(t, NewLearningCmd(), "cleanup")
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if !strings.Contains(output, "✓ Removed 0 orphaned learning records") {
		t.Errorf("unexpected output:\n%s", output)
	}
}
