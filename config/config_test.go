package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spektr-org/launchdash/schema"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadYAMLOverDefaults(t *testing.T) {
	data := []byte(`
dataset: data/launches.csv
server:
  shutdown_timeout: 2s
log:
  level: debug
schema:
  sites:
    - value: KSC LC-39A
      label: Kennedy 39A
  slider: { min: 0, max: 16000, step: 500 }
`)
	cfg, err := Load(data, ".yml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Dataset != "data/launches.csv" {
		t.Errorf("Dataset = %q", cfg.Dataset)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want default %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.ShutdownTimeout.Std() != 2*time.Second {
		t.Errorf("ShutdownTimeout = %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	want := []schema.SiteOption{{Value: "KSC LC-39A", Label: "Kennedy 39A"}}
	if diff := cmp.Diff(want, cfg.Schema.Sites); diff != "" {
		t.Errorf("sites mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(schema.DefaultColumns(), cfg.Schema.Columns); diff != "" {
		t.Errorf("columns should keep defaults (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadDetectsJSON(t *testing.T) {
	data := []byte(`{"dataset": "x.csv", "server": {"addr": ":9000", "shutdownTimeout": 3}}`)
	cfg, err := Load(data, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ShutdownTimeout.Std() != 3*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Dataset != "x.csv" {
		t.Errorf("Dataset = %q", cfg.Dataset)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launchdash.json")
	if err := os.WriteFile(path, []byte(`{"server": {"shutdownTimeout": "750ms"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Server.ShutdownTimeout.Std() != 750*time.Millisecond {
		t.Errorf("ShutdownTimeout = %s", cfg.Server.ShutdownTimeout)
	}

	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"bad yaml", "server: [", ".yaml"},
		{"bad duration", "server:\n  shutdown_timeout: soon\n", ".yaml"},
		{"bad json", `{"dataset": }`, ".json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.data), tt.ext); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Dataset = ""
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Schema.Slider.Step = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"dataset path", "loud", "xml", "slider step"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
