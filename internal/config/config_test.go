package config

import (
	"os"
	"testing"

	"github.com/jasonKoogler/archsim/internal/tage"
)

func TestLoadProcConfig(t *testing.T) {
	content := `
resultBuses: 1
k0Units: 4
k1Units: 0
k2Units: 0
fetchWidth: 2
tracePath: "traces/contention.trace"
`
	tmpfile, err := os.CreateTemp("", "procconfig-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	cfg, err := LoadProcConfig(tmpfile.Name())
	if err != nil {
		t.Fatalf("LoadProcConfig() error = %v", err)
	}

	if cfg.ResultBuses != 1 {
		t.Errorf("Expected ResultBuses = 1, got %d", cfg.ResultBuses)
	}
	if cfg.K0Units != 4 {
		t.Errorf("Expected K0Units = 4, got %d", cfg.K0Units)
	}
	if cfg.RSCapacity() != 8 {
		t.Errorf("Expected RSCapacity = 8, got %d", cfg.RSCapacity())
	}
}

func TestProcConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProcConfig
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     ProcConfig{ResultBuses: 2, K0Units: 1, K1Units: 1, K2Units: 1, FetchWidth: 2},
			wantErr: false,
		},
		{
			name:    "zero result buses",
			cfg:     ProcConfig{ResultBuses: 0, K0Units: 1, FetchWidth: 1},
			wantErr: true,
		},
		{
			name:    "zero fetch width",
			cfg:     ProcConfig{ResultBuses: 1, K0Units: 1, FetchWidth: 0},
			wantErr: true,
		},
		{
			name:    "all FU pools empty",
			cfg:     ProcConfig{ResultBuses: 1, K0Units: 0, K1Units: 0, K2Units: 0, FetchWidth: 1},
			wantErr: true,
		},
		{
			name:    "negative FU count",
			cfg:     ProcConfig{ResultBuses: 1, K0Units: -1, FetchWidth: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultProcConfig(t *testing.T) {
	cfg := DefaultProcConfig()

	if cfg == nil {
		t.Fatalf("DefaultProcConfig() returned nil")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultProcConfig() should be valid, got error: %v", err)
	}

	if cfg.RSCapacity() != 6 {
		t.Errorf("Expected default RSCapacity = 6, got %d", cfg.RSCapacity())
	}
}

func TestTageConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		variant tage.Variant
		wantErr bool
	}{
		{name: "tuned", variant: tage.VariantTuned, wantErr: false},
		{name: "wide", variant: tage.VariantWide, wantErr: false},
		{name: "unknown", variant: tage.Variant("bogus"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := TageConfig{Variant: tt.variant}
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultTageConfig(t *testing.T) {
	cfg := DefaultTageConfig()
	if cfg.Variant != tage.VariantTuned {
		t.Errorf("Expected default variant = tuned, got %s", cfg.Variant)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultTageConfig() should be valid, got error: %v", err)
	}
}
