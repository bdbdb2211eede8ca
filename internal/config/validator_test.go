package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeBinary creates a file on disk so the binary-exists check passes.
func fakeBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "btree_benchmark")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("failed to create fake binary: %v", err)
	}
	return path
}

func validConfig(t *testing.T) *RunConfig {
	cfg := DefaultRunConfig()
	cfg.Binary = fakeBinary(t)
	cfg.Configs = []string{"btree_linear", "btree_simd"}
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig(t).Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunConfig)
		field   string
		message string
	}{
		{
			name:   "missing binary path",
			mutate: func(c *RunConfig) { c.Binary = "" },
			field:  "binary",
		},
		{
			name:    "binary does not exist",
			mutate:  func(c *RunConfig) { c.Binary = "/nonexistent/btree_benchmark" },
			field:   "binary",
			message: "not found",
		},
		{
			name:   "no configurations",
			mutate: func(c *RunConfig) { c.Configs = nil },
			field:  "configs",
		},
		{
			name:    "duplicate configuration name",
			mutate:  func(c *RunConfig) { c.Configs = []string{"a", "b", "a"} },
			field:   "configs",
			message: "duplicate",
		},
		{
			name:   "empty configuration name",
			mutate: func(c *RunConfig) { c.Configs = []string{"a", ""} },
			field:  "configs",
		},
		{
			name:    "single pass",
			mutate:  func(c *RunConfig) { c.Passes = 1 },
			field:   "passes",
			message: "at least 2",
		},
		{
			name:    "zero passes",
			mutate:  func(c *RunConfig) { c.Passes = 0 },
			field:   "passes",
			message: "at least 2",
		},
		{
			name:   "zero iterations",
			mutate: func(c *RunConfig) { c.Iterations = 0 },
			field:  "iterations",
		},
		{
			name:   "zero tree size",
			mutate: func(c *RunConfig) { c.TreeSize = 0 },
			field:  "treeSize",
		},
		{
			name:   "zero batches",
			mutate: func(c *RunConfig) { c.Batches = 0 },
			field:  "batches",
		},
		{
			name:   "zero batch size",
			mutate: func(c *RunConfig) { c.BatchSize = 0 },
			field:  "batchSize",
		},
		{
			name:   "cpu index below -1",
			mutate: func(c *RunConfig) { c.PinCPU = -2 },
			field:  "pinCpu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want failure")
			}

			var verrs *ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type = %T, want *ValidationErrors", err)
			}

			found := false
			for _, ve := range verrs.Errors {
				if ve.Field != tt.field {
					continue
				}
				if tt.message == "" || strings.Contains(ve.Message, tt.message) {
					found = true
				}
			}
			if !found {
				t.Errorf("no error on field %q containing %q, got: %v", tt.field, tt.message, err)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &RunConfig{Passes: 1}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want failure")
	}

	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error type = %T, want *ValidationErrors", err)
	}
	if len(verrs.Errors) < 3 {
		t.Errorf("error count = %d, want all problems reported at once", len(verrs.Errors))
	}
	if !strings.Contains(err.Error(), "validation errors") {
		t.Errorf("multi-error message = %q, want count header", err.Error())
	}
}

func TestValidationError_Error(t *testing.T) {
	e := &ValidationError{Field: "passes", Message: "need at least 2 passes"}
	if got := e.Error(); !strings.Contains(got, "passes") || !strings.Contains(got, "at least 2") {
		t.Errorf("Error() = %q", got)
	}

	noField := &ValidationError{Message: "something broke"}
	if got := noField.Error(); strings.Contains(got, "field") {
		t.Errorf("Error() without field = %q, should not mention a field", got)
	}
}
