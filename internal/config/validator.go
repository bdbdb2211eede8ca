package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks the run configuration before any invocation happens.
//
// Every problem found here is an environment error: nothing has run yet,
// so the whole run is simply refused.
//
// Returns nil if valid, or a ValidationErrors containing all problems.
func (c *RunConfig) Validate() error {
	errs := &ValidationErrors{}

	if c.Binary == "" {
		errs.Add("binary", "path to the benchmark binary is required")
	} else if _, err := os.Stat(c.Binary); err != nil {
		errs.Add("binary", fmt.Sprintf("binary not found: %s", c.Binary))
	}

	if len(c.Configs) == 0 {
		errs.Add("configs", "at least one configuration is required")
	}

	// Duplicate names would silently merge into one result sequence and
	// break the one-visit-per-pass invariant, so they are refused here.
	seen := make(map[string]bool, len(c.Configs))
	for _, name := range c.Configs {
		if name == "" {
			errs.Add("configs", "configuration names must be non-empty")
			continue
		}
		if seen[name] {
			errs.Add("configs", fmt.Sprintf("duplicate configuration name: %s", name))
		}
		seen[name] = true
	}

	if c.Passes < 2 {
		errs.Add("passes", fmt.Sprintf("need at least 2 passes for interleaved testing, got %d", c.Passes))
	}
	if c.Iterations < 1 {
		errs.Add("iterations", "iterations must be at least 1")
	}
	if c.TreeSize < 1 {
		errs.Add("treeSize", "tree size must be at least 1")
	}
	if c.Batches < 1 {
		errs.Add("batches", "batch count must be at least 1")
	}
	if c.BatchSize < 1 {
		errs.Add("batchSize", "batch size must be at least 1")
	}
	if c.PinCPU < -1 {
		errs.Add("pinCpu", fmt.Sprintf("invalid CPU index: %d", c.PinCPU))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
