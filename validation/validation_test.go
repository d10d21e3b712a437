package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/kbukum/taskflow/errors"
)

type sample struct {
	URL      string        `mapstructure:"fetch_url" validate:"required,url"`
	Timeout  time.Duration `mapstructure:"fetch_timeout" validate:"gt=0"`
	Capacity int           `mapstructure:"channel_capacity" validate:"gte=1"`
	Mode     string        `validate:"omitempty,oneof=bounded streaming"`
}

func TestValidateValid(t *testing.T) {
	s := sample{URL: "https://example.com/get", Timeout: time.Second, Capacity: 1}
	if err := Validate(s); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	s := sample{URL: "not a url", Timeout: 0, Capacity: 0, Mode: "other"}
	err := Validate(s)
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeConfigInvalid {
		t.Errorf("expected CONFIG_INVALID, got %s", appErr.Code)
	}

	for _, want := range []string{
		"fetch_url: must be a valid URL",
		"fetch_timeout: must be greater than 0",
		"channel_capacity: must be at least 1",
		"mode: must be one of: bounded streaming",
	} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("expected message to contain %q, got %q", want, appErr.Message)
		}
	}

	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 4 {
		t.Errorf("expected 4 field errors, got %v", appErr.Details["fields"])
	}
}

func TestValidateRequired(t *testing.T) {
	s := sample{Timeout: time.Second, Capacity: 1}
	err := Validate(s)
	if err == nil || !strings.Contains(err.Error(), "fetch_url: is required") {
		t.Errorf("expected required error, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"MaxInFlight": "max_in_flight",
		"Threshold":   "threshold",
		"url":         "url",
		"HTTP":        "h_t_t_p",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFieldPath(t *testing.T) {
	tests := map[string]string{
		"AppConfig.engine.threshold": "engine.threshold",
		"Config.name":                "name",
		"name":                       "name",
	}
	for in, want := range tests {
		if got := fieldPath(in); got != want {
			t.Errorf("fieldPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateNested(t *testing.T) {
	type inner struct {
		Threshold int `mapstructure:"threshold" validate:"gte=0"`
	}
	type outer struct {
		Engine inner `mapstructure:"engine"`
	}

	err := Validate(outer{Engine: inner{Threshold: -1}})
	if err == nil || !strings.Contains(err.Error(), "engine.threshold: must be at least 0") {
		t.Errorf("expected nested field path, got %v", err)
	}
}
