package validation

import (
	"errors"
	"testing"
	"time"

	lgerrors "github.com/llmops/loadgate/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"positive", 10, false},
		{"one", 1, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("loadtest", "concurrency", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, lgerrors.ErrInvalidConfiguration) {
				t.Error("validation error should match ErrInvalidConfiguration")
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("loadtest", "total_ops", 0); err != nil {
		t.Errorf("zero should be valid: %v", err)
	}
	if err := ValidateNonNegative("loadtest", "total_ops", -1); err == nil {
		t.Error("negative value should be invalid")
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	if err := ValidatePositiveDuration("slidingwindow", "window", time.Minute); err != nil {
		t.Errorf("positive duration should be valid: %v", err)
	}
	if err := ValidatePositiveDuration("slidingwindow", "window", 0); err == nil {
		t.Error("zero duration should be invalid")
	}
	if err := ValidatePositiveDuration("slidingwindow", "window", -time.Second); err == nil {
		t.Error("negative duration should be invalid")
	}
}

func TestValidateNotNil(t *testing.T) {
	if err := ValidateNotNil("slidingwindow", "store", struct{}{}); err != nil {
		t.Errorf("non-nil value should be valid: %v", err)
	}
	if err := ValidateNotNil("slidingwindow", "store", nil); err == nil {
		t.Error("nil value should be invalid")
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("config", "redis_addr", "localhost:6379"); err != nil {
		t.Errorf("non-empty string should be valid: %v", err)
	}
	if err := ValidateNotEmpty("config", "redis_addr", ""); err == nil {
		t.Error("empty string should be invalid")
	}
}
