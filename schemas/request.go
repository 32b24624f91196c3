package schemas

import (
	"unicode/utf8"

	"github.com/onyxlabs/onyxgpt/models"
)

// Bounds for inference requests. Ranges are inclusive on both ends.
const (
	MaxModelChars  = 255
	MinTemperature = 0.0
	MaxTemperature = 2.0
	MinMaxTokens   = 1
	MaxMaxTokens   = 100000
)

// ValidateInferenceRequest validates the nested message batch plus the
// model/temperature/max_tokens fields. This is a defaulting operation, not
// merely a checking one: when temperature or max_tokens are omitted the
// returned request carries the stated defaults. Re-validating the returned
// value yields the same value.
func ValidateInferenceRequest(input models.InferenceRequest) (models.InferenceRequest, error) {
	var v violations

	if _, err := ValidateMessageBatch(input.Messages); err != nil {
		// Batch violations already carry "messages..." field paths
		if ve, ok := AsValidationError(err); ok {
			v.fields = append(v.fields, ve.Violations...)
		} else {
			v.add("messages", "%s", err.Error())
		}
	}

	if input.Model == "" {
		v.add("model", "must not be empty")
	} else if n := utf8.RuneCountInString(input.Model); n > MaxModelChars {
		v.add("model", "must be at most %d characters, got %d", MaxModelChars, n)
	}

	if input.Temperature != nil {
		if t := *input.Temperature; t < MinTemperature || t > MaxTemperature {
			v.add("temperature", "must be between %g and %g, got %g", MinTemperature, MaxTemperature, t)
		}
	}
	if input.MaxTokens != nil {
		if m := *input.MaxTokens; m < MinMaxTokens || m > MaxMaxTokens {
			v.add("max_tokens", "must be between %d and %d, got %d", MinMaxTokens, MaxMaxTokens, m)
		}
	}

	if err := v.err(); err != nil {
		return models.InferenceRequest{}, err
	}

	out := input
	if out.Temperature == nil {
		t := models.DefaultTemperature
		out.Temperature = &t
	}
	if out.MaxTokens == nil {
		m := models.DefaultMaxTokens
		out.MaxTokens = &m
	}
	return out, nil
}
