package schemas

import (
	"unicode/utf8"

	"github.com/onyxlabs/onyxgpt/models"
)

// Bounds for trigger descriptors.
const (
	MinTriggerTagChars  = 1
	MaxTriggerTagChars  = 50
	MinTriggerNameChars = 1
	MaxTriggerNameChars = 100
)

// ValidateTrigger checks a TriggerDescriptor produced by the external trigger
// detection collaborator before it is attached to a message.
func ValidateTrigger(input models.TriggerDescriptor) (models.TriggerDescriptor, error) {
	var v violations

	if n := utf8.RuneCountInString(input.Tag); n < MinTriggerTagChars || n > MaxTriggerTagChars {
		v.add("tag", "must be between %d and %d characters, got %d", MinTriggerTagChars, MaxTriggerTagChars, n)
	}
	if n := utf8.RuneCountInString(input.Name); n < MinTriggerNameChars || n > MaxTriggerNameChars {
		v.add("name", "must be between %d and %d characters, got %d", MinTriggerNameChars, MaxTriggerNameChars, n)
	}
	if input.Category == "" {
		v.add("category", "must not be empty")
	}
	if input.Instruction == "" {
		v.add("instruction", "must not be empty")
	}

	if err := v.err(); err != nil {
		return models.TriggerDescriptor{}, err
	}
	return input, nil
}
