package schemas

import (
	"fmt"
	"unicode/utf8"

	"github.com/onyxlabs/onyxgpt/models"
)

// Bounds for chat messages and batches. Both ends of every range are
// inclusive.
const (
	MaxContentChars = 10000
	MinBatchSize    = 1
	MaxBatchSize    = 100
)

// ValidateMessage checks a single chat message against the Message contract:
// role must be in the closed role set, content must be non-empty and at most
// MaxContentChars characters. All violations are collected before failing.
// On success the message is returned unchanged.
func ValidateMessage(input models.Message) (models.Message, error) {
	var v violations

	if !models.ValidRole(input.Role) {
		v.add("role", "must be one of %q, %q, %q", models.RoleUser, models.RoleAssistant, models.RoleSystem)
	}
	if input.Content == "" {
		v.add("content", "must not be empty")
	} else if n := utf8.RuneCountInString(input.Content); n > MaxContentChars {
		v.add("content", "must be at most %d characters, got %d", MaxContentChars, n)
	}

	if err := v.err(); err != nil {
		return models.Message{}, err
	}
	return input, nil
}

// ValidateMessageBatch validates each element via the Message contract and
// the batch-size bound [MinBatchSize, MaxBatchSize]. The sequence is returned
// unchanged and in original order; no reordering, no dedup.
func ValidateMessageBatch(input []models.Message) ([]models.Message, error) {
	var v violations

	if len(input) < MinBatchSize {
		v.add("messages", "must contain at least %d message", MinBatchSize)
	} else if len(input) > MaxBatchSize {
		v.add("messages", "must contain at most %d messages, got %d", MaxBatchSize, len(input))
	}

	for i, msg := range input {
		if _, err := ValidateMessage(msg); err != nil {
			v.merge(fmt.Sprintf("messages[%d]", i), err)
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return input, nil
}
