package schemas

import (
	"strings"
	"testing"

	"github.com/onyxlabs/onyxgpt/models"
)

func validTrigger() models.TriggerDescriptor {
	return models.TriggerDescriptor{
		Tag:         "recall",
		Name:        "Memory recall",
		Category:    "memory",
		Instruction: "Use the referenced conversation context.",
		Metadata: models.TriggerMetadata{
			Purpose:        "context recall",
			ContextUsed:    "previous conversation",
			InfluenceScope: "current turn",
		},
	}
}

func TestValidateTrigger_Valid(t *testing.T) {
	if _, err := ValidateTrigger(validTrigger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateTrigger_TagBounds(t *testing.T) {
	tr := validTrigger()
	tr.Tag = ""
	if _, err := ValidateTrigger(tr); err == nil {
		t.Error("expected error for empty tag")
	}

	tr.Tag = strings.Repeat("t", MaxTriggerTagChars+1)
	if _, err := ValidateTrigger(tr); err == nil {
		t.Error("expected error for oversized tag")
	}
}

func TestValidateTrigger_NameBounds(t *testing.T) {
	tr := validTrigger()
	tr.Name = strings.Repeat("n", MaxTriggerNameChars+1)
	if _, err := ValidateTrigger(tr); err == nil {
		t.Error("expected error for oversized name")
	}
}

func TestValidateTrigger_RequiredFields(t *testing.T) {
	tr := validTrigger()
	tr.Category = ""
	tr.Instruction = ""
	_, err := ValidateTrigger(tr)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "category") || !strings.Contains(err.Error(), "instruction") {
		t.Errorf("both violations should be listed: %v", err)
	}
}
