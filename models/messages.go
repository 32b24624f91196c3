package models

// Chat message roles. The role set is closed; anything else is rejected by
// the schemas package before it reaches a provider client.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single chat turn. Messages are immutable once validated:
// downstream code (prompt assembly, provider clients) reads them but never
// mutates them in place.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`

	// Triggers are contextual directives attached by the external trigger
	// detection collaborator. Read-only; used for downstream prompt assembly.
	Triggers []TriggerDescriptor `json:"triggers,omitempty"`
}

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}
