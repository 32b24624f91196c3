package models

// TriggerDescriptor is a contextual directive detected in user input by an
// external collaborator and attached read-only to a Message. The core only
// validates its shape; detection and prompt assembly happen elsewhere.
type TriggerDescriptor struct {
	Tag         string          `json:"tag"`  // 1-50 chars
	Name        string          `json:"name"` // 1-100 chars
	Category    string          `json:"category"`
	Instruction string          `json:"instruction"`
	Metadata    TriggerMetadata `json:"metadata"`
}

type TriggerMetadata struct {
	Purpose        string `json:"purpose"`
	ContextUsed    string `json:"context_used"`
	InfluenceScope string `json:"influence_scope"`
}
