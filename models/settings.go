package models

// TaskMode selects the prompt/assembly profile for a conversation.
type TaskMode string

const (
	TaskModeStandard  TaskMode = "standard"
	TaskModeReasoning TaskMode = "reasoning"
	TaskModeResearch  TaskMode = "research"
	TaskModeCreative  TaskMode = "creative"
)

// ValidTaskMode reports whether m is a recognized task mode.
func ValidTaskMode(m TaskMode) bool {
	switch m {
	case TaskModeStandard, TaskModeReasoning, TaskModeResearch, TaskModeCreative:
		return true
	}
	return false
}

// Provider identifies which backend the chat pipeline talks to.
type Provider string

const (
	ProviderPuter      Provider = "puter"
	ProviderOpenRouter Provider = "openrouter"
)

// ValidProvider reports whether p is a recognized provider.
func ValidProvider(p Provider) bool {
	switch p {
	case ProviderPuter, ProviderOpenRouter:
		return true
	}
	return false
}

// AppSettings is the user-configurable settings aggregate. Booleans and
// TaskMode are pointers so schemas.ValidateSettings can tell "omitted" from
// "explicitly false" and apply the stated defaults. Unknown keys in raw input
// are simply ignored by the validator.
type AppSettings struct {
	TextModel  string `json:"textModel"`
	ImageModel string `json:"imageModel"`

	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"maxTokens,omitempty"`

	EnableWebSearch  *bool `json:"enableWebSearch,omitempty"`  // default false
	EnableDeepSearch *bool `json:"enableDeepSearch,omitempty"` // default false
	EnableDebugLogs  *bool `json:"enableDebugLogs,omitempty"`  // default false
	StreamingEnabled *bool `json:"streamingEnabled,omitempty"` // default true
	IncognitoMode    *bool `json:"incognitoMode,omitempty"`    // default false

	// Free-form style strings, passed through to the UI untouched.
	ThemeColor      string `json:"themeColor,omitempty"`
	AccentColor     string `json:"accentColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	SidebarColor    string `json:"sidebarColor,omitempty"`

	TaskMode *TaskMode `json:"taskMode,omitempty"` // default "standard"

	Provider            Provider `json:"provider,omitempty"`
	CustomOpenRouterKey string   `json:"customOpenRouterKey,omitempty"`
}
