package models

// APICallLogEntry is one record of a single external-client call attempt and
// its outcome. Entries are owned by the telemetry logger; nothing else
// creates or mutates them.
type APICallLogEntry struct {
	ID        string      `json:"id"`        // unique, time-derived
	Type      string      `json:"type"`      // always "api"
	Message   string      `json:"message"`   // human-readable summary
	Timestamp int64       `json:"timestamp"` // epoch millis, entry creation time
	Details   CallDetails `json:"details"`
}

// CallDetails captures the call itself: what was invoked, with what, and how
// it went.
type CallDetails struct {
	Method    string         `json:"method"`
	Params    map[string]any `json:"params,omitempty"`
	Response  any            `json:"response,omitempty"` // truncated text, or structured as-is
	Error     string         `json:"error,omitempty"`    // message only, never a stack
	Duration  int64          `json:"duration"`           // wall-clock ms
	StartTime int64          `json:"start_time"`         // epoch millis, call start
}

// LogEntryType is the fixed tag carried by every API call log entry.
const LogEntryType = "api"
