package schemas

import "github.com/onyxlabs/onyxgpt/models"

// Defaults for omitted settings booleans. Streaming is the only one that
// defaults on.
const (
	DefaultEnableWebSearch  = false
	DefaultEnableDeepSearch = false
	DefaultEnableDebugLogs  = false
	DefaultStreamingEnabled = true
	DefaultIncognitoMode    = false
)

// ValidateSettings validates the AppSettings aggregate. TextModel and
// ImageModel are required and never receive silent defaults; omitted booleans
// and taskMode come back with their stated defaults. Unknown keys in raw
// input are dropped by JSON decoding into the struct, which is the intended
// "ignore unrecognized options" behavior.
func ValidateSettings(input models.AppSettings) (models.AppSettings, error) {
	var v violations

	if input.TextModel == "" {
		v.add("textModel", "must not be empty")
	}
	if input.ImageModel == "" {
		v.add("imageModel", "must not be empty")
	}

	if input.Temperature != nil {
		if t := *input.Temperature; t < MinTemperature || t > MaxTemperature {
			v.add("temperature", "must be between %g and %g, got %g", MinTemperature, MaxTemperature, t)
		}
	}
	if input.MaxTokens != nil {
		if m := *input.MaxTokens; m < MinMaxTokens || m > MaxMaxTokens {
			v.add("maxTokens", "must be between %d and %d, got %d", MinMaxTokens, MaxMaxTokens, m)
		}
	}

	if input.TaskMode != nil && !models.ValidTaskMode(*input.TaskMode) {
		v.add("taskMode", "must be one of %q, %q, %q, %q",
			models.TaskModeStandard, models.TaskModeReasoning, models.TaskModeResearch, models.TaskModeCreative)
	}
	if input.Provider != "" && !models.ValidProvider(input.Provider) {
		v.add("provider", "must be one of %q, %q", models.ProviderPuter, models.ProviderOpenRouter)
	}

	if err := v.err(); err != nil {
		return models.AppSettings{}, err
	}

	out := input
	out.EnableWebSearch = defaultBool(out.EnableWebSearch, DefaultEnableWebSearch)
	out.EnableDeepSearch = defaultBool(out.EnableDeepSearch, DefaultEnableDeepSearch)
	out.EnableDebugLogs = defaultBool(out.EnableDebugLogs, DefaultEnableDebugLogs)
	out.StreamingEnabled = defaultBool(out.StreamingEnabled, DefaultStreamingEnabled)
	out.IncognitoMode = defaultBool(out.IncognitoMode, DefaultIncognitoMode)
	if out.TaskMode == nil {
		mode := models.TaskModeStandard
		out.TaskMode = &mode
	}
	return out, nil
}

func defaultBool(b *bool, def bool) *bool {
	if b != nil {
		return b
	}
	return &def
}
