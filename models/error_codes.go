package models

// Task error codes the assistant is allowed to surface. Anything outside
// this set is coerced to Unknown before it reaches storage or rendering.
const (
	TaskErrNoChordsSnapped          = "NoChordsSnapped"
	TaskErrUnsupportedTimeSignature = "UnsupportedTimeSignature"
	TaskErrNoBeatsFound             = "NoBeatsFound"
	TaskErrUnknown                  = "Unknown"
)

var knownTaskErrorCodes = map[string]struct{}{
	TaskErrNoChordsSnapped:          {},
	TaskErrUnsupportedTimeSignature: {},
	TaskErrNoBeatsFound:             {},
}

func NormalizeTaskErrorCode(code string) string {
	if _, ok := knownTaskErrorCodes[code]; ok {
		return code
	}
	return TaskErrUnknown
}
