package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTaskErrorCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"no chords snapped passes through", "NoChordsSnapped", TaskErrNoChordsSnapped},
		{"unsupported time signature passes through", "UnsupportedTimeSignature", TaskErrUnsupportedTimeSignature},
		{"no beats found passes through", "NoBeatsFound", TaskErrNoBeatsFound},
		{"unlisted code coerced", "OutOfMemory", TaskErrUnknown},
		{"empty code coerced", "", TaskErrUnknown},
		{"case sensitive", "nochordssnapped", TaskErrUnknown},
		{"unknown maps to itself", "Unknown", TaskErrUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTaskErrorCode(tt.code))
		})
	}
}
