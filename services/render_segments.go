package services

import "music_chat_backend/models"

// statusFragmentTypes render standalone, outside the message bubble.
var statusFragmentTypes = map[models.FragmentType]struct{}{
	models.FragmentAudioUploadStart:     {},
	models.FragmentAudioUploadComplete:  {},
	models.FragmentReferenceSelection:   {},
	models.FragmentSongRenderingStart:   {},
	models.FragmentQuantizationStart:    {},
	models.FragmentMixingStart:          {},
	models.FragmentStemSeparationStart:  {},
	models.FragmentSongCompositionStart: {},
	models.FragmentError:                {},
	models.FragmentAudioAnalysisStart:   {},
}

type SegmentKind string

const (
	SegmentContent SegmentKind = "content"
	SegmentStatus  SegmentKind = "status"
)

// Segment is one presentation unit of a message: either a run of content
// fragments batched into one bubble, or a single status fragment.
type Segment struct {
	Kind      SegmentKind         `json:"kind"`
	Fragments []AnnotatedFragment `json:"fragments"`
}

// Loading reports whether a status segment is still in progress.
func (s Segment) Loading() bool {
	return s.Kind == SegmentStatus && len(s.Fragments) == 1 && s.Fragments[0].Loading()
}

// SegmentMessage partitions a message's fragments into presentation units.
// Content fragments accumulate into one segment until a status fragment
// interrupts the run; each status fragment stands alone. Fragment order is
// preserved exactly.
func SegmentMessage(message AnnotatedMessage) []Segment {
	var segments []Segment
	var run []AnnotatedFragment

	flush := func() {
		if len(run) > 0 {
			segments = append(segments, Segment{Kind: SegmentContent, Fragments: run})
			run = nil
		}
	}

	for _, fragment := range message.Content {
		if _, ok := statusFragmentTypes[fragment.FragmentType()]; ok {
			flush()
			segments = append(segments, Segment{Kind: SegmentStatus, Fragments: []AnnotatedFragment{fragment}})
			continue
		}
		run = append(run, fragment)
	}
	flush()

	return segments
}
