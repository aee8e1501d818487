package models

import (
	"encoding/json"
	"fmt"
)

// UnmarshalFragment decodes one fragment from its wire form, dispatching on
// the "type" discriminator. The set of types is closed; an unlisted type is
// a decode error, not a silent passthrough.
func UnmarshalFragment(data []byte) (Fragment, error) {
	var probe struct {
		Type FragmentType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to probe fragment type: %w", err)
	}

	var f Fragment
	switch probe.Type {
	case FragmentText:
		f = &TextFragment{}
	case FragmentError:
		f = &ErrorFragment{}
	case FragmentAudioUploadRequest:
		f = &AudioUploadRequestFragment{}
	case FragmentAudioUploadStart:
		f = &AudioUploadStartFragment{}
	case FragmentAudioUploadComplete:
		f = &AudioUploadCompleteFragment{}
	case FragmentAudioAnalysisStart:
		f = &AudioAnalysisStartFragment{}
	case FragmentAudioAnalysisComplete:
		f = &AudioAnalysisCompleteFragment{}
	case FragmentReferenceCandidates:
		f = &ReferenceCandidatesFragment{}
	case FragmentReferenceSelection:
		f = &ReferenceSelectionFragment{}
	case FragmentSongRenderingStart:
		f = &SongRenderingStartFragment{}
	case FragmentSongRenderingComplete:
		f = &SongRenderingCompleteFragment{}
	case FragmentQuantizationStart:
		f = &QuantizationStartFragment{}
	case FragmentQuantizationComplete:
		f = &QuantizationCompleteFragment{}
	case FragmentMixingStart:
		f = &MixingStartFragment{}
	case FragmentMixingComplete:
		f = &MixingCompleteFragment{}
	case FragmentStemSeparationStart:
		f = &StemSeparationStartFragment{}
	case FragmentStemSeparationComplete:
		f = &StemSeparationCompleteFragment{}
	case FragmentSongCompositionStart:
		f = &SongCompositionStartFragment{}
	case FragmentSongCompositionComplete:
		f = &SongCompositionCompleteFragment{}
	case FragmentLyricsWriting:
		f = &LyricsWritingFragment{}
	case FragmentMusicalMatches:
		f = &MusicalMatchesFragment{}
	default:
		return nil, fmt.Errorf("unknown fragment type %q", probe.Type)
	}

	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s fragment: %w", probe.Type, err)
	}
	return f, nil
}

// Content is the ordered fragment sequence of one message.
type Content []Fragment

func (c *Content) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Content, 0, len(raw))
	for _, r := range raw {
		f, err := UnmarshalFragment(r)
		if err != nil {
			return err
		}
		out = append(out, f)
	}
	*c = out
	return nil
}
