package models

type FragmentType string

const (
	FragmentText  FragmentType = "text"
	FragmentError FragmentType = "error"

	FragmentAudioUploadRequest  FragmentType = "audio_upload_request"
	FragmentAudioUploadStart    FragmentType = "audio_upload_start"
	FragmentAudioUploadComplete FragmentType = "audio_upload_complete"

	FragmentAudioAnalysisStart    FragmentType = "audio_analysis_start"
	FragmentAudioAnalysisComplete FragmentType = "audio_analysis_complete"

	FragmentReferenceCandidates FragmentType = "reference_candidates"
	FragmentReferenceSelection  FragmentType = "reference_selection"

	FragmentSongRenderingStart    FragmentType = "song_rendering_start"
	FragmentSongRenderingComplete FragmentType = "song_rendering_complete"

	FragmentQuantizationStart    FragmentType = "quantization_start"
	FragmentQuantizationComplete FragmentType = "quantization_complete"

	FragmentMixingStart    FragmentType = "mixing_start"
	FragmentMixingComplete FragmentType = "mixing_complete"

	FragmentStemSeparationStart    FragmentType = "stem_separation_start"
	FragmentStemSeparationComplete FragmentType = "stem_separation_complete"

	FragmentSongCompositionStart    FragmentType = "song_composition_start"
	FragmentSongCompositionComplete FragmentType = "song_composition_complete"

	FragmentLyricsWriting  FragmentType = "lyrics_writing"
	FragmentMusicalMatches FragmentType = "musical_matches"
)

// Family groups the fragment types that belong to one task kind. Correlation
// keys are scoped per family, so the same id in two families never collides.
type Family string

const (
	FamilyAudioUpload     Family = "audio_upload"
	FamilySongRendering   Family = "song_rendering"
	FamilyReference       Family = "reference"
	FamilyQuantization    Family = "quantization"
	FamilyMixing          Family = "mixing"
	FamilyStemSeparation  Family = "stem_separation"
	FamilySongComposition Family = "song_composition"
	FamilyAudioAnalysis   Family = "audio_analysis"
)

// Families lists every task family in projection order.
var Families = []Family{
	FamilyAudioUpload,
	FamilySongRendering,
	FamilyReference,
	FamilyQuantization,
	FamilyMixing,
	FamilyStemSeparation,
	FamilySongComposition,
	FamilyAudioAnalysis,
}

// Fragment is one typed unit of message content: plain text or a task
// lifecycle event. Fragments are immutable once created; the "done" state is
// never stored on a fragment, it is derived by the message processor.
type Fragment interface {
	FragmentType() FragmentType

	// Correlation returns the family and correlation key linking this
	// fragment to its task lifecycle. ok is false for fragments that belong
	// to no family (text, lyrics, matches, error).
	Correlation() (family Family, key string, ok bool)

	// TaskID returns the fragment's task id when it carries one. Error
	// fragments carry a task id without belonging to a family.
	TaskID() (string, bool)
}

type TextFragment struct {
	Type FragmentType `json:"type"`
	Text string       `json:"text"`
}

func NewTextFragment(text string) *TextFragment {
	return &TextFragment{Type: FragmentText, Text: text}
}

func (f *TextFragment) FragmentType() FragmentType            { return FragmentText }
func (f *TextFragment) Correlation() (Family, string, bool)   { return "", "", false }
func (f *TextFragment) TaskID() (string, bool)                { return "", false }

// ErrorFragment marks a task as terminally failed. It feeds the error index
// of the projection; it never joins a correlation group itself.
type ErrorFragment struct {
	Type   FragmentType `json:"type"`
	TaskId string       `json:"taskId"`
	Error  string       `json:"error"`
}

func NewErrorFragment(taskID, code string) *ErrorFragment {
	return &ErrorFragment{Type: FragmentError, TaskId: taskID, Error: code}
}

func (f *ErrorFragment) FragmentType() FragmentType          { return FragmentError }
func (f *ErrorFragment) Correlation() (Family, string, bool) { return "", "", false }
func (f *ErrorFragment) TaskID() (string, bool)              { return f.TaskId, true }

type AudioUploadRequestFragment struct {
	Type                 FragmentType `json:"type"`
	TaskId               string       `json:"taskId"`
	AudioUploadRequestId string       `json:"audioUploadRequestId"`
	FileName             string       `json:"fileName,omitempty"`
	PostProcess          string       `json:"postProcess,omitempty"`
}

func (f *AudioUploadRequestFragment) FragmentType() FragmentType { return FragmentAudioUploadRequest }
func (f *AudioUploadRequestFragment) Correlation() (Family, string, bool) {
	return FamilyAudioUpload, f.AudioUploadRequestId, true
}
func (f *AudioUploadRequestFragment) TaskID() (string, bool) { return f.TaskId, true }

type AudioUploadStartFragment struct {
	Type                 FragmentType `json:"type"`
	TaskId               string       `json:"taskId"`
	AudioUploadRequestId string       `json:"audioUploadRequestId"`
	FileName             string       `json:"fileName,omitempty"`
}

func (f *AudioUploadStartFragment) FragmentType() FragmentType { return FragmentAudioUploadStart }
func (f *AudioUploadStartFragment) Correlation() (Family, string, bool) {
	return FamilyAudioUpload, f.AudioUploadRequestId, true
}
func (f *AudioUploadStartFragment) TaskID() (string, bool) { return f.TaskId, true }

type AudioUploadCompleteFragment struct {
	Type                 FragmentType `json:"type"`
	TaskId               string       `json:"taskId"`
	AudioUploadRequestId string       `json:"audioUploadRequestId"`
	AudioId              string       `json:"audioId"`
	SongName             string       `json:"songName,omitempty"`
}

func (f *AudioUploadCompleteFragment) FragmentType() FragmentType { return FragmentAudioUploadComplete }
func (f *AudioUploadCompleteFragment) Correlation() (Family, string, bool) {
	return FamilyAudioUpload, f.AudioUploadRequestId, true
}
func (f *AudioUploadCompleteFragment) TaskID() (string, bool) { return f.TaskId, true }

type AudioAnalysisStartFragment struct {
	Type    FragmentType `json:"type"`
	TaskId  string       `json:"taskId"`
	AudioId string       `json:"audioId"`
}

func (f *AudioAnalysisStartFragment) FragmentType() FragmentType { return FragmentAudioAnalysisStart }
func (f *AudioAnalysisStartFragment) Correlation() (Family, string, bool) {
	return FamilyAudioAnalysis, f.TaskId, true
}
func (f *AudioAnalysisStartFragment) TaskID() (string, bool) { return f.TaskId, true }

type AudioAnalysisCompleteFragment struct {
	Type    FragmentType `json:"type"`
	TaskId  string       `json:"taskId"`
	AudioId string       `json:"audioId"`
}

func (f *AudioAnalysisCompleteFragment) FragmentType() FragmentType {
	return FragmentAudioAnalysisComplete
}
func (f *AudioAnalysisCompleteFragment) Correlation() (Family, string, bool) {
	return FamilyAudioAnalysis, f.TaskId, true
}
func (f *AudioAnalysisCompleteFragment) TaskID() (string, bool) { return f.TaskId, true }

type ReferenceCandidatesFragment struct {
	Type                  FragmentType `json:"type"`
	ReferenceCandidatesId string       `json:"referenceCandidatesId"`
	References            []string     `json:"references"`
}

func (f *ReferenceCandidatesFragment) FragmentType() FragmentType { return FragmentReferenceCandidates }
func (f *ReferenceCandidatesFragment) Correlation() (Family, string, bool) {
	return FamilyReference, f.ReferenceCandidatesId, true
}
func (f *ReferenceCandidatesFragment) TaskID() (string, bool) { return "", false }

type ReferenceSelectionFragment struct {
	Type                  FragmentType `json:"type"`
	ReferenceCandidatesId string       `json:"referenceCandidatesId"`
	ReferenceId           string       `json:"referenceId"`
	OptionNumber          int          `json:"optionNumber"`
}

func (f *ReferenceSelectionFragment) FragmentType() FragmentType { return FragmentReferenceSelection }
func (f *ReferenceSelectionFragment) Correlation() (Family, string, bool) {
	return FamilyReference, f.ReferenceCandidatesId, true
}
func (f *ReferenceSelectionFragment) TaskID() (string, bool) { return "", false }

type SongRenderingStartFragment struct {
	Type    FragmentType `json:"type"`
	TaskId  string       `json:"taskId"`
	AudioId string       `json:"audioId"`
}

func (f *SongRenderingStartFragment) FragmentType() FragmentType { return FragmentSongRenderingStart }
func (f *SongRenderingStartFragment) Correlation() (Family, string, bool) {
	return FamilySongRendering, f.TaskId, true
}
func (f *SongRenderingStartFragment) TaskID() (string, bool) { return f.TaskId, true }

type SongRenderingCompleteFragment struct {
	Type      FragmentType `json:"type"`
	TaskId    string       `json:"taskId"`
	AudioId   string       `json:"audioId"`
	ButcherId string       `json:"butcherId"`
}

func (f *SongRenderingCompleteFragment) FragmentType() FragmentType {
	return FragmentSongRenderingComplete
}
func (f *SongRenderingCompleteFragment) Correlation() (Family, string, bool) {
	return FamilySongRendering, f.TaskId, true
}
func (f *SongRenderingCompleteFragment) TaskID() (string, bool) { return f.TaskId, true }

type QuantizationStartFragment struct {
	Type    FragmentType `json:"type"`
	TaskId  string       `json:"taskId"`
	AudioId string       `json:"audioId"`
}

func (f *QuantizationStartFragment) FragmentType() FragmentType { return FragmentQuantizationStart }
func (f *QuantizationStartFragment) Correlation() (Family, string, bool) {
	return FamilyQuantization, f.TaskId, true
}
func (f *QuantizationStartFragment) TaskID() (string, bool) { return f.TaskId, true }

type QuantizationCompleteFragment struct {
	Type    FragmentType `json:"type"`
	TaskId  string       `json:"taskId"`
	AudioId string       `json:"audioId"`
}

func (f *QuantizationCompleteFragment) FragmentType() FragmentType {
	return FragmentQuantizationComplete
}
func (f *QuantizationCompleteFragment) Correlation() (Family, string, bool) {
	return FamilyQuantization, f.TaskId, true
}
func (f *QuantizationCompleteFragment) TaskID() (string, bool) { return f.TaskId, true }

type MixingStartFragment struct {
	Type    FragmentType `json:"type"`
	TaskId  string       `json:"taskId"`
	AudioId string       `json:"audioId"`
}

func (f *MixingStartFragment) FragmentType() FragmentType { return FragmentMixingStart }
func (f *MixingStartFragment) Correlation() (Family, string, bool) {
	return FamilyMixing, f.TaskId, true
}
func (f *MixingStartFragment) TaskID() (string, bool) { return f.TaskId, true }

type MixingCompleteFragment struct {
	Type    FragmentType `json:"type"`
	TaskId  string       `json:"taskId"`
	AudioId string       `json:"audioId"`
}

func (f *MixingCompleteFragment) FragmentType() FragmentType { return FragmentMixingComplete }
func (f *MixingCompleteFragment) Correlation() (Family, string, bool) {
	return FamilyMixing, f.TaskId, true
}
func (f *MixingCompleteFragment) TaskID() (string, bool) { return f.TaskId, true }

type StemSeparationStartFragment struct {
	Type    FragmentType `json:"type"`
	TaskId  string       `json:"taskId"`
	AudioId string       `json:"audioId"`
}

func (f *StemSeparationStartFragment) FragmentType() FragmentType { return FragmentStemSeparationStart }
func (f *StemSeparationStartFragment) Correlation() (Family, string, bool) {
	return FamilyStemSeparation, f.TaskId, true
}
func (f *StemSeparationStartFragment) TaskID() (string, bool) { return f.TaskId, true }

type StemSeparationCompleteFragment struct {
	Type               FragmentType `json:"type"`
	TaskId             string       `json:"taskId"`
	VocalsAudioId      string       `json:"vocalsAudioId"`
	InstrumentsAudioId string       `json:"instrumentsAudioId"`
}

func (f *StemSeparationCompleteFragment) FragmentType() FragmentType {
	return FragmentStemSeparationComplete
}
func (f *StemSeparationCompleteFragment) Correlation() (Family, string, bool) {
	return FamilyStemSeparation, f.TaskId, true
}
func (f *StemSeparationCompleteFragment) TaskID() (string, bool) { return f.TaskId, true }

type SongCompositionStartFragment struct {
	Type   FragmentType `json:"type"`
	TaskId string       `json:"taskId"`
}

func (f *SongCompositionStartFragment) FragmentType() FragmentType {
	return FragmentSongCompositionStart
}
func (f *SongCompositionStartFragment) Correlation() (Family, string, bool) {
	return FamilySongComposition, f.TaskId, true
}
func (f *SongCompositionStartFragment) TaskID() (string, bool) { return f.TaskId, true }

type SongCompositionCompleteFragment struct {
	Type    FragmentType `json:"type"`
	TaskId  string       `json:"taskId"`
	AudioId string       `json:"audioId"`
}

func (f *SongCompositionCompleteFragment) FragmentType() FragmentType {
	return FragmentSongCompositionComplete
}
func (f *SongCompositionCompleteFragment) Correlation() (Family, string, bool) {
	return FamilySongComposition, f.TaskId, true
}
func (f *SongCompositionCompleteFragment) TaskID() (string, bool) { return f.TaskId, true }

type LyricsWritingFragment struct {
	Type     FragmentType `json:"type"`
	Lyrics   string       `json:"lyrics"`
	SongName string       `json:"songName"`
}

func (f *LyricsWritingFragment) FragmentType() FragmentType          { return FragmentLyricsWriting }
func (f *LyricsWritingFragment) Correlation() (Family, string, bool) { return "", "", false }
func (f *LyricsWritingFragment) TaskID() (string, bool)              { return "", false }

type MusicalMatchTrack struct {
	SpotifyId string `json:"spotifyId"`
	Title     string `json:"title"`
}

type MusicalMatchesFragment struct {
	Type   FragmentType        `json:"type"`
	Tracks []MusicalMatchTrack `json:"tracks"`
}

func (f *MusicalMatchesFragment) FragmentType() FragmentType          { return FragmentMusicalMatches }
func (f *MusicalMatchesFragment) Correlation() (Family, string, bool) { return "", "", false }
func (f *MusicalMatchesFragment) TaskID() (string, bool)              { return "", false }
