// Package ingest normalizes the two sources of user input - direct text
// messages and fixed-duration audio windows - into the single utterance shape
// the session loop consumes.
package ingest

// Utterance is one unit of user input ready for the pipeline. Either Text or
// the audio fields are set, never both. Ordering is significant: each
// utterance mutates the document the previous one produced.
type Utterance struct {
	Text      string
	AudioMIME string
	AudioB64  string
	Tone      string
}

// FromText wraps a direct text message.
func FromText(content, toneID string) Utterance {
	return Utterance{Text: content, Tone: toneID}
}

// IsAudio reports whether the utterance came from a sealed audio window.
func (u Utterance) IsAudio() bool {
	return u.AudioB64 != ""
}
