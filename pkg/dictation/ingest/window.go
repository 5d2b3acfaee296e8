package ingest

import (
	"encoding/base64"
	"sync"
)

// Default capture parameters: 16 kHz mono signed 16-bit PCM.
const (
	DefaultSampleRate    = 16000
	DefaultChannels      = 1
	bytesPerSample       = 2
	DefaultWindowSeconds = 5
)

// Window is a fixed-capacity ring buffer of raw PCM bytes covering the most
// recent W seconds of captured audio. Appends never block and never grow the
// buffer: once full, the oldest bytes are discarded, so the window always
// represents the latest audio.
//
// All methods are safe for concurrent use.
type Window struct {
	mu         sync.Mutex
	buf        []byte
	start      int // index of the oldest byte
	length     int
	sampleRate int
	channels   int
}

// NewWindow creates a window holding seconds of audio at the given sample
// rate and channel count. Non-positive arguments fall back to the defaults.
func NewWindow(seconds, sampleRate, channels int) *Window {
	if seconds <= 0 {
		seconds = DefaultWindowSeconds
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if channels <= 0 {
		channels = DefaultChannels
	}
	capacity := seconds * sampleRate * channels * bytesPerSample
	return &Window{
		buf:        make([]byte, capacity),
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// Append copies a captured frame into the window, evicting the oldest bytes
// when capacity is exceeded.
func (w *Window) Append(frame []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	capacity := len(w.buf)
	if len(frame) >= capacity {
		// Frame alone fills the window; keep its tail.
		copy(w.buf, frame[len(frame)-capacity:])
		w.start = 0
		w.length = capacity
		return
	}

	writeAt := (w.start + w.length) % capacity
	n := copy(w.buf[writeAt:], frame)
	if n < len(frame) {
		copy(w.buf, frame[n:])
	}

	w.length += len(frame)
	if w.length > capacity {
		w.start = (w.start + w.length - capacity) % capacity
		w.length = capacity
	}
}

// Len returns the number of buffered PCM bytes.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.length
}

// Reset discards all buffered audio.
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.start = 0
	w.length = 0
}

// pcm returns the buffered bytes in chronological order.
func (w *Window) pcm() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]byte, w.length)
	n := copy(out, w.buf[w.start:min(w.start+w.length, len(w.buf))])
	if n < w.length {
		copy(out[n:], w.buf[:w.length-n])
	}
	return out
}

// Seal freezes the current window into one WAV-encoded audio unit and returns
// it as an utterance carrying the given tone. The window keeps sliding:
// sealed audio is not cleared, matching the overlap of a sliding capture
// window. Returns false when no audio has been buffered yet.
func (w *Window) Seal(toneID string) (Utterance, bool) {
	pcm := w.pcm()
	if len(pcm) == 0 {
		return Utterance{}, false
	}
	wav := EncodeWAV(pcm, w.sampleRate, w.channels)
	return Utterance{
		AudioMIME: "audio/wav",
		AudioB64:  base64.StdEncoding.EncodeToString(wav),
		Tone:      toneID,
	}, true
}
