package ingest

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"testing"
)

// tiny window: 4 bytes capacity (1 second, 2 "Hz", mono, 2 bytes/sample)
func tinyWindow() *Window {
	return NewWindow(1, 2, 1)
}

func TestWindowKeepsMostRecentBytes(t *testing.T) {
	w := tinyWindow()

	w.Append([]byte{1, 2})
	w.Append([]byte{3, 4})
	if got := w.pcm(); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Fatalf("window before overflow = %v", got)
	}

	// Overflow: oldest bytes are discarded, capture never blocks.
	w.Append([]byte{5, 6})
	if got := w.pcm(); !bytes.Equal(got, []byte{3, 4, 5, 6}) {
		t.Errorf("window after overflow = %v, want [3 4 5 6]", got)
	}
}

func TestWindowOversizedFrameKeepsTail(t *testing.T) {
	w := tinyWindow()
	w.Append([]byte{1, 2, 3, 4, 5, 6, 7})
	if got := w.pcm(); !bytes.Equal(got, []byte{4, 5, 6, 7}) {
		t.Errorf("window = %v, want tail [4 5 6 7]", got)
	}
}

func TestWindowWrapAround(t *testing.T) {
	w := tinyWindow()
	// Misalign the ring start, then confirm chronological reads still work.
	w.Append([]byte{1, 2, 3})
	w.Append([]byte{4, 5, 6})
	if got := w.pcm(); !bytes.Equal(got, []byte{3, 4, 5, 6}) {
		t.Errorf("window = %v, want [3 4 5 6]", got)
	}
	if w.Len() != 4 {
		t.Errorf("Len() = %d, want 4", w.Len())
	}
}

func TestSealEmptyWindow(t *testing.T) {
	w := tinyWindow()
	if _, ok := w.Seal("friendly"); ok {
		t.Error("sealing an empty window should report no audio")
	}
}

func TestSealProducesWavUtterance(t *testing.T) {
	w := NewWindow(1, DefaultSampleRate, DefaultChannels)
	w.Append(make([]byte, 320))

	u, ok := w.Seal("technical")
	if !ok {
		t.Fatal("Seal() reported no audio")
	}
	if !u.IsAudio() {
		t.Error("sealed utterance is not audio")
	}
	if u.Tone != "technical" {
		t.Errorf("tone = %q", u.Tone)
	}
	if u.AudioMIME != "audio/wav" {
		t.Errorf("mime = %q", u.AudioMIME)
	}

	wav, err := base64.StdEncoding.DecodeString(u.AudioB64)
	if err != nil {
		t.Fatalf("audio payload is not base64: %v", err)
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("payload is not a RIFF/WAVE container")
	}
	if len(wav) != 44+320 {
		t.Errorf("wav length = %d, want header + 320 PCM bytes", len(wav))
	}

	// Seal slides, it does not drain.
	if w.Len() != 320 {
		t.Errorf("Len() after Seal = %d, want 320", w.Len())
	}
}

func TestEncodeWAVHeaderFields(t *testing.T) {
	pcm := make([]byte, 100)
	wav := EncodeWAV(pcm, 16000, 1)

	sampleRate := binary.LittleEndian.Uint32(wav[24:28])
	if sampleRate != 16000 {
		t.Errorf("sample rate = %d", sampleRate)
	}
	byteRate := binary.LittleEndian.Uint32(wav[28:32])
	if byteRate != 32000 {
		t.Errorf("byte rate = %d", byteRate)
	}
	bits := binary.LittleEndian.Uint16(wav[34:36])
	if bits != 16 {
		t.Errorf("bits per sample = %d", bits)
	}
	dataLen := binary.LittleEndian.Uint32(wav[40:44])
	if dataLen != 100 {
		t.Errorf("data length = %d", dataLen)
	}
}

func TestFromText(t *testing.T) {
	u := FromText("hello world", "brief")
	if u.IsAudio() {
		t.Error("text utterance reports audio")
	}
	if u.Text != "hello world" || u.Tone != "brief" {
		t.Errorf("utterance = %+v", u)
	}
}
