package llm

import (
	"context"
)

// Part is one ordered fragment of prompt content. A part carries either text
// or an inline audio payload, never both.
type Part struct {
	Text string

	// Inline audio payload (base64). When AudioData is set, Text is ignored.
	AudioMIME string
	AudioData string
}

// TextPart builds a text content fragment.
func TextPart(text string) Part {
	return Part{Text: text}
}

// AudioPart builds an inline audio content fragment.
func AudioPart(mime, base64Data string) Part {
	return Part{AudioMIME: mime, AudioData: base64Data}
}

// IsAudio reports whether the part carries an audio payload.
func (p Part) IsAudio() bool {
	return p.AudioData != ""
}

// Prompt is a system instruction plus ordered content parts.
type Prompt struct {
	System string
	Parts  []Part
}

// Option allows for optional generation parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(topP float64) Option {
	return func(o *Options) {
		o.TopP = topP
	}
}

func WithTopK(topK int) Option {
	return func(o *Options) {
		o.TopK = topK
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any generative-text backend.
//
// Complete performs exactly one bounded attempt. Implementations never retry:
// generation is not idempotent and a duplicated edit would corrupt the
// document the caller is maintaining. Every failure is surfaced as a
// *BackendError so callers can distinguish backend trouble from their own.
type Provider interface {
	Complete(ctx context.Context, prompt Prompt, options ...Option) (string, error)
}
