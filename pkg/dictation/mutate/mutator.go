package mutate

import (
	"context"
	"errors"
	"strings"

	"voicedraft-be/pkg/dictation/prompt"
	"voicedraft-be/pkg/dictation/tone"
	"voicedraft-be/pkg/llm"
)

// Token budget for a mutation call grows with the document so the backend can
// always return the whole thing, but stays bounded to avoid runaway growth.
const (
	minMutationTokens = 256
	maxMutationTokens = 1000
)

// Mutator owns the two mutually-exclusive document operations. Both are
// atomic from the caller's point of view: on any failure the input document is
// returned unchanged together with the error. Neither retries.
type Mutator struct {
	provider llm.Provider
}

func NewMutator(provider llm.Provider) *Mutator {
	return &Mutator{provider: provider}
}

// ApplyCommand applies an editing command to the document and returns the new
// document wholesale.
func (m *Mutator) ApplyCommand(ctx context.Context, document, utterance string, t tone.Descriptor) (string, error) {
	return m.complete(ctx, document, prompt.BuildEditPrompt(document, utterance, t))
}

// AppendSpeech folds a speech utterance into the document. The prompt is
// responsible for the fold; the caller must not concatenate on top of the
// result or content gets duplicated.
func (m *Mutator) AppendSpeech(ctx context.Context, document, utterance string, t tone.Descriptor) (string, error) {
	return m.complete(ctx, document, prompt.BuildTranscribePrompt(document, utterance, t))
}

// ApplyCommandAudio is ApplyCommand for a sealed audio window.
func (m *Mutator) ApplyCommandAudio(ctx context.Context, document, mime, audioBase64 string, t tone.Descriptor) (string, error) {
	return m.complete(ctx, document, prompt.BuildEditAudioPrompt(document, mime, audioBase64, t))
}

// AppendSpeechAudio is AppendSpeech for a sealed audio window.
func (m *Mutator) AppendSpeechAudio(ctx context.Context, document, mime, audioBase64 string, t tone.Descriptor) (string, error) {
	return m.complete(ctx, document, prompt.BuildTranscribeAudioPrompt(document, mime, audioBase64, t))
}

func (m *Mutator) complete(ctx context.Context, document string, p llm.Prompt) (string, error) {
	reply, err := m.provider.Complete(ctx, p,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(tokenBudget(document)),
	)
	if err != nil {
		return document, err
	}

	next := strings.TrimSpace(reply)
	if next == "" {
		return document, &llm.BackendError{Op: llm.OpEmpty, Cause: errEmptyMutation}
	}
	return next, nil
}

var errEmptyMutation = errors.New("backend returned an empty document")

// tokenBudget scales the response cap with the size of the current document.
// Roughly one token per four characters, plus headroom for the new content.
func tokenBudget(document string) int {
	budget := minMutationTokens + len(document)/4
	if budget > maxMutationTokens {
		return maxMutationTokens
	}
	return budget
}
