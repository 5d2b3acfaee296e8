package classify

import (
	"context"
	"strings"

	"voicedraft-be/pkg/dictation/prompt"
	"voicedraft-be/pkg/llm"
)

// Result is the binary decision over an utterance.
type Result string

const (
	Command Result = "command"
	Speech  Result = "speech"
)

// Classifier routes an utterance through the backend with the classify prompt.
//
// The fail-safe default is deliberate policy: on any backend error or any
// reply that is not exactly the 'command' token, the result is Speech.
// A misclassified append is recoverable; a misfired edit is destructive.
type Classifier struct {
	provider llm.Provider
}

func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify labels a text utterance as Command or Speech.
func (c *Classifier) Classify(ctx context.Context, utterance string) Result {
	reply, err := c.provider.Complete(ctx, prompt.BuildClassifyPrompt(utterance),
		llm.WithTemperature(0),
		llm.WithMaxTokens(8),
	)
	return normalize(reply, err)
}

// ClassifyAudio labels a sealed audio window as Command or Speech.
func (c *Classifier) ClassifyAudio(ctx context.Context, mime, audioBase64 string) Result {
	reply, err := c.provider.Complete(ctx, prompt.BuildClassifyAudioPrompt(mime, audioBase64),
		llm.WithTemperature(0),
		llm.WithMaxTokens(8),
	)
	return normalize(reply, err)
}

func normalize(reply string, err error) Result {
	if err != nil {
		return Speech
	}
	if strings.ToLower(strings.TrimSpace(reply)) == string(Command) {
		return Command
	}
	return Speech
}
