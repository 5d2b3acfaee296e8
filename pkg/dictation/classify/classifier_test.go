package classify

import (
	"context"
	"errors"
	"testing"

	"voicedraft-be/pkg/llm"
)

type fakeProvider struct {
	reply string
	err   error

	lastPrompt llm.Prompt
}

func (f *fakeProvider) Complete(_ context.Context, p llm.Prompt, _ ...llm.Option) (string, error) {
	f.lastPrompt = p
	return f.reply, f.err
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  Result
	}{
		{"exact command token", "command", nil, Command},
		{"command with whitespace", "  command\n", nil, Command},
		{"uppercase command", "COMMAND", nil, Command},
		{"speech token", "speech", nil, Speech},
		{"chatty reply is a parse failure", "This is a command.", nil, Speech},
		{"empty reply", "", nil, Speech},
		{"backend transport error", "", &llm.BackendError{Op: llm.OpRequest, Cause: errors.New("dial tcp: timeout")}, Speech},
		{"backend status error", "command", &llm.BackendError{Op: llm.OpStatus, Cause: errors.New("status 500")}, Speech},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&fakeProvider{reply: tt.reply, err: tt.err})
			got := c.Classify(context.Background(), "mark the report as done")
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyAudioFailsSafe(t *testing.T) {
	c := NewClassifier(&fakeProvider{err: &llm.BackendError{Op: llm.OpEmpty, Cause: errors.New("no candidates")}})
	if got := c.ClassifyAudio(context.Background(), "audio/wav", "UklGRg=="); got != Speech {
		t.Errorf("ClassifyAudio() on backend error = %q, want %q", got, Speech)
	}
}

func TestClassifySendsAudioPart(t *testing.T) {
	fp := &fakeProvider{reply: "speech"}
	c := NewClassifier(fp)
	c.ClassifyAudio(context.Background(), "audio/wav", "UklGRg==")

	found := false
	for _, part := range fp.lastPrompt.Parts {
		if part.IsAudio() && part.AudioMIME == "audio/wav" {
			found = true
		}
	}
	if !found {
		t.Error("audio classification prompt carries no audio part")
	}
}
