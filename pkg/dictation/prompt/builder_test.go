package prompt

import (
	"strings"
	"testing"

	"voicedraft-be/pkg/dictation/tone"
	"voicedraft-be/pkg/llm"
)

func joinTextParts(p llm.Prompt) string {
	texts := make([]string, 0, len(p.Parts))
	for _, part := range p.Parts {
		texts = append(texts, part.Text)
	}
	return strings.Join(texts, "\n")
}

func TestClassifyPromptDemandsSingleToken(t *testing.T) {
	p := BuildClassifyPrompt("delete the last sentence")
	if !strings.Contains(p.System, "'command'") || !strings.Contains(p.System, "'speech'") {
		t.Errorf("classify system instruction does not pin the two tokens: %q", p.System)
	}
	if !strings.Contains(p.System, "exactly one lowercase word") {
		t.Errorf("classify system instruction does not demand a single token: %q", p.System)
	}
	if len(p.Parts) != 1 || !strings.Contains(p.Parts[0].Text, "delete the last sentence") {
		t.Errorf("utterance missing from parts: %+v", p.Parts)
	}
}

func TestMutationPromptsCarryDocumentAndTone(t *testing.T) {
	doc := "Tasks: submit report."
	tn := tone.Resolve("professional")

	prompts := map[string]llm.Prompt{
		"transcribe": BuildTranscribePrompt(doc, "add a task", tn),
		"edit":       BuildEditPrompt(doc, "remove the report task", tn),
	}

	for name, p := range prompts {
		if !strings.Contains(p.System, "only the full updated document") {
			t.Errorf("%s system instruction does not demand document-only output: %q", name, p.System)
		}
		joined := joinTextParts(p)
		if !strings.Contains(joined, doc) {
			t.Errorf("%s prompt is missing the document", name)
		}
		if !strings.Contains(joined, "professional") {
			t.Errorf("%s prompt is missing the tone clause", name)
		}
	}
}

func TestEmptyDocumentIsMarked(t *testing.T) {
	p := BuildTranscribePrompt("", "first words", tone.Resolve(""))
	if !strings.Contains(joinTextParts(p), "Document: (empty)") {
		t.Error("empty document not marked explicitly in the prompt")
	}
}

func TestAudioPromptsPlaceAudioAfterDocument(t *testing.T) {
	p := BuildEditAudioPrompt("Some doc", "audio/wav", "UklGRg==", tone.Resolve("brief"))

	audioIdx, docIdx := -1, -1
	for i, part := range p.Parts {
		if part.IsAudio() {
			audioIdx = i
		}
		if strings.Contains(part.Text, "Some doc") {
			docIdx = i
		}
	}
	if audioIdx == -1 {
		t.Fatal("audio part missing")
	}
	if docIdx == -1 {
		t.Fatal("document part missing")
	}
	if audioIdx < docIdx {
		t.Error("audio part should follow the document context")
	}
}

func TestSilentAudioInstruction(t *testing.T) {
	p := BuildTranscribeAudioPrompt("doc", "audio/wav", "UklGRg==", tone.Resolve(""))
	if !strings.Contains(p.System, "no speech") {
		t.Error("audio transcribe prompt does not handle silent windows")
	}
}
