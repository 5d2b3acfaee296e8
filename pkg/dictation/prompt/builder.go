// Package prompt composes the system instructions and content parts for every
// backend call the dictation pipeline makes. The backend is a free-text
// generator with no structural guarantee, so these instructions are the only
// enforcement mechanism: each one is written so the raw response can be used
// verbatim - as a classification token or as the new document.
package prompt

import (
	"fmt"

	"voicedraft-be/pkg/dictation/tone"
	"voicedraft-be/pkg/llm"
)

const classifySystem = "You decide whether user input directed at a text document is a text-editing command or normal speech to be added to the document. " +
	"Answer with exactly one lowercase word and nothing else: 'command' if the input is a text-editing command, or 'speech' if it is normal speech."

const transcribeSystem = "You are a transcription assistant maintaining a document. " +
	"Fold the user's new input into the document below, cleaning up natural speech mistakes such as 'uh', 'hmm' or false starts. " +
	"Return only the full updated document. Do not restate these instructions or add any commentary. " +
	"Preserve all existing factual content and structure of the document. " +
	"Apply the requested tone only to the newly added phrasing, never to pre-existing unaffected content."

const editSystem = "You are an advanced text-editing assistant maintaining a document. " +
	"Apply the user's editing instruction to the document below and return only the full updated document, with no explanations. " +
	"If the instruction cannot be applied, return the document unchanged. " +
	"Preserve all factual content and structure except where the instruction itself demands a change. " +
	"Apply the requested tone only to phrasing you rewrite, never to pre-existing unaffected content."

func toneClause(t tone.Descriptor) string {
	return fmt.Sprintf("Requested tone: %s. %s Style guide: %s Example of the register: %q",
		t.ID, t.Description, t.StyleGuide, t.Example)
}

func documentPart(document string) llm.Part {
	if document == "" {
		return llm.TextPart("Document: (empty)")
	}
	return llm.TextPart("Document:\n" + document)
}

// BuildClassifyPrompt asks the backend for the single token 'command' or
// 'speech'. Any other reply is treated by the classifier as a parse failure.
func BuildClassifyPrompt(utterance string) llm.Prompt {
	return llm.Prompt{
		System: classifySystem,
		Parts:  []llm.Part{llm.TextPart("Input: " + utterance)},
	}
}

// BuildClassifyAudioPrompt is the audio-window variant of the classify prompt.
func BuildClassifyAudioPrompt(mime, audioBase64 string) llm.Prompt {
	return llm.Prompt{
		System: classifySystem,
		Parts: []llm.Part{
			llm.AudioPart(mime, audioBase64),
			llm.TextPart("Classify the audio input above."),
		},
	}
}

// BuildTranscribePrompt folds a spoken/typed utterance into the document. The
// prompt, not the caller, is responsible for the fold - callers must use the
// response as the new document without concatenating anything themselves.
func BuildTranscribePrompt(document, utterance string, t tone.Descriptor) llm.Prompt {
	return llm.Prompt{
		System: transcribeSystem,
		Parts: []llm.Part{
			llm.TextPart(toneClause(t)),
			documentPart(document),
			llm.TextPart("New input: " + utterance),
		},
	}
}

// BuildTranscribeAudioPrompt is the audio-window variant of the transcribe
// prompt. Silent audio must yield the document unchanged, not an empty reply.
func BuildTranscribeAudioPrompt(document, mime, audioBase64 string, t tone.Descriptor) llm.Prompt {
	return llm.Prompt{
		System: transcribeSystem + " If the audio contains no speech, return the document exactly as it is.",
		Parts: []llm.Part{
			llm.TextPart(toneClause(t)),
			documentPart(document),
			llm.AudioPart(mime, audioBase64),
		},
	}
}

// BuildEditPrompt applies an editing command to the document.
func BuildEditPrompt(document, utterance string, t tone.Descriptor) llm.Prompt {
	return llm.Prompt{
		System: editSystem,
		Parts: []llm.Part{
			llm.TextPart(toneClause(t)),
			documentPart(document),
			llm.TextPart("Editing instruction: " + utterance),
		},
	}
}

// BuildEditAudioPrompt is the audio-window variant of the edit prompt.
func BuildEditAudioPrompt(document, mime, audioBase64 string, t tone.Descriptor) llm.Prompt {
	return llm.Prompt{
		System: editSystem,
		Parts: []llm.Part{
			llm.TextPart(toneClause(t)),
			documentPart(document),
			llm.AudioPart(mime, audioBase64),
		},
	}
}
