package entity

import (
	"time"

	"github.com/google/uuid"
)

// Kind of a processed utterance as decided by the classifier.
const (
	TranscriptKindCommand = "command"
	TranscriptKindSpeech  = "speech"
)

// TranscriptMessage is one processed utterance in a session's history.
type TranscriptMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Kind      string
	Utterance string
	Tone      string
	CreatedAt time.Time
}
