package model

import (
	"time"

	"github.com/google/uuid"
)

type TranscriptMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"type:varchar(16);not null"`
	Utterance string    `gorm:"type:text;not null"`
	Tone      string    `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (TranscriptMessage) TableName() string {
	return "transcript_messages"
}
