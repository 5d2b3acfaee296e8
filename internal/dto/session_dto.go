package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"omitempty,max=200"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetSessionResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Document    string     `json:"document"`
	SnapshotSeq int64      `json:"snapshot_seq"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type GetTranscriptHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Utterance string    `json:"utterance"`
	Tone      string    `json:"tone"`
	CreatedAt time.Time `json:"created_at"`
}

type DeleteSessionRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}
