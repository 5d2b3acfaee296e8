package mapper

import (
	"time"

	"voicedraft-be/internal/entity"
	"voicedraft-be/internal/model"

	"gorm.io/gorm"
)

type DictationMapper struct{}

func NewDictationMapper() *DictationMapper {
	return &DictationMapper{}
}

// Session Mappers

func (m *DictationMapper) SessionToEntity(s *model.DictationSession) *entity.DictationSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.DictationSession{
		Id:          s.Id,
		UserId:      s.UserId,
		Title:       s.Title,
		Document:    s.Document,
		SnapshotSeq: s.SnapshotSeq,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   s.DeletedAt.Valid,
	}
}

func (m *DictationMapper) SessionToModel(s *entity.DictationSession) *model.DictationSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.DictationSession{
		Id:          s.Id,
		UserId:      s.UserId,
		Title:       s.Title,
		Document:    s.Document,
		SnapshotSeq: s.SnapshotSeq,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

// Transcript Mappers

func (m *DictationMapper) TranscriptToEntity(t *model.TranscriptMessage) *entity.TranscriptMessage {
	if t == nil {
		return nil
	}
	return &entity.TranscriptMessage{
		Id:        t.Id,
		SessionId: t.SessionId,
		Kind:      t.Kind,
		Utterance: t.Utterance,
		Tone:      t.Tone,
		CreatedAt: t.CreatedAt,
	}
}

func (m *DictationMapper) TranscriptToModel(t *entity.TranscriptMessage) *model.TranscriptMessage {
	if t == nil {
		return nil
	}
	return &model.TranscriptMessage{
		Id:        t.Id,
		SessionId: t.SessionId,
		Kind:      t.Kind,
		Utterance: t.Utterance,
		Tone:      t.Tone,
		CreatedAt: t.CreatedAt,
	}
}
