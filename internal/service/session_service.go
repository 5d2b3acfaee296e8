package service

import (
	"context"
	"errors"
	"time"

	"voicedraft-be/internal/dto"
	"voicedraft-be/internal/entity"
	"voicedraft-be/internal/pkg/logger"
	"voicedraft-be/internal/repository/specification"
	"voicedraft-be/internal/repository/unitofwork"
	"voicedraft-be/pkg/events"
	pkgNats "voicedraft-be/pkg/nats"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type ISessionService interface {
	CreateSession(ctx context.Context, userID uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userID uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*dto.GetSessionResponse, error)
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error
	GetTranscriptHistory(ctx context.Context, userID, sessionID uuid.UUID) ([]*dto.GetTranscriptHistoryResponse, error)
}

type sessionService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pkgNats.Publisher, log logger.ILogger) ISessionService {
	return &sessionService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, userID uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	title := req.Title
	if title == "" {
		title = "Untitled note"
	}

	session := &entity.DictationSession{
		Id:        uuid.New(),
		UserId:    userID,
		Title:     title,
		Document:  "",
		CreatedAt: time.Now(),
	}

	if err := uow.DictationSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.SessionStarted(session.Id, userID)); err != nil {
			s.log.Warn("session_service", "failed to publish session started event", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *sessionService) GetAllSessions(ctx context.Context, userID uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.DictationSessionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetAllSessionsResponse, len(sessions))
	for i, session := range sessions {
		result[i] = &dto.GetAllSessionsResponse{
			Id:        session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		}
	}
	return result, nil
}

func (s *sessionService) findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userID, sessionID uuid.UUID) (*entity.DictationSession, error) {
	session, err := uow.DictationSessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserId != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*dto.GetSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwnedSession(ctx, uow, userID, sessionID)
	if err != nil {
		return nil, err
	}

	return &dto.GetSessionResponse{
		Id:          session.Id,
		Title:       session.Title,
		Document:    session.Document,
		SnapshotSeq: session.SnapshotSeq,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwnedSession(ctx, uow, userID, sessionID)
	if err != nil {
		return err
	}

	if err := uow.DictationSessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.SessionEnded(session.Id, "deleted")); err != nil {
			s.log.Warn("session_service", "failed to publish session ended event", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return nil
}

func (s *sessionService) GetTranscriptHistory(ctx context.Context, userID, sessionID uuid.UUID) ([]*dto.GetTranscriptHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwnedSession(ctx, uow, userID, sessionID); err != nil {
		return nil, err
	}

	messages, err := uow.TranscriptRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetTranscriptHistoryResponse, len(messages))
	for i, m := range messages {
		result[i] = &dto.GetTranscriptHistoryResponse{
			Id:        m.Id,
			Kind:      m.Kind,
			Utterance: m.Utterance,
			Tone:      m.Tone,
			CreatedAt: m.CreatedAt,
		}
	}
	return result, nil
}
