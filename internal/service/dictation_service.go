package service

import (
	"context"
	"encoding/json"
	"runtime/debug"
	"time"

	"voicedraft-be/internal/constant"
	"voicedraft-be/internal/dto"
	"voicedraft-be/internal/entity"
	"voicedraft-be/internal/pkg/logger"
	"voicedraft-be/internal/repository/memory"
	"voicedraft-be/internal/repository/specification"
	"voicedraft-be/internal/repository/unitofwork"
	"voicedraft-be/pkg/dictation/classify"
	"voicedraft-be/pkg/dictation/ingest"
	"voicedraft-be/pkg/dictation/mutate"
	"voicedraft-be/pkg/dictation/tone"
	"voicedraft-be/pkg/events"
	pkgNats "voicedraft-be/pkg/nats"

	"github.com/google/uuid"
)

type IDictationService interface {
	// ResolveState loads (or seeds) the live document for a session. Used by
	// the websocket loop on connect so the client starts from current state.
	ResolveState(ctx context.Context, sessionID uuid.UUID) (*memory.DocumentState, error)

	// ProcessUtterance runs one utterance through classify and dispatch and
	// returns the frame to push. A backend failure yields an error frame and
	// leaves the document untouched.
	ProcessUtterance(ctx context.Context, sessionID uuid.UUID, u ingest.Utterance) (*dto.DictationPush, error)

	// EndSession reports that a client finished dictating (exit word or
	// disconnect). The live state stays resident for reconnects.
	EndSession(ctx context.Context, sessionID uuid.UUID, reason string)
}

type dictationService struct {
	classifier       *classify.Classifier
	mutator          *mutate.Mutator
	documents        *memory.DocumentRepository
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
	errorSink        logger.ILogger
}

func NewDictationService(
	classifier *classify.Classifier,
	mutator *mutate.Mutator,
	documents *memory.DocumentRepository,
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
	errorSink logger.ILogger,
) IDictationService {
	return &dictationService{
		classifier:       classifier,
		mutator:          mutator,
		documents:        documents,
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
		errorSink:        errorSink,
	}
}

func (s *dictationService) ResolveState(ctx context.Context, sessionID uuid.UUID) (*memory.DocumentState, error) {
	if state, found := s.documents.Get(sessionID.String()); found {
		return state, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.DictationSessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	return s.documents.GetOrCreate(sessionID.String(), session.Document, session.SnapshotSeq), nil
}

func (s *dictationService) ProcessUtterance(ctx context.Context, sessionID uuid.UUID, u ingest.Utterance) (*dto.DictationPush, error) {
	state, err := s.ResolveState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Utterances on one session are strictly sequential even when several
	// connections feed it: each pipeline owns the state from base read
	// until Replace.
	state.BeginUtterance()
	defer state.EndUtterance()

	document := state.Document()
	t := tone.Resolve(u.Tone)

	var result classify.Result
	if u.IsAudio() {
		result = s.classifier.ClassifyAudio(ctx, u.AudioMIME, u.AudioB64)
	} else {
		result = s.classifier.Classify(ctx, u.Text)
	}

	var updated string
	switch {
	case result == classify.Command && u.IsAudio():
		updated, err = s.mutator.ApplyCommandAudio(ctx, document, u.AudioMIME, u.AudioB64, t)
	case result == classify.Command:
		updated, err = s.mutator.ApplyCommand(ctx, document, u.Text, t)
	case u.IsAudio():
		updated, err = s.mutator.AppendSpeechAudio(ctx, document, u.AudioMIME, u.AudioB64, t)
	default:
		updated, err = s.mutator.AppendSpeech(ctx, document, u.Text, t)
	}
	if err != nil {
		s.logFailure(sessionID, u, document, err)
		return &dto.DictationPush{
			Type: constant.WsTypeError,
			Data: constant.SoftErrorMessage,
		}, nil
	}

	seq := state.Replace(updated)
	s.publishSnapshot(sessionID, updated, seq)
	s.recordTranscript(ctx, sessionID, string(result), u, t.ID)

	return &dto.DictationPush{
		Type: constant.WsTypeContent,
		Data: updated,
		Seq:  seq,
	}, nil
}

func (s *dictationService) EndSession(ctx context.Context, sessionID uuid.UUID, reason string) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.SessionEnded(sessionID, reason)); err != nil {
		s.log.Warn("dictation_service", "failed to publish session ended event", map[string]interface{}{
			"session_id": sessionID.String(),
			"error":      err.Error(),
		})
	}
}

func (s *dictationService) publishSnapshot(sessionID uuid.UUID, document string, seq int64) {
	snapshot := dto.DocumentSnapshot{
		SessionId: sessionID.String(),
		Document:  document,
		Seq:       seq,
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Error("dictation_service", "failed to marshal snapshot", map[string]interface{}{
			"session_id": sessionID.String(),
			"error":      err.Error(),
		})
		return
	}
	if err := s.publisherService.Publish(context.Background(), payload); err != nil {
		s.log.Error("dictation_service", "failed to publish snapshot", map[string]interface{}{
			"session_id": sessionID.String(),
			"seq":        seq,
			"error":      err.Error(),
		})
	}
}

func (s *dictationService) recordTranscript(ctx context.Context, sessionID uuid.UUID, kind string, u ingest.Utterance, toneID string) {
	utterance := u.Text
	if u.IsAudio() {
		utterance = "[audio]"
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	message := &entity.TranscriptMessage{
		Id:        uuid.New(),
		SessionId: sessionID,
		Kind:      kind,
		Utterance: utterance,
		Tone:      toneID,
		CreatedAt: time.Now(),
	}
	if err := uow.TranscriptRepository().Create(ctx, message); err != nil {
		s.log.Warn("dictation_service", "failed to record transcript message", map[string]interface{}{
			"session_id": sessionID.String(),
			"error":      err.Error(),
		})
	}
}

// logFailure writes the full failure context to the isolated error log. The
// client only ever sees the generic notice.
func (s *dictationService) logFailure(sessionID uuid.UUID, u ingest.Utterance, document string, err error) {
	utterance := u.Text
	if u.IsAudio() {
		utterance = "[audio " + u.AudioMIME + "]"
	}
	s.errorSink.Error("dictation", "utterance processing failed", map[string]interface{}{
		"session_id": sessionID.String(),
		"utterance":  utterance,
		"document":   document,
		"error":      err.Error(),
		"stack":      string(debug.Stack()),
	})
}
