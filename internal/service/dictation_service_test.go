package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"voicedraft-be/internal/constant"
	"voicedraft-be/internal/dto"
	"voicedraft-be/internal/entity"
	"voicedraft-be/internal/repository/contract"
	"voicedraft-be/internal/repository/memory"
	"voicedraft-be/internal/repository/specification"
	"voicedraft-be/internal/repository/unitofwork"
	"voicedraft-be/pkg/dictation/classify"
	"voicedraft-be/pkg/dictation/ingest"
	"voicedraft-be/pkg/dictation/mutate"
	"voicedraft-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider replays a fixed sequence of backend replies. The first
// call per utterance is the classification, the second the mutation.
type scriptedProvider struct {
	replies []scriptedReply
	calls   int
}

type scriptedReply struct {
	text string
	err  error
}

func (p *scriptedProvider) Complete(ctx context.Context, prompt llm.Prompt, opts ...llm.Option) (string, error) {
	if p.calls >= len(p.replies) {
		return "", errors.New("no scripted reply left")
	}
	r := p.replies[p.calls]
	p.calls++
	return r.text, r.err
}

// appendingProvider classifies everything as speech and folds the utterance
// onto whatever document the prompt carried, so each reply reveals which base
// document the pipeline read from.
type appendingProvider struct {
	mu sync.Mutex
}

func (p *appendingProvider) Complete(ctx context.Context, prompt llm.Prompt, opts ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var document, input string
	for _, part := range prompt.Parts {
		switch {
		case strings.HasPrefix(part.Text, "Document:\n"):
			document = strings.TrimPrefix(part.Text, "Document:\n")
		case strings.HasPrefix(part.Text, "New input: "):
			input = strings.TrimPrefix(part.Text, "New input: ")
		}
	}
	if input == "" {
		return "speech", nil
	}
	return strings.TrimSpace(document + " " + input), nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type recordingLogger struct {
	nopLogger
	entries []map[string]interface{}
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.entries = append(l.entries, details)
}

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

// In-memory unit of work: just enough of the record store for the loop.

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUow struct {
	sessions    map[uuid.UUID]*entity.DictationSession
	transcripts []*entity.TranscriptMessage
}

func newFakeUow() *fakeUow {
	return &fakeUow{sessions: make(map[uuid.UUID]*entity.DictationSession)}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return nil }

func (u *fakeUow) DictationSessionRepository() contract.DictationSessionRepository {
	return &fakeSessionRepo{uow: u}
}

func (u *fakeUow) TranscriptRepository() contract.TranscriptRepository {
	return &fakeTranscriptRepo{uow: u}
}

type fakeSessionRepo struct {
	uow *fakeUow
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *entity.DictationSession) error {
	r.uow.sessions[s.Id] = s
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, s *entity.DictationSession) error {
	r.uow.sessions[s.Id] = s
	return nil
}

func (r *fakeSessionRepo) UpdateSnapshot(ctx context.Context, id uuid.UUID, document string, seq int64) error {
	if s, ok := r.uow.sessions[id]; ok && s.SnapshotSeq < seq {
		s.Document = document
		s.SnapshotSeq = seq
	}
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.uow.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DictationSession, error) {
	for _, s := range r.uow.sessions {
		return s, nil
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DictationSession, error) {
	var all []*entity.DictationSession
	for _, s := range r.uow.sessions {
		all = append(all, s)
	}
	return all, nil
}

type fakeTranscriptRepo struct {
	uow *fakeUow
}

func (r *fakeTranscriptRepo) Create(ctx context.Context, m *entity.TranscriptMessage) error {
	r.uow.transcripts = append(r.uow.transcripts, m)
	return nil
}

func (r *fakeTranscriptRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TranscriptMessage, error) {
	return r.uow.transcripts, nil
}

type dictationFixture struct {
	service   IDictationService
	uow       *fakeUow
	publisher *capturingPublisher
	errorSink *recordingLogger
	sessionID uuid.UUID
}

func newDictationFixture(t *testing.T, initialDocument string, replies []scriptedReply) *dictationFixture {
	t.Helper()
	return newDictationFixtureWith(t, initialDocument, &scriptedProvider{replies: replies})
}

func newDictationFixtureWith(t *testing.T, initialDocument string, provider llm.Provider) *dictationFixture {
	t.Helper()

	uow := newFakeUow()
	sessionID := uuid.New()
	uow.sessions[sessionID] = &entity.DictationSession{
		Id:        sessionID,
		UserId:    uuid.New(),
		Title:     "test",
		Document:  initialDocument,
		CreatedAt: time.Now(),
	}

	publisher := &capturingPublisher{}
	errorSink := &recordingLogger{}

	svc := NewDictationService(
		classify.NewClassifier(provider),
		mutate.NewMutator(provider),
		memory.NewDocumentRepository(),
		&fakeUowFactory{uow: uow},
		publisher,
		nil,
		nopLogger{},
		errorSink,
	)

	return &dictationFixture{
		service:   svc,
		uow:       uow,
		publisher: publisher,
		errorSink: errorSink,
		sessionID: sessionID,
	}
}

func TestProcessUtteranceSpeechAppend(t *testing.T) {
	styled := "Today we discussed the roadmap for the next quarter."
	f := newDictationFixture(t, "", []scriptedReply{
		{text: "speech"},
		{text: styled},
	})

	push, err := f.service.ProcessUtterance(context.Background(), f.sessionID,
		ingest.FromText("Today we discussed the roadmap.", "professional"))
	require.NoError(t, err)

	assert.Equal(t, constant.WsTypeContent, push.Type)
	assert.Equal(t, styled, push.Data)
	assert.Equal(t, int64(1), push.Seq)

	require.Len(t, f.uow.transcripts, 1)
	assert.Equal(t, entity.TranscriptKindSpeech, f.uow.transcripts[0].Kind)
	assert.Equal(t, "professional", f.uow.transcripts[0].Tone)

	require.Len(t, f.publisher.payloads, 1)
	var snapshot dto.DocumentSnapshot
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &snapshot))
	assert.Equal(t, f.sessionID.String(), snapshot.SessionId)
	assert.Equal(t, styled, snapshot.Document)
	assert.Equal(t, int64(1), snapshot.Seq)
}

func TestProcessUtteranceCommandEdit(t *testing.T) {
	initial := "Tasks: submit report, update spreadsheet."
	edited := "Tasks: submit report (high priority), update spreadsheet."
	f := newDictationFixture(t, initial, []scriptedReply{
		{text: "command"},
		{text: edited},
	})

	push, err := f.service.ProcessUtterance(context.Background(), f.sessionID,
		ingest.FromText("Mark submit report as high priority.", ""))
	require.NoError(t, err)

	assert.Equal(t, constant.WsTypeContent, push.Type)
	assert.Equal(t, edited, push.Data)

	require.Len(t, f.uow.transcripts, 1)
	assert.Equal(t, entity.TranscriptKindCommand, f.uow.transcripts[0].Kind)
}

func TestProcessUtteranceBackendFailureLeavesDocument(t *testing.T) {
	initial := "An existing note."
	f := newDictationFixture(t, initial, []scriptedReply{
		{text: "speech"},
		{err: errors.New("request timed out")},
	})

	push, err := f.service.ProcessUtterance(context.Background(), f.sessionID,
		ingest.FromText("Add something.", ""))
	require.NoError(t, err)

	assert.Equal(t, constant.WsTypeError, push.Type)
	assert.Equal(t, constant.SoftErrorMessage, push.Data)

	state, err := f.service.ResolveState(context.Background(), f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, initial, state.Document())
	assert.Equal(t, int64(0), state.Seq())

	assert.Empty(t, f.publisher.payloads)
	assert.Empty(t, f.uow.transcripts)

	require.Len(t, f.errorSink.entries, 1)
	entry := f.errorSink.entries[0]
	assert.Equal(t, "Add something.", entry["utterance"])
	assert.Equal(t, initial, entry["document"])
	assert.Contains(t, entry["error"], "timed out")
	assert.NotEmpty(t, entry["stack"])
}

func TestProcessUtteranceClassificationErrorFallsBackToSpeech(t *testing.T) {
	f := newDictationFixture(t, "", []scriptedReply{
		{err: errors.New("backend unavailable")},
		{text: "Captured anyway."},
	})

	push, err := f.service.ProcessUtterance(context.Background(), f.sessionID,
		ingest.FromText("Hello there.", ""))
	require.NoError(t, err)

	assert.Equal(t, constant.WsTypeContent, push.Type)
	require.Len(t, f.uow.transcripts, 1)
	assert.Equal(t, entity.TranscriptKindSpeech, f.uow.transcripts[0].Kind)
}

func TestProcessUtteranceSequentialConsistency(t *testing.T) {
	f := newDictationFixture(t, "", []scriptedReply{
		{text: "speech"}, {text: "One."},
		{text: "speech"}, {text: "One. Two."},
		{text: "command"}, {text: "Two. One."},
	})

	utterances := []string{"one", "two", "swap them"}
	var lastSeq int64
	for _, u := range utterances {
		push, err := f.service.ProcessUtterance(context.Background(), f.sessionID, ingest.FromText(u, ""))
		require.NoError(t, err)
		require.Equal(t, constant.WsTypeContent, push.Type)
		assert.Equal(t, lastSeq+1, push.Seq)
		lastSeq = push.Seq
	}

	state, err := f.service.ResolveState(context.Background(), f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, "Two. One.", state.Document())
	assert.Equal(t, int64(3), state.Seq())
}

func TestProcessUtteranceConcurrentConnections(t *testing.T) {
	f := newDictationFixtureWith(t, "", &appendingProvider{})

	var wg sync.WaitGroup
	for _, u := range []string{"alpha", "beta"} {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			push, err := f.service.ProcessUtterance(context.Background(), f.sessionID,
				ingest.FromText(text, ""))
			if assert.NoError(t, err) {
				assert.Equal(t, constant.WsTypeContent, push.Type)
			}
		}(u)
	}
	wg.Wait()

	state, err := f.service.ResolveState(context.Background(), f.sessionID)
	require.NoError(t, err)
	assert.Contains(t, state.Document(), "alpha")
	assert.Contains(t, state.Document(), "beta")
	assert.Equal(t, int64(2), state.Seq())
	assert.Len(t, f.uow.transcripts, 2)
}

func TestResolveStateUnknownSession(t *testing.T) {
	f := newDictationFixture(t, "", nil)
	delete(f.uow.sessions, f.sessionID)

	_, err := f.service.ResolveState(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
