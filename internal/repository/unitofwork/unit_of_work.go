package unitofwork

import (
	"context"

	"voicedraft-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	DictationSessionRepository() contract.DictationSessionRepository
	TranscriptRepository() contract.TranscriptRepository
}
