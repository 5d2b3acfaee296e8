package contract

import (
	"context"

	"voicedraft-be/internal/entity"
	"voicedraft-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DictationSessionRepository interface {
	Create(ctx context.Context, session *entity.DictationSession) error
	Update(ctx context.Context, session *entity.DictationSession) error
	// UpdateSnapshot persists the latest document value; it only wins when seq
	// is newer than the stored one, so late snapshot deliveries never clobber
	// fresher state.
	UpdateSnapshot(ctx context.Context, id uuid.UUID, document string, seq int64) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DictationSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DictationSession, error)
}
