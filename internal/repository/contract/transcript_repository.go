package contract

import (
	"context"

	"voicedraft-be/internal/entity"
	"voicedraft-be/internal/repository/specification"
)

type TranscriptRepository interface {
	Create(ctx context.Context, message *entity.TranscriptMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TranscriptMessage, error)
}
