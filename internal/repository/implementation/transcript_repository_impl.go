package implementation

import (
	"context"

	"voicedraft-be/internal/entity"
	"voicedraft-be/internal/mapper"
	"voicedraft-be/internal/model"
	"voicedraft-be/internal/repository/contract"
	"voicedraft-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TranscriptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DictationMapper
}

func NewTranscriptRepository(db *gorm.DB) contract.TranscriptRepository {
	return &TranscriptRepositoryImpl{
		db:     db,
		mapper: mapper.NewDictationMapper(),
	}
}

func (r *TranscriptRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TranscriptRepositoryImpl) Create(ctx context.Context, message *entity.TranscriptMessage) error {
	m := r.mapper.TranscriptToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.TranscriptToEntity(m)
	return nil
}

func (r *TranscriptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TranscriptMessage, error) {
	var models []*model.TranscriptMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TranscriptMessage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.TranscriptToEntity(m)
	}
	return entities, nil
}
