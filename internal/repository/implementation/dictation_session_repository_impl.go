package implementation

import (
	"context"
	"errors"

	"voicedraft-be/internal/entity"
	"voicedraft-be/internal/mapper"
	"voicedraft-be/internal/model"
	"voicedraft-be/internal/repository/contract"
	"voicedraft-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DictationSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DictationMapper
}

func NewDictationSessionRepository(db *gorm.DB) contract.DictationSessionRepository {
	return &DictationSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewDictationMapper(),
	}
}

func (r *DictationSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DictationSessionRepositoryImpl) Create(ctx context.Context, session *entity.DictationSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *DictationSessionRepositoryImpl) Update(ctx context.Context, session *entity.DictationSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *DictationSessionRepositoryImpl) UpdateSnapshot(ctx context.Context, id uuid.UUID, document string, seq int64) error {
	// Guard on snapshot_seq so out-of-order deliveries cannot regress state.
	return r.db.WithContext(ctx).
		Model(&model.DictationSession{}).
		Where("id = ? AND snapshot_seq < ?", id, seq).
		Updates(map[string]interface{}{
			"document":     document,
			"snapshot_seq": seq,
		}).Error
}

func (r *DictationSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DictationSession{}, id).Error
}

func (r *DictationSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DictationSession, error) {
	var m model.DictationSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *DictationSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DictationSession, error) {
	var models []*model.DictationSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.DictationSession, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SessionToEntity(m)
	}
	return entities, nil
}
