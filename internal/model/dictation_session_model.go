package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DictationSession struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Title       string    `gorm:"type:text;not null"`
	Document    string    `gorm:"type:text;not null;default:''"`
	SnapshotSeq int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (DictationSession) TableName() string {
	return "dictation_sessions"
}
