package entity

import (
	"time"

	"github.com/google/uuid"
)

// DictationSession is the persisted record of one dictation session. Document
// holds the latest snapshot written by the snapshot consumer; the live value
// is owned by the session loop, not this record.
type DictationSession struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Document    string
	SnapshotSeq int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
