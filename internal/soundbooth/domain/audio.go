package domain

import "time"

type AudioFile struct {
	ID           string
	Filename     string // stored name, user_{user_id}_{uuid}.{ext}
	UserFilename string // label the owner chose
	ContentType  string
	Path         string // location returned by the storage backend
	Size         int64
	UserID       string
	IsDeleted    bool
	CreatedAt    time.Time
}
