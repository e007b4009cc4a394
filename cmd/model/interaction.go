package model

import "time"

// VideoLike has a composite primary key: the existence of the row is the
// "liked" fact, so at most one like per (video, user) pair holds by
// construction. A second insert fails with a duplicate-key error that the
// handler maps to "already liked".
type VideoLike struct {
	VideoId   int64 `gorm:"primaryKey;autoIncrement:false"`
	UserId    int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}
