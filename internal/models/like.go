package models

import "time"

type LikeType string

const (
	LikeTypeLike      LikeType = "like"
	LikeTypeSuperLike LikeType = "super_like"
	LikeTypePass      LikeType = "pass"
)

type Like struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	FromUserID  string    `gorm:"type:uuid;index:idx_like_pair;not null" json:"from_user_id"`
	ToUserID    string    `gorm:"type:uuid;index:idx_like_pair;not null" json:"to_user_id"`
	LikeType    LikeType  `gorm:"size:20;not null" json:"like_type"`
	IsAnonymous bool      `gorm:"default:false" json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (l *Like) IsSuperLike() bool { return l.LikeType == LikeTypeSuperLike }
func (l *Like) IsPass() bool      { return l.LikeType == LikeTypePass }
func (l *Like) IsLike() bool      { return l.LikeType == LikeTypeLike }
