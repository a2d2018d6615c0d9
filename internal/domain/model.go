package domain

import "time"

// PostModel is the GORM model for the posts table. IDs are auto-incremented,
// so insertion order doubles as the feed's secondary sort key.
type PostModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Author    string    `gorm:"column:author;type:varchar(64);not null;index" json:"author"`
	Text      string    `gorm:"column:text;type:text;not null" json:"text"`
	LikeCount int64     `gorm:"column:like_count;not null;default:0" json:"like_count"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (PostModel) TableName() string { return "posts" }

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint      `gorm:"column:post_id;not null;index" json:"post_id"`
	Author    string    `gorm:"column:author;type:varchar(64);not null" json:"author"`
	Text      string    `gorm:"column:text;type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CommentModel) TableName() string { return "comments" }

// FollowModel is the GORM model for the follows table. The
// (follower, following) pair is unique.
type FollowModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FollowerID  string    `gorm:"column:follower_id;type:varchar(64);not null;uniqueIndex:uidx_follow_pair"`
	FollowingID string    `gorm:"column:following_id;type:varchar(64);not null;uniqueIndex:uidx_follow_pair"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }
