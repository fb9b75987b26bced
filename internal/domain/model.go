package domain

import (
	"time"

	"github.com/weiawesome/wes-io-blog/pkg/database"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string               `gorm:"type:varchar(36);primaryKey"`
	Name         string               `gorm:"type:varchar(100);not null"`
	Email        string               `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string               `gorm:"type:varchar(255);not null"`
	Tokens       database.StringArray `gorm:"type:text"`
	CreatedAt    time.Time            `gorm:"autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Tokens:       []string(m.Tokens),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserToModel converts domain User to UserModel.
func UserToModel(u *User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Tokens:       database.StringArray(u.Tokens),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// PostModel is the GORM model for the posts table.
type PostModel struct {
	ID        string         `gorm:"type:varchar(36);primaryKey"`
	Title     string         `gorm:"type:varchar(255);not null"`
	Body      string         `gorm:"type:text;not null"`
	AuthorID  string         `gorm:"type:varchar(36);index;not null"`
	Comments  []CommentModel `gorm:"foreignKey:PostID"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (PostModel) TableName() string { return "posts" }

// ToDomain converts PostModel to domain Post. The author name is filled in
// by the repository.
func (m *PostModel) ToDomain() *Post {
	comments := make([]Comment, len(m.Comments))
	for i, c := range m.Comments {
		comments[i] = Comment{ID: c.ID, Text: c.Text, CreatedAt: c.CreatedAt}
	}
	return &Post{
		ID:        m.ID,
		Title:     m.Title,
		Body:      m.Body,
		AuthorID:  m.AuthorID,
		Author:    Author{ID: m.AuthorID},
		Comments:  comments,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CommentModel is the GORM model for the comments table.
// Insertion order is the primary key order.
type CommentModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PostID    string    `gorm:"type:varchar(36);index;not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (CommentModel) TableName() string { return "comments" }

// FollowModel is the GORM model for the follows table. One row is both an
// entry in the follower's following set and in the target's followers set.
type FollowModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FollowerID  string    `gorm:"column:follower_id;type:varchar(36);not null;uniqueIndex:uidx_follow_pair;index"`
	FollowingID string    `gorm:"column:following_id;type:varchar(36);not null;uniqueIndex:uidx_follow_pair;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }

// Models lists every table for auto-migration.
func Models() []interface{} {
	return []interface{}{&UserModel{}, &PostModel{}, &CommentModel{}, &FollowModel{}}
}
