package post

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Post struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string         `gorm:"not null;column:title" json:"title"`
	Content    string         `gorm:"not null;type:text;column:content" json:"content"`
	Category   string         `gorm:"column:category;index" json:"category,omitempty"`
	Categories datatypes.JSON `gorm:"column:categories" json:"categories,omitempty"`
	Tags       datatypes.JSON `gorm:"column:tags" json:"tags,omitempty"`
	AuthorID   uuid.UUID      `gorm:"type:uuid;not null;index;column:author_id" json:"author_id"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// StringList encodes ids or tags for a JSON column. Nil encodes as [].
func StringList(v []string) datatypes.JSON {
	if v == nil {
		v = []string{}
	}
	raw, _ := json.Marshal(v)
	return datatypes.JSON(raw)
}

// DecodeStringList reads a JSON column written by StringList.
func DecodeStringList(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
