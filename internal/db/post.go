package db

import (
	"strings"

	"gorm.io/gorm"
)

// Post statuses and categories. Every post is exactly one of each.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"

	CategoryNews         = "News"
	CategoryMonthProblem = "Month-Problem"
)

// TagSeparator joins normalized tag lines into the stored tag string.
const TagSeparator = "|"

// Post is a database-backed article managed through the editor.
type Post struct {
	gorm.Model
	Title       string `gorm:"not null;size:100"`
	Description string `gorm:"not null;size:200"`
	Content     string `gorm:"type:text;not null"`
	Tags        string `gorm:"type:text"`
	ImagePath   string `gorm:"size:255"`
	ImageWidth  int
	ImageHeight int
	Status      string `gorm:"not null;size:20;default:published"`
	Category    string `gorm:"not null;size:50;default:News"`

	// Only meaningful for Month-Problem posts.
	IsSolved        bool
	SolverName      string `gorm:"size:100"`
	SolutionContent string `gorm:"type:text"`
}

// TagList splits the stored tag string back into individual tags.
func (p *Post) TagList() []string {
	if strings.TrimSpace(p.Tags) == "" {
		return nil
	}
	return strings.Split(p.Tags, TagSeparator)
}
