package content

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nemosite/internal/db"
	"gorm.io/gorm"
)

// DatabaseSource serves content from the relational Post table the editor
// writes to. Identifiers are decimal row ids.
type DatabaseSource struct {
	db *gorm.DB
}

// NewDatabaseSource creates a source over the given database handle.
func NewDatabaseSource(gdb *gorm.DB) *DatabaseSource {
	return &DatabaseSource{db: gdb}
}

// List returns posts matching the filter, newest first.
func (s *DatabaseSource) List(filter Filter) ([]Item, error) {
	query := s.db.Model(&db.Post{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var posts []db.Post
	if err := query.Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	items := make([]Item, 0, len(posts))
	for i := range posts {
		items = append(items, postToItem(&posts[i]))
	}
	return items, nil
}

// Get fetches a single post by its decimal identifier.
func (s *DatabaseSource) Get(id string) (*Item, error) {
	numeric, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return nil, ErrNotFound
	}

	var post db.Post
	if err := s.db.First(&post, uint(numeric)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}

	item := postToItem(&post)
	return &item, nil
}

func postToItem(post *db.Post) Item {
	return Item{
		ID:              strconv.FormatUint(uint64(post.ID), 10),
		Title:           post.Title,
		Description:     post.Description,
		Body:            post.Content,
		Date:            post.CreatedAt,
		Status:          post.Status,
		Category:        post.Category,
		Tags:            post.TagList(),
		ImagePath:       post.ImagePath,
		IsSolved:        post.IsSolved,
		SolverName:      post.SolverName,
		SolutionContent: post.SolutionContent,
	}
}
