package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nemosite/internal/db"
	"github.com/nemosite/internal/upload"
	"gorm.io/gorm"
)

// ErrPostNotFound is returned when a post id resolves to nothing.
var ErrPostNotFound = errors.New("post not found")

// UntaggedSentinel stands in when a submission carries no usable tags.
const UntaggedSentinel = "untagged"

// PostService wraps the editor's database-backed write operations.
type PostService struct {
	db      *gorm.DB
	uploads *upload.Store
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB, uploads *upload.Store) *PostService {
	return &PostService{db: gdb, uploads: uploads}
}

// PostInput represents the editor form fields for creating or updating a
// post. Image fields are filled in by the handler after a successful upload.
type PostInput struct {
	Title           string
	Description     string
	Content         string
	TagLines        string
	SaveDraft       bool
	Category        string
	Solved          bool
	SolverName      string
	SolutionContent string
	ImagePath       string
	ImageWidth      int
	ImageHeight     int
}

// NormalizeTags splits multi-line tag input into trimmed non-empty lines and
// joins them with the stored separator. Blank input yields the sentinel tag.
func NormalizeTags(raw string) string {
	var tags []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) == 0 {
		return UntaggedSentinel
	}
	return strings.Join(tags, db.TagSeparator)
}

// Get fetches a post by id.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// Save creates a new post when id is zero, otherwise updates the existing
// one; a nonexistent id fails with ErrPostNotFound. All field derivation
// rules of the editor live here.
func (s *PostService) Save(id uint, input PostInput) (*db.Post, error) {
	var post db.Post
	if id != 0 {
		if err := s.db.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPostNotFound
			}
			return nil, fmt.Errorf("find post: %w", err)
		}
	}

	post.Status = db.StatusPublished
	if input.SaveDraft {
		post.Status = db.StatusDraft
	}

	post.Title = strings.TrimSpace(input.Title)
	post.Description = strings.TrimSpace(input.Description)
	post.Content = input.Content
	post.Tags = NormalizeTags(input.TagLines)

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = db.CategoryNews
	}
	post.Category = category

	if post.Category == db.CategoryMonthProblem && input.Solved {
		post.IsSolved = true
		post.SolverName = strings.TrimSpace(input.SolverName)
		post.SolutionContent = input.SolutionContent
	} else {
		post.IsSolved = false
		post.SolverName = ""
		post.SolutionContent = ""
	}

	if input.ImagePath != "" {
		post.ImagePath = input.ImagePath
		post.ImageWidth = input.ImageWidth
		post.ImageHeight = input.ImageHeight
	}

	if err := s.db.Save(&post).Error; err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	return &post, nil
}

// Delete removes a post and any uploaded image it owns. A nonexistent id is
// a no-op, not an error.
func (s *PostService) Delete(id uint) error {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find post: %w", err)
	}

	if err := s.db.Delete(&post).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if post.ImagePath != "" && s.uploads != nil {
		if path := s.uploads.PathForURL(post.ImagePath); path != "" {
			if err := s.uploads.Remove(path); err != nil {
				return fmt.Errorf("delete post image: %w", err)
			}
		}
	}
	return nil
}

// ListDrafts returns draft posts, newest first.
func (s *PostService) ListDrafts() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.Where("status = ?", db.StatusDraft).
		Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return posts, nil
}

// ListPublished returns published posts, optionally limited to a category,
// newest first.
func (s *PostService) ListPublished(category string) ([]db.Post, error) {
	query := s.db.Where("status = ?", db.StatusPublished)
	if strings.TrimSpace(category) != "" {
		query = query.Where("category = ?", category)
	}

	var posts []db.Post
	if err := query.Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}
