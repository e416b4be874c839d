package content

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// docMeta is the front-matter block of a flat document.
type docMeta struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	Status          string `yaml:"status"`
	Date            string `yaml:"date"`
	PostType        string `yaml:"post_type"`
	AuthorEmail     string `yaml:"author_email"`
	Image           string `yaml:"image"`
	Tags            string `yaml:"tags"`
	IsSolved        bool   `yaml:"is_solved"`
	SolverName      string `yaml:"solver_name"`
	SolutionContent string `yaml:"solution_content"`
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// splitDocument separates the front-matter block from the body. The metadata
// is the YAML up to the first blank line; everything after it is the body.
// A leading "---" fence is tolerated as well.
func splitDocument(raw string) (meta string, body string) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")

	if strings.HasPrefix(normalized, "---\n") {
		rest := normalized[len("---\n"):]
		if idx := strings.Index(rest, "\n---"); idx >= 0 {
			meta = rest[:idx]
			body = rest[idx+len("\n---"):]
			body = strings.TrimPrefix(body, "\n")
			return meta, strings.TrimLeft(body, "\n")
		}
	}

	if idx := strings.Index(normalized, "\n\n"); idx >= 0 {
		return normalized[:idx], strings.TrimLeft(normalized[idx+2:], "\n")
	}

	// No blank line: the whole file is metadata.
	return normalized, ""
}

// parseDocument turns a raw file into an Item, leaving path-derived fields
// (ID, Category) for the caller.
func parseDocument(raw []byte) (Item, error) {
	metaBlock, body := splitDocument(string(raw))

	var meta docMeta
	if strings.TrimSpace(metaBlock) != "" {
		if err := yaml.Unmarshal([]byte(metaBlock), &meta); err != nil {
			return Item{}, fmt.Errorf("parse front-matter: %w", err)
		}
	}

	item := Item{
		Title:           strings.TrimSpace(meta.Title),
		Description:     strings.TrimSpace(meta.Description),
		Body:            body,
		Status:          strings.TrimSpace(meta.Status),
		Category:        strings.TrimSpace(meta.PostType),
		AuthorEmail:     strings.TrimSpace(meta.AuthorEmail),
		ImagePath:       strings.TrimSpace(meta.Image),
		IsSolved:        meta.IsSolved,
		SolverName:      strings.TrimSpace(meta.SolverName),
		SolutionContent: meta.SolutionContent,
	}

	if tags := strings.TrimSpace(meta.Tags); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				item.Tags = append(item.Tags, trimmed)
			}
		}
	}

	if date := strings.TrimSpace(meta.Date); date != "" {
		parsed, err := parseDate(date)
		if err != nil {
			return Item{}, err
		}
		item.Date = parsed
	}

	if item.Title == "" {
		item.Title = headingTitle(body)
	}

	return item, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// headingTitle derives a title from the first markdown heading of the body.
func headingTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}
