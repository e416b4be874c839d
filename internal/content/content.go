// Package content resolves site content from one of two interchangeable
// backends: database rows written by the post editor, or flat markdown
// documents scanned from a content root.
package content

import (
	"errors"
	"sort"
	"time"
)

// ErrNotFound is returned when no item matches the requested identifier.
var ErrNotFound = errors.New("content item not found")

// Statuses and categories shared by both backends.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"

	CategoryNews         = "News"
	CategoryMonthProblem = "Month-Problem"
)

// Path prefixes the flat-file layout uses to derive categories.
const (
	PrefixNews          = "news/"
	PrefixNewsAwards    = "news/awards/"
	PrefixNewsOthers    = "news/others/"
	PrefixMonthProblems = "months-problems/"
)

// Item is a single piece of site content, whichever backend produced it.
// ID is an opaque string: a decimal row id for database posts, a
// root-relative path without extension for flat documents.
type Item struct {
	ID          string
	Title       string
	Description string
	Body        string
	Date        time.Time
	Status      string
	Category    string
	Tags        []string
	AuthorEmail string
	ImagePath   string

	// Month-Problem fields.
	IsSolved        bool
	SolverName      string
	SolutionContent string
}

// Filter narrows a listing. Zero values match everything.
type Filter struct {
	Status     string
	Category   string
	PathPrefix string
}

// Source is the read contract both backends implement.
type Source interface {
	List(filter Filter) ([]Item, error)
	Get(id string) (*Item, error)
}

// effectiveDate substitutes now for documents that omit a date, so undated
// documents surface at the top of newest-first listings.
func effectiveDate(item Item, now time.Time) time.Time {
	if item.Date.IsZero() {
		return now
	}
	return item.Date
}

// SortByDateDesc orders items newest first. Items without a date sort as if
// they were published right now.
func SortByDateDesc(items []Item, now time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return effectiveDate(items[i], now).After(effectiveDate(items[j], now))
	})
}

// SortProblems orders Month-Problem items so that unsolved ones come first,
// ties broken by ascending date.
func SortProblems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsSolved != items[j].IsSolved {
			return !items[i].IsSolved
		}
		return items[i].Date.Before(items[j].Date)
	})
}

// CurrentProblem picks the post for the home page teaser: the first unsolved
// Month-Problem among the given date-descending published items. Returns nil
// when every problem is solved.
func CurrentProblem(sorted []Item) *Item {
	for i := range sorted {
		if sorted[i].Category == CategoryMonthProblem && !sorted[i].IsSolved {
			return &sorted[i]
		}
	}
	return nil
}
