package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
}

func TestFlatFileSourceParsesFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "news/awards/gold.md", `title: Gold medal
status: published
date: 2024-03-15
author_email: maintainer@example.com

We brought home a **gold medal**.
`)

	source := NewFlatFileSource(root, ".md", true)
	item, err := source.Get("news/awards/gold")
	if err != nil {
		t.Fatalf("get document: %v", err)
	}

	if item.Title != "Gold medal" {
		t.Fatalf("expected title from front-matter, got %q", item.Title)
	}
	if item.Status != StatusPublished {
		t.Fatalf("expected published status, got %q", item.Status)
	}
	if item.Category != CategoryNews {
		t.Fatalf("expected News category from path, got %q", item.Category)
	}
	if item.AuthorEmail != "maintainer@example.com" {
		t.Fatalf("unexpected author email %q", item.AuthorEmail)
	}
	if got := item.Date.Format("2006-01-02"); got != "2024-03-15" {
		t.Fatalf("unexpected date %q", got)
	}
	if item.Body == "" || item.Body[0] != 'W' {
		t.Fatalf("unexpected body %q", item.Body)
	}
}

func TestFlatFileSourceTitleFallsBackToHeading(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "news/others/plain.md", `status: published

# Heading Title

Body text.
`)

	source := NewFlatFileSource(root, ".md", true)
	item, err := source.Get("news/others/plain")
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if item.Title != "Heading Title" {
		t.Fatalf("expected heading-derived title, got %q", item.Title)
	}
}

func TestFlatFileSourceGetUnknownIsNotFound(t *testing.T) {
	source := NewFlatFileSource(t.TempDir(), ".md", true)

	if _, err := source.Get("news/missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := source.Get("../../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for traversal, got %v", err)
	}
}

func TestFlatFileSourceListFilters(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "news/awards/a.md", "status: published\n\nA\n")
	writeDoc(t, root, "news/others/b.md", "status: draft\n\nB\n")
	writeDoc(t, root, "months-problems/p1.md", "status: published\npost_type: Month-Problem\n\nP\n")

	source := NewFlatFileSource(root, ".md", true)

	published, err := source.List(Filter{Status: StatusPublished})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published docs, got %d", len(published))
	}

	news, err := source.List(Filter{Status: StatusPublished, PathPrefix: PrefixNews})
	if err != nil {
		t.Fatalf("list news: %v", err)
	}
	if len(news) != 1 || news[0].ID != "news/awards/a" {
		t.Fatalf("unexpected news listing %v", news)
	}

	problems, err := source.List(Filter{Category: CategoryMonthProblem})
	if err != nil {
		t.Fatalf("list problems: %v", err)
	}
	if len(problems) != 1 || !problems[0].Date.IsZero() {
		t.Fatalf("unexpected problems listing %v", problems)
	}
}

func TestFlatFileSourceAutoReload(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "news/first.md", "status: published\n\nFirst\n")

	reloading := NewFlatFileSource(root, ".md", true)
	frozen := NewFlatFileSource(root, ".md", false)

	for _, source := range []*FlatFileSource{reloading, frozen} {
		items, err := source.List(Filter{})
		if err != nil {
			t.Fatalf("initial list: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 doc, got %d", len(items))
		}
	}

	writeDoc(t, root, "news/second.md", "status: published\n\nSecond\n")

	items, err := reloading.List(Filter{})
	if err != nil {
		t.Fatalf("reload list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected reloading source to see 2 docs, got %d", len(items))
	}

	items, err = frozen.List(Filter{})
	if err != nil {
		t.Fatalf("frozen list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected frozen source to keep 1 doc, got %d", len(items))
	}
}

func TestFlatFileSourceMissingRootIsEmpty(t *testing.T) {
	source := NewFlatFileSource(filepath.Join(t.TempDir(), "nope"), ".md", true)
	items, err := source.List(Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty listing, got %d", len(items))
	}
}

func TestSortProblemsUnsolvedFirst(t *testing.T) {
	date := func(day int) time.Time {
		return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	}
	items := []Item{
		{ID: "months-problems/solved", IsSolved: true, Date: date(1)},
		{ID: "months-problems/late", IsSolved: false, Date: date(20)},
		{ID: "months-problems/early", IsSolved: false, Date: date(5)},
	}

	SortProblems(items)

	want := []string{"months-problems/early", "months-problems/late", "months-problems/solved"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, items[i].ID)
		}
	}
}

func TestSortByDateDescMissingDateActsAsNow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: "old", Date: now.AddDate(0, -1, 0)},
		{ID: "undated"},
		{ID: "new", Date: now.AddDate(0, 0, -1)},
	}

	SortByDateDesc(items, now)

	if items[0].ID != "undated" {
		t.Fatalf("expected undated doc first, got %s", items[0].ID)
	}
	if items[1].ID != "new" || items[2].ID != "old" {
		t.Fatalf("unexpected order %s, %s", items[1].ID, items[2].ID)
	}
}

func TestCurrentProblemPicksFirstUnsolved(t *testing.T) {
	items := []Item{
		{ID: "news/x", Category: CategoryNews},
		{ID: "months-problems/solved", Category: CategoryMonthProblem, IsSolved: true},
		{ID: "months-problems/open", Category: CategoryMonthProblem},
	}

	problem := CurrentProblem(items)
	if problem == nil || problem.ID != "months-problems/open" {
		t.Fatalf("unexpected current problem %v", problem)
	}

	if got := CurrentProblem(items[:2]); got != nil {
		t.Fatalf("expected nil when no unsolved problem, got %v", got)
	}
}
