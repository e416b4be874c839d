package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/nemosite/internal/content"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

func renderMarkdown(body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

// ShowHome renders the front page: recent news plus at most one current
// unsolved problem of the month.
func (a *API) ShowHome(c *gin.Context) {
	published, err := a.content.List(content.Filter{Status: content.StatusPublished})
	if err != nil {
		log.Error("list published content failed", "error", err)
		a.renderHTML(c, http.StatusInternalServerError, "index.html", gin.H{
			"error": "Could not load content.",
		})
		return
	}

	content.SortByDateDesc(published, time.Now())

	var newsPosts []content.Item
	for _, item := range published {
		if strings.HasPrefix(item.ID, content.PrefixNews) || item.Category == content.CategoryNews {
			newsPosts = append(newsPosts, item)
		}
	}

	a.renderHTML(c, http.StatusOK, "index.html", gin.H{
		"news_posts":   newsPosts,
		"problem_post": content.CurrentProblem(published),
	})
}

// ShowNews renders the news page, split into awards and other news.
func (a *API) ShowNews(c *gin.Context) {
	news, err := a.content.List(content.Filter{
		Status:     content.StatusPublished,
		PathPrefix: content.PrefixNews,
	})
	if err != nil {
		log.Error("list news failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	content.SortByDateDesc(news, time.Now())

	var awards, others []content.Item
	for _, item := range news {
		switch {
		case strings.HasPrefix(item.ID, content.PrefixNewsAwards):
			awards = append(awards, item)
		case strings.HasPrefix(item.ID, content.PrefixNewsOthers):
			others = append(others, item)
		}
	}

	a.renderHTML(c, http.StatusOK, "news.html", gin.H{
		"title":            "News",
		"award_posts":      awards,
		"other_news_posts": others,
	})
}

// ShowMonthsProblems lists the problems of the month, unsolved ones first.
func (a *API) ShowMonthsProblems(c *gin.Context) {
	problems, err := a.content.List(content.Filter{
		Status:   content.StatusPublished,
		Category: content.CategoryMonthProblem,
	})
	if err != nil {
		log.Error("list month problems failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	content.SortProblems(problems)

	a.renderHTML(c, http.StatusOK, "months-problems.html", gin.H{
		"title":     "Problems of the month",
		"post_list": problems,
	})
}

// ShowPost renders a single content item; unknown identifiers are a 404.
func (a *API) ShowPost(c *gin.Context, id string) {
	item, err := a.content.Get(id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		log.Error("get content item failed", "error", err, "id", id)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	body, err := renderMarkdown(item.Body)
	if err != nil {
		log.Error("render content body failed", "error", err, "id", id)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	data := gin.H{
		"title":   item.Title,
		"post":    item,
		"content": body,
	}

	if item.AuthorEmail != "" {
		if author, authorErr := a.users.GetByEmail(item.AuthorEmail); authorErr == nil {
			data["author"] = author
		}
	}

	if item.SolutionContent != "" {
		if solution, solErr := renderMarkdown(item.SolutionContent); solErr == nil {
			data["solution"] = solution
		}
	}

	a.renderHTML(c, http.StatusOK, "view-post.html", data)
}

// StaticPage returns a handler rendering one of the fixed site pages.
func (a *API) StaticPage(template, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a.renderHTML(c, http.StatusOK, template, gin.H{"title": title})
	}
}
