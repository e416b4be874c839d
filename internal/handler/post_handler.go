package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/nemosite/internal/service"
)

// PostDispatch splits the shared /post/ prefix: "new" and "edit/<id>" go to
// the authenticated editor, anything else is a public content identifier.
func (a *API) PostDispatch(c *gin.Context) {
	sub := strings.TrimPrefix(c.Param("path"), "/")

	switch {
	case sub == "new":
		if !a.requireAuth(c) {
			return
		}
		a.ShowPostEditor(c, 0)
	case strings.HasPrefix(sub, "edit/"):
		if !a.requireAuth(c) {
			return
		}
		id, err := strconv.ParseUint(strings.TrimPrefix(sub, "edit/"), 10, 32)
		if err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		a.ShowPostEditor(c, uint(id))
	default:
		a.ShowPost(c, sub)
	}
}

// ShowPostEditor renders the editor form, either blank or loaded with the
// post picked for editing.
func (a *API) ShowPostEditor(c *gin.Context, id uint) {
	data := gin.H{"title": "New post"}

	if id != 0 {
		post, err := a.posts.Get(id)
		if err != nil {
			if errors.Is(err, service.ErrPostNotFound) {
				flash(c, "danger", "Post not found!")
				c.Redirect(http.StatusFound, "/")
				return
			}
			log.Error("load post for editing failed", "error", err, "id", id)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		data["title"] = "Edit post"
		data["post"] = post
	}

	a.renderHTML(c, http.StatusOK, "post-editor.html", data)
}

// SavePost handles the editor submission for both create and update. On
// success it redirects to the saved post's public view.
func (a *API) SavePost(c *gin.Context) {
	var id uint
	if raw := c.Param("id"); raw != "" {
		parsed, err := parseUintParam(c, "id")
		if err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		id = parsed
	}

	input := service.PostInput{
		Title:           c.PostForm("post-title"),
		Description:     c.PostForm("post-desc"),
		Content:         c.PostForm("post-content"),
		TagLines:        c.PostForm("post-tags"),
		SaveDraft:       c.PostForm("save_draft") != "",
		Category:        c.PostForm("post_type"),
		Solved:          c.PostForm("is_solved") != "",
		SolverName:      c.PostForm("solver_name"),
		SolutionContent: c.PostForm("solution_content"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil && file.Filename != "" {
		saved, saveErr := a.uploads.Save(file)
		if saveErr != nil {
			log.Error("post image upload failed", "error", saveErr)
			flash(c, "danger", "Could not store the post image.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		input.ImagePath = saved.URL
		input.ImageWidth = saved.Width
		input.ImageHeight = saved.Height
	}

	post, err := a.posts.Save(id, input)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.String(http.StatusNotFound, "Post not found")
			return
		}
		log.Error("save post failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	flash(c, "success", "Post saved successfully!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// DeletePost removes a post and redirects home. Deleting an id that does
// not exist takes the same redirect, without raising.
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := a.posts.Delete(id); err != nil {
		log.Error("delete post failed", "error", err, "id", id)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	flash(c, "success", "Post deleted successfully.")
	c.Redirect(http.StatusFound, "/")
}

// ShowDrafts lists draft posts for the maintainer.
func (a *API) ShowDrafts(c *gin.Context) {
	drafts, err := a.posts.ListDrafts()
	if err != nil {
		log.Error("list drafts failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	a.renderHTML(c, http.StatusOK, "drafts.html", gin.H{
		"title":         "Drafts",
		"post_list":     drafts,
		"len_post_list": len(drafts),
	})
}
