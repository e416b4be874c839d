package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/nemosite/internal/service"
)

// ShowAccountSettings renders the profile form for the logged-in user.
func (a *API) ShowAccountSettings(c *gin.Context) {
	user := a.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	a.renderHTML(c, http.StatusOK, "account-settings.html", gin.H{
		"title": "Account settings",
		"user":  user,
	})
}

// UpdateAccountSettings applies profile changes after re-verifying the
// current password. The password is only replaced when a new one is given.
func (a *API) UpdateAccountSettings(c *gin.Context) {
	user := a.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if _, err := a.users.Verify(user.Email, c.PostForm("current_password")); err != nil {
		flash(c, "danger", "Incorrect password. Please try again.")
		c.Redirect(http.StatusFound, "/account-settings")
		return
	}

	input := service.UserUpdateInput{
		Email:    c.PostForm("email"),
		Name:     c.PostForm("name"),
		AboutMe:  c.PostForm("about_me"),
		Password: c.PostForm("password"),
	}

	if file, err := c.FormFile("profile_pic"); err == nil && file != nil && file.Filename != "" {
		saved, saveErr := a.uploads.Save(file)
		if saveErr != nil {
			log.Error("profile picture upload failed", "error", saveErr)
			flash(c, "danger", "Could not store the profile picture.")
			c.Redirect(http.StatusFound, "/account-settings")
			return
		}
		input.ProfileImagePath = saved.URL
	}

	updated, err := a.users.Update(user.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			flash(c, "danger", "That email address is already in use.")
		default:
			log.Error("account update failed", "error", err)
			flash(c, "danger", "Could not update your settings.")
		}
		c.Redirect(http.StatusFound, "/account-settings")
		return
	}

	// The email doubles as the login identity; keep the session in step.
	session := sessions.Default(c)
	session.Set(sessionUserEmailKey, updated.Email)
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	flash(c, "success", "Your settings have been updated successfully!")
	c.Redirect(http.StatusFound, "/account-settings")
}
