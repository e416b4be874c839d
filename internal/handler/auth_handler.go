package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/nemosite/internal/service"
)

// rememberMaxAge extends the session cookie past the browser session when
// the "remember me" box is checked.
const rememberMaxAge = 30 * 24 * 60 * 60

// ShowLogin renders the login form.
func (a *API) ShowLogin(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Login",
	})
}

// Login authenticates the submitted credentials and activates the session.
func (a *API) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := a.users.Verify(email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Error("login verification failed", "error", err)
		}
		flash(c, "danger", "Invalid credentials.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	session := sessions.Default(c)
	options := sessions.Options{Path: "/", HttpOnly: true}
	if c.PostForm("remember") != "" {
		options.MaxAge = rememberMaxAge
	}
	session.Options(options)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUserEmailKey, user.Email)
	if err := session.Save(); err != nil {
		log.Error("session save failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session and returns to the home page.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		log.Error("session clear failed", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}
