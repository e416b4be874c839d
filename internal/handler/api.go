package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nemosite/internal/content"
	"github.com/nemosite/internal/db"
	"github.com/nemosite/internal/service"
	"github.com/nemosite/internal/upload"
)

// Session keys. Authentication state lives exclusively in the signed
// session cookie, never in the database.
const (
	sessionUserIDKey    = "user_id"
	sessionUserEmailKey = "user_email"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	users    *service.UserService
	posts    *service.PostService
	content  content.Source
	uploads  *upload.Store
	siteName string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, source content.Source, uploads *upload.Store, siteName string) *API {
	return &API{
		db:       gdb,
		users:    service.NewUserService(gdb),
		posts:    service.NewPostService(gdb, uploads),
		content:  source,
		uploads:  uploads,
		siteName: siteName,
	}
}

// AuthRequired guards routes that mutate state or expose the editor.
// Anonymous requests are redirected to the login page.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.requireAuth(c) {
			return
		}
		c.Next()
	}
}

func (a *API) requireAuth(c *gin.Context) bool {
	if a.isAuthenticated(c) {
		return true
	}
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
	return false
}

func (a *API) isAuthenticated(c *gin.Context) bool {
	session := sessions.Default(c)
	userID, _ := session.Get(sessionUserIDKey).(string)
	return strings.TrimSpace(userID) != ""
}

// currentUser resolves the logged-in user, or nil for anonymous sessions.
func (a *API) currentUser(c *gin.Context) *db.User {
	session := sessions.Default(c)
	userID, _ := session.Get(sessionUserIDKey).(string)
	if userID == "" {
		return nil
	}

	user, err := a.users.Get(userID)
	if err != nil {
		return nil
	}
	return user
}

// flash queues a one-shot message for the next rendered page. Levels match
// the alert classes the templates use: "success" and "danger".
func flash(c *gin.Context, level, message string) {
	session := sessions.Default(c)
	session.AddFlash(level + "|" + message)
	if err := session.Save(); err != nil {
		c.Error(err)
	}
}

type flashMessage struct {
	Level   string
	Message string
}

func takeFlashes(c *gin.Context) []flashMessage {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	messages := make([]flashMessage, 0, len(raw))
	for _, entry := range raw {
		text, ok := entry.(string)
		if !ok {
			continue
		}
		level, message, found := strings.Cut(text, "|")
		if !found {
			level, message = "success", text
		}
		messages = append(messages, flashMessage{Level: level, Message: message})
	}
	return messages
}

// renderHTML renders a template with the view state every page needs: the
// site title, the login flag and any pending flash messages. "logado" is
// the login-flag key the page templates test for.
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["title"]; !exists {
		payload["title"] = a.siteName
	}
	payload["siteName"] = a.siteName
	payload["logado"] = a.isAuthenticated(c)
	if _, exists := payload["flashes"]; !exists {
		payload["flashes"] = takeFlashes(c)
	}

	c.HTML(status, template, payload)
}
