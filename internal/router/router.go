// Package router wires the HTTP surface of the site onto a gin engine.
package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/nemosite/internal/handler"
)

// Options carries the pieces the router needs beyond the handlers.
type Options struct {
	SessionSecret string
	TemplateGlob  string
	StaticDir     string
}

// Setup configures the gin engine with sessions, templates and all routes.
func Setup(api *handler.API, opts Options) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(opts.SessionSecret))
	r.Use(sessions.Sessions("nemosite_session", store))

	if opts.TemplateGlob != "" {
		r.LoadHTMLGlob(opts.TemplateGlob)
	}
	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	// Public pages.
	r.GET("/", api.ShowHome)
	r.GET("/login", api.ShowLogin)
	r.POST("/login", api.Login)
	r.GET("/news", api.ShowNews)
	r.GET("/months-problems", api.ShowMonthsProblems)
	r.GET("/about", api.StaticPage("about.html", "About"))
	r.GET("/materials", api.StaticPage("materials.html", "Materials"))
	r.GET("/team", api.StaticPage("team.html", "Team"))
	r.GET("/faq", api.StaticPage("faq.html", "FAQ"))
	r.GET("/contact", api.StaticPage("contact.html", "Contact"))

	// The editor shares the /post/ prefix with the public view, so the
	// dispatcher untangles new/edit from content identifiers itself.
	r.GET("/post/*path", api.PostDispatch)

	// Authenticated surface: everything that mutates state.
	auth := r.Group("")
	auth.Use(api.AuthRequired())
	{
		auth.GET("/logout", api.Logout)
		auth.GET("/account-settings", api.ShowAccountSettings)
		auth.POST("/account-settings", api.UpdateAccountSettings)
		auth.GET("/drafts", api.ShowDrafts)
		auth.POST("/post/save", api.SavePost)
		auth.POST("/post/save/:id", api.SavePost)
		auth.POST("/delete-post/:id", api.DeletePost)
		auth.POST("/upload-image", api.UploadImage)
	}

	return r
}
