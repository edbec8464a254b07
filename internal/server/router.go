package server

import (
	"net/http"

	"helpdesk/internal/config"
	"helpdesk/internal/handlers"
	"helpdesk/internal/middleware"
	"helpdesk/internal/models"
	"helpdesk/internal/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter assembles the gin engine: session middleware, request
// logging, and the three endpoint groups (auth, tickets, admin).
func NewRouter(cfg *config.Config, store *storage.Store, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	cookieStore := cookie.NewStore([]byte(cfg.SessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("helpdesk_session", cookieStore))

	authHandler := handlers.NewAuthHandler(store)
	ticketHandler := handlers.NewTicketHandler(store)
	userHandler := handlers.NewUserHandler(store)

	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(store))

	authed.POST("/logout", authHandler.Logout)

	authed.POST("/tickets", ticketHandler.Create)
	authed.GET("/tickets", ticketHandler.List)
	authed.GET("/tickets/:id", ticketHandler.Get)
	authed.PUT("/tickets/:id", ticketHandler.Update)
	authed.DELETE("/tickets/:id", ticketHandler.Delete)

	admin := authed.Group("/users")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.GET("", userHandler.List)
	admin.PUT("/:id", userHandler.UpdateRole)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
