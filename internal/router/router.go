// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/handler"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/middleware"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
)

// RegisterRoutes registers routes that need no authentication or
// handler state. Currently only the health check used by load
// balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication surface. Register, login,
// refresh and logout live under /v1/auth and need no session; /v1/me
// requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout validates the refresh token or bearer itself, so it stays
	// outside the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// PublicHandlers bundles the handlers reachable without a session.
type PublicHandlers struct {
	Discovery  *handler.DiscoveryHandler
	Classes    *handler.ClassHandler
	Categories *handler.CategoryHandler
	Events     *handler.EventHandler
	Members    *handler.MembershipHandler
	Ratings    *handler.RatingHandler
}

// RegisterPublic registers unauthenticated browse endpoints: class
// discovery, class and category details, event listings and rosters.
// The optional mw chain (response cache, rate limiter) applies to the
// discovery endpoint only, where repeat queries are both common and
// cacheable.
func RegisterPublic(e *echo.Echo, p PublicHandlers, mw ...echo.MiddlewareFunc) {
	e.GET("/v1/classes", p.Discovery.Search, mw...)
	e.GET("/v1/classes/:id", p.Classes.GetByID)
	e.GET("/v1/classes/:id/events", p.Events.ListByClass)
	e.GET("/v1/classes/:id/ratings", p.Ratings.List)
	e.GET("/v1/categories", p.Categories.List)
	e.GET("/v1/categories/:id", p.Categories.GetByID)
	e.GET("/v1/events/:id", p.Events.GetByID)
	e.GET("/v1/events/:id/members", p.Members.Members)
}

// ProtectedHandlers bundles the handlers that require a session.
type ProtectedHandlers struct {
	Classes *handler.ClassHandler
	Events  *handler.EventHandler
	Members *handler.MembershipHandler
	Ratings *handler.RatingHandler
}

// RegisterProtected registers the authenticated surface. Listing
// management requires the class_owner or admin role; joining events and
// rating classes is open to any authenticated user. Ownership of the
// specific resource is enforced inside the handlers.
func RegisterProtected(e *echo.Echo, h ProtectedHandlers, cat *handler.CategoryHandler, jwtSecret string) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	owner := auth.Group("")
	owner.Use(middleware.RequireRole(model.RoleClassOwner, model.RoleAdmin))
	owner.POST("/classes", h.Classes.Create)
	owner.PUT("/classes/:id", h.Classes.Update)
	owner.DELETE("/classes/:id", h.Classes.Delete)
	owner.POST("/events", h.Events.Create)
	owner.PUT("/events/:id", h.Events.Update)
	owner.DELETE("/events/:id", h.Events.Delete)

	admin := auth.Group("")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/categories", cat.Create)
	admin.DELETE("/categories/:id", cat.Delete)

	auth.POST("/events/:id/join", h.Members.Join)
	auth.DELETE("/events/:id/join", h.Members.Leave)
	auth.POST("/classes/:id/ratings", h.Ratings.Rate)
}
