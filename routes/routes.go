package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"wayfare/admin"
	"wayfare/auth"
	"wayfare/documents"
	"wayfare/itinerary"
	"wayfare/middleware"
	"wayfare/notify"
	"wayfare/ratelim"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(h.Logout))
	router.GET("/api/auth/me", middleware.Authenticate(h.Me))
}

func AddItineraryRoutes(router *httprouter.Router, h *itinerary.Handler, rl *ratelim.RateLimiter) {
	// Public read path: possession of the code is the access control.
	router.GET("/api/itineraries/code/:code", rl.Limit(h.Lookup))
	router.GET("/api/itineraries/code/:code/ics", rl.Limit(h.ExportICS))
	router.GET("/api/itineraries/code/:code/print", rl.Limit(h.PrintView))
	router.GET("/api/itineraries/code/:code/pdf", rl.Limit(h.ExportPDF))

	router.POST("/api/itineraries", middleware.Authenticate(h.Create))
	router.GET("/api/itineraries", middleware.Authenticate(h.List))
	// GET uses the /all/ prefix so the id wildcard cannot collide with
	// the static /code/ subtree in the router.
	router.GET("/api/itineraries/all/:id", middleware.Authenticate(h.Get))
	router.PUT("/api/itineraries/:id", middleware.Authenticate(h.Update))
	router.DELETE("/api/itineraries/:id", middleware.Authenticate(h.Delete))
	router.PUT("/api/itineraries/:id/status", middleware.Authenticate(h.SetStatus))
}

func AddNotifyRoutes(router *httprouter.Router, h *notify.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/itineraries/:id/send", rl.Limit(middleware.Authenticate(h.Send)))
}

func AddDocumentRoutes(router *httprouter.Router, h *documents.Handler) {
	router.POST("/api/itineraries/:id/documents", middleware.Authenticate(h.Upload))
	router.GET("/api/itineraries/all/:id/documents", middleware.Authenticate(h.List))
	router.DELETE("/api/documents/:id", middleware.Authenticate(h.Delete))
}

func AddAdminRoutes(router *httprouter.Router, h *admin.Handler) {
	router.GET("/api/admin/users", middleware.RequireAdmin(h.ListUsers))
	router.POST("/api/admin/users", middleware.RequireAdmin(h.CreateUser))
	router.PUT("/api/admin/users/:id", middleware.RequireAdmin(h.UpdateUser))
	router.DELETE("/api/admin/users/:id", middleware.RequireAdmin(h.DeleteUser))
	router.GET("/api/admin/stats", middleware.RequireAdmin(h.Stats))
}
