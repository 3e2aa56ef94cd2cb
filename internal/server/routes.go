package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookmark/internal/handlers"
	"bookmark/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.RequestLogger)
	r.Use(middlewares.Instrument)
	r.Use(middlewares.Cors(s.cfg.AllowedOrigins))
	r.Use(s.limiter.Limit)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.HelloWorldHandler).Methods("GET")
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.registerBookmarkRoutes(r)
	s.registerCategoryRoutes(r)
	s.registerMenuRoutes(r)
	s.registerUIRoutes(r)

	return r
}

func (s *Server) registerBookmarkRoutes(r *mux.Router) {
	bh := handlers.NewBookmarksHandler(s.bookmarkService)

	r.HandleFunc("/api/bookmarks", bh.GetBookmarks).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/bookmarks/{id}", bh.DeleteBookmark).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/api/categories/{slug}/bookmarks", bh.GetBookmarksByCategory).Methods("GET", "OPTIONS")

	// legacy page
	r.HandleFunc("/bookmarks", bh.ListBookmarks).Methods("GET", "OPTIONS")
	r.HandleFunc("/bookmarks", bh.AddBookmark).Methods("POST", "OPTIONS")
}

func (s *Server) registerCategoryRoutes(r *mux.Router) {
	ch := handlers.NewCategoryHandler(s.categoryService)
	r.HandleFunc("/api/categories", ch.GetCategories).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/categories", ch.AddCategory).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/categories/recount", ch.RecalculateCounts).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/categories/fix-parents", ch.FixMissingParents).Methods("POST", "OPTIONS")
}

func (s *Server) registerMenuRoutes(r *mux.Router) {
	mh := handlers.NewMenuHandler(s.menuService)
	r.HandleFunc("/api/menu", mh.GetMenu).Methods("GET", "OPTIONS")
}

func (s *Server) registerUIRoutes(r *mux.Router) {
	uh := handlers.NewUIHandler(s.state)
	r.HandleFunc("/api/ui/theme", uh.GetTheme).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/ui/theme", uh.SetTheme).Methods("PUT", "OPTIONS")
	r.HandleFunc("/api/ui/theme/toggle", uh.ToggleTheme).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/ui/popover", uh.GetPopover).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/ui/popover/open", uh.OpenPopover).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/ui/popover/close", uh.ClosePopover).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/ui/center", uh.GetCenter).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/conveyor", uh.GetConveyor).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/conveyor/start", uh.StartConveyor).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/conveyor/stop", uh.StopConveyor).Methods("POST", "OPTIONS")
}
