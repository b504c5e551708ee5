// Package webapi provides a web API for the message guard. It checks messages with the same validator
// the bot uses, and exposes the chat registry and the ban history.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/tg-guard/app/storage"
	"github.com/umputun/tg-guard/lib/verdict"
)

//go:generate moq --out mocks/validator.go --pkg mocks --with-resets --skip-ensure . Validator
//go:generate moq --out mocks/chat_lister.go --pkg mocks --with-resets --skip-ensure . ChatLister
//go:generate moq --out mocks/ban_reader.go --pkg mocks --with-resets --skip-ensure . BanReader

const defaultBansLimit = 100

// Server is a web API server.
type Server struct {
	Config
}

// Config defines server parameters
type Config struct {
	Version    string     // version to show in app info headers
	ListenAddr string     // listen address
	Validator  Validator  // message validator
	Chats      ChatLister // optional, chats registry
	Bans       BanReader  // optional, ban history
	AuthUser   string     // basic auth user, "tg-guard" by default
	AuthPasswd string     // basic auth password, auth disabled if empty
}

// Validator checks message text
type Validator interface {
	Validate(text string) verdict.Result
}

// ChatLister returns registered chats
type ChatLister interface {
	List(ctx context.Context, activeOnly bool) ([]storage.ChatInfo, error)
}

// BanReader returns ban history
type BanReader interface {
	Read(ctx context.Context, limit int) ([]storage.BanEntry, error)
	Stats(ctx context.Context) (map[verdict.Rule]int, error)
}

// NewServer creates a new web API server.
func NewServer(config Config) *Server {
	if config.AuthUser == "" {
		config.AuthUser = "tg-guard"
	}
	return &Server{Config: config}
}

// Run starts server and accepts requests until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	if s.AuthPasswd != "" {
		log.Printf("[INFO] basic auth enabled for webapi server, user %q", s.AuthUser)
	} else {
		log.Printf("[WARN] basic auth disabled, access to webapi is not protected")
	}

	srv := &http.Server{Addr: s.ListenAddr, Handler: s.router(), ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout: 5 * time.Second, IdleTimeout: 30 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown webapi server: %v", err)
		} else {
			log.Printf("[INFO] webapi server stopped")
		}
	}()

	log.Printf("[INFO] start webapi server on %s", s.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}

// router makes the handler with all middlewares and routes
func (s *Server) router() http.Handler {
	lmt := tollbooth.NewLimiter(50, nil)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})

	router := routegroup.New(http.NewServeMux())
	router.Use(rest.Recoverer(lgr.Default()))
	router.Use(rest.Throttle(1000))
	router.Use(rest.AppInfo("tg-guard", "umputun", s.Version), rest.Ping)
	router.Use(tollbooth.HTTPMiddleware(lmt))
	router.Use(rest.SizeLimit(64 * 1024))

	router.Group().Route(func(api *routegroup.Bundle) {
		if s.AuthPasswd != "" {
			api.Use(rest.BasicAuthWithUserPasswd(s.AuthUser, s.AuthPasswd))
		}
		api.HandleFunc("POST /check", s.checkHandler)     // check a message
		api.HandleFunc("GET /chats", s.chatsHandler)      // list chats, ?all=true to include inactive
		api.HandleFunc("GET /bans", s.bansHandler)        // recent bans, ?limit=N
		api.HandleFunc("GET /bans/stats", s.statsHandler) // number of bans per rule
	})
	return router
}

// checkHandler handles POST /check request with {"msg": "text"} body, responds with the validation result
func (s *Server) checkHandler(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Msg string `json:"msg"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[WARN] can't decode check request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		rest.RenderJSON(w, rest.JSON{"error": "can't decode request", "details": err.Error()})
		return
	}
	res := s.Validator.Validate(req.Msg)
	log.Printf("[DEBUG] check %q: %s", req.Msg, res)
	rest.RenderJSON(w, res)
}

// chatsHandler handles GET /chats request, active chats only unless all=true set
func (s *Server) chatsHandler(w http.ResponseWriter, r *http.Request) {
	if s.Chats == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		rest.RenderJSON(w, rest.JSON{"error": "chats registry not available"})
		return
	}
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	chats, err := s.Chats.List(r.Context(), !all)
	if err != nil {
		log.Printf("[WARN] can't list chats: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		rest.RenderJSON(w, rest.JSON{"error": "can't list chats", "details": err.Error()})
		return
	}
	rest.RenderJSON(w, chats)
}

// bansHandler handles GET /bans request, returns up to limit most recent bans
func (s *Server) bansHandler(w http.ResponseWriter, r *http.Request) {
	if s.Bans == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		rest.RenderJSON(w, rest.JSON{"error": "ban history not available"})
		return
	}
	limit := defaultBansLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			rest.RenderJSON(w, rest.JSON{"error": "invalid limit", "details": v})
			return
		}
		limit = l
	}
	bans, err := s.Bans.Read(r.Context(), limit)
	if err != nil {
		log.Printf("[WARN] can't read bans: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		rest.RenderJSON(w, rest.JSON{"error": "can't read bans", "details": err.Error()})
		return
	}
	rest.RenderJSON(w, bans)
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if s.Bans == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		rest.RenderJSON(w, rest.JSON{"error": "ban history not available"})
		return
	}
	stats, err := s.Bans.Stats(r.Context())
	if err != nil {
		log.Printf("[WARN] can't get ban stats: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		rest.RenderJSON(w, rest.JSON{"error": "can't get ban stats", "details": err.Error()})
		return
	}
	rest.RenderJSON(w, stats)
}
