package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"linkgate/internal/links"
	"linkgate/pkg/store"
)

//go:embed join.html
var templateFS embed.FS

var joinTemplate = template.Must(template.ParseFS(templateFS, "join.html"))

// UpdateHandler is how webhook updates reach the bot. Nil when the web
// server runs without a bot attached.
type UpdateHandler interface {
	HandleUpdate(upd tgbotapi.Update)
}

type Server struct {
	token string
	store store.Store
	cache *links.Cache
	bot   UpdateHandler
	mux   *http.ServeMux
}

func NewServer(token string, st store.Store, cache *links.Cache, bot UpdateHandler) *Server {
	mux := http.NewServeMux()
	s := &Server{token: token, store: st, cache: cache, bot: bot, mux: mux}
	mux.HandleFunc("/join", s.handleJoin)
	mux.HandleFunc("/getgrouplink/", s.handleGetGroupLink)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/", s.handleWebhook)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleJoin serves the HTML page opened from the bot's Join Group button.
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, links.APIError{Code: links.ErrValidationInvalidRequest, Message: "method not allowed"})
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Error: No token provided.", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = joinTemplate.Execute(w, map[string]string{"Token": token})
}

// handleGetGroupLink is the JSON API the join page calls to resolve the
// real invite link.
func (s *Server) handleGetGroupLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, links.APIError{Code: links.ErrValidationInvalidRequest, Message: "method not allowed"})
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/getgrouplink/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, links.APIError{Code: links.ErrValidationInvalidRequest, Message: "link id is required"})
		return
	}
	groupLink, ok, err := s.cache.Resolve(r.Context(), s.store, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, links.APIError{Code: links.ErrInternal, Message: err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Link not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": groupLink})
}

// handleWebhook is the Telegram webhook intake. Updates are POSTed to
// /<token>; any other path under / is unknown.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" || strings.Contains(path, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, links.APIError{Code: links.ErrValidationInvalidRequest, Message: "method not allowed"})
		return
	}
	if path != s.token {
		writeError(w, http.StatusForbidden, links.APIError{Code: links.ErrAuthForbidden, Message: "unknown webhook token"})
		return
	}
	if s.bot == nil {
		http.NotFound(w, r)
		return
	}
	var upd tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, links.APIError{Code: links.ErrValidationInvalidRequest, Message: err.Error()})
		return
	}
	s.bot.HandleUpdate(upd)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	// touch the store so a dead database shows up here
	if _, _, err := s.store.GetLink("healthz-probe"); err != nil {
		writeError(w, http.StatusServiceUnavailable, links.APIError{Code: links.ErrInternal, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, apiErr links.APIError) {
	writeJSON(w, status, map[string]any{"ok": false, "error": apiErr})
}
