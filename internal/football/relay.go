package football

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultUpstreamBase = "https://api.football-data.org/v4"

// Relay proxies football-data.org so the API credential never reaches the
// dashboard client. The free tier also restricts CORS to localhost, which
// the relay sidesteps.
type Relay struct {
	apiKey       string
	teamID       int
	upstreamBase string
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewRelay creates a Relay for the given credential and followed team.
func NewRelay(apiKey string, teamID int, logger *slog.Logger) *Relay {
	return &Relay{
		apiKey:       apiKey,
		teamID:       teamID,
		upstreamBase: defaultUpstreamBase,
		httpClient:   &http.Client{},
		logger:       logger,
	}
}

// Router builds the relay's HTTP routes.
func (rl *Relay) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/football", rl.handleFootball)
	return r
}

// ListenAndServe runs the relay on addr until the server fails.
func (rl *Relay) ListenAndServe(addr string) error {
	rl.logger.Info("football relay listening", "addr", addr)
	return http.ListenAndServe(addr, rl.Router())
}

func (rl *Relay) upstreamURL(kind string) string {
	switch kind {
	case "standings":
		return rl.upstreamBase + "/competitions/PL/standings"
	case "fixtures":
		return fmt.Sprintf("%s/teams/%d/matches?status=SCHEDULED&limit=%d", rl.upstreamBase, rl.teamID, fixtureLimit)
	default:
		return ""
	}
}

func (rl *Relay) handleFootball(w http.ResponseWriter, r *http.Request) {
	if rl.apiKey == "" {
		http.Error(w, `{"error":"no football API credential configured"}`, http.StatusServiceUnavailable)
		return
	}

	url := rl.upstreamURL(r.URL.Query().Get("type"))
	if url == "" {
		http.Error(w, `{"error":"invalid type, use standings or fixtures"}`, http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), "GET", url, nil)
	if err != nil {
		http.Error(w, `{"error":"bad upstream request"}`, http.StatusInternalServerError)
		return
	}
	req.Header.Set("X-Auth-Token", rl.apiKey)

	resp, err := rl.httpClient.Do(req)
	if err != nil {
		rl.logger.Error("upstream request failed", "error", err)
		http.Error(w, `{"error":"upstream request failed"}`, http.StatusBadGateway)
		return
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			rl.logger.Error("failed to close response body", "error", err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		rl.logger.Error("failed to copy upstream body", "error", err)
	}
}
