package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"outlier-scout/internal/export"
	"outlier-scout/internal/models"
	"outlier-scout/shared/storage"
)

// Analyzer runs the niche and channel analysis pipelines.
type Analyzer interface {
	AnalyzeNiche(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error)
	SpyChannel(ctx context.Context, req models.ChannelSpyRequest) (*models.ChannelSpyResponse, error)
}

// Strategist generates AI briefs and title variants. It is nil when no Gemini
// key is configured.
type Strategist interface {
	GenerateBriefs(ctx context.Context, niche string, videos []models.ScoredVideo) ([]models.VideoBrief, error)
	GenerateTitles(ctx context.Context, niche string, idea models.VideoIdea, topVideos []models.ScoredVideo) ([]models.TitleSuggestion, error)
}

// TrendFetcher pulls related news headlines for a niche.
type TrendFetcher interface {
	Fetch(ctx context.Context, query string) ([]models.WebTrend, error)
}

// Server provides the HTTP API.
type Server struct {
	analyzer   Analyzer
	strategist Strategist
	trends     TrendFetcher
	store      *storage.Store
	port       int
}

// New creates a new HTTP server. strategist and trends may be nil; the
// corresponding endpoints then report the feature as unavailable.
func New(a Analyzer, strategist Strategist, trends TrendFetcher, store *storage.Store, port int) *Server {
	if port == 0 {
		port = 8080
	}
	return &Server{
		analyzer:   a,
		strategist: strategist,
		trends:     trends,
		store:      store,
		port:       port,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("outlier-scout server listening on %s", addr)
	return http.ListenAndServe(addr, s.routes())
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/channel-spy", s.handleChannelSpy)
	mux.HandleFunc("/api/ideas/ai", s.handleAIBriefs)
	mux.HandleFunc("/api/ideas/titles", s.handleTitles)
	mux.HandleFunc("/api/trends", s.handleTrends)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/api/export/videos", s.handleExportVideos)
	mux.HandleFunc("/api/export/ideas", s.handleExportIdeas)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")

	if s.store == nil {
		fmt.Fprintln(w, "No run history (storage not configured)")
		return
	}

	runs, err := s.store.ListRuns(r.Context(), 1)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs yet")
		return
	}

	last := runs[0]
	fmt.Fprintf(w, "Last run: %s %q at %s (%d videos, %d ideas, %d quota)\n",
		last.Kind, last.Query, last.CreatedAt.Format("Jan 2 15:04"),
		last.VideoCount, last.IdeaCount, last.QuotaUsed)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Niche == "" {
		writeError(w, http.StatusBadRequest, "niche is required")
		return
	}

	resp, err := s.analyzer.AnalyzeNiche(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if s.store != nil {
		if _, err := s.store.RecordRun(r.Context(), "analyze", req.Niche, len(resp.Videos), len(resp.Ideas), resp.QuotaUsed); err != nil {
			log.Printf("Warning: failed to record run: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChannelSpy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.ChannelSpyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ChannelInput == "" {
		writeError(w, http.StatusBadRequest, "channelInput is required")
		return
	}

	resp, err := s.analyzer.SpyChannel(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if s.store != nil {
		if _, err := s.store.RecordRun(r.Context(), "spy", req.ChannelInput, len(resp.Videos), 0, resp.QuotaUsed); err != nil {
			log.Printf("Warning: failed to record run: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type briefsRequest struct {
	Niche  string               `json:"niche"`
	Videos []models.ScoredVideo `json:"videos"`
}

func (s *Server) handleAIBriefs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.strategist == nil {
		writeError(w, http.StatusServiceUnavailable, "AI strategist not configured (set GEMINI_API_KEY)")
		return
	}

	var req briefsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Niche == "" || len(req.Videos) == 0 {
		writeError(w, http.StatusBadRequest, "niche and videos are required")
		return
	}

	briefs, err := s.strategist.GenerateBriefs(r.Context(), req.Niche, req.Videos)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"briefs": briefs,
		"count":  len(briefs),
	})
}

type titlesRequest struct {
	Niche     string               `json:"niche"`
	Idea      models.VideoIdea     `json:"idea"`
	TopVideos []models.ScoredVideo `json:"topVideos"`
}

func (s *Server) handleTitles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.strategist == nil {
		writeError(w, http.StatusServiceUnavailable, "AI strategist not configured (set GEMINI_API_KEY)")
		return
	}

	var req titlesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Idea.SuggestedTitle == "" {
		writeError(w, http.StatusBadRequest, "idea is required")
		return
	}

	titles, err := s.strategist.GenerateTitles(r.Context(), req.Niche, req.Idea, req.TopVideos)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"titles": titles,
		"count":  len(titles),
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.trends == nil {
		writeError(w, http.StatusServiceUnavailable, "trend fetcher not configured")
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	trends, err := s.trends.Fetch(r.Context(), req.Query)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"trends": trends,
		"query":  req.Query,
	})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "storage not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		settings, err := s.store.AllSettings(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, settings)

	case http.MethodPost:
		var settings map[string]string
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		for key, value := range settings {
			if err := s.store.SetSetting(r.Context(), key, value); err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "storage not configured")
		return
	}

	runs, err := s.store.ListRuns(r.Context(), 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	quota, err := s.store.QuotaUsedSince(r.Context(), time.Now().Add(-24*time.Hour))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"runs":         runs,
		"count":        len(runs),
		"quotaLast24h": quota,
	})
}

func (s *Server) handleExportVideos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var videos []models.ScoredVideo
	if err := json.NewDecoder(r.Body).Decode(&videos); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	serveCSV(w, fmt.Sprintf("outlier-videos-%s.csv", time.Now().Format("2006-01-02")), func() error {
		return export.WriteVideosCSV(w, videos)
	})
}

func (s *Server) handleExportIdeas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var ideas []models.VideoIdea
	if err := json.NewDecoder(r.Body).Decode(&ideas); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	serveCSV(w, fmt.Sprintf("video-ideas-%s.csv", time.Now().Format("2006-01-02")), func() error {
		return export.WriteIdeasCSV(w, ideas)
	})
}

func serveCSV(w http.ResponseWriter, filename string, write func() error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := write(); err != nil {
		log.Printf("Error writing CSV export: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
