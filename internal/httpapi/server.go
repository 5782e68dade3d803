package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AveryLClark/janus/internal/janus/service"
	"github.com/AveryLClark/janus/internal/janus/store"
	"github.com/AveryLClark/janus/internal/janus/types"
	"github.com/AveryLClark/janus/internal/qr"
)

type Dependencies struct {
	Logger           *log.Logger
	Addr             string
	PassService      *service.PassService
	BlacklistService *service.BlacklistService
	QREncoder        *qr.Encoder
	MetricsRegistry  *prometheus.Registry
}

type Server struct {
	httpServer       *http.Server
	logger           *log.Logger
	mux              *http.ServeMux
	passService      *service.PassService
	blacklistService *service.BlacklistService
	qrEncoder        *qr.Encoder
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:           d.Logger,
		mux:              mux,
		passService:      d.PassService,
		blacklistService: d.BlacklistService,
		qrEncoder:        d.QREncoder,
	}

	mux.HandleFunc("POST /v1/passes", s.handleIssue)
	mux.HandleFunc("GET /v1/passes", s.handleHistory)
	mux.HandleFunc("GET /v1/passes/current", s.handleCurrent)
	mux.HandleFunc("POST /v1/passes/current/verify", s.handleVerify)
	mux.HandleFunc("POST /v1/passes/current/exit", s.handleExit)
	mux.HandleFunc("GET /v1/passes/current/qr", s.handleQR)
	mux.HandleFunc("GET /v1/passes/current/share", s.handleShare)
	mux.HandleFunc("POST /v1/blacklist", s.handleBlacklistAdd)
	mux.HandleFunc("GET /v1/blacklist", s.handleBlacklistList)
	mux.HandleFunc("DELETE /v1/blacklist/{index}", s.handleBlacklistRemove)
	mux.HandleFunc("GET /v1/audit", s.handleAudit)

	if d.MetricsRegistry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(d.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIssue(w http.ResponseWriter, r *http.Request) {
	var req types.IssueRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := s.passService.Issue(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVisitorNameRequired):
			writeError(w, http.StatusBadRequest, "visitor_name_required", err.Error())
		case errors.Is(err, service.ErrPhoneRequired):
			writeError(w, http.StatusBadRequest, "phone_required", err.Error())
		case errors.Is(err, service.ErrBadArrival):
			writeError(w, http.StatusBadRequest, "bad_arrival", err.Error())
		case errors.Is(err, service.ErrBadDeparture):
			writeError(w, http.StatusBadRequest, "bad_departure", err.Error())
		case errors.Is(err, service.ErrDepartureBeforeArrival):
			writeError(w, http.StatusBadRequest, "departure_before_arrival", err.Error())
		case errors.Is(err, service.ErrDepartureInPast):
			writeError(w, http.StatusBadRequest, "departure_in_past", err.Error())
		case errors.Is(err, service.ErrVisitorBlacklisted):
			writeError(w, http.StatusForbidden, "visitor_blacklisted", err.Error())
		default:
			s.logger.Printf("issue error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	resp, err := s.passService.Current(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoCurrentPass) {
			writeError(w, http.StatusNotFound, "no_current_pass", err.Error())
			return
		}
		s.logger.Printf("current pass error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	passes, err := s.passService.History(r.Context())
	if err != nil {
		s.logger.Printf("history error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "passes": passes})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req types.VerifyRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := s.passService.VerifyEntry(r.Context(), req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCurrentPass):
			writeError(w, http.StatusNotFound, "no_current_pass", err.Error())
		case errors.Is(err, service.ErrPassTerminal):
			writeError(w, http.StatusConflict, "pass_terminal", err.Error())
		default:
			s.logger.Printf("verify error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExit(w http.ResponseWriter, r *http.Request) {
	resp, err := s.passService.MarkExit(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCurrentPass):
			writeError(w, http.StatusNotFound, "no_current_pass", err.Error())
		case errors.Is(err, service.ErrPassNotActive):
			writeError(w, http.StatusConflict, "pass_not_active", err.Error())
		case errors.Is(err, service.ErrPassTerminal):
			writeError(w, http.StatusConflict, "pass_terminal", err.Error())
		default:
			s.logger.Printf("exit error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	resp, err := s.passService.Current(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoCurrentPass) {
			writeError(w, http.StatusNotFound, "no_current_pass", err.Error())
			return
		}
		s.logger.Printf("qr error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	imageURL, err := s.qrEncoder.ImageURL(resp.Pass)
	if err != nil {
		s.logger.Printf("qr encode error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "image_url": imageURL})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	resp, err := s.passService.Current(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoCurrentPass) {
			writeError(w, http.StatusNotFound, "no_current_pass", err.Error())
			return
		}
		s.logger.Printf("share error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(service.FormatShareSummary(resp.Pass)))
}

func (s *Server) handleBlacklistAdd(w http.ResponseWriter, r *http.Request) {
	var req types.BlacklistAddRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	entry, err := s.blacklistService.Add(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlacklistNameRequired):
			writeError(w, http.StatusBadRequest, "name_required", err.Error())
		case errors.Is(err, service.ErrBlacklistReasonRequired):
			writeError(w, http.StatusBadRequest, "reason_required", err.Error())
		default:
			s.logger.Printf("blacklist add error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "entry": entry})
}

func (s *Server) handleBlacklistList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.blacklistService.List(r.Context())
	if err != nil {
		s.logger.Printf("blacklist list error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "entries": entries})
}

func (s *Server) handleBlacklistRemove(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_index", "index must be an integer")
		return
	}

	if err := s.blacklistService.RemoveAt(r.Context(), index); err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			writeError(w, http.StatusNotFound, "index_out_of_range", err.Error())
			return
		}
		s.logger.Printf("blacklist remove error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := s.passService.RecentAudit(r.Context())
	if err != nil {
		s.logger.Printf("audit error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "entries": entries})
}
