package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ptdn/hoso-portal/internal/domain/application"
	"github.com/ptdn/hoso-portal/internal/export"
	"github.com/ptdn/hoso-portal/internal/metrics"
)

// maxSubmissionMemory bounds the in-memory part of multipart parsing.
const maxSubmissionMemory = 32 << 20

// Server wires HTTP handlers to the application service.
type Server struct {
	apps    *application.Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewServer creates the portal router with middleware.
func NewServer(apps *application.Service, adminSecret string, logger *slog.Logger, m *metrics.Metrics) *chi.Mux {
	srv := &Server{apps: apps, logger: logger, metrics: m}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))

	r.Post("/api/applications", srv.handleSubmit)
	r.Get("/api/applications/track", srv.handleTrack)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(AdminAuthMiddleware(adminSecret, m))
		r.Get("/applications", srv.handleList)
		r.Get("/applications/export", srv.handleExport)
		r.Put("/applications/{code}/status", srv.handleUpdateStatus)
		r.Put("/applications/{code}/note", srv.handleAttachNote)
		r.Post("/applications/{code}/received", srv.handleToggleReceived)
	})

	r.Get("/health", srv.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleSubmit handles POST /api/applications: a multipart form carrying
// the four scalar fields plus zero or more image files under "files".
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSubmissionMemory); err != nil {
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	req := application.SubmitRequest{
		FullName:    r.FormValue("fullName"),
		PhoneNumber: r.FormValue("phoneNumber"),
		IDNumber:    r.FormValue("idNumber"),
		ServiceType: application.ServiceType(r.FormValue("serviceType")),
	}

	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable attachment: " + header.Filename})
			return
		}
		defer file.Close()
		req.Uploads = append(req.Uploads, application.FileUpload{
			Name:     header.Filename,
			Size:     header.Size,
			MimeType: header.Header.Get("Content-Type"),
			Content:  file,
		})
	}

	app, err := s.apps.Submit(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	s.metrics.IncrementSubmissions()
	WriteJSON(w, http.StatusCreated, toView(app))
}

// trackResponse is what the submitter sees when checking progress.
type trackResponse struct {
	Code      string             `json:"code"`
	Status    application.Status `json:"status"`
	Message   string             `json:"message"`
	AdminNote string             `json:"adminNote,omitempty"`
}

// handleTrack handles GET /api/applications/track?key=… where key is a
// tracking code or national ID.
func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	app, err := s.apps.Find(key)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, trackResponse{
		Code:      app.Code,
		Status:    app.Status,
		Message:   application.StatusMessage(app),
		AdminNote: app.AdminNote,
	})
}

// handleList handles GET /api/admin/applications with an optional idNumber
// substring filter.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	apps := s.apps.Filter(r.URL.Query().Get("idNumber"))
	WriteJSON(w, http.StatusOK, toViews(apps))
}

type statusRequest struct {
	Status application.Status `json:"status"`
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	app, err := s.apps.UpdateStatus(r.Context(), chi.URLParam(r, "code"), req.Status)
	if err != nil {
		WriteError(w, err)
		return
	}

	s.metrics.IncrementStatusTransitions(string(req.Status))
	WriteJSON(w, http.StatusOK, toView(app))
}

type noteRequest struct {
	Note string `json:"note"`
}

func (s *Server) handleAttachNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	app, err := s.apps.AttachNote(r.Context(), chi.URLParam(r, "code"), req.Note)
	if err != nil {
		WriteError(w, err)
		return
	}

	s.metrics.IncrementStatusTransitions(string(application.StatusNeedsMoreInfo))
	WriteJSON(w, http.StatusOK, toView(app))
}

func (s *Server) handleToggleReceived(w http.ResponseWriter, r *http.Request) {
	app, err := s.apps.ToggleReceived(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toView(app))
}

// handleExport handles GET /api/admin/applications/export, streaming the
// BOM-prefixed CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data := export.CSV(s.apps.Applications())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)

	s.metrics.IncrementExports()
}
