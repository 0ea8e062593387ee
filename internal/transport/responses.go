package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ptdn/hoso-portal/internal/domain/application"
)

// attachmentView is an attachment descriptor without its payload; the
// encoded data stays in storage and never travels back over the API.
type attachmentView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// applicationView is the API shape of an application.
type applicationView struct {
	OrderNumber int                     `json:"orderNumber"`
	Code        string                  `json:"code"`
	FullName    string                  `json:"fullName"`
	PhoneNumber string                  `json:"phoneNumber"`
	IDNumber    string                  `json:"idNumber"`
	ServiceType application.ServiceType `json:"serviceType"`
	Files       []attachmentView        `json:"files"`
	Status      application.Status      `json:"status"`
	AdminNote   string                  `json:"adminNote,omitempty"`
	IsReceived  bool                    `json:"isReceived"`
	SubmittedAt time.Time               `json:"submittedAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
	CompletedAt *time.Time              `json:"completedAt"`
	ReceivedAt  *time.Time              `json:"receivedAt"`
}

func toView(app *application.Application) applicationView {
	files := make([]attachmentView, len(app.Files))
	for i, f := range app.Files {
		files[i] = attachmentView{ID: f.ID, Name: f.Name, Size: f.Size, MimeType: f.MimeType}
	}
	return applicationView{
		OrderNumber: app.OrderNumber,
		Code:        app.Code,
		FullName:    app.FullName,
		PhoneNumber: app.PhoneNumber,
		IDNumber:    app.IDNumber,
		ServiceType: app.ServiceType,
		Files:       files,
		Status:      app.Status,
		AdminNote:   app.AdminNote,
		IsReceived:  app.IsReceived,
		SubmittedAt: app.SubmittedAt,
		UpdatedAt:   app.UpdatedAt,
		CompletedAt: app.CompletedAt,
		ReceivedAt:  app.ReceivedAt,
	}
}

func toViews(apps []application.Application) []applicationView {
	views := make([]applicationView, len(apps))
	for i := range apps {
		views[i] = toView(&apps[i])
	}
	return views
}

type errorResponse struct {
	Error string `json:"error"`
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error to its HTTP status.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, statusForError(err), errorResponse{Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrBadCodeFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrMissingField),
		errors.Is(err, application.ErrEmptyNote),
		errors.Is(err, application.ErrNoteRequired),
		errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrAttachmentTooLarge),
		errors.Is(err, application.ErrAttachmentType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
