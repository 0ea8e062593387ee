package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ptdn/hoso-portal/internal/domain/application"
	"github.com/ptdn/hoso-portal/internal/jsonfile"
	"github.com/ptdn/hoso-portal/internal/metrics"
	"github.com/stretchr/testify/require"
)

const testSecret = "Ptdn@test"

// promauto registers into the default registry, so the metrics struct is
// shared across tests in this package.
var testMetrics = metrics.New()

func newTestServer(t *testing.T) (*httptest.Server, *application.Service) {
	t.Helper()

	store := jsonfile.New(filepath.Join(t.TempDir(), "applications.json"), nil)
	apps := application.NewService(store, slog.New(slog.DiscardHandler))
	require.NoError(t, apps.Load(context.Background()))

	server := httptest.NewServer(NewServer(apps, testSecret, slog.New(slog.DiscardHandler), testMetrics))
	t.Cleanup(server.Close)
	return server, apps
}

// submitForm posts a multipart submission with one PNG attachment and
// returns the created application.
func submitForm(t *testing.T, server *httptest.Server, idNumber string) applicationView {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("fullName", "Nguyen Van A"))
	require.NoError(t, mw.WriteField("phoneNumber", "0900000000"))
	require.NoError(t, mw.WriteField("idNumber", idNumber))
	require.NoError(t, mw.WriteField("serviceType", "transfer_out"))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="files"; filename="cccd.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(server.URL+"/api/applications", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created applicationView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

func adminRequest(t *testing.T, method, url string, body io.Reader) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Secret", testSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestSubmitAndTrack(t *testing.T) {
	server, _ := newTestServer(t)

	created := submitForm(t, server, "123456789012")
	require.Regexp(t, `^HS\d{6,10}$`, created.Code)
	require.Equal(t, application.StatusPending, created.Status)
	require.Nil(t, created.CompletedAt)
	require.Len(t, created.Files, 1)
	require.Equal(t, "cccd.png", created.Files[0].Name)

	// Track by code.
	resp, err := http.Get(server.URL + "/api/applications/track?key=" + created.Code)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tracked trackResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tracked))
	require.Equal(t, created.Code, tracked.Code)
	require.Equal(t, application.StatusPending, tracked.Status)
	require.NotEmpty(t, tracked.Message)
}

func TestSubmit_MissingFieldRejected(t *testing.T) {
	server, apps := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("fullName", "Nguyen Van A"))
	require.NoError(t, mw.WriteField("serviceType", "transfer_out"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(server.URL+"/api/applications", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Empty(t, apps.Applications())
}

func TestTrack_MalformedKey(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/applications/track?key=HS123")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestTrack_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/applications/track?key=HS9999990000")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminStatusFlow(t *testing.T) {
	server, _ := newTestServer(t)
	created := submitForm(t, server, "123456789012")

	// Direct needs_more_info is rejected.
	req := adminRequest(t, http.MethodPut, server.URL+"/api/admin/applications/"+created.Code+"/status",
		strings.NewReader(`{"status":"needs_more_info"}`))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Completing stamps completedAt.
	req = adminRequest(t, http.MethodPut, server.URL+"/api/admin/applications/"+created.Code+"/status",
		strings.NewReader(`{"status":"completed"}`))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated applicationView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	require.Equal(t, application.StatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
}

func TestAdminNoteFlow(t *testing.T) {
	server, _ := newTestServer(t)
	created := submitForm(t, server, "123456789012")

	req := adminRequest(t, http.MethodPut, server.URL+"/api/admin/applications/"+created.Code+"/note",
		strings.NewReader(`{"note":"Thiếu bản sao học bạ"}`))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated applicationView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	require.Equal(t, application.StatusNeedsMoreInfo, updated.Status)
	require.Equal(t, "Thiếu bản sao học bạ", updated.AdminNote)

	// The note is what the submitter now sees when tracking.
	trackResp, err := http.Get(server.URL + "/api/applications/track?key=" + created.Code)
	require.NoError(t, err)
	defer trackResp.Body.Close()

	var tracked trackResponse
	require.NoError(t, json.NewDecoder(trackResp.Body).Decode(&tracked))
	require.Equal(t, "Thiếu bản sao học bạ", tracked.Message)
}

func TestAdminToggleReceived(t *testing.T) {
	server, _ := newTestServer(t)
	created := submitForm(t, server, "123456789012")
	url := server.URL + "/api/admin/applications/" + created.Code + "/received"

	resp, err := http.DefaultClient.Do(adminRequest(t, http.MethodPost, url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var toggled applicationView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggled))
	require.True(t, toggled.IsReceived)
	require.NotNil(t, toggled.ReceivedAt)

	resp2, err := http.DefaultClient.Do(adminRequest(t, http.MethodPost, url, nil))
	require.NoError(t, err)
	defer resp2.Body.Close()

	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&toggled))
	require.False(t, toggled.IsReceived)
	require.Nil(t, toggled.ReceivedAt)
}

func TestAdminList_FilterByIDSubstring(t *testing.T) {
	server, _ := newTestServer(t)
	submitForm(t, server, "123456789012")
	submitForm(t, server, "079203001234")

	resp, err := http.DefaultClient.Do(adminRequest(t, http.MethodGet, server.URL+"/api/admin/applications?idNumber=079203", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var listed []applicationView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed, 1)
	require.Equal(t, "079203001234", listed[0].IDNumber)
}

func TestAdminExport(t *testing.T) {
	server, _ := newTestServer(t)
	submitForm(t, server, "123456789012")

	resp, err := http.DefaultClient.Do(adminRequest(t, http.MethodGet, server.URL+"/api/admin/applications/export", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "danh_sach_ho_so_")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("\uFEFF")), "missing BOM prefix")
	require.Contains(t, string(body), "Nguyen Van A")
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestIDHeader(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
