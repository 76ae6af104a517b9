package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/storefront-cli/internal/adapters/imaging"
	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/ports/mocks"
	"github.com/kamal-hamza/storefront-cli/internal/core/services"
)

type part struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func multipartBody(t *testing.T, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, p := range parts {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.filename))
		header.Set("Content-Type", p.contentType)
		w, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = w.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func newTestServer(t *testing.T, maxBody int64) (*Server, *mocks.MockPreviewStore) {
	t.Helper()
	previews := mocks.NewMockPreviewStore()
	newForm := func() *services.UploadForm {
		return services.NewUploadForm(imaging.NewPNGDecoder(), previews)
	}
	catalog := services.NewCatalogService(mocks.NewMockCatalog(
		domain.Product{ID: "p-1", Type: "Shirt", Price: 1999},
	), 0, nil)
	login := services.NewLoginService(mocks.NewMockUserDirectory(map[string]string{"admin": "secret"}), 0, nil)
	return NewServer(newForm, catalog, login, maxBody, nil), previews
}

func validParts(t *testing.T) []part {
	return []part{
		{"desktop", "d.png", "image/png", encodePNG(t, 1280, 300)},
		{"tablet", "t.png", "image/png", encodePNG(t, 768, 300)},
		{"mobile", "m.png", "image/png", encodePNG(t, 320, 150)},
	}
}

func postUpload(t *testing.T, srv *Server, parts ...part) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	body, contentType := multipartBody(t, parts...)
	req := httptest.NewRequest(http.MethodPost, PathUpload, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestUpload_AllValid(t *testing.T) {
	srv, previews := newTestServer(t, 10<<20)

	rec, resp := postUpload(t, srv, validParts(t)...)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, domain.MessageSubmitSuccess, resp["message"])

	slots := resp["slots"].(map[string]any)
	desktop := slots["desktop"].(map[string]any)
	assert.Equal(t, "d.png", desktop["file"])
	assert.Nil(t, desktop["error"])

	assert.Equal(t, 0, previews.Live(), "previews should be released after the request")
}

func TestUpload_WrongMobileDimensions(t *testing.T) {
	srv, _ := newTestServer(t, 10<<20)
	parts := validParts(t)
	parts[2].data = encodePNG(t, 300, 150)

	rec, resp := postUpload(t, srv, parts...)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, domain.MessageSubmitInvalid, resp["message"])

	mobile := resp["slots"].(map[string]any)["mobile"].(map[string]any)
	mobileErr := mobile["error"].(map[string]any)
	assert.Equal(t, "dimensions", mobileErr["kind"])
	assert.Equal(t, "Image must be 320x150px", mobileErr["message"])
}

func TestUpload_DeclaredMediaTypeIsChecked(t *testing.T) {
	srv, _ := newTestServer(t, 10<<20)
	parts := validParts(t)
	parts[0].contentType = "image/jpeg"

	rec, resp := postUpload(t, srv, parts...)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	desktop := resp["slots"].(map[string]any)["desktop"].(map[string]any)
	assert.Equal(t, domain.MessageFormat, desktop["error"].(map[string]any)["message"])
}

func TestUpload_MissingSlot(t *testing.T) {
	srv, _ := newTestServer(t, 10<<20)

	rec, resp := postUpload(t, srv, validParts(t)[:2]...)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, resp["slots"].(map[string]any)["mobile"])
}

func TestUpload_BodyTooLarge(t *testing.T) {
	srv, _ := newTestServer(t, 64)

	rec, _ := postUpload(t, srv, validParts(t)...)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUpload_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t, 10<<20)
	req := httptest.NewRequest(http.MethodPost, PathUpload, strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProducts(t *testing.T) {
	srv, _ := newTestServer(t, 10<<20)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathProducts, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "p-1", products[0].ID)
}

func TestLogin(t *testing.T) {
	srv, _ := newTestServer(t, 10<<20)

	tests := []struct {
		name    string
		body    string
		code    int
		success bool
	}{
		{"valid credentials", `{"username":"admin","password":"secret"}`, http.StatusOK, true},
		{"wrong password", `{"username":"admin","password":"nope"}`, http.StatusOK, false},
		{"malformed json", `{`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, PathLogin, strings.NewReader(tt.body))
			srv.Handler().ServeHTTP(rec, req)

			require.Equal(t, tt.code, rec.Code)
			if tt.code != http.StatusOK {
				return
			}
			var resp domain.LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.success, resp.Success)
		})
	}
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, 10<<20)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathUpload, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
