package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/services"
)

// Route paths
const (
	PathUpload   = "/api/upload"
	PathProducts = "/api/products"
	PathLogin    = "/api/login"
)

// multipartMemory is how much of a multipart body is kept in memory
const multipartMemory = 1 << 20

// FormFactory creates a fresh upload form for one request
type FormFactory func() *services.UploadForm

// Server exposes the upload form and the mock storefront API over HTTP
type Server struct {
	newForm FormFactory
	catalog *services.CatalogService
	login   *services.LoginService
	maxBody int64
	logger  *zap.Logger
}

// NewServer wires the handlers. maxBody bounds an upload request body.
func NewServer(newForm FormFactory, catalog *services.CatalogService, login *services.LoginService, maxBody int64, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		newForm: newForm,
		catalog: catalog,
		login:   login,
		maxBody: maxBody,
		logger:  logger,
	}
}

// Handler returns the routed handler with request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+PathUpload, s.handleUpload)
	mux.HandleFunc("GET "+PathProducts, s.handleProducts)
	mux.HandleFunc("POST "+PathLogin, s.handleLogin)
	return s.logRequests(mux)
}

type slotResult struct {
	File       string                  `json:"file"`
	MediaType  string                  `json:"mediaType"`
	Size       int64                   `json:"size"`
	Dimensions *domain.Dimensions      `json:"dimensions,omitempty"`
	Error      *domain.ValidationError `json:"error,omitempty"`
}

type uploadResponse struct {
	domain.SubmitStatus
	Slots map[domain.Slot]*slotResult `json:"slots"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonErr(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		jsonErr(w, http.StatusBadRequest, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := make(map[domain.Slot]*domain.File)
	for _, slot := range domain.Slots() {
		file, err := readPart(r, slot)
		if err != nil {
			jsonErr(w, http.StatusBadRequest, err)
			return
		}
		if file != nil {
			files[slot] = file
		}
	}

	form := s.newForm()
	defer form.Discard()

	if _, err := form.SelectAll(r.Context(), files); err != nil {
		s.logger.Warn("upload selection aborted", zap.Error(err))
		jsonErr(w, http.StatusServiceUnavailable, err)
		return
	}

	resp := uploadResponse{
		SubmitStatus: form.Submit(),
		Slots:        make(map[domain.Slot]*slotResult, len(domain.Slots())),
	}
	for _, slot := range domain.Slots() {
		entry := form.Entry(slot)
		if entry == nil {
			resp.Slots[slot] = nil
			continue
		}
		resp.Slots[slot] = &slotResult{
			File:       entry.File.Name,
			MediaType:  entry.File.MediaType,
			Size:       entry.File.Size(),
			Dimensions: entry.Dimensions,
			Error:      entry.Error,
		}
	}

	code := http.StatusOK
	if !resp.Succeeded() {
		code = http.StatusUnprocessableEntity
	}
	jsonResp(w, code, resp)
}

// readPart returns the file sent for slot, or nil when the field is absent
func readPart(r *http.Request, slot domain.Slot) (*domain.File, error) {
	part, header, err := r.FormFile(string(slot))
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, err
	}

	return &domain.File{
		Name:      header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Data:      data,
	}, nil
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.FetchProducts(r.Context())
	if err != nil {
		jsonErr(w, http.StatusServiceUnavailable, err)
		return
	}
	jsonResp(w, http.StatusOK, products)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.LoginCredentials
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&creds); err != nil {
		jsonErr(w, http.StatusBadRequest, err)
		return
	}

	resp, err := s.login.Login(r.Context(), creds)
	if err != nil {
		jsonErr(w, http.StatusServiceUnavailable, err)
		return
	}
	jsonResp(w, http.StatusOK, resp)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func jsonResp(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func jsonErr(w http.ResponseWriter, code int, err error) {
	jsonResp(w, code, map[string]string{"error": err.Error()})
}
