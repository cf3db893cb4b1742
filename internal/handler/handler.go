// Package handler exposes the HTTP surface of the converter: a minimal
// upload form, a JSON preview endpoint, and the conversion download.
package handler

import (
	"encoding/json"
	"io"
	"log"
	"mime"
	"net/http"

	"rptconv/internal/convert"
	"rptconv/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// App holds the dependencies shared by all HTTP handlers.
type App struct {
	svc         *convert.Service
	uploadMaxMB int64
	limiter     *middleware.RateLimiter
}

// NewApp creates the handler set around a conversion service.
func NewApp(svc *convert.Service, uploadMaxMB int64, limiter *middleware.RateLimiter) *App {
	if uploadMaxMB <= 0 {
		uploadMaxMB = 50
	}
	return &App{svc: svc, uploadMaxMB: uploadMaxMB, limiter: limiter}
}

// Routes registers all endpoints on mux with the shared middleware chain.
func (a *App) Routes(mux *http.ServeMux) {
	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.CORS(),
		a.limiter.Limit(),
	)
	mux.HandleFunc("/", chain(a.handleIndex))
	mux.HandleFunc("/api/preview", chain(a.handlePreview))
	mux.HandleFunc("/api/convert", chain(a.handleConvert))
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Handler] encode response: %v", err)
	}
}

// WriteError writes a JSON error body with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// readUpload pulls the "file" part out of a multipart POST, enforcing the
// configured size limit. It returns the file bytes and the client filename.
func (a *App) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	maxBytes := a.uploadMaxMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, "", false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "missing file field")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to read upload")
		return nil, "", false
	}
	return data, header.Filename, true
}

func (a *App) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	data, name, ok := a.readUpload(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, a.svc.Preview(name, data))
}

func (a *App) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	data, name, ok := a.readUpload(w, r)
	if !ok {
		return
	}
	res, err := a.svc.Convert(name, data)
	if err != nil {
		log.Printf("[Handler] convert %q: %v", name, err)
		WriteError(w, http.StatusInternalServerError, "conversion failed")
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": res.FileName,
	})
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	if _, err := res.Data.WriteTo(w); err != nil {
		log.Printf("[Handler] stream %q: %v", res.FileName, err)
	}
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}
