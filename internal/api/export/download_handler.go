package export

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/api"
)

// DownloadHandler serves generated artifacts back to the caller. Access is
// fenced to the exporter's output directory.
type DownloadHandler struct {
	logger    *slog.Logger
	outputDir string
}

func NewDownloadHandler(outputDir string, logger *slog.Logger) *DownloadHandler {
	return &DownloadHandler{logger: logger, outputDir: outputDir}
}

// Download streams a previously exported file, e.g.
// GET /api/v1/download?file=output/hotels_Paris.csv
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Download"))

	requested := r.URL.Query().Get("file")
	if requested == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing 'file' query parameter")
		return
	}

	abs, err := filepath.Abs(filepath.Clean(requested))
	if err != nil || !strings.HasPrefix(abs, h.outputDir+string(filepath.Separator)) {
		l.WarnContext(r.Context(), "download outside output dir rejected", slog.String("file", requested))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid file path")
		return
	}

	if _, err := os.Stat(abs); err != nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "File not found")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(abs))
	http.ServeFile(w, r, abs)
}
