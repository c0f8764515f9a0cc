package card

import (
	"net/http"

	"card-binder/internal/domain"
	"card-binder/internal/http-server/handler/card/dto"
	"card-binder/internal/usecase/workspace"
	"card-binder/internal/worker"

	"github.com/go-chi/chi/v5"
)

func (h *CardHandler) ListBinder(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, dto.BinderResponse{
		Entries: dto.NewEntryResponses(h.workspace.Entries()),
	})
}

// UploadToBinder inserts every file of the multipart "files" field. Files
// that fail are listed in the response and do not stop the others.
func (h *CardHandler) UploadToBinder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxUploadSize*int64(h.limits.MaxFiles)+maxMemory)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
		h.respondError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		h.respondError(w, r, http.StatusBadRequest, "At least one file is required", nil)
		return
	}
	if len(files) > h.limits.MaxFiles {
		h.respondError(w, r, http.StatusBadRequest, "Too many files", nil)
		return
	}

	sources := make([]worker.Source, len(files))
	for i, fh := range files {
		sources[i] = fileSource(fh)
	}

	report := h.workspace.UploadToBinder(r.Context(), sources)

	response := dto.UploadResponse{
		Entries:  make([]dto.EntryResponse, 0, len(report.Entries)),
		Failures: make([]dto.UploadFailure, 0, len(report.Failures)),
	}

	positions := make(map[domain.EntryID]int)
	for i, e := range h.workspace.Entries() {
		positions[e.ID] = i
	}
	for _, e := range report.Entries {
		response.Entries = append(response.Entries, dto.NewEntryResponse(e, positions[e.ID]))
	}
	for _, f := range report.Failures {
		response.Failures = append(response.Failures, dto.UploadFailure{
			Name:    f.Name,
			Error:   string(domain.KindOf(f.Err)),
			Message: f.Err.Error(),
		})
	}

	status := http.StatusCreated
	if len(report.Entries) == 0 {
		status = http.StatusUnprocessableEntity
	}

	h.logger.Info().
		Int("inserted", len(report.Entries)).
		Int("failed", len(report.Failures)).
		Msg("Binder upload handled")

	h.respondJSON(w, r, status, response)
}

func (h *CardHandler) ReorderBinder(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	ids := make([]domain.EntryID, len(req.IDs))
	for i, id := range req.IDs {
		ids[i] = domain.EntryID(id)
	}

	entries, err := h.workspace.Reorder(ids)
	if err != nil {
		h.handleError(w, r, err, workspace.OpReorder)
		return
	}

	h.respondJSON(w, r, http.StatusOK, dto.BinderResponse{Entries: dto.NewEntryResponses(entries)})
}

// OpenEntry serves the stored payload for the full-size viewer window.
func (h *CardHandler) OpenEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data, mimeType, err := h.workspace.Open(domain.EntryID(id))
	if err != nil {
		h.handleError(w, r, err, "binder_open")
		return
	}

	w.Header().Set("X-Window-Features", domain.ViewerFeatures)
	h.respondImage(w, "inline", id+extension(mimeType), mimeType, data)
}

func (h *CardHandler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.workspace.Remove(domain.EntryID(id)); err != nil {
		h.handleError(w, r, err, workspace.OpRemove)
		return
	}

	h.logger.Info().Str("entry_id", id).Msg("Binder entry deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *CardHandler) ExportCollage(w http.ResponseWriter, r *http.Request) {
	export, err := h.workspace.ExportCollage(r.Context())
	if err != nil {
		h.handleError(w, r, err, workspace.OpCollageExport)
		return
	}

	h.respondImage(w, "attachment", export.Filename, export.Raster.MimeType(), export.Raster.Data())
}

func extension(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	default:
		return ""
	}
}
