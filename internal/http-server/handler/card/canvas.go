package card

import (
	"mime"
	"net/http"

	"card-binder/internal/domain"
	"card-binder/internal/http-server/handler/card/dto"
	"card-binder/internal/usecase/canvas"
	"card-binder/internal/usecase/workspace"
)

func (h *CardHandler) GetCanvas(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, dto.NewCanvasResponse(h.workspace.Canvas()))
}

// UploadCanvasImage accepts either a multipart "file" or a pasted data URL.
func (h *CardHandler) UploadCanvasImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxUploadSize+maxMemory)

	var (
		snap canvas.Snapshot
		err  error
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req dto.PasteRequest
		if err := h.decodeJSON(r, &req); err != nil {
			h.logger.Warn().Err(err).Msg("Invalid paste request")
			h.respondError(w, r, http.StatusBadRequest, "A data_url is required", err)
			return
		}
		snap, err = h.workspace.PasteToCanvas(ctx, req.DataURL)
	} else {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
			h.respondError(w, r, http.StatusBadRequest, "Invalid request format", err)
			return
		}
		file, fh, ferr := r.FormFile("file")
		if ferr != nil {
			h.logger.Warn().Err(ferr).Msg("File not found in request")
			h.respondError(w, r, http.StatusBadRequest, "File is required", nil)
			return
		}
		file.Close()
		snap, err = h.workspace.UploadToCanvas(ctx, fileSource(fh))
	}
	if err != nil {
		h.handleError(w, r, err, workspace.OpCanvasUpload)
		return
	}

	h.respondJSON(w, r, http.StatusOK, dto.NewCanvasResponse(snap))
}

func (h *CardHandler) SetTransform(w http.ResponseWriter, r *http.Request) {
	var req dto.TransformRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "scale_x and scale_y are required", err)
		return
	}

	snap, err := h.workspace.SetTransform(domain.Transform{
		Left:   req.Left,
		Top:    req.Top,
		Angle:  req.Angle,
		ScaleX: *req.ScaleX,
		ScaleY: *req.ScaleY,
	})
	if err != nil {
		h.handleError(w, r, err, workspace.OpTransform)
		return
	}

	h.respondJSON(w, r, http.StatusOK, dto.NewCanvasResponse(snap))
}

func (h *CardHandler) Zoom(w http.ResponseWriter, r *http.Request) {
	var req dto.ZoomRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Exactly one of delta_y and zoom is required", err)
		return
	}

	at := domain.Point{X: req.X, Y: req.Y}
	if req.DeltaY != nil {
		h.respondJSON(w, r, http.StatusOK, dto.NewCanvasResponse(h.workspace.Wheel(*req.DeltaY, at)))
		return
	}
	h.respondJSON(w, r, http.StatusOK, dto.NewCanvasResponse(h.workspace.Zoom(*req.Zoom, at)))
}

func (h *CardHandler) RenderCanvas(w http.ResponseWriter, r *http.Request) {
	raster, err := h.workspace.RenderCanvas()
	if err != nil {
		h.handleError(w, r, err, workspace.OpRender)
		return
	}
	h.respondImage(w, "inline", "canvas.png", raster.MimeType(), raster.Data())
}

// DownloadCard returns the rounded card as an attachment. The card is also
// added to the binder and handed to the configured download sink.
func (h *CardHandler) DownloadCard(w http.ResponseWriter, r *http.Request) {
	var req dto.DownloadRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid name or tags", err)
		return
	}

	export, err := h.workspace.DownloadCard(r.Context(), req.Name, req.Tags)
	if err != nil {
		h.handleError(w, r, err, workspace.OpDownload)
		return
	}

	w.Header().Set("X-Binder-Entry-Id", string(export.EntryID))
	h.respondImage(w, "attachment", export.Filename, export.Raster.MimeType(), export.Raster.Data())
}
