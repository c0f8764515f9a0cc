package card

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"card-binder/internal/domain"
	"card-binder/internal/http-server/handler/card/dto"
	"card-binder/internal/worker"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const maxMemory = 32 << 20

type Limits struct {
	MaxUploadSize int64
	MaxFiles      int
}

type CardHandler struct {
	workspace workspaceUsecase
	notices   noticeBoard
	limits    Limits
	validate  *validator.Validate
	logger    *zlog.Zerolog
}

func NewCardHandler(workspace workspaceUsecase, notices noticeBoard, limits Limits, logger *zlog.Zerolog) *CardHandler {
	if limits.MaxUploadSize <= 0 {
		limits.MaxUploadSize = domain.DefaultMaxUploadSize
	}
	if limits.MaxFiles <= 0 {
		limits.MaxFiles = 1
	}
	return &CardHandler{
		workspace: workspace,
		notices:   notices,
		limits:    limits,
		validate:  validator.New(),
		logger:    logger,
	}
}

// decodeJSON reads and validates a JSON body. An empty body leaves v as is.
func (h *CardHandler) decodeJSON(r *http.Request, v interface{}) error {
	if err := render.DecodeJSON(r.Body, v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid json body: %w", err)
	}
	return h.validate.Struct(v)
}

func fileSource(fh *multipart.FileHeader) worker.Source {
	return worker.Source{
		Name: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

func (h *CardHandler) handleError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	switch {
	case errors.Is(err, domain.ErrUnreadableFile):
		h.respondError(w, r, http.StatusBadRequest, "File could not be read", err)
	case errors.Is(err, domain.ErrUndecodableImage):
		h.respondError(w, r, http.StatusUnsupportedMediaType, "File is not a supported image", err)
	case errors.Is(err, domain.ErrInvalidDimensions):
		h.respondError(w, r, http.StatusUnprocessableEntity, "Image has invalid dimensions", err)
	case errors.Is(err, domain.ErrInvalidReorder):
		h.respondError(w, r, http.StatusConflict, "Order must list every binder entry exactly once", err)
	case errors.Is(err, domain.ErrEntryNotFound):
		h.respondError(w, r, http.StatusNotFound, "Binder entry not found", nil)
	case errors.Is(err, domain.ErrNoticeNotFound):
		h.respondError(w, r, http.StatusNotFound, "Notice not found", nil)
	default:
		h.logger.Error().Err(err).Str("operation", operation).Msg("Request failed")
		h.respondError(w, r, http.StatusInternalServerError, "Internal error", err)
	}
}

func (h *CardHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func (h *CardHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}

	if err != nil {
		response.Details = err.Error()
	}

	h.respondJSON(w, r, status, response)
}

func (h *CardHandler) respondImage(w http.ResponseWriter, disposition, filename, mimeType string, data []byte) {
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		h.logger.Error().Err(err).Str("filename", filename).Msg("Failed to write image")
	}
}
