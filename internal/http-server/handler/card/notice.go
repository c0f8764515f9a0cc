package card

import (
	"net/http"

	"card-binder/internal/http-server/handler/card/dto"

	"github.com/go-chi/chi/v5"
)

func (h *CardHandler) ListNotices(w http.ResponseWriter, r *http.Request) {
	notices := h.notices.List()

	response := dto.NoticesResponse{Notices: make([]dto.NoticeResponse, len(notices))}
	for i, n := range notices {
		response.Notices[i] = dto.NewNoticeResponse(n)
	}

	h.respondJSON(w, r, http.StatusOK, response)
}

func (h *CardHandler) DismissNotice(w http.ResponseWriter, r *http.Request) {
	if err := h.notices.Dismiss(chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err, "notice_dismiss")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
