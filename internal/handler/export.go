package handler

import (
	"context"
	"net/http"

	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/pkg/response"
)

// ExportHandler streams the reporting views as spreadsheet downloads.
type ExportHandler struct {
	exports ExportService
}

func NewExportHandler(exports ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

func (h *ExportHandler) Pending(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.exports.Pending)
}

func (h *ExportHandler) Paid(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.exports.Paid)
}

func (h *ExportHandler) General(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.exports.General)
}

func (h *ExportHandler) serve(w http.ResponseWriter, r *http.Request, render func(context.Context) (*domain.Document, error)) {
	doc, err := render(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Attachment(w, doc.FileName, doc.ContentType, doc.Data)
}
