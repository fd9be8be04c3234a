package bulkupload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"govpub/internal/content/models"
	dErrors "govpub/pkg/domain-errors"
	"govpub/pkg/platform/httputil"
	"govpub/pkg/requestcontext"
)

const (
	templateNew          = "new"
	templateSetTitles    = "set_titles"
	templateUnmodifiable = "unmodifiable"

	zipField       = "bulk_upload_zip_file[zip_file]"
	maxUploadBytes = 200 << 20
)

// Uploader is the service surface the handler drives.
type Uploader interface {
	LoadEdition(ctx context.Context, id int64) (*models.Edition, error)
	UploadZip(ctx context.Context, edition *models.Edition, upload io.Reader) ([]PendingAttachment, error)
	Create(ctx context.Context, edition *models.Edition, attrs []AttachmentAttributes) ([]*models.Attachment, error)
}

// Handler serves the bulk upload admin pages.
type Handler struct {
	service Uploader
	logger  *slog.Logger
}

func NewHandler(service Uploader, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the bulk upload routes. Callers apply auth.
func (h *Handler) Register(r chi.Router) {
	r.Route("/admin/editions/{editionID}/bulk-uploads", func(r chi.Router) {
		r.Get("/new", h.handleNew)
		r.Post("/upload-zip", h.handleUploadZip)
		r.Post("/", h.handleCreate)
	})
}

// formState is the re-renderable state of a bulk upload page.
type formState struct {
	Template    string              `json:"template"`
	EditionID   int64               `json:"edition_id"`
	Attachments []PendingAttachment `json:"attachments,omitempty"`
	Errors      []string            `json:"errors,omitempty"`
}

type createRequest struct {
	BulkUpload struct {
		AttachmentsAttributes []AttachmentAttributes `json:"attachments_attributes"`
	} `json:"bulk_upload"`
}

func (h *Handler) edition(w http.ResponseWriter, r *http.Request) (*models.Edition, bool) {
	ctx := r.Context()
	id, err := strconv.ParseInt(chi.URLParam(r, "editionID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "edition not found"))
		return nil, false
	}
	edition, err := h.service.LoadEdition(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUnmodifiable) {
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, formState{
				Template:  templateUnmodifiable,
				EditionID: id,
				Errors:    []string{err.Error()},
			})
			return nil, false
		}
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "failed to load edition for bulk upload",
				"request_id", requestcontext.RequestID(ctx),
				"edition_id", id,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return nil, false
	}
	return edition, true
}

func (h *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	edition, ok := h.edition(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, formState{Template: templateNew, EditionID: edition.ID})
}

func (h *Handler) handleUploadZip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	edition, ok := h.edition(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile(zipField)
	if err != nil {
		h.renderNew(w, edition, "zip file must be provided")
		return
	}
	defer file.Close()

	pending, err := h.service.UploadZip(ctx, edition, file)
	if err != nil {
		var zerr *ZipError
		if errors.As(err, &zerr) {
			h.renderNew(w, edition, zerr.Error())
			return
		}
		h.logger.ErrorContext(ctx, "failed to extract bulk upload",
			"request_id", requestcontext.RequestID(ctx),
			"edition_id", edition.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, formState{
		Template:    templateSetTitles,
		EditionID:   edition.ID,
		Attachments: pending,
	})
}

func (h *Handler) renderNew(w http.ResponseWriter, edition *models.Edition, msg string) {
	httputil.WriteJSON(w, http.StatusUnprocessableEntity, formState{
		Template:  templateNew,
		EditionID: edition.ID,
		Errors:    []string{msg},
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	edition, ok := h.edition(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode bulk upload",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	_, err := h.service.Create(ctx, edition, req.BulkUpload.AttachmentsAttributes)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, formState{
				Template:    templateSetTitles,
				EditionID:   edition.ID,
				Attachments: verr.Attachments,
				Errors:      verr.Messages,
			})
			return
		}
		h.logger.ErrorContext(ctx, "failed to save bulk upload",
			"request_id", requestcontext.RequestID(ctx),
			"edition_id", edition.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/admin/editions/%d/attachments", edition.ID), http.StatusSeeOther)
}
