// Package bulkupload lets editors attach many files to an edition at once by
// uploading a zip archive and then titling each extracted file.
package bulkupload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"govpub/internal/content/models"
	dErrors "govpub/pkg/domain-errors"
	"govpub/pkg/platform/sentinel"
	"govpub/pkg/requestcontext"
)

// EditionStore loads the edition being attached to.
type EditionStore interface {
	FindByID(ctx context.Context, id int64) (*models.Edition, error)
}

// AttachmentStore reads and writes edition attachments.
type AttachmentStore interface {
	ListByEdition(ctx context.Context, editionID int64) ([]*models.Attachment, error)
	SaveAll(ctx context.Context, attachments []*models.Attachment) error
}

// ErrUnmodifiable is returned for editions that can no longer be changed.
var ErrUnmodifiable = dErrors.New(dErrors.CodeInvalidState, "edition cannot be modified")

// AttachmentDataAttributes identifies the uploaded file of an attachment.
type AttachmentDataAttributes struct {
	FileCache   string `json:"file_cache"`
	ToReplaceID int64  `json:"to_replace_id,omitempty"`
}

// AttachmentAttributes are the fields an editor may set per attachment.
type AttachmentAttributes struct {
	ID                       int64                    `json:"id,omitempty"`
	Title                    string                   `json:"title"`
	Locale                   string                   `json:"locale,omitempty"`
	ISBN                     string                   `json:"isbn,omitempty"`
	UniqueReference          string                   `json:"unique_reference,omitempty"`
	CommandPaperNumber       string                   `json:"command_paper_number,omitempty"`
	UnnumberedCommandPaper   bool                     `json:"unnumbered_command_paper,omitempty"`
	OrderURL                 string                   `json:"order_url,omitempty"`
	Price                    string                   `json:"price,omitempty"`
	HocPaperNumber           string                   `json:"hoc_paper_number,omitempty"`
	UnnumberedHocPaper       bool                     `json:"unnumbered_hoc_paper,omitempty"`
	ParliamentarySession     string                   `json:"parliamentary_session,omitempty"`
	AttachmentDataAttributes AttachmentDataAttributes `json:"attachment_data_attributes"`
}

// PendingAttachment is an attachment awaiting a title.
type PendingAttachment struct {
	AttachmentAttributes
	Filename string `json:"filename"`
}

// Service implements the bulk upload steps.
type Service struct {
	editions    EditionStore
	attachments AttachmentStore
	cache       FileCache
	logger      *slog.Logger
	metrics     *Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(editions EditionStore, attachments AttachmentStore, cache FileCache, opts ...Option) (*Service, error) {
	if editions == nil {
		return nil, errors.New("edition store is required")
	}
	if attachments == nil {
		return nil, errors.New("attachment store is required")
	}
	if cache == nil {
		return nil, errors.New("file cache is required")
	}
	s := &Service{editions: editions, attachments: attachments, cache: cache, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LoadEdition finds the edition and checks the actor may attach files to it.
func (s *Service) LoadEdition(ctx context.Context, id int64) (*models.Edition, error) {
	edition, err := s.editions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "edition not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load edition")
	}
	actor := requestcontext.User(ctx)
	if !canUpdate(actor) || !edition.AccessibleTo(actor.OrganisationIDs) {
		s.logger.WarnContext(ctx, "bulk upload refused",
			"edition_id", edition.ID,
			"user_id", actor.ID,
			"access_limited", edition.AccessLimited,
		)
		return nil, dErrors.New(dErrors.CodeForbidden, "You are not allowed to do that")
	}
	if !edition.IsModifiable() {
		return nil, ErrUnmodifiable
	}
	return edition, nil
}

func canUpdate(actor requestcontext.Actor) bool {
	if actor.IsZero() {
		return false
	}
	return actor.HasPermission(models.PermissionUpdateEdition) ||
		actor.HasPermission(models.PermissionGDSEditor) ||
		actor.HasPermission(models.PermissionManagingEditor)
}

// UploadZip stores the upload, extracts it and builds one pending attachment
// per file. Files matching an existing attachment's filename replace it.
// A *ZipError is returned when the archive is refused.
func (s *Service) UploadZip(ctx context.Context, edition *models.Edition, upload io.Reader) ([]PendingAttachment, error) {
	workDir, err := os.MkdirTemp("", "bulk-upload-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	zipPath, err := saveUpload(workDir, upload)
	if err != nil {
		return nil, err
	}
	extractDir := filepath.Join(workDir, "extracted")
	if err := os.Mkdir(extractDir, 0o755); err != nil {
		return nil, fmt.Errorf("create extract dir: %w", err)
	}

	files, err := ExtractZip(zipPath, extractDir)
	if err != nil {
		var zerr *ZipError
		if errors.As(err, &zerr) {
			s.metrics.observe("rejected")
		}
		return nil, err
	}

	existing, err := s.attachments.ListByEdition(ctx, edition.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attachments")
	}
	byFilename := make(map[string]*models.Attachment, len(existing))
	for _, a := range existing {
		byFilename[a.Filename] = a
	}

	pending := make([]PendingAttachment, 0, len(files))
	for _, f := range files {
		token, err := s.cacheFile(f)
		if err != nil {
			return nil, err
		}
		p := PendingAttachment{Filename: f.Filename}
		p.AttachmentDataAttributes.FileCache = token
		if old, ok := byFilename[f.Filename]; ok {
			p.ID = old.ID
			p.Title = old.Title
			p.Locale = old.Locale
			p.AttachmentDataAttributes.ToReplaceID = old.ID
		}
		pending = append(pending, p)
	}

	s.metrics.observe("extracted")
	s.logger.InfoContext(ctx, "bulk upload extracted",
		"edition_id", edition.ID,
		"files", len(pending),
		"request_id", requestcontext.RequestID(ctx),
	)
	return pending, nil
}

func saveUpload(dir string, upload io.Reader) (string, error) {
	f, err := os.CreateTemp(dir, "upload-*.zip")
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, upload); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return f.Name(), nil
}

func (s *Service) cacheFile(f ExtractedFile) (string, error) {
	src, err := os.Open(f.Path)
	if err != nil {
		return "", fmt.Errorf("open extracted file: %w", err)
	}
	defer src.Close()
	return s.cache.Put(f.Filename, src)
}

// ValidationError carries per-attachment messages and the submitted values.
type ValidationError struct {
	Messages    []string
	Attachments []PendingAttachment
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Create saves titled attachments. Every attachment needs a title and a
// cached file; otherwise nothing is saved and a *ValidationError is returned.
func (s *Service) Create(ctx context.Context, edition *models.Edition, attrs []AttachmentAttributes) ([]*models.Attachment, error) {
	existing, err := s.attachments.ListByEdition(ctx, edition.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attachments")
	}
	owned := make(map[int64]bool, len(existing))
	for _, a := range existing {
		owned[a.ID] = true
	}

	var (
		msgs      []string
		submitted = make([]PendingAttachment, 0, len(attrs))
		out       = make([]*models.Attachment, 0, len(attrs))
	)
	if len(attrs) == 0 {
		msgs = append(msgs, "No attachments were submitted")
	}
	for i, a := range attrs {
		n := i + 1
		filename, cacheErr := s.cache.Filename(a.AttachmentDataAttributes.FileCache)
		submitted = append(submitted, PendingAttachment{AttachmentAttributes: a, Filename: filename})

		if strings.TrimSpace(a.Title) == "" {
			msgs = append(msgs, fmt.Sprintf("Attachment %d: title can't be blank", n))
		}
		if cacheErr != nil {
			msgs = append(msgs, fmt.Sprintf("Attachment %d: file is missing, upload the zip again", n))
		}
		if a.ID != 0 && !owned[a.ID] {
			msgs = append(msgs, fmt.Sprintf("Attachment %d: does not belong to this edition", n))
		}
		out = append(out, &models.Attachment{
			ID:                     a.ID,
			EditionID:              edition.ID,
			Title:                  strings.TrimSpace(a.Title),
			Locale:                 a.Locale,
			Filename:               filename,
			FileCache:              a.AttachmentDataAttributes.FileCache,
			ISBN:                   a.ISBN,
			UniqueReference:        a.UniqueReference,
			CommandPaperNumber:     a.CommandPaperNumber,
			UnnumberedCommandPaper: a.UnnumberedCommandPaper,
			OrderURL:               a.OrderURL,
			Price:                  a.Price,
			HocPaperNumber:         a.HocPaperNumber,
			UnnumberedHocPaper:     a.UnnumberedHocPaper,
			ParliamentarySession:   a.ParliamentarySession,
			ToReplaceID:            a.AttachmentDataAttributes.ToReplaceID,
		})
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs, Attachments: submitted}
	}

	if err := s.attachments.SaveAll(ctx, out); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save attachments")
	}
	s.metrics.observe("saved")
	s.logger.InfoContext(ctx, "bulk upload saved",
		"edition_id", edition.ID,
		"attachments", len(out),
		"user_id", requestcontext.User(ctx).ID,
	)
	return out, nil
}
