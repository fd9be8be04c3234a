// Package models holds the content entities shared by the admin workflows,
// the public pages and the publishing pipeline.
package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EditionState is a position in the publication lifecycle.
type EditionState string

const (
	StateDraft      EditionState = "draft"
	StateSubmitted  EditionState = "submitted"
	StateRejected   EditionState = "rejected"
	StateScheduled  EditionState = "scheduled"
	StatePublished  EditionState = "published"
	StateSuperseded EditionState = "superseded"
	StateWithdrawn  EditionState = "withdrawn"
)

// EditionType names the document format of an edition.
type EditionType string

const (
	TypeCaseStudy     EditionType = "CaseStudy"
	TypeSpeech        EditionType = "Speech"
	TypeNewsArticle   EditionType = "NewsArticle"
	TypePublication   EditionType = "Publication"
	TypeConsultation  EditionType = "Consultation"
	TypeDetailedGuide EditionType = "DetailedGuide"
)

// FormatName is the lower-case human name used in notifications and paths.
func (t EditionType) FormatName() string {
	switch t {
	case TypeCaseStudy:
		return "case study"
	case TypeNewsArticle:
		return "news article"
	case TypeDetailedGuide:
		return "detailed guide"
	default:
		return strings.ToLower(string(t))
	}
}

// pathSegment is the public URL collection for the type.
func (t EditionType) pathSegment() string {
	switch t {
	case TypeCaseStudy:
		return "case-studies"
	case TypeNewsArticle:
		return "news"
	case TypeDetailedGuide:
		return "guidance"
	default:
		return strings.ToLower(string(t)) + "s"
	}
}

// Edition is one version of a document.
type Edition struct {
	ID                int64
	DocumentID        int64
	ContentID         uuid.UUID
	Type              EditionType
	Title             string
	Summary           string
	Body              string
	Slug              string
	State             EditionState
	Locale            string
	OrganisationIDs   []int64
	TopicIDs          []int64
	PolicyIDs         []int64
	HasDocumentSource bool
	ForcePublished    bool
	// AccessLimited editions are visible only to editors of their organisations.
	AccessLimited bool
	PublishedAt   *time.Time
	AuthorID      int64
	RejectedByID  int64
	UpdatedAt     time.Time
}

// AccessibleTo reports whether an editor of organisationIDs may see the
// edition.
func (e *Edition) AccessibleTo(organisationIDs []int64) bool {
	if !e.AccessLimited {
		return true
	}
	for _, id := range organisationIDs {
		if slices.Contains(e.OrganisationIDs, id) {
			return true
		}
	}
	return false
}

// CanForcePublish reports whether the state allows skipping second-eyes review.
func (e *Edition) CanForcePublish() bool {
	return e.State == StateDraft || e.State == StateSubmitted
}

// IsModifiable is false once an edition has left the editorial states.
func (e *Edition) IsModifiable() bool {
	switch e.State {
	case StatePublished, StateSuperseded, StateWithdrawn:
		return false
	default:
		return true
	}
}

// IsPublished reports whether the edition is the live public version.
func (e *Edition) IsPublished() bool {
	return e.State == StatePublished
}

// PublicPath is the document's path on the public site.
func (e *Edition) PublicPath() string {
	return "/government/" + e.Type.pathSegment() + "/" + e.Slug
}

// AdminPath is the edition's path in the admin app.
func (e *Edition) AdminPath() string {
	return "/government/admin/" + e.Type.pathSegment() + "/" + itoa(e.ID)
}

// VersionEntry is one audit-trail record on an edition.
type VersionEntry struct {
	EditionID int64
	UserID    int64
	Event     string
	State     EditionState
	Remark    string
	UserAgent string
	CreatedAt time.Time
}
