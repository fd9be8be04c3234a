// Package store persists content entities. Each aggregate has an in-memory
// implementation for tests and local runs and a PostgreSQL implementation.
//
// Stores return sentinel.ErrNotFound for missing records; services decide
// what that means for the caller.
package store

import (
	"context"

	"govpub/internal/content/models"
)

// EditionStore persists editions and their audit trail.
type EditionStore interface {
	FindByID(ctx context.Context, id int64) (*models.Edition, error)
	FindPublishedBySlug(ctx context.Context, typ models.EditionType, slug string) (*models.Edition, error)
	Save(ctx context.Context, edition *models.Edition) error
	// ListForcePublishCandidates returns latest draft editions of the
	// organisation that have a document source, in id order.
	ListForcePublishCandidates(ctx context.Context, organisationID int64, excludedTypes []models.EditionType) ([]*models.Edition, error)
	// EachLatestByType visits the latest edition of every document of typ in
	// id order, loading batchSize editions per query.
	EachLatestByType(ctx context.Context, typ models.EditionType, batchSize int, fn func(*models.Edition) error) error
	CountLatestByType(ctx context.Context, typ models.EditionType) (int, error)
	// ListPublishedByOrganisation returns published editions of the
	// organisation, most recently published first. An empty typ matches every
	// type; limit <= 0 returns them all.
	ListPublishedByOrganisation(ctx context.Context, organisationID int64, typ models.EditionType, limit int) ([]*models.Edition, error)
	RecordVersion(ctx context.Context, entry models.VersionEntry) error
	Versions(ctx context.Context, editionID int64) ([]models.VersionEntry, error)
	// RunInTx runs fn so that every write it makes through this store is
	// committed together or not at all.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// OrganisationStore persists organisations.
type OrganisationStore interface {
	FindByID(ctx context.Context, id int64) (*models.Organisation, error)
	FindByAcronym(ctx context.Context, acronym string) (*models.Organisation, error)
	FindBySlug(ctx context.Context, slug string) (*models.Organisation, error)
	ListMinisterial(ctx context.Context) ([]*models.Organisation, error)
	// List returns every organisation in id order.
	List(ctx context.Context) ([]*models.Organisation, error)
	Save(ctx context.Context, org *models.Organisation) error
	// FeaturedEditions returns the organisation's featured editions by
	// ordering.
	FeaturedEditions(ctx context.Context, organisationID int64) ([]*models.FeaturedEdition, error)
	Feature(ctx context.Context, featured *models.FeaturedEdition) error
}

// UserStore persists editor accounts.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByName(ctx context.Context, name string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

// RoleStore persists roles with their current appointments.
type RoleStore interface {
	ListMinisterial(ctx context.Context) ([]*models.Role, error)
	// ListByOrganisation returns roles of every kind held in the
	// organisation by ordering, vacant roles included.
	ListByOrganisation(ctx context.Context, organisationID int64) ([]*models.Role, error)
	Save(ctx context.Context, role *models.Role) error
}

// AttachmentStore persists edition attachments.
type AttachmentStore interface {
	ListByEdition(ctx context.Context, editionID int64) ([]*models.Attachment, error)
	SaveAll(ctx context.Context, attachments []*models.Attachment) error
}

// StatisticsAnnouncementStore persists statistics announcements.
type StatisticsAnnouncementStore interface {
	FindBySlug(ctx context.Context, slug string) (*models.StatisticsAnnouncement, error)
	Save(ctx context.Context, announcement *models.StatisticsAnnouncement) error
}

// TaxonomyStore reads policies and topics.
type TaxonomyStore interface {
	PoliciesByIDs(ctx context.Context, ids []int64) ([]*models.Policy, error)
	TopicsByIDs(ctx context.Context, ids []int64) ([]*models.Topic, error)
	SavePolicy(ctx context.Context, policy *models.Policy) error
	SaveTopic(ctx context.Context, topic *models.Topic) error
}
