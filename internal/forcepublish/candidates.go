package forcepublish

import (
	"context"
	"errors"

	"govpub/internal/content/models"
	dErrors "govpub/pkg/domain-errors"
	"govpub/pkg/platform/sentinel"
)

// OrganisationFinder resolves organisations by acronym.
type OrganisationFinder interface {
	FindByAcronym(ctx context.Context, acronym string) (*models.Organisation, error)
}

// CandidateLister lists force publish candidates for an organisation.
type CandidateLister interface {
	ListForcePublishCandidates(ctx context.Context, organisationID int64, excludedTypes []models.EditionType) ([]*models.Edition, error)
}

// Candidates selects the editions a bulk force publish should touch.
type Candidates struct {
	orgs     OrganisationFinder
	editions CandidateLister
}

func NewCandidates(orgs OrganisationFinder, editions CandidateLister) (*Candidates, error) {
	if orgs == nil {
		return nil, errors.New("organisation store is required")
	}
	if editions == nil {
		return nil, errors.New("edition store is required")
	}
	return &Candidates{orgs: orgs, editions: editions}, nil
}

// ForOrganisation returns the latest draft editions of the organisation that
// came from an import, minus any excluded types.
func (c *Candidates) ForOrganisation(ctx context.Context, acronym string, excludedTypes []models.EditionType) ([]*models.Edition, error) {
	org, err := c.orgs.FindByAcronym(ctx, acronym)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "organisation %q not found", acronym)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organisation")
	}
	editions, err := c.editions.ListForcePublishCandidates(ctx, org.ID, excludedTypes)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list editions")
	}
	return editions, nil
}
