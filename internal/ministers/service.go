package ministers

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	"govpub/internal/content/models"
	dErrors "govpub/pkg/domain-errors"
)

// RoleStore lists roles with their current appointments.
type RoleStore interface {
	ListMinisterial(ctx context.Context) ([]*models.Role, error)
}

// OrganisationStore lists ministerial departments in ministerial order.
type OrganisationStore interface {
	ListMinisterial(ctx context.Context) ([]*models.Organisation, error)
}

// Service loads roles and organisations for the ministers pages.
type Service struct {
	roles  RoleStore
	orgs   OrganisationStore
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(roles RoleStore, orgs OrganisationStore, opts ...Option) (*Service, error) {
	if roles == nil {
		return nil, errors.New("role store is required")
	}
	if orgs == nil {
		return nil, errors.New("organisation store is required")
	}
	s := &Service{roles: roles, orgs: orgs, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Groups returns the current ministers grouped for the public ministers page.
func (s *Service) Groups(ctx context.Context) (Groups, error) {
	roles, err := s.roles.ListMinisterial(ctx)
	if err != nil {
		return Groups{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load ministerial roles")
	}
	return Sort(roles), nil
}

// Ordering is the data behind the cabinet ministers ordering form.
type Ordering struct {
	CabinetRoles  []*models.Role
	AttendeeRoles []*models.Role
	Organisations []*models.Organisation
}

// Ordering returns cabinet and attendee roles by seniority plus ministerial
// departments by ministerial ordering.
func (s *Service) Ordering(ctx context.Context) (Ordering, error) {
	roles, err := s.roles.ListMinisterial(ctx)
	if err != nil {
		return Ordering{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load ministerial roles")
	}
	orgs, err := s.orgs.ListMinisterial(ctx)
	if err != nil {
		return Ordering{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organisations")
	}

	var out Ordering
	for _, r := range roles {
		switch {
		case r.CabinetMember:
			out.CabinetRoles = append(out.CabinetRoles, r)
		case r.AttendsCabinet:
			out.AttendeeRoles = append(out.AttendeeRoles, r)
		}
	}
	bySeniority := func(a, b *models.Role) int { return cmp.Compare(a.Seniority, b.Seniority) }
	slices.SortStableFunc(out.CabinetRoles, bySeniority)
	slices.SortStableFunc(out.AttendeeRoles, bySeniority)
	out.Organisations = orgs
	return out, nil
}
