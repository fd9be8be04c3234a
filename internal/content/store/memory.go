package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"govpub/internal/content/models"
	"govpub/internal/orgtype"
	"govpub/pkg/platform/sentinel"
)

// In-memory stores copy on the way in and out so callers never share
// mutable state with the store.

type InMemoryEditionStore struct {
	mu       sync.RWMutex
	editions map[int64]*models.Edition
	versions map[int64][]models.VersionEntry
	nextID   int64
}

func NewInMemoryEditionStore() *InMemoryEditionStore {
	return &InMemoryEditionStore{
		editions: make(map[int64]*models.Edition),
		versions: make(map[int64][]models.VersionEntry),
	}
}

func cloneEdition(e *models.Edition) *models.Edition {
	c := *e
	c.OrganisationIDs = slices.Clone(e.OrganisationIDs)
	c.TopicIDs = slices.Clone(e.TopicIDs)
	c.PolicyIDs = slices.Clone(e.PolicyIDs)
	if e.PublishedAt != nil {
		t := *e.PublishedAt
		c.PublishedAt = &t
	}
	return &c
}

func (s *InMemoryEditionStore) FindByID(_ context.Context, id int64) (*models.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.editions[id]; ok {
		return cloneEdition(e), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryEditionStore) FindPublishedBySlug(_ context.Context, typ models.EditionType, slug string) (*models.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.sortedLocked() {
		if e.Type == typ && e.Slug == slug && e.IsPublished() {
			return cloneEdition(e), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// Save inserts editions with a zero ID and replaces the rest.
func (s *InMemoryEditionStore) Save(_ context.Context, edition *models.Edition) error {
	if edition == nil {
		return fmt.Errorf("save edition: nil edition")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if edition.ID == 0 {
		s.nextID++
		edition.ID = s.nextID
	} else if edition.ID > s.nextID {
		s.nextID = edition.ID
	}
	if edition.DocumentID == 0 {
		edition.DocumentID = edition.ID
	}
	s.editions[edition.ID] = cloneEdition(edition)
	return nil
}

func (s *InMemoryEditionStore) sortedLocked() []*models.Edition {
	out := make([]*models.Edition, 0, len(s.editions))
	for _, e := range s.editions {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// latestLocked keeps the highest-id edition of each document.
func (s *InMemoryEditionStore) latestLocked() []*models.Edition {
	latest := make(map[int64]*models.Edition)
	for _, e := range s.editions {
		if cur, ok := latest[e.DocumentID]; !ok || e.ID > cur.ID {
			latest[e.DocumentID] = e
		}
	}
	out := make([]*models.Edition, 0, len(latest))
	for _, e := range latest {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *InMemoryEditionStore) ListForcePublishCandidates(_ context.Context, organisationID int64, excludedTypes []models.EditionType) ([]*models.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Edition
	for _, e := range s.latestLocked() {
		if e.State != models.StateDraft || !e.HasDocumentSource {
			continue
		}
		if !slices.Contains(e.OrganisationIDs, organisationID) {
			continue
		}
		if slices.Contains(excludedTypes, e.Type) {
			continue
		}
		out = append(out, cloneEdition(e))
	}
	return out, nil
}

func (s *InMemoryEditionStore) EachLatestByType(ctx context.Context, typ models.EditionType, batchSize int, fn func(*models.Edition) error) error {
	s.mu.RLock()
	var matches []*models.Edition
	for _, e := range s.latestLocked() {
		if e.Type == typ {
			matches = append(matches, cloneEdition(e))
		}
	}
	s.mu.RUnlock()

	for _, e := range matches {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryEditionStore) CountLatestByType(_ context.Context, typ models.EditionType) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.latestLocked() {
		if e.Type == typ {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryEditionStore) ListPublishedByOrganisation(_ context.Context, organisationID int64, typ models.EditionType, limit int) ([]*models.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Edition
	for _, e := range s.editions {
		if e.State != models.StatePublished || !slices.Contains(e.OrganisationIDs, organisationID) {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, cloneEdition(e))
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := publishedAt(out[i]), publishedAt(out[j])
		if !pi.Equal(pj) {
			return pi.After(pj)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func publishedAt(e *models.Edition) time.Time {
	if e.PublishedAt == nil {
		return time.Time{}
	}
	return *e.PublishedAt
}

func (s *InMemoryEditionStore) RecordVersion(_ context.Context, entry models.VersionEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[entry.EditionID] = append(s.versions[entry.EditionID], entry)
	return nil
}

// RunInTx restores the editions and versions held before fn when fn fails.
// Writes made concurrently by other callers are rolled back with them.
func (s *InMemoryEditionStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.RLock()
	editions := make(map[int64]*models.Edition, len(s.editions))
	for id, e := range s.editions {
		editions[id] = cloneEdition(e)
	}
	versions := make(map[int64][]models.VersionEntry, len(s.versions))
	for id, v := range s.versions {
		versions[id] = slices.Clone(v)
	}
	nextID := s.nextID
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.editions, s.versions, s.nextID = editions, versions, nextID
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *InMemoryEditionStore) Versions(_ context.Context, editionID int64) ([]models.VersionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.versions[editionID]), nil
}

type InMemoryOrganisationStore struct {
	mu       sync.RWMutex
	orgs     map[int64]models.Organisation
	featured []models.FeaturedEdition
}

func NewInMemoryOrganisationStore() *InMemoryOrganisationStore {
	return &InMemoryOrganisationStore{orgs: make(map[int64]models.Organisation)}
}

func (s *InMemoryOrganisationStore) List(_ context.Context) ([]*models.Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Organisation, 0, len(s.orgs))
	for _, org := range s.orgs {
		org := org
		out = append(out, &org)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FeaturedEditions keeps insertion order between equal orderings.
func (s *InMemoryOrganisationStore) FeaturedEditions(_ context.Context, organisationID int64) ([]*models.FeaturedEdition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.FeaturedEdition
	for _, f := range s.featured {
		if f.OrganisationID == organisationID {
			f := f
			out = append(out, &f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ordering < out[j].Ordering })
	return out, nil
}

func (s *InMemoryOrganisationStore) Feature(_ context.Context, featured *models.FeaturedEdition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.featured = append(s.featured, *featured)
	return nil
}

func (s *InMemoryOrganisationStore) FindByID(_ context.Context, id int64) (*models.Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if org, ok := s.orgs[id]; ok {
		return &org, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryOrganisationStore) find(match func(models.Organisation) bool) (*models.Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, org := range s.orgs {
		if match(org) {
			return &org, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryOrganisationStore) FindByAcronym(_ context.Context, acronym string) (*models.Organisation, error) {
	return s.find(func(o models.Organisation) bool { return strings.EqualFold(o.Acronym, acronym) })
}

func (s *InMemoryOrganisationStore) FindBySlug(_ context.Context, slug string) (*models.Organisation, error) {
	return s.find(func(o models.Organisation) bool { return o.Slug == slug })
}

// ListMinisterial returns ministerial departments by ministerial ordering.
func (s *InMemoryOrganisationStore) ListMinisterial(_ context.Context) ([]*models.Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Organisation
	for _, org := range s.orgs {
		if org.OrganisationType == string(orgtype.MinisterialDepartment) {
			org := org
			out = append(out, &org)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MinisterialOrdering != out[j].MinisterialOrdering {
			return out[i].MinisterialOrdering < out[j].MinisterialOrdering
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *InMemoryOrganisationStore) Save(_ context.Context, org *models.Organisation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if org.ID == 0 {
		org.ID = int64(len(s.orgs) + 1)
	}
	s.orgs[org.ID] = *org
	return nil
}

type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[int64]models.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[int64]models.User)}
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) FindByName(_ context.Context, name string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Name == name {
			return &u, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		user.ID = int64(len(s.users) + 1)
	}
	s.users[user.ID] = *user
	return nil
}

type InMemoryRoleStore struct {
	mu    sync.RWMutex
	roles map[int64]*models.Role
}

func NewInMemoryRoleStore() *InMemoryRoleStore {
	return &InMemoryRoleStore{roles: make(map[int64]*models.Role)}
}

func cloneRole(r *models.Role) *models.Role {
	c := *r
	c.OrganisationIDs = slices.Clone(r.OrganisationIDs)
	c.CurrentPeople = make([]*models.Person, 0, len(r.CurrentPeople))
	for _, p := range r.CurrentPeople {
		pc := *p
		c.CurrentPeople = append(c.CurrentPeople, &pc)
	}
	return &c
}

// ListMinisterial returns every ministerial role in ordering order.
func (s *InMemoryRoleStore) ListMinisterial(_ context.Context) ([]*models.Role, error) {
	return s.list(func(r *models.Role) bool { return r.KindOrDefault() == models.RoleMinisterial }), nil
}

func (s *InMemoryRoleStore) ListByOrganisation(_ context.Context, organisationID int64) ([]*models.Role, error) {
	return s.list(func(r *models.Role) bool { return slices.Contains(r.OrganisationIDs, organisationID) }), nil
}

func (s *InMemoryRoleStore) list(match func(*models.Role) bool) []*models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Role, 0, len(s.roles))
	for _, r := range s.roles {
		if match(r) {
			out = append(out, cloneRole(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ordering != out[j].Ordering {
			return out[i].Ordering < out[j].Ordering
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *InMemoryRoleStore) Save(_ context.Context, role *models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if role.ID == 0 {
		role.ID = int64(len(s.roles) + 1)
	}
	s.roles[role.ID] = cloneRole(role)
	return nil
}

type InMemoryAttachmentStore struct {
	mu          sync.RWMutex
	attachments map[int64]models.Attachment
	nextID      int64
}

func NewInMemoryAttachmentStore() *InMemoryAttachmentStore {
	return &InMemoryAttachmentStore{attachments: make(map[int64]models.Attachment)}
}

func (s *InMemoryAttachmentStore) ListByEdition(_ context.Context, editionID int64) ([]*models.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Attachment
	for _, a := range s.attachments {
		if a.EditionID == editionID {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveAll stores every attachment atomically. New attachments get IDs.
func (s *InMemoryAttachmentStore) SaveAll(_ context.Context, attachments []*models.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range attachments {
		if a.ID == 0 {
			s.nextID++
			a.ID = s.nextID
		} else if a.ID > s.nextID {
			s.nextID = a.ID
		}
		s.attachments[a.ID] = *a
	}
	return nil
}

type InMemoryStatisticsAnnouncementStore struct {
	mu            sync.RWMutex
	announcements map[string]models.StatisticsAnnouncement
}

func NewInMemoryStatisticsAnnouncementStore() *InMemoryStatisticsAnnouncementStore {
	return &InMemoryStatisticsAnnouncementStore{announcements: make(map[string]models.StatisticsAnnouncement)}
}

func (s *InMemoryStatisticsAnnouncementStore) FindBySlug(_ context.Context, slug string) (*models.StatisticsAnnouncement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.announcements[slug]; ok {
		a.OrganisationIDs = slices.Clone(a.OrganisationIDs)
		return &a, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStatisticsAnnouncementStore) Save(_ context.Context, announcement *models.StatisticsAnnouncement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if announcement.ID == 0 {
		announcement.ID = int64(len(s.announcements) + 1)
	}
	a := *announcement
	a.OrganisationIDs = slices.Clone(announcement.OrganisationIDs)
	s.announcements[a.Slug] = a
	return nil
}

type InMemoryTaxonomyStore struct {
	mu       sync.RWMutex
	policies map[int64]models.Policy
	topics   map[int64]models.Topic
}

func NewInMemoryTaxonomyStore() *InMemoryTaxonomyStore {
	return &InMemoryTaxonomyStore{
		policies: make(map[int64]models.Policy),
		topics:   make(map[int64]models.Topic),
	}
}

// PoliciesByIDs returns the policies that exist, in the order of ids.
func (s *InMemoryTaxonomyStore) PoliciesByIDs(_ context.Context, ids []int64) ([]*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Policy, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.policies[id]; ok {
			p.TopicIDs = slices.Clone(p.TopicIDs)
			out = append(out, &p)
		}
	}
	return out, nil
}

// TopicsByIDs returns the topics that exist, in the order of ids.
func (s *InMemoryTaxonomyStore) TopicsByIDs(_ context.Context, ids []int64) ([]*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Topic, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.topics[id]; ok {
			out = append(out, &t)
		}
	}
	return out, nil
}

func (s *InMemoryTaxonomyStore) SavePolicy(_ context.Context, policy *models.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *policy
	p.TopicIDs = slices.Clone(policy.TopicIDs)
	s.policies[p.ID] = p
	return nil
}

func (s *InMemoryTaxonomyStore) SaveTopic(_ context.Context, topic *models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[topic.ID] = *topic
	return nil
}
