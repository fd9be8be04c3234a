package models

import "strconv"

// Organisation is a government department or public body.
type Organisation struct {
	ID                  int64
	Name                string
	Acronym             string
	Slug                string
	OrganisationType    string
	MinisterialOrdering int
	HasEmailSignupPage  bool
	Description         string
	// GovukStatus is "live" once the organisation's pages are on GOV.UK;
	// "joining", "exempt" and "transitioning" organisations link to URL.
	GovukStatus string
	URL         string
}

const (
	GovukStatusLive          = "live"
	GovukStatusJoining       = "joining"
	GovukStatusExempt        = "exempt"
	GovukStatusTransitioning = "transitioning"
)

// IsLive reports whether the organisation's pages are served on GOV.UK.
// An unset status counts as live.
func (o *Organisation) IsLive() bool {
	return o.GovukStatus == "" || o.GovukStatus == GovukStatusLive
}

// Path is the public organisation page.
func (o *Organisation) Path() string {
	return "/government/organisations/" + o.Slug
}

// FeaturedEdition places a published edition on an organisation's home page.
type FeaturedEdition struct {
	OrganisationID int64
	EditionID      int64
	Ordering       int
	ImageURL       string
	AltText        string
}

// User is an editor account.
type User struct {
	ID          int64
	Name        string
	Email       string
	Permissions []string
	// OrganisationIDs are the organisations the editor works for.
	OrganisationIDs []int64
}

// Person holds an appointment to one or more roles.
type Person struct {
	ID       int64
	Name     string
	Forename string
	Surname  string
	Slug     string
	ImageURL string
}

// Path is the public person page.
func (p *Person) Path() string {
	return "/government/people/" + p.Slug
}

// SortKey orders people alphabetically by surname then forename.
func (p *Person) SortKey() string {
	if p.Surname == "" && p.Forename == "" {
		return p.Name
	}
	return p.Surname + " " + p.Forename
}

// RoleKind separates ministers from civil service and military posts.
type RoleKind string

const (
	RoleMinisterial RoleKind = "ministerial"
	RoleBoardMember RoleKind = "board_member"
	RoleMilitary    RoleKind = "military"
)

// Role is a ministerial, board or military position.
type Role struct {
	ID   int64
	Name string
	Slug string
	// Kind defaults to RoleMinisterial when empty.
	Kind      RoleKind
	Seniority int
	// Ordering positions the role within its organisations.
	Ordering               int
	CabinetMember          bool
	AttendsCabinet         bool
	PermanentSecretary     bool
	ChiefOfTheDefenceStaff bool
	OrganisationIDs        []int64
	CurrentPeople          []*Person
}

// KindOrDefault is Kind, or RoleMinisterial when unset.
func (r *Role) KindOrDefault() RoleKind {
	if r.Kind == "" {
		return RoleMinisterial
	}
	return r.Kind
}

// Path is the public role page. Ministerial roles live under /ministers.
func (r *Role) Path() string {
	if r.KindOrDefault() == RoleMinisterial {
		return "/government/ministers/" + r.Slug
	}
	return "/government/people/roles/" + r.Slug
}

// Policy groups editions under a government policy.
type Policy struct {
	ID       int64
	Title    string
	Slug     string
	TopicIDs []int64
}

// Topic is a browse taxonomy node.
type Topic struct {
	ID   int64
	Name string
	Slug string
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
