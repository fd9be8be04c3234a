package models

// WorldLocation is a country or territory with a UK presence.
type WorldLocation struct {
	ID                     int64
	Name                   string
	Slug                   string
	WorldwideOrganisations []*WorldwideOrganisation
}

// WorldwideOrganisation is a UK organisation operating overseas.
type WorldwideOrganisation struct {
	ID      int64
	Name    string
	Slug    string
	Offices []*WorldwideOffice
}

// WorldwideOffice is one physical office of a worldwide organisation.
type WorldwideOffice struct {
	ID         int64
	Title      string
	OfficeType string
	Country    *WorldLocation
}
