// Package embassy presents the consular offices serving a world location.
package embassy

import (
	"slices"

	"govpub/internal/content/models"
)

var embassyOfficeTypes = []string{"Embassy", "Consulate", "High Commission"}

// IsEmbassyOffice reports whether the office offers consular services.
func IsEmbassyOffice(o *models.WorldwideOffice) bool {
	return slices.Contains(embassyOfficeTypes, o.OfficeType)
}

type Presenter struct {
	location *models.WorldLocation
}

func NewPresenter(location *models.WorldLocation) *Presenter {
	return &Presenter{location: location}
}

func (p *Presenter) Name() string {
	return p.location.Name
}

// Offices lists the embassy-type offices of every worldwide organisation at
// the location.
func (p *Presenter) Offices() []*models.WorldwideOffice {
	var out []*models.WorldwideOffice
	for _, org := range p.location.WorldwideOrganisations {
		for _, o := range org.Offices {
			if IsEmbassyOffice(o) {
				out = append(out, o)
			}
		}
	}
	return out
}

// ConsularServicesOrganisations are the worldwide organisations with at least
// one embassy-type office.
func (p *Presenter) ConsularServicesOrganisations() []*models.WorldwideOrganisation {
	var out []*models.WorldwideOrganisation
	for _, org := range p.location.WorldwideOrganisations {
		if slices.ContainsFunc(org.Offices, IsEmbassyOffice) {
			out = append(out, org)
		}
	}
	return out
}

// RemoteServicesCountry is the country people are sent to when no office of
// a consular services organisation, of any type, is located in the world
// location itself. Nil when services are local or
// there are no offices at all.
func (p *Presenter) RemoteServicesCountry() *models.WorldLocation {
	var countries []*models.WorldLocation
	for _, org := range p.ConsularServicesOrganisations() {
		for _, o := range org.Offices {
			if o.Country != nil {
				countries = append(countries, o.Country)
			}
		}
	}
	if len(countries) == 0 {
		return nil
	}
	for _, c := range countries {
		if c.ID == p.location.ID {
			return nil
		}
	}
	return countries[0]
}
