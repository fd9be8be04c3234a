// Package ministers groups the people holding ministerial roles into the
// cabinet, cabinet attendees and other ministers, and renders the admin
// ordering fields for cabinet roles and ministerial departments.
package ministers

import (
	"cmp"
	"slices"

	"govpub/internal/content/models"
)

// Minister is one person with every role they currently hold, most senior first.
type Minister struct {
	Person *models.Person
	Roles  []*models.Role
}

// Groups partitions ministers. Every person appears in exactly one group.
type Groups struct {
	Cabinet        []Minister
	AttendsCabinet []Minister
	OtherMinisters []Minister
}

// Sort groups the current holders of roles. Input roles and people are not
// modified; the returned Minister values hold copies of both.
func Sort(roles []*models.Role) Groups {
	ministers := rolesByPerson(roles)

	var groups Groups
	for _, m := range ministers {
		switch {
		case slices.ContainsFunc(m.Roles, isCabinetMember):
			groups.Cabinet = append(groups.Cabinet, m)
		case slices.ContainsFunc(m.Roles, attendsCabinet):
			groups.AttendsCabinet = append(groups.AttendsCabinet, m)
		default:
			groups.OtherMinisters = append(groups.OtherMinisters, m)
		}
	}

	slices.SortStableFunc(groups.Cabinet, func(a, b Minister) int {
		return cmp.Or(
			cmp.Compare(minSeniority(a.Roles, isCabinetMember), minSeniority(b.Roles, isCabinetMember)),
			cmp.Compare(a.Person.SortKey(), b.Person.SortKey()),
		)
	})
	slices.SortStableFunc(groups.AttendsCabinet, func(a, b Minister) int {
		return cmp.Or(
			cmp.Compare(minSeniority(a.Roles, anyRole), minSeniority(b.Roles, anyRole)),
			cmp.Compare(a.Person.SortKey(), b.Person.SortKey()),
		)
	})
	slices.SortStableFunc(groups.OtherMinisters, func(a, b Minister) int {
		return cmp.Compare(a.Person.SortKey(), b.Person.SortKey())
	})
	return groups
}

func isCabinetMember(r *models.Role) bool { return r.CabinetMember }
func attendsCabinet(r *models.Role) bool  { return r.AttendsCabinet }
func anyRole(*models.Role) bool           { return true }

func minSeniority(roles []*models.Role, include func(*models.Role) bool) int {
	lowest, found := 0, false
	for _, r := range roles {
		if !include(r) {
			continue
		}
		if !found || r.Seniority < lowest {
			lowest, found = r.Seniority, true
		}
	}
	return lowest
}

// rolesByPerson expands roles into one Minister per person, in first-seen
// order, with each person's roles sorted by seniority.
func rolesByPerson(roles []*models.Role) []Minister {
	var (
		order []int64
		byID  = make(map[int64]*Minister)
	)
	for _, role := range roles {
		if role == nil {
			continue
		}
		roleCopy := *role
		roleCopy.CurrentPeople = nil
		for _, person := range role.CurrentPeople {
			if person == nil {
				continue
			}
			m, ok := byID[person.ID]
			if !ok {
				p := *person
				m = &Minister{Person: &p}
				byID[person.ID] = m
				order = append(order, person.ID)
			}
			r := roleCopy
			m.Roles = append(m.Roles, &r)
		}
	}

	out := make([]Minister, 0, len(order))
	for _, id := range order {
		m := byID[id]
		slices.SortStableFunc(m.Roles, func(a, b *models.Role) int {
			return cmp.Compare(a.Seniority, b.Seniority)
		})
		out = append(out, *m)
	}
	return out
}
