package ministers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govpub/internal/content/models"
)

func person(id int64, forename, surname string) *models.Person {
	return &models.Person{ID: id, Name: forename + " " + surname, Forename: forename, Surname: surname}
}

func role(id int64, name string, seniority int, cabinet, attends bool, people ...*models.Person) *models.Role {
	return &models.Role{ID: id, Name: name, Seniority: seniority, CabinetMember: cabinet, AttendsCabinet: attends, CurrentPeople: people}
}

func names(ms []Minister) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Person.Name)
	}
	return out
}

func TestSort(t *testing.T) {
	pm := person(1, "Alex", "Prime")
	chancellor := person(2, "Bea", "Cash")
	chiefWhip := person(3, "Cat", "Whip")
	junior := person(4, "Dan", "Aardvark")
	other := person(5, "Eve", "Zed")

	roles := []*models.Role{
		role(10, "Minister for the Civil Service", 5, true, false, pm),
		role(11, "Prime Minister", 0, true, false, pm),
		role(12, "Chancellor", 1, true, false, chancellor),
		role(13, "Chief Whip", 20, false, true, chiefWhip),
		role(14, "Paymaster General", 30, false, true, chancellor),
		role(15, "Minister of State", 40, false, false, junior, other),
		role(16, "Parliamentary Secretary", 50, false, false, chiefWhip),
	}

	groups := Sort(roles)

	t.Run("cabinet ordered by lowest cabinet seniority", func(t *testing.T) {
		assert.Equal(t, []string{"Alex Prime", "Bea Cash"}, names(groups.Cabinet))
	})

	t.Run("attendees exclude cabinet members", func(t *testing.T) {
		assert.Equal(t, []string{"Cat Whip"}, names(groups.AttendsCabinet))
	})

	t.Run("others ordered by sort key", func(t *testing.T) {
		assert.Equal(t, []string{"Dan Aardvark", "Eve Zed"}, names(groups.OtherMinisters))
	})

	t.Run("each person's roles sorted by seniority", func(t *testing.T) {
		require.Len(t, groups.Cabinet[0].Roles, 2)
		assert.Equal(t, "Prime Minister", groups.Cabinet[0].Roles[0].Name)
		assert.Equal(t, "Minister for the Civil Service", groups.Cabinet[0].Roles[1].Name)

		require.Len(t, groups.Cabinet[1].Roles, 2)
		assert.Equal(t, "Chancellor", groups.Cabinet[1].Roles[0].Name)
		assert.Equal(t, "Paymaster General", groups.Cabinet[1].Roles[1].Name)
	})

	t.Run("groups are disjoint and cover every person once", func(t *testing.T) {
		seen := map[int64]int{}
		for _, group := range [][]Minister{groups.Cabinet, groups.AttendsCabinet, groups.OtherMinisters} {
			for _, m := range group {
				seen[m.Person.ID]++
			}
		}
		assert.Equal(t, map[int64]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1}, seen)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		assert.Equal(t, "Minister for the Civil Service", roles[0].Name)
		assert.Len(t, roles[5].CurrentPeople, 2)
		groups.Cabinet[0].Person.Name = "changed"
		assert.Equal(t, "Alex Prime", pm.Name)
	})
}

func TestSortTieBreaksOnSortKey(t *testing.T) {
	b := person(1, "Ann", "Brown")
	a := person(2, "Zoe", "Adams")
	groups := Sort([]*models.Role{
		role(1, "Secretary of State", 10, true, false, b),
		role(2, "Secretary of State", 10, true, false, a),
	})
	assert.Equal(t, []string{"Zoe Adams", "Ann Brown"}, names(groups.Cabinet))
}

func TestSortEmpty(t *testing.T) {
	groups := Sort(nil)
	assert.Empty(t, groups.Cabinet)
	assert.Empty(t, groups.AttendsCabinet)
	assert.Empty(t, groups.OtherMinisters)

	groups = Sort([]*models.Role{role(1, "Vacant", 1, true, false)})
	assert.Empty(t, groups.Cabinet)
}
