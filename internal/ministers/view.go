package ministers

import (
	"fmt"
	"strconv"
	"strings"

	"govpub/internal/content/models"
)

// fieldID mirrors how form builders derive ids from bracketed field names:
// "cabinet[3][ordering]" becomes "cabinet_3_ordering".
func fieldID(name string) string {
	name = strings.ReplaceAll(name, "]", "")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == ':', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}

func orderingName(key string, id int64) string {
	return fmt.Sprintf("%s[%d][ordering]", key, id)
}

func roleEditPath(role *models.Role) string {
	return "/admin/roles/" + strconv.FormatInt(role.ID, 10) + "/edit"
}

// roleLabelText names the role and its first current holder.
func roleLabelText(role *models.Role) string {
	if len(role.CurrentPeople) > 0 && role.CurrentPeople[0] != nil {
		return role.Name + " (" + role.CurrentPeople[0].Name + ")"
	}
	return role.Name
}

func seniority(r *models.Role) int { return r.Seniority }
