// Package newsarticletype is the fixed registry of news article sub-types.
package newsarticletype

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"govpub/pkg/platform/sentinel"
)

// Prevalence separates types editors may choose from legacy holding types.
type Prevalence string

const (
	PrevalencePrimary   Prevalence = "primary"
	PrevalenceMigration Prevalence = "migration"
)

// Type is one news article sub-type.
type Type struct {
	ID           int
	Key          string
	SingularName string
	PluralName   string
	Prevalence   Prevalence
}

var (
	NewsStory            = &Type{ID: 1, Key: "news_story", SingularName: "News story", PluralName: "News stories", Prevalence: PrevalencePrimary}
	PressRelease         = &Type{ID: 2, Key: "press_release", SingularName: "Press release", PluralName: "Press releases", Prevalence: PrevalencePrimary}
	GovernmentResponse   = &Type{ID: 3, Key: "government_response", SingularName: "Government response", PluralName: "Government responses", Prevalence: PrevalencePrimary}
	Unknown              = &Type{ID: 999, Key: "announcement", SingularName: "Announcement", PluralName: "Announcements", Prevalence: PrevalenceMigration}
	ImportedAwaitingType = &Type{ID: 1000, Key: "imported", SingularName: "Imported - awaiting type", PluralName: "Imported - awaiting type", Prevalence: PrevalenceMigration}
)

var all = []*Type{NewsStory, PressRelease, GovernmentResponse, Unknown, ImportedAwaitingType}

var formatAdvice = map[int]string{
	1:    "<p>News written exclusively for GOV.UK which users need, can act on and can’t get from other sources. Avoid duplicating press releases.</p>",
	2:    "<p>Unedited press releases as sent to the media, and official statements from the organisation or a minister.</p><p>Do <em>not</em> use for: statements to Parliament. Use the “Speech” format for those.</p>",
	3:    "<p>Government statements in response to media coverage, such as rebuttals and ‘myth busters’.</p><p>Do <em>not</em> use for: statements to Parliament. Use the “Speech” format for those.</p>",
	999:  "<p>DO NOT USE. This is a legacy category for content created before sub-types existed.</p>",
	1000: "<p>DO NOT USE. This is a holding category for content that has been imported automatically.</p>",
}

var (
	lower       = cases.Lower(language.English)
	nonAlpha    = regexp.MustCompile(`[^a-z]+`)
	nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slug is the plural name lowercased with runs of non-letters collapsed to "-".
func (t *Type) Slug() string {
	return nonAlpha.ReplaceAllString(lower.String(t.PluralName), "-")
}

// SearchFormatTypes are the search facets this type is indexed under.
func (t *Type) SearchFormatTypes() []string {
	return []string{"news-article-" + parameterize(strings.ReplaceAll(t.Key, "_", " "))}
}

// GenusKey groups every news article type under one search genus.
func (t *Type) GenusKey() string {
	return "news_article"
}

func parameterize(s string) string {
	return strings.Trim(nonAlphaNum.ReplaceAllString(lower.String(s), "-"), "-")
}

// All returns every type in id order.
func All() []*Type {
	return slices.Clone(all)
}

// Find looks a type up by id.
func Find(id int) (*Type, error) {
	for _, t := range all {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("news article type %d: %w", id, sentinel.ErrNotFound)
}

// FindByKey looks a type up by key.
func FindByKey(key string) (*Type, error) {
	for _, t := range all {
		if t.Key == key {
			return t, nil
		}
	}
	return nil, fmt.Errorf("news article type %q: %w", key, sentinel.ErrNotFound)
}

// FindBySlug returns the type whose slug matches, or nil.
func FindBySlug(slug string) *Type {
	for _, t := range all {
		if t.Slug() == slug {
			return t
		}
	}
	return nil
}

// AllSlugs joins every slug as an English list: "a, b and c".
func AllSlugs() string {
	slugs := make([]string, 0, len(all))
	for _, t := range all {
		slugs = append(slugs, t.Slug())
	}
	return toSentence(slugs)
}

func toSentence(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
	}
}

// ByPrevalence groups types by prevalence, preserving id order within a group.
func ByPrevalence() map[Prevalence][]*Type {
	out := make(map[Prevalence][]*Type, 2)
	for _, t := range all {
		out[t.Prevalence] = append(out[t.Prevalence], t)
	}
	return out
}

// Primary returns the types offered to editors.
func Primary() []*Type {
	return ByPrevalence()[PrevalencePrimary]
}

// Migration returns the legacy holding types.
func Migration() []*Type {
	return ByPrevalence()[PrevalenceMigration]
}

// OrderedByPrevalence is Primary followed by Migration.
func OrderedByPrevalence() []*Type {
	return append(Primary(), Migration()...)
}

// FormatAdviceJSON is the per-type editor guidance keyed by id, as a JSON object.
func FormatAdviceJSON() string {
	keyed := make(map[string]string, len(formatAdvice))
	for id, advice := range formatAdvice {
		keyed[strconv.Itoa(id)] = advice
	}
	b, err := json.Marshal(keyed)
	if err != nil {
		panic(fmt.Sprintf("marshal format advice: %v", err))
	}
	return string(b)
}
