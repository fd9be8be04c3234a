// Package emailsignup resolves where a feed's "get email alerts" link points.
package emailsignup

import (
	"context"
	"errors"
	"net/url"
	"regexp"

	"govpub/internal/content/models"
	"govpub/pkg/platform/sentinel"
)

var feedSlug = regexp.MustCompile(`/([\w-]+)\.atom$`)

// OrganisationFinder looks organisations up by slug.
type OrganisationFinder interface {
	FindBySlug(ctx context.Context, slug string) (*models.Organisation, error)
}

type Resolver struct {
	organisations OrganisationFinder
}

func NewResolver(organisations OrganisationFinder) *Resolver {
	return &Resolver{organisations: organisations}
}

// Path returns the organisation's own signup page when it has one, and the
// generic signup form for the feed otherwise.
func (r *Resolver) Path(ctx context.Context, feedURL string) (string, error) {
	if m := feedSlug.FindStringSubmatch(feedURL); m != nil {
		org, err := r.organisations.FindBySlug(ctx, m[1])
		switch {
		case err == nil:
			if org.HasEmailSignupPage {
				return "/government/organisations/" + org.Slug + "/email-signup", nil
			}
		case !errors.Is(err, sentinel.ErrNotFound):
			return "", err
		}
	}
	return "/email-signup/new?email_signup%5Bfeed%5D=" + url.QueryEscape(feedURL), nil
}
