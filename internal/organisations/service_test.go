package organisations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govpub/internal/content/models"
	"govpub/internal/content/store"
	dErrors "govpub/pkg/domain-errors"
)

type brokenRoles struct{}

func (brokenRoles) ListByOrganisation(context.Context, int64) ([]*models.Role, error) {
	return nil, errors.New("connection reset")
}

func TestNewServiceRequiresStores(t *testing.T) {
	orgs, roles, editions := store.NewInMemoryOrganisationStore(), store.NewInMemoryRoleStore(), store.NewInMemoryEditionStore()

	_, err := NewService(nil, roles, editions, nil)
	assert.EqualError(t, err, "organisation store is required")
	_, err = NewService(orgs, nil, editions, nil)
	assert.EqualError(t, err, "role store is required")
	_, err = NewService(orgs, roles, nil, nil)
	assert.EqualError(t, err, "edition store is required")
}

func TestShowWrapsStoreFailures(t *testing.T) {
	ctx := context.Background()
	orgs := store.NewInMemoryOrganisationStore()
	require.NoError(t, orgs.Save(ctx, &models.Organisation{Name: "Cabinet Office", Slug: "cabinet-office"}))
	svc, err := NewService(orgs, brokenRoles{}, store.NewInMemoryEditionStore(), nil)
	require.NoError(t, err)

	_, err = svc.Show(ctx, "cabinet-office")

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestCSSClassesWithoutType(t *testing.T) {
	assert.Equal(t, []string{"cabinet-office"}, cssClasses(&models.Organisation{Slug: "cabinet-office"}))
}
