package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessors(t *testing.T) {
	ctx := context.Background()

	t.Run("zero values when unset", func(t *testing.T) {
		assert.True(t, User(ctx).IsZero())
		assert.Empty(t, RequestID(ctx))
		assert.Empty(t, ClientIP(ctx))
		assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
	})

	t.Run("round trips injected values", func(t *testing.T) {
		fixed := time.Date(2014, 11, 19, 17, 16, 25, 0, time.UTC)
		actor := Actor{ID: 7, Name: "Jo Editor", Permissions: []string{"managing_editor"}}
		c := WithTime(WithRequestID(WithUser(ctx, actor), "req-1"), fixed)
		c = WithClientMetadata(c, "10.0.0.1", "Firefox 121.0")

		assert.Equal(t, actor, User(c))
		assert.True(t, User(c).HasPermission("managing_editor"))
		assert.False(t, User(c).HasPermission("gds_admin"))
		assert.Equal(t, "req-1", RequestID(c))
		assert.Equal(t, fixed, Now(c))
		assert.Equal(t, "10.0.0.1", ClientIP(c))
		assert.Equal(t, "Firefox 121.0", UserAgent(c))
	})
}
