package settings

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/crgw/cover-quote/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Run("should be a valid configuration without issues", func(t *testing.T) {
		cfg, err := Defaults().PricingConfig(pricing.UnmatchedReject)
		require.NoError(t, err)

		assert.Equal(t, pricing.UnmatchedZero, cfg.UnmatchedPolicy)
		assert.Empty(t, cfg.Issues())
	})

	t.Run("should return independent copies", func(t *testing.T) {
		first := Defaults()
		first.AgeDiscountRanges[0].Multiplier = 9

		assert.Equal(t, 0.3, Defaults().AgeDiscountRanges[0].Multiplier)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("should fall back to defaults for the default profile", func(t *testing.T) {
		resolved, err := Resolve(ctx, NewMemoryStore(), DefaultProfile)

		assert.NoError(t, err)
		assert.Equal(t, Defaults(), resolved)
	})

	t.Run("should serve defaults without a provider", func(t *testing.T) {
		resolved, err := Resolve(ctx, nil, DefaultProfile)

		assert.NoError(t, err)
		assert.Equal(t, Defaults(), resolved)

		_, err = Resolve(ctx, nil, "brand-x")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should not fall back for other profiles", func(t *testing.T) {
		_, err := Resolve(ctx, NewMemoryStore(), "brand-x")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should prefer the stored default profile", func(t *testing.T) {
		store := NewMemoryStore()
		stored := Defaults()
		stored.BaseHourRate = 20
		require.NoError(t, store.Save(ctx, DefaultProfile, stored))

		resolved, err := Resolve(ctx, store, DefaultProfile)

		assert.NoError(t, err)
		assert.Equal(t, 20.0, resolved.BaseHourRate)
	})

	t.Run("should pass through storage failures", func(t *testing.T) {
		failure := errors.New("connection reset")
		_, err := Resolve(ctx, &failingProvider{err: failure}, DefaultProfile)

		assert.ErrorIs(t, err, failure)
	})
}
