package lookup

import (
	"testing"

	"id-reconciler/core/resolve"
	"id-reconciler/core/resolve/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	run := resolve.NewRunContext(new(mocks.Lookup), nil, resolve.DefaultPolicy(), resolve.Options{})
	feature := NewFeature(resolve.NewResolver(run, zap.NewNop(), nil), zap.NewNop())

	assert.Equal(t, "lookup", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
