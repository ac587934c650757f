package shutdown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-sod/sodkit/internal/logging"
)

func TestNew(t *testing.T) {
	ctx, done := New()
	assert.NoError(t, ctx.Err())
	assert.NotNil(t, logging.FromContext(ctx))

	done()
	<-ctx.Done()
	assert.Error(t, ctx.Err())
}
