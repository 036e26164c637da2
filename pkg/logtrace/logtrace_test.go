package logtrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCorrelationAndOriginAreAttached(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := SetLogger(zap.New(core))
	defer restore()

	ctx := CtxWithCorrelationID(context.Background(), "cid-1")
	ctx = CtxWithOrigin(ctx, "stamp")
	Info(ctx, "anchored", Fields{FieldTxHash: "abc"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "anchored", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "cid-1", fields[FieldCorrelationID])
	assert.Equal(t, "stamp", fields[FieldOrigin])
	assert.Equal(t, "abc", fields[FieldTxHash])
}

func TestUnknownCorrelation(t *testing.T) {
	assert.Equal(t, "unknown", extractCorrelationID(context.Background()))
}

func TestSetLevel(t *testing.T) {
	defer level.SetLevel(zapcore.InfoLevel)

	require.NoError(t, SetLevel("DEBUG"))
	assert.Equal(t, zapcore.DebugLevel, level.Level())
	assert.Error(t, SetLevel("verbose"))
}

func TestWithFields(t *testing.T) {
	base := Fields{FieldModule: ValueAnchor}
	merged := WithFields(base, Fields{FieldMode: "simulated"})
	assert.Len(t, merged, 2)
	assert.Len(t, base, 1)
}
