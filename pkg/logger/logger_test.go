package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/logger"
)

type ctxKey struct{}

func TestNew_DefaultsToJSON(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("app", "test")))
	log.Info("hello", logger.UserID("u1"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "test", entry["app"])
	assert.Equal(t, "u1", entry["user_id"])
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env       string
		wantEnv   string
		wantDebug bool
		wantJSON  bool
	}{
		{"development", logger.EnvDevelopment, true, false},
		{"", logger.EnvDevelopment, true, false},
		{"prod", logger.EnvProduction, false, true},
		{"production", logger.EnvProduction, false, true},
		{"stage", logger.EnvStaging, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithEnvironment(tt.env, "svc"), logger.WithOutput(buf))

			log.Debug("dbg")
			if tt.wantDebug {
				assert.Contains(t, buf.String(), "dbg")
			} else {
				assert.Empty(t, buf.String())
			}

			buf.Reset()
			log.Info("msg")
			if tt.wantJSON {
				var entry map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
				assert.Equal(t, "svc", entry["service"])
				assert.Equal(t, tt.wantEnv, entry["env"])
			} else {
				assert.Contains(t, buf.String(), "service=svc")
				assert.Contains(t, buf.String(), "env="+tt.wantEnv)
			}
		})
	}
}

func TestWithFormat_PanicsOnUnknown(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextValue("request_id", ctxKey{}),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			return slog.String("static", "yes"), true
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.With(logger.Component("test")).InfoContext(ctx, "msg")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "yes", entry["static"])
	assert.Equal(t, "test", entry["component"])
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
	assert.Equal(t, slog.Attr{}, logger.UserID(nil))

	st := logger.State("pending", "enabled")
	require.Equal(t, slog.KindGroup, st.Value.Kind())
	g := st.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "pending", g[0].Value.String())
	assert.Equal(t, "enabled", g[1].Value.String())
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	require.NotNil(t, log)
	assert.NotPanics(t, func() { log.Error("dropped", logger.Error(errors.New("x"))) })
}
