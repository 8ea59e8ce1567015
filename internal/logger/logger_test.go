package logger_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/heptareview/internal/logger"
)

func newBufferLogger(level logger.Level) (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(level),
		logger.WithColors(false),
	)
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
	}{
		{"debug", logger.DEBUG},
		{"INFO", logger.INFO},
		{"warning", logger.WARN},
		{"Error", logger.ERROR},
		{"nonsense", logger.INFO},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestLogger_FormatsMessage(t *testing.T) {
	l, buf := newBufferLogger(logger.DEBUG)

	l.Info("card %d reviewed with score %d", 7, 4)

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "card 7 reviewed with score 4")
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	l, buf := newBufferLogger(logger.WARN)

	l.Debug("hidden")
	l.Info("hidden too")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_PrefixAndFields(t *testing.T) {
	l, buf := newBufferLogger(logger.DEBUG)

	l.WithPrefix("card_repo").WithField("card_id", 42).Debug("loaded")

	out := buf.String()
	assert.Contains(t, out, "card_repo")
	assert.Contains(t, out, "card_id")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "loaded")
}

func TestLogger_WithPrefixReplaces(t *testing.T) {
	l, buf := newBufferLogger(logger.DEBUG)

	l.WithPrefix("first").WithPrefix("second").Info("msg")

	out := buf.String()
	assert.Contains(t, out, "second")
	assert.NotContains(t, out, "first")
}

func TestLogger_WithFieldsKeepsParentUntouched(t *testing.T) {
	l, buf := newBufferLogger(logger.DEBUG)

	child := l.WithFields(map[string]any{"request_id": "abc"})
	l.Info("parent")
	assert.NotContains(t, buf.String(), "request_id")

	child.Info("child")
	assert.Contains(t, buf.String(), "request_id")
}

func TestContext(t *testing.T) {
	l, _ := newBufferLogger(logger.DEBUG)

	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))

	ctx := logger.NewContext(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
}
