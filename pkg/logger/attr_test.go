package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrocert/notify/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("nil error yields empty attr", func(t *testing.T) {
		t.Parallel()
		assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	})

	t.Run("non-nil error keyed as error", func(t *testing.T) {
		t.Parallel()
		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
	})
}

func TestIdentifierAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.UserID("").Equal(slog.Attr{}))
	assert.Equal(t, "user_id", logger.UserID("u1").Key)
	assert.Equal(t, "u1", logger.UserID("u1").Value.String())

	assert.True(t, logger.NotificationID("").Equal(slog.Attr{}))
	assert.Equal(t, "notification_id", logger.NotificationID("n1").Key)

	assert.Equal(t, "channel", logger.Channel("EMAIL").Key)
	assert.Equal(t, "component", logger.Component("dispatcher").Key)
	assert.Equal(t, int64(5), logger.Count(5).Value.Int64())
}
