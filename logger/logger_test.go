package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLoggerValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			assert := assert.New(t)
			assert.NoError(InitLogger(level))
			assert.NotNil(GetLogger())
			assert.Same(globalLogger, GetLogger())
		})
	}
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	assert.Error(t, InitLogger("loud"))
}

func TestGetLoggerBeforeInit(t *testing.T) {
	globalLogger = nil
	assert.Same(t, slog.Default(), GetLogger())
}
