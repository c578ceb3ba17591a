package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockfall/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	time.Sleep(10 * time.Millisecond)
	prog.done("script finished", "calls", 42)

	out := buf.String()
	for _, want := range []string{"script finished", "calls=42", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}

	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.DebugLevel))
	h.install()
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	observability.Game().OnSpawn("T")
	observability.Game().OnLock("T", 2)
	observability.Game().OnLinesCleared(2, 100, 1)
	observability.Game().OnStatusChange("READY", "PLAYING")
	observability.Game().OnGameOver(1200, 2, 9)
	observability.Store().OnSave(ctx, "file", "abc", 128, nil)
	observability.Store().OnLoad(ctx, "file", "abc", time.Millisecond, errors.New("boom"))
	observability.Store().OnDelete(ctx, "file", "abc", nil)

	out := buf.String()
	for _, want := range []string{
		"spawn", "kind=T",
		"lock", "lines=2",
		"lines cleared", "points=100",
		"from=READY", "to=PLAYING",
		"game over", "score=1200",
		"saved", "bytes=128",
		"load failed", "err=boom",
		"deleted",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("hook log missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.InfoLevel))

	h.OnSpawn("I")
	h.OnLock("I", 0)
	if buf.Len() != 0 {
		t.Errorf("engine events should be debug-only, got %q", buf.String())
	}

	h.OnGameOver(40, 1, 1)
	if !strings.Contains(buf.String(), "game over") {
		t.Error("game over should be logged at info level")
	}
}
