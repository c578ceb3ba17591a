package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockfall/pkg/observability"
)

// logHooks forwards engine and store events to the logger at debug level, so
// --verbose traces a run without the engine knowing about logging.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

// install registers h as the global game and store hooks.
func (h *logHooks) install() {
	observability.SetGameHooks(h)
	observability.SetStoreHooks(h)
}

func (h *logHooks) OnSpawn(kind string) {
	h.logger.Debug("spawn", "kind", kind)
}

func (h *logHooks) OnLock(kind string, lines int) {
	h.logger.Debug("lock", "kind", kind, "lines", lines)
}

func (h *logHooks) OnLinesCleared(lines, points, level int) {
	h.logger.Debug("lines cleared", "lines", lines, "points", points, "level", level)
}

func (h *logHooks) OnStatusChange(from, to string) {
	h.logger.Debug("status", "from", from, "to", to)
}

func (h *logHooks) OnGameOver(score, level, lines int) {
	h.logger.Info("game over", "score", score, "level", level, "lines", lines)
}

func (h *logHooks) OnSave(_ context.Context, backend, id string, size int, err error) {
	if err != nil {
		h.logger.Debug("save failed", "backend", backend, "id", id, "err", err)
		return
	}
	h.logger.Debug("saved", "backend", backend, "id", id, "bytes", size)
}

func (h *logHooks) OnLoad(_ context.Context, backend, id string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "backend", backend, "id", id, "err", err)
		return
	}
	h.logger.Debug("loaded", "backend", backend, "id", id, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnDelete(_ context.Context, backend, id string, err error) {
	if err != nil {
		h.logger.Debug("delete failed", "backend", backend, "id", id, "err", err)
		return
	}
	h.logger.Debug("deleted", "backend", backend, "id", id)
}

var (
	_ observability.GameHooks  = (*logHooks)(nil)
	_ observability.StoreHooks = (*logHooks)(nil)
)
