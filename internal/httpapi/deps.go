package httpapi

import (
	"sync/atomic"
	"time"

	"jobboard-engine/internal/board"
	"jobboard-engine/internal/classify"
	"jobboard-engine/internal/config"
	"jobboard-engine/internal/events"
)

type Deps struct {
	Board board.Service
	Hub   *events.Hub

	// Classifier supplies the arrangement and job type filter options.
	Classifier classify.Classifier

	// SourceName and LastModified describe the job source for /api/status.
	SourceName   string
	LastModified func() (time.Time, bool)

	// Reload drops cached jobs. Nil when jobs are read on every request.
	Reload func()

	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Limiter *ClientLimiter
}
