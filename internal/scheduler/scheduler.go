// Package scheduler runs background tasks on a fixed interval.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type Task func(ctx context.Context) error

// Every runs task each interval until ctx is done. The first run happens
// one interval after the call. Task errors are logged and do not stop the
// loop.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := task(ctx); err != nil {
				log.Warn().Err(err).Str("task", name).Msg("scheduled task failed")
			}
		}
	}
}
