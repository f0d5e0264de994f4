package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"
)

// Watch polls the dump read set on a fixed interval until the context
// is canceled. Failed rounds are reported and the watch keeps going.
func (h *Harness) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be > 0, got %s", interval)
	}

	sched := quartz.NewStdScheduler()
	sched.Start(ctx)

	dumpJob := job.NewFunctionJob(func(jobCtx context.Context) (bool, error) {
		if err := h.Dump(jobCtx); err != nil {
			h.logger.Warn("dump round failed", zap.Error(err))
		}
		return true, nil
	})
	detail := quartz.NewJobDetail(dumpJob, quartz.NewJobKey("dump"))
	if err := sched.ScheduleJob(detail, quartz.NewSimpleTrigger(interval)); err != nil {
		return err
	}

	// first round right away, then on the trigger
	if err := h.Dump(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	sched.Stop()
	sched.Wait(context.Background())
	return nil
}
