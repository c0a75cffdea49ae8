package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"role-match/internal/domain/run"
	"role-match/internal/infrastructure/cache"
	"role-match/internal/pipeline"
	"role-match/internal/repository"

	"github.com/google/uuid"
)

type PipelineRunner interface {
	Run(ctx context.Context, params pipeline.Params) (run.Snapshot, run.Summary, error)
}

type PipelineNotifier interface {
	PipelineStarted(r run.Run)
	PipelineFinished(r run.Run)
	PipelineFailed(r run.Run)
}

type PipelineUsecase interface {
	Trigger(ctx context.Context) (run.Run, error)
	Latest(ctx context.Context) (run.Run, error)
}

// Pipeline starts recomputation runs in the background. At most one run is
// active per process, and per deployment while Redis is reachable.
type Pipeline struct {
	runner   PipelineRunner
	runs     repository.PipelineRunRepository
	cache    PipelineCache
	notifier PipelineNotifier
	params   pipeline.Params
	lockTTL  time.Duration
	logger   *log.Logger
	now      func() time.Time

	running atomic.Bool
	wg      sync.WaitGroup

	baseCtx context.Context
	cancel  context.CancelFunc

	mu   sync.RWMutex
	last *run.Run
}

type PipelineOptions struct {
	Params   pipeline.Params
	Cache    PipelineCache
	Notifier PipelineNotifier
	LockTTL  time.Duration
	Logger   *log.Logger
}

func NewPipelineUsecase(runner PipelineRunner, runs repository.PipelineRunRepository, opts PipelineOptions) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	ttl := opts.LockTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pipeline{
		runner:   runner,
		runs:     runs,
		cache:    opts.Cache,
		notifier: opts.Notifier,
		params:   opts.Params,
		lockTTL:  ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

func (u *Pipeline) Trigger(ctx context.Context) (run.Run, error) {
	if u.runner == nil {
		return run.Run{}, ErrInternal
	}
	if !u.running.CompareAndSwap(false, true) {
		return run.Run{}, ErrPipelineBusy
	}

	r := run.Run{ID: uuid.New(), Status: run.StatusRunning, StartedAt: u.now()}
	owner := r.ID.String()

	locked := false
	if u.cache != nil && u.cache.Available() {
		ok, err := u.cache.SetIfNotExists(ctx, cache.PipelineLockKey, owner, u.lockTTL)
		if err != nil {
			u.running.Store(false)
			u.logger.Printf("pipeline=recommendations step=lock status=error err=%v", err)
			return run.Run{}, ErrInternal
		}
		if !ok {
			u.running.Store(false)
			return run.Run{}, ErrPipelineBusy
		}
		locked = true
	}

	if u.runs != nil {
		if err := u.runs.Create(ctx, r); err != nil {
			u.release(owner, locked)
			u.logger.Printf("pipeline=recommendations step=record run_id=%s status=error err=%v", r.ID, err)
			return run.Run{}, ErrInternal
		}
	}
	u.remember(r)
	if u.notifier != nil {
		u.notifier.PipelineStarted(r)
	}

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		u.execute(r, locked)
	}()

	return r, nil
}

func (u *Pipeline) execute(r run.Run, locked bool) {
	defer u.release(r.ID.String(), locked)

	params := u.params
	params.RunID = r.ID
	_, summary, err := u.runner.Run(u.baseCtx, params)

	finished := u.now()
	r.FinishedAt = &finished
	r.Summary = summary
	r.Status = run.StatusSucceeded
	if err != nil {
		r.Status = run.StatusFailed
		r.Error = err.Error()
	}

	// Bookkeeping must survive a shutdown that cancelled the run itself.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if u.runs != nil {
		if ferr := u.runs.Finish(ctx, r.ID, r.Status, r.Summary, r.Error, finished); ferr != nil {
			u.logger.Printf("pipeline=recommendations step=record run_id=%s status=error err=%v", r.ID, ferr)
		}
	}
	if err == nil && u.cache != nil {
		if ierr := u.cache.InvalidateRecommendations(ctx); ierr != nil {
			u.logger.Printf("pipeline=recommendations step=invalidate_cache run_id=%s status=error err=%v", r.ID, ierr)
		}
	}
	u.remember(r)

	if u.notifier == nil {
		return
	}
	if err != nil {
		u.notifier.PipelineFailed(r)
		return
	}
	u.notifier.PipelineFinished(r)
}

func (u *Pipeline) release(owner string, locked bool) {
	if locked {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := u.cache.ReleaseIfOwner(ctx, cache.PipelineLockKey, owner); err != nil {
			u.logger.Printf("pipeline=recommendations step=unlock status=error err=%v", err)
		}
		cancel()
	}
	u.running.Store(false)
}

func (u *Pipeline) remember(r run.Run) {
	u.mu.Lock()
	u.last = &r
	u.mu.Unlock()
}

// Latest returns the most recent run, from storage when configured.
func (u *Pipeline) Latest(ctx context.Context) (run.Run, error) {
	if u.runs != nil {
		r, err := u.runs.Latest(ctx)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			u.logger.Printf("pipeline=recommendations step=latest status=error err=%v", err)
			return run.Run{}, ErrInternal
		}
	}

	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.last == nil {
		return run.Run{}, ErrNoRuns
	}
	return *u.last, nil
}

// Close cancels an active run and waits for its bookkeeping to finish.
func (u *Pipeline) Close() {
	if u == nil {
		return
	}
	u.cancel()
	u.wg.Wait()
}

// Wait blocks until the active run, if any, has finished.
func (u *Pipeline) Wait() {
	u.wg.Wait()
}
