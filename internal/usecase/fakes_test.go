package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"role-match/internal/domain/learningpath"
	"role-match/internal/domain/match"
	"role-match/internal/domain/run"
	"role-match/internal/pipeline"
	"role-match/internal/repository"

	"github.com/google/uuid"
)

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

type fakeQueryRepo struct {
	employees map[string][]match.Recommendation
	paths     map[string]learningpath.Entry
	err       error
	topCalls  int
}

func (f *fakeQueryRepo) EmployeeExists(_ context.Context, employeeID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.employees[employeeID]
	return ok, nil
}

func (f *fakeQueryRepo) TopForEmployee(_ context.Context, employeeID string, limit int) ([]match.Recommendation, error) {
	f.topCalls++
	if f.err != nil {
		return nil, f.err
	}
	return match.TopK(f.employees[employeeID], limit), nil
}

func (f *fakeQueryRepo) LearningPath(_ context.Context, employeeID, roleID string) (learningpath.Entry, error) {
	if f.err != nil {
		return learningpath.Entry{}, f.err
	}
	e, ok := f.paths[employeeID+"/"+roleID]
	if !ok {
		return learningpath.Entry{}, repository.ErrNotFound
	}
	return e, nil
}

type memCache struct {
	mu          sync.Mutex
	available   bool
	data        map[string][]byte
	locks       map[string]string
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{available: true, data: map[string][]byte{}, locks: map[string]string{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = b
	c.mu.Unlock()
	return nil
}

func (c *memCache) Available() bool { return c.available }

func (c *memCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.locks[key]; ok {
		return false, nil
	}
	c.locks[key] = value
	return true, nil
}

func (c *memCache) ReleaseIfOwner(_ context.Context, key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] == value {
		delete(c.locks, key)
	}
	return nil
}

func (c *memCache) InvalidateRecommendations(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string][]byte{}
	c.invalidated++
	return nil
}

func (c *memCache) lockHeld(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.locks[key]
	return ok
}

type blockingRunner struct {
	release chan struct{}
	summary run.Summary
	err     error

	mu     sync.Mutex
	params []pipeline.Params
}

func (r *blockingRunner) Run(ctx context.Context, params pipeline.Params) (run.Snapshot, run.Summary, error) {
	r.mu.Lock()
	r.params = append(r.params, params)
	r.mu.Unlock()
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return run.Snapshot{}, run.Summary{}, ctx.Err()
		}
	}
	if r.err != nil {
		return run.Snapshot{}, run.Summary{}, r.err
	}
	return run.Snapshot{RunID: params.RunID}, r.summary, nil
}

type memRunRepo struct {
	mu   sync.Mutex
	runs []run.Run
}

func (m *memRunRepo) Create(_ context.Context, r run.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, r)
	return nil
}

func (m *memRunRepo) Finish(_ context.Context, id uuid.UUID, status run.Status, summary run.Summary, errMsg string, finishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.runs {
		if m.runs[i].ID == id {
			m.runs[i].Status = status
			m.runs[i].Summary = summary
			m.runs[i].Error = errMsg
			f := finishedAt
			m.runs[i].FinishedAt = &f
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memRunRepo) Latest(context.Context) (run.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.runs) == 0 {
		return run.Run{}, repository.ErrNotFound
	}
	return m.runs[len(m.runs)-1], nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) record(kind string, r run.Run) {
	n.mu.Lock()
	n.events = append(n.events, kind+":"+string(r.Status))
	n.mu.Unlock()
}

func (n *recordingNotifier) PipelineStarted(r run.Run)  { n.record("started", r) }
func (n *recordingNotifier) PipelineFinished(r run.Run) { n.record("finished", r) }
func (n *recordingNotifier) PipelineFailed(r run.Run)   { n.record("failed", r) }

func (n *recordingNotifier) snapshot() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}
