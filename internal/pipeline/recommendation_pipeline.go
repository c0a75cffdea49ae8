package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"role-match/internal/domain/learningpath"
	"role-match/internal/domain/match"
	"role-match/internal/domain/matching"
	"role-match/internal/domain/run"
	"role-match/internal/source"

	"github.com/google/uuid"
)

// Sink persists a finished snapshot. A sink must either store the whole
// snapshot or nothing. Check runs for every sink before any Write, so a sink
// that cannot accept the snapshot stops the run while all outputs are intact.
type Sink interface {
	Name() string
	Check(ctx context.Context) error
	Write(ctx context.Context, s run.Snapshot) error
}

type Params struct {
	RunID    uuid.UUID
	Files    source.Files
	Baseline string
	Workers  int
}

type RecommendationPipeline struct {
	annotator *learningpath.Annotator
	sinks     []Sink

	log *log.Logger
}

func NewRecommendationPipeline(annotator *learningpath.Annotator, sinks []Sink, logger *log.Logger) *RecommendationPipeline {
	if logger == nil {
		logger = log.Default()
	}
	if annotator == nil {
		annotator = learningpath.NewAnnotator(nil, "")
	}
	return &RecommendationPipeline{
		annotator: annotator,
		sinks:     sinks,
		log:       logger,
	}
}

// Run loads the inputs, scores every employee against every role, builds the
// learning paths and hands the snapshot to each sink in order. Any error
// before the sinks are reached leaves every output untouched.
func (p *RecommendationPipeline) Run(ctx context.Context, params Params) (run.Snapshot, run.Summary, error) {
	if p == nil {
		return run.Snapshot{}, run.Summary{}, fmt.Errorf("nil pipeline")
	}
	runID := params.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	start := time.Now()

	p.log.Printf("pipeline=recommendations run_id=%s status=started", runID)
	defer func() {
		p.log.Printf("pipeline=recommendations run_id=%s status=finished duration=%s", runID, time.Since(start))
	}()

	stepStart := time.Now()
	ds, err := source.Load(ctx, params.Files, params.Baseline)
	if err != nil {
		p.log.Printf("pipeline=recommendations step=load status=error err=%v", err)
		return run.Snapshot{}, run.Summary{}, err
	}
	p.log.Printf("pipeline=recommendations step=load status=ok skills=%d roles=%d employees=%d duration=%s",
		ds.Vocabulary.Len(), len(ds.Roles), len(ds.Employees), time.Since(stepStart))

	stepStart = time.Now()
	recs, unresolved, err := p.score(ctx, ds, params.Workers)
	if err != nil {
		p.log.Printf("pipeline=recommendations step=scoring status=error err=%v", err)
		return run.Snapshot{}, run.Summary{}, err
	}
	p.log.Printf("pipeline=recommendations step=scoring status=ok pairs=%d unresolved_skill_ids=%d duration=%s",
		len(recs), unresolved, time.Since(stepStart))

	stepStart = time.Now()
	paths, uncatalogued := p.annotate(recs)
	p.log.Printf("pipeline=recommendations step=learning_paths status=ok entries=%d uncatalogued_skills=%d duration=%s",
		len(paths), uncatalogued, time.Since(stepStart))

	snap := run.Snapshot{
		RunID:           runID,
		Vocabulary:      ds.Vocabulary,
		Roles:           ds.Roles,
		Employees:       ds.Employees,
		Recommendations: recs,
		LearningPaths:   paths,
	}
	summary := run.Summary{
		Employees:          len(ds.Employees),
		Roles:              len(ds.Roles),
		Skills:             ds.Vocabulary.Len(),
		Recommendations:    len(recs),
		UnresolvedSkillIDs: unresolved,
		UncataloguedSkills: uncatalogued,
	}

	if err := ctx.Err(); err != nil {
		return run.Snapshot{}, run.Summary{}, err
	}

	stepStart = time.Now()
	for _, s := range p.sinks {
		if s == nil {
			continue
		}
		if err := s.Check(ctx); err != nil {
			p.log.Printf("pipeline=recommendations step=preflight sink=%s status=error err=%v", s.Name(), err)
			return run.Snapshot{}, run.Summary{}, fmt.Errorf("sink %s: %w", s.Name(), err)
		}
	}
	p.log.Printf("pipeline=recommendations step=preflight status=ok sinks=%d duration=%s", len(p.sinks), time.Since(stepStart))

	for _, s := range p.sinks {
		if s == nil {
			continue
		}
		stepStart = time.Now()
		if err := s.Write(ctx, snap); err != nil {
			p.log.Printf("pipeline=recommendations step=sink sink=%s status=error err=%v", s.Name(), err)
			return run.Snapshot{}, run.Summary{}, fmt.Errorf("sink %s: %w", s.Name(), err)
		}
		p.log.Printf("pipeline=recommendations step=sink sink=%s status=ok duration=%s", s.Name(), time.Since(stepStart))
	}

	p.log.Printf("pipeline=recommendations summary employees=%d roles=%d skills=%d pairs=%d unresolved_skill_ids=%d uncatalogued_skills=%d",
		summary.Employees, summary.Roles, summary.Skills, summary.Recommendations, summary.UnresolvedSkillIDs, summary.UncataloguedSkills)

	return snap, summary, nil
}

// score fans out one task per employee. Each task fills its own segment of
// the pre-allocated result slice, so the output keeps employee-major order.
func (p *RecommendationPipeline) score(ctx context.Context, ds source.Dataset, workers int) ([]match.Recommendation, int, error) {
	roles := matching.RoleProfiles(ds.Vocabulary, ds.Roles)
	unresolved := 0
	for _, r := range roles {
		unresolved += r.Unresolved
	}

	nRoles := len(roles)
	out := make([]match.Recommendation, len(ds.Employees)*nRoles)
	empUnresolved := make([]int, len(ds.Employees))
	if len(ds.Employees) == 0 {
		return out, unresolved, nil
	}

	if workers <= 0 {
		workers = 1
	}
	if workers > len(ds.Employees) {
		workers = len(ds.Employees)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(workers, workers*2)
	results := pool.Run(runCtx)

	go func() {
		defer pool.Close()
		for i := range ds.Employees {
			i := i
			pool.Submit(func(ctx context.Context) Result {
				if err := ctx.Err(); err != nil {
					return Result{Index: i, Err: err}
				}
				ep := matching.EmployeeProfile(ds.Vocabulary, ds.Employees[i])
				empUnresolved[i] = ep.Unresolved
				copy(out[i*nRoles:(i+1)*nRoles], matching.ScoreEmployee(ep, roles))
				return Result{Index: i}
			})
		}
	}()

	var firstErr error
	for r := range results {
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
			cancel()
		}
	}
	if firstErr != nil {
		return nil, 0, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	for _, n := range empUnresolved {
		unresolved += n
	}
	return out, unresolved, nil
}

func (p *RecommendationPipeline) annotate(recs []match.Recommendation) ([]learningpath.Entry, int) {
	entries := make([]learningpath.Entry, 0, len(recs))
	uncatalogued := map[string]struct{}{}
	for _, rec := range recs {
		entries = append(entries, p.annotator.Annotate(rec))
		for _, name := range rec.MissingSkills {
			if !p.annotator.Catalogued(name) {
				uncatalogued[name] = struct{}{}
			}
		}
	}
	return entries, len(uncatalogued)
}
