package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"role-match/internal/config"
	"role-match/internal/database/migration"
	dbpostgres "role-match/internal/database/postgres"
	"role-match/internal/domain/learningpath"
	"role-match/internal/domain/match"
	"role-match/internal/domain/run"
	"role-match/internal/infrastructure/catalog"
	"role-match/internal/infrastructure/export"
	"role-match/internal/pipeline"
	"role-match/internal/repository"
	"role-match/internal/source"
)

func main() {
	os.Exit(runGenerate(os.Args[1:]))
}

// runGenerate returns the process exit code so deferred cleanup runs before
// main exits.
func runGenerate(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	dataDir := fs.String("data-dir", cfg.Data.Dir, "directory holding the input CSV files")
	outDir := fs.String("out-dir", cfg.Data.OutputDir, "directory receiving the generated files")
	catalogPath := fs.String("catalog", cfg.Data.CatalogPath, "resource catalog YAML (embedded default when empty)")
	workers := fs.Int("workers", cfg.Data.MatchingWorkers, "scoring workers")
	baseline := fs.String("baseline", cfg.Data.BaselineSkill, "skill guaranteed to exist in the vocabulary")
	toPostgres := fs.Bool("postgres", false, "also replace the PostgreSQL snapshot")
	employeeID := fs.String("employee", "", "employee to preview (first employee when empty)")
	topK := fs.Int("top", 3, "recommendations to preview, 0 disables the preview")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		log.Printf("failed to load catalog: %v", err)
		return 1
	}

	sinks := []pipeline.Sink{export.NewFileWriter(*outDir)}

	if *toPostgres {
		connCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		db, err := dbpostgres.Connect(connCtx, cfg.Database)
		if err != nil {
			log.Printf("failed to connect database: %v", err)
			return 1
		}
		defer func() {
			_ = db.Close()
		}()
		if err := (migration.Runner{}).Run(connCtx, db.SQLDB()); err != nil {
			log.Printf("migration failed: %v", err)
			return 1
		}
		sinks = append(sinks, repository.NewPostgresSnapshotRepository(db))
	}

	p := pipeline.NewRecommendationPipeline(learningpath.NewAnnotator(cat, ""), sinks, log.Default())
	snap, summary, err := p.Run(ctx, pipeline.Params{
		Files:    source.DefaultFiles(*dataDir),
		Baseline: *baseline,
		Workers:  *workers,
	})
	if err != nil {
		log.Printf("generate failed: %v", err)
		return 1
	}

	log.Printf("generate done employees=%d roles=%d recommendations=%d out_dir=%s",
		summary.Employees, summary.Roles, summary.Recommendations, *outDir)

	if *topK > 0 {
		preview(snap, *employeeID, *topK)
	}
	return 0
}

// preview logs the top recommendations of one employee with the learning
// path for each.
func preview(snap run.Snapshot, employeeID string, k int) {
	if employeeID == "" {
		if len(snap.Employees) == 0 {
			return
		}
		employeeID = snap.Employees[0].ID
	}

	top := snap.TopForEmployee(employeeID, k)
	if len(top) == 0 {
		log.Printf("preview employee=%s status=no_recommendations", employeeID)
		return
	}
	for i, rec := range top {
		log.Printf("preview employee=%s rank=%d role=%s score=%d matched=%q missing=%q",
			employeeID, i+1, rec.RoleID, rec.MatchScore,
			match.JoinSkills(rec.MatchedSkills), match.JoinSkills(rec.MissingSkills))

		entry, ok := snap.LearningPath(employeeID, rec.RoleID)
		if !ok {
			continue
		}
		for _, step := range entry.LearningPath {
			log.Printf("preview employee=%s role=%s learn=%q resources=%s",
				employeeID, rec.RoleID, step.Skill, strings.Join(step.Resources, " "))
		}
	}
}
