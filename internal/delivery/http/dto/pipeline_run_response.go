package dto

import (
	"time"

	"role-match/internal/domain/run"

	"github.com/google/uuid"
)

type PipelineRunResponse struct {
	RunID      uuid.UUID   `json:"run_id"`
	Status     run.Status  `json:"status"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt *time.Time  `json:"finished_at"`
	Summary    run.Summary `json:"summary"`
	Error      string      `json:"error,omitempty"`
}

func NewPipelineRunResponse(r run.Run) PipelineRunResponse {
	return PipelineRunResponse{
		RunID:      r.ID,
		Status:     r.Status,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Summary:    r.Summary,
		Error:      r.Error,
	}
}
