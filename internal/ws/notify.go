package ws

import (
	"encoding/json"
	"log"
	"time"

	"role-match/internal/domain/run"
)

const (
	EventPipelineStarted  = "pipeline_started"
	EventPipelineFinished = "pipeline_finished"
	EventPipelineFailed   = "pipeline_failed"
)

type PipelineEvent struct {
	Type      string       `json:"type"`
	RunID     string       `json:"run_id"`
	Status    run.Status   `json:"status"`
	Summary   *run.Summary `json:"summary,omitempty"`
	Error     string       `json:"error,omitempty"`
	Timestamp string       `json:"timestamp"`
}

// Notifier pushes pipeline lifecycle events to every connected client.
type Notifier struct {
	hub    *Hub
	logger *log.Logger
	now    func() time.Time
}

func NewNotifier(hub *Hub, logger *log.Logger) *Notifier {
	return &Notifier{hub: hub, logger: logger, now: time.Now}
}

func (n *Notifier) PipelineStarted(r run.Run) {
	n.publish(EventPipelineStarted, r, false)
}

func (n *Notifier) PipelineFinished(r run.Run) {
	n.publish(EventPipelineFinished, r, true)
}

func (n *Notifier) PipelineFailed(r run.Run) {
	n.publish(EventPipelineFailed, r, false)
}

func (n *Notifier) publish(kind string, r run.Run, withSummary bool) {
	if n == nil || n.hub == nil {
		return
	}

	evt := PipelineEvent{
		Type:      kind,
		RunID:     r.ID.String(),
		Status:    r.Status,
		Error:     r.Error,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	if withSummary {
		s := r.Summary
		evt.Summary = &s
	}

	b, err := json.Marshal(evt)
	if err != nil {
		if n.logger != nil {
			n.logger.Printf("WS event encode error | type=%s error=%v", kind, err)
		}
		return
	}
	n.hub.Broadcast(b)
}
