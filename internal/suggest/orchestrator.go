package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
)

// Status of a suggestion request or of a single field within it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusTimedOut  Status = "timed_out"
)

// FieldResult is the terminal outcome for one requested field.
type FieldResult struct {
	Status      Status   `json:"status"`
	Suggestions []string `json:"suggestions,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Request is the terminal-state result of a suggestion run. Fields are
// requested independently, so some may succeed while others fail.
type Request struct {
	ID         uuid.UUID             `json:"id"`
	PostID     uuid.UUID             `json:"postId"`
	Fields     []Field               `json:"fields"`
	Status     Status                `json:"status"`
	Results    map[Field]FieldResult `json:"results"`
	StartedAt  time.Time             `json:"startedAt"`
	FinishedAt time.Time             `json:"finishedAt"`
}

// ErrNoFields is returned for an empty field set; this is the only
// programmer-error input that fails instead of producing a terminal result.
var ErrNoFields = errors.New("no suggestion fields requested")

// Orchestrator fans a suggestion request out to the provider, one call per
// field, under a shared deadline. Transient provider failures are retried
// once; content-policy rejections are not. A field whose call outlives the
// deadline is marked timed out and its in-flight call abandoned.
type Orchestrator struct {
	provider Provider
	timeout  time.Duration
	log      *slog.Logger
}

func NewOrchestrator(provider Provider, timeout time.Duration, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		timeout:  timeout,
		log:      log,
	}
}

// Request generates suggestions for every requested field against the given
// snapshot. It always returns a request in a terminal state; provider errors
// are captured per field, never raised.
func (o *Orchestrator) Request(ctx context.Context, snap Snapshot, fields []Field) (*Request, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	for _, f := range fields {
		if _, ok := ParseField(string(f)); !ok {
			return nil, fmt.Errorf("unknown suggestion field %q", f)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req := &Request{
		ID:        uuid.New(),
		PostID:    snap.PostID,
		Fields:    fields,
		Status:    StatusPending,
		Results:   make(map[Field]FieldResult, len(fields)),
		StartedAt: time.Now(),
	}

	results := make([]FieldResult, len(fields))

	var g errgroup.Group
	for i, field := range fields {
		g.Go(func() error {
			results[i] = o.generateField(ctx, field, snap)
			return nil
		})
	}
	_ = g.Wait()

	for i, field := range fields {
		req.Results[field] = results[i]
	}
	req.FinishedAt = time.Now()
	req.Status = aggregate(results)

	o.log.Info("suggestion request finished",
		"postId", snap.PostID,
		"fields", len(fields),
		"status", req.Status,
		"duration_ms", req.FinishedAt.Sub(req.StartedAt).Milliseconds(),
	)

	return req, nil
}

func (o *Orchestrator) generateField(ctx context.Context, field Field, snap Snapshot) FieldResult {
	var suggestions []string

	backoff := retry.WithMaxRetries(1, retry.NewConstant(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		suggestions, err = o.provider.Generate(ctx, field, snap)
		if err != nil && IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})

	switch {
	case err == nil:
		return FieldResult{Status: StatusSucceeded, Suggestions: suggestions}
	case errors.Is(err, context.DeadlineExceeded):
		return FieldResult{Status: StatusTimedOut, Error: err.Error()}
	default:
		o.log.Warn("suggestion generation failed", "postId", snap.PostID, "field", field, "error", err)
		return FieldResult{Status: StatusFailed, Error: err.Error()}
	}
}

// aggregate folds per-field outcomes into the request status: succeeded only
// when every field succeeded, timed out when the worst outcome was a
// deadline expiry, failed otherwise.
func aggregate(results []FieldResult) Status {
	status := StatusSucceeded
	for _, r := range results {
		switch r.Status {
		case StatusFailed:
			return StatusFailed
		case StatusTimedOut:
			status = StatusTimedOut
		}
	}
	return status
}
