package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DmitryKolesov/url-relay/internal/envelope"
	"github.com/DmitryKolesov/url-relay/internal/model"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not completed yet.
var ErrSubmitInFlight = errors.New("collector: submission already in flight")

// ResultState classifies the outcome of a submission attempt.
type ResultState int

const (
	// StateOK means the relay accepted and forwarded the submission.
	StateOK ResultState = iota
	// StateRejected means validation failed and no network call was made.
	StateRejected
	// StateNetworkError means the relay could not be reached or read.
	StateNetworkError
	// StateFailed means the relay answered with a failure status.
	StateFailed
)

// Result is the rendered outcome of one submission attempt.
type Result struct {
	State   ResultState
	Message string
	Status  int
	Details []string
	Body    any
}

// Submit validates the current entries and, when no fatal error exists,
// posts the submission payload to the relay endpoint. Validation failures
// and transport failures are reported through the Result, not the error;
// the error is reserved for misuse (concurrent submit) and encoding faults.
func (c *Collector) Submit(ctx context.Context) (*Result, error) {
	if c.inFlight {
		return nil, ErrSubmitInFlight
	}
	c.inFlight = true
	defer func() { c.inFlight = false }()

	if v := c.Validate(); v.Fatal {
		c.result = &Result{
			State:   StateRejected,
			Message: "submission rejected",
			Details: v.Messages,
		}
		return c.result, nil
	}

	submission := model.Submission{
		App:       c.app,
		URLs:      c.UniqueURLs(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	buf := c.buffers.Get()
	defer c.buffers.Put(buf)

	if err := json.NewEncoder(buf).Encode(submission); err != nil {
		return nil, fmt.Errorf("encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, buf)
	if err != nil {
		return nil, fmt.Errorf("building relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.result = &Result{
			State:   StateNetworkError,
			Message: "could not reach the relay",
			Details: []string{err.Error()},
		}
		return c.result, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.result = &Result{
			State:   StateNetworkError,
			Message: "could not read the relay response",
			Details: []string{err.Error()},
		}
		return c.result, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		decoded = string(body)
	}

	parsed := envelope.Parse(decoded)

	result := &Result{
		Message: parsed.Message,
		Details: parsed.Details,
		Body:    parsed.Body,
	}
	if parsed.HasStatus {
		result.Status = parsed.Status
	}

	if resp.StatusCode >= http.StatusBadRequest {
		result.State = StateFailed
	} else {
		result.State = StateOK
	}

	c.result = result
	return result, nil
}
