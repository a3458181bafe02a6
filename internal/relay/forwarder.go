// Package relay forwards enriched submission payloads to the configured
// external webhook and maps the outcome into the uniform response envelope.
package relay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/DmitryKolesov/url-relay/internal/bufpool"
	"github.com/DmitryKolesov/url-relay/internal/model"
)

// Outcome is the result of one forwarding attempt: the HTTP status the relay
// should answer with and the envelope to serialize.
type Outcome struct {
	HTTPStatus int
	Envelope   model.Envelope
}

// Forwarder issues a single POST per payload to the webhook URL. No retries,
// no timeout beyond the transport default.
type Forwarder struct {
	webhookURL string
	client     *http.Client
	buffers    *bufpool.Pool
}

// NewForwarder creates a Forwarder for the given webhook URL. An empty URL
// is allowed; Configured reports it and Forward must not be called then.
func NewForwarder(webhookURL string) *Forwarder {
	return &Forwarder{
		webhookURL: webhookURL,
		client:     &http.Client{},
		buffers:    bufpool.New(16),
	}
}

// Configured reports whether a destination webhook URL is set.
func (f *Forwarder) Configured() bool {
	return f.webhookURL != ""
}

// Forward posts the payload to the webhook, exactly once. Transport failures
// map to 502 with the error text as a detail. Downstream responses are read
// as text and opportunistically JSON-decoded; a non-2xx downstream status
// maps to 502 with the downstream status and parsed body embedded.
func (f *Forwarder) Forward(ctx context.Context, payload model.WebhookRequest) Outcome {
	buf := f.buffers.Get()
	defer f.buffers.Put(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return Outcome{
			HTTPStatus: http.StatusInternalServerError,
			Envelope: model.Envelope{
				Message: "failed to encode webhook payload",
				Details: []string{err.Error()},
			},
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookURL, buf)
	if err != nil {
		return Outcome{
			HTTPStatus: http.StatusInternalServerError,
			Envelope: model.Envelope{
				Message: "failed to build webhook request",
				Details: []string{err.Error()},
			},
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Webhook call failed")

		return Outcome{
			HTTPStatus: http.StatusBadGateway,
			Envelope: model.Envelope{
				Message: "failed to reach the webhook",
				Details: []string{err.Error()},
			},
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read webhook response")

		return Outcome{
			HTTPStatus: http.StatusBadGateway,
			Envelope: model.Envelope{
				Message: "failed to read the webhook response",
				Details: []string{err.Error()},
			},
		}
	}

	var body any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			body = string(raw)
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn().
			Int("status", resp.StatusCode).
			Msg("Webhook returned a non-success status")

		return Outcome{
			HTTPStatus: http.StatusBadGateway,
			Envelope: model.Envelope{
				Message: "webhook returned an error",
				Status:  resp.StatusCode,
				Body:    body,
			},
		}
	}

	log.Info().
		Int("status", resp.StatusCode).
		Int("urls", len(payload.URLs)).
		Msg("Payload forwarded")

	return Outcome{
		HTTPStatus: http.StatusOK,
		Envelope: model.Envelope{
			Message: "forwarded",
			Status:  resp.StatusCode,
			Body:    body,
		},
	}
}
