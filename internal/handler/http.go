package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/DmitryKolesov/url-relay/internal/envelope"
	"github.com/DmitryKolesov/url-relay/internal/logger"
	"github.com/DmitryKolesov/url-relay/internal/middleware"
	"github.com/DmitryKolesov/url-relay/internal/model"
	"github.com/DmitryKolesov/url-relay/internal/relay"
)

// WebhookForwarder delivers one payload to the configured external webhook.
type WebhookForwarder interface {
	Configured() bool
	Forward(ctx context.Context, payload model.WebhookRequest) relay.Outcome
}

// Handler serves the relay HTTP surface.
type Handler struct {
	forwarder WebhookForwarder
}

// NewHandler constructs a Handler backed by the given forwarder.
func NewHandler(forwarder WebhookForwarder) *Handler {
	return &Handler{
		forwarder: forwarder,
	}
}

// RegisterRoutes builds the chi router with the standard middleware stack.
func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(logger.RequestLogger)

	r.Use(middleware.GzipReader)
	r.Use(middleware.GzipMiddleware)

	r.Post("/api/submit", h.handleSubmit)

	return r
}

// handleSubmit accepts one submission, enriches it with request metadata,
// and forwards it to the external webhook. Missing configuration answers
// 500 before the body is touched; shape errors answer 400; forwarding
// outcomes map through the forwarder's envelope.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.forwarder.Configured() {
		writeEnvelope(w, http.StatusInternalServerError, model.Envelope{
			Message: "webhook URL is not configured",
		})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, model.Envelope{
			Message: "failed to read request body",
			Details: []string{err.Error()},
		})
		return
	}
	defer r.Body.Close()

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		writeEnvelope(w, http.StatusBadRequest, model.Envelope{
			Message: "request body is not valid JSON",
		})
		return
	}

	urls, ok := envelope.StringArrayField(decoded, "urls")
	if !ok || len(urls) == 0 {
		writeEnvelope(w, http.StatusBadRequest, model.Envelope{
			Message: "urls must be a non-empty array",
		})
		return
	}

	app, _ := envelope.StringField(decoded, "app")

	createdAt, _ := envelope.StringField(decoded, "created_at")
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	payload := model.WebhookRequest{
		App:  app,
		URLs: urls,
		Meta: model.Meta{
			CreatedAt: createdAt,
			UserAgent: r.Header.Get("User-Agent"),
			IPHint:    r.Header.Get("X-Forwarded-For"),
		},
	}

	outcome := h.forwarder.Forward(r.Context(), payload)
	writeEnvelope(w, outcome.HTTPStatus, outcome.Envelope)
}

func writeEnvelope(w http.ResponseWriter, status int, env model.Envelope) {
	response, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal response envelope")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}
