package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/resourcegate/resourcegate/gate"
	"github.com/resourcegate/resourcegate/internal/api/rest/middlewares"
	"github.com/resourcegate/resourcegate/internal/api/rest/response"
)

const (
	invalidResourcePathMessage = "resource path must be absolute"
	missingSubjectMessage      = "no authenticated subject"
)

// SessionOpener opens an authority session bound to a subject.
type SessionOpener interface {
	Session(subject string) gate.Authority
}

// DecisionRequest is the payload of a decision call.
type DecisionRequest struct {
	Operation gate.Operation `json:"operation"`
	Path      string         `json:"path"`
}

// DecisionResponse carries the gate's verdict for a decision call.
type DecisionResponse struct {
	RequestID   uuid.UUID       `json:"requestId"`
	Operation   gate.Operation  `json:"operation"`
	Path        string          `json:"path"`
	Result      gate.GateResult `json:"result"`
	EvaluatedAt time.Time       `json:"evaluatedAt"`
}

// DecisionHandler resolves access decisions over HTTP. It acts as a
// minimal single-unit chain evaluator: the gate is consulted only when its
// path pattern matches the resource path, otherwise the verdict is DontCare.
type DecisionHandler struct {
	gate     gate.Gate
	sessions SessionOpener
	logger   *slog.Logger
}

// ServeHTTP handles decision requests for the authenticated subject.
func (h *DecisionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := new(DecisionRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestBodyMessage)
		return
	}

	if !strings.HasPrefix(req.Path, "/") {
		response.JSONErrorResponse(w, http.StatusBadRequest, invalidResourcePathMessage)
		return
	}

	subject, ok := middlewares.SubjectFromContext(r.Context())
	if !ok {
		response.JSONErrorResponse(w, http.StatusUnauthorized, missingSubjectMessage)
		return
	}

	requestID := uuid.New()

	result := gate.DontCare
	if h.gate.PathPattern().MatchString(req.Path) {
		result = h.gate.Decide(r.Context(), req.Operation, &gate.ResourceContext{
			RequestID: requestID,
			Path:      req.Path,
			Session:   h.sessions.Session(subject),
		})
	}

	h.logger.InfoContext(r.Context(), "access decision",
		slog.String("request_id", requestID.String()),
		slog.String("subject", subject),
		slog.String("operation", string(req.Operation)),
		slog.String("path", req.Path),
		slog.String("result", string(result)),
	)

	response.JSONResponse(w, http.StatusOK, &DecisionResponse{
		RequestID:   requestID,
		Operation:   req.Operation,
		Path:        req.Path,
		Result:      result,
		EvaluatedAt: time.Now(),
	})
}

// NewDecisionHandler creates an HTTP handler resolving access decisions
// through the given gate, opening authority sessions via opener.
func NewDecisionHandler(g gate.Gate, opener SessionOpener, logger *slog.Logger) http.Handler {
	return &DecisionHandler{
		gate:     g,
		sessions: opener,
		logger:   logger,
	}
}
