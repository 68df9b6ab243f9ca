package httpapi

import (
	"context"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-workboard/components/dashboard/commands"
	"github.com/goliatone/go-workboard/components/dedupe"
)

// TokenResolver maps a bearer token to the owning user id.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (string, error)
}

// CORS headers sent on every dedupe response.
const (
	AllowOrigin  = "*"
	AllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// DedupeHandler exposes the duplicate reconciliation job as a POST endpoint
// authenticated by bearer token.
type DedupeHandler struct {
	Tokens  TokenResolver
	Command gocommand.Commander[commands.RemoveDuplicatesInput]
	// Noun names the records in the response message. Defaults to "products".
	Noun   string
	Logger *zerolog.Logger
}

type dedupeResponse struct {
	Message           string               `json:"message"`
	DuplicatesRemoved int                  `json:"duplicatesRemoved"`
	DuplicateGroups   int                  `json:"duplicateGroups,omitempty"`
	Details           []dedupe.GroupDetail `json:"details,omitempty"`
}

type failureResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (h *DedupeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for k, v := range CORSHeaders() {
		w.Header().Set(k, v)
	}
	status, body := h.Respond(r.Context(), r.Method, r.Header.Get("Authorization"))
	if status == http.StatusMethodNotAllowed {
		w.Header().Set("Allow", "POST, OPTIONS")
	}
	if body == nil {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, body)
}

// CORSHeaders returns the headers every dedupe response carries.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  AllowOrigin,
		"Access-Control-Allow-Headers": AllowHeaders,
		"Access-Control-Allow-Methods": "POST, OPTIONS",
	}
}

// Respond runs one dedupe request and returns the status with the JSON body
// to send. A nil body means an empty response.
func (h *DedupeHandler) Respond(ctx context.Context, method, authorization string) (int, any) {
	switch method {
	case http.MethodOptions:
		return http.StatusOK, nil
	case http.MethodPost:
	default:
		return http.StatusMethodNotAllowed, failureResponse{Error: "Method not allowed"}
	}

	log := zerolog.Nop()
	if h.Logger != nil {
		log = h.Logger.With().Str("handler", "dedupe").Logger()
	}

	token := BearerToken(authorization)
	if token == "" || h.Tokens == nil {
		return http.StatusUnauthorized, failureResponse{Error: "Unauthorized"}
	}
	owner, err := h.Tokens.ResolveToken(ctx, token)
	if err != nil || owner == "" {
		log.Debug().Err(err).Msg("token rejected")
		return http.StatusUnauthorized, failureResponse{Error: "Unauthorized"}
	}

	if h.Command == nil {
		return http.StatusInternalServerError, failureResponse{Error: "Failed to remove duplicates", Details: ErrNotConfigured.Error()}
	}
	var summary dedupe.Summary
	if err := h.Command.Execute(ctx, commands.RemoveDuplicatesInput{OwnerID: owner, Result: &summary}); err != nil {
		log.Error().Err(err).Str("owner_id", owner).Msg("dedupe failed")
		return http.StatusInternalServerError, failureResponse{Error: "Failed to remove duplicates", Details: err.Error()}
	}

	noun := h.Noun
	if noun == "" {
		noun = "products"
	}
	resp := dedupeResponse{
		Message:           summary.Message(noun),
		DuplicatesRemoved: summary.DuplicatesRemoved,
	}
	if summary.DuplicateGroups > 0 {
		resp.DuplicateGroups = summary.DuplicateGroups
		resp.Details = summary.Details
	}
	return http.StatusOK, resp
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
