package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/resourcegate/resourcegate/internal/api/rest/response"
	"github.com/resourcegate/resourcegate/internal/keyfetcher"
)

const (
	authHeaderMissingMessage       = "authorization header missing"
	invalidAuthHeaderFormatMessage = "invalid authorization header format"
	internalServerErrorMessage     = "internal server error"
	invalidTokenMessage            = "invalid token"
)

// JWTAuthenticationMiddleware validates bearer tokens and stores the token
// subject in the request context. Authorization is left to the decision
// handler behind it; this middleware only establishes who is calling.
type JWTAuthenticationMiddleware struct {
	publicKeyFetcher keyfetcher.PublicKeyFetcher
	logger           *slog.Logger
}

// Handle processes incoming HTTP requests, rejecting those without a valid
// signed token and passing the authenticated subject down the chain.
func (m *JWTAuthenticationMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.JSONErrorResponse(w, http.StatusUnauthorized, authHeaderMissingMessage)
			return
		}

		token, err := extractToken(authHeader)
		if err != nil {
			m.logger.ErrorContext(r.Context(), "failed to extract token", "error", err)
			response.JSONErrorResponse(w, http.StatusUnauthorized, invalidAuthHeaderFormatMessage)
			return
		}

		publicKey, err := m.publicKeyFetcher.FetchPublicKey()
		if err != nil {
			m.logger.ErrorContext(r.Context(), "failed to fetch public key", "error", err)
			response.JSONErrorResponse(w, http.StatusInternalServerError, internalServerErrorMessage)
			return
		}

		claims := new(jwt.MapClaims)
		_, err = jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
			return publicKey, nil
		})

		if err != nil {
			m.logger.ErrorContext(r.Context(), "failed to parse token", "error", err)
			response.JSONErrorResponse(w, http.StatusUnauthorized, invalidTokenMessage)
			return
		}

		sub, err := claims.GetSubject()
		if sub == "" || err != nil {
			m.logger.ErrorContext(r.Context(), "failed to get subject from token claims")
			response.JSONErrorResponse(w, http.StatusUnauthorized, invalidTokenMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), sub)))
	})
}

// extractToken extracts a Bearer token from the Authorization header.
// Returns the extracted token or an error if the header format is invalid.
func extractToken(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

// NewJWTAuthenticationMiddleware returns a new instance of JWTAuthenticationMiddleware with the given public key fetcher.
func NewJWTAuthenticationMiddleware(
	publicKeyFetcher keyfetcher.PublicKeyFetcher,
	logger *slog.Logger,
) Middleware {
	return &JWTAuthenticationMiddleware{
		publicKeyFetcher: publicKeyFetcher,
		logger:           logger,
	}
}
