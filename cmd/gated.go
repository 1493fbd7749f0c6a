package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/resourcegate/resourcegate/gate"
	"github.com/resourcegate/resourcegate/internal/api/rest"
	"github.com/resourcegate/resourcegate/internal/api/rest/handlers"
	"github.com/resourcegate/resourcegate/internal/api/rest/middlewares"
	"github.com/resourcegate/resourcegate/internal/authn"
	"github.com/resourcegate/resourcegate/internal/keyfetcher"
	"github.com/resourcegate/resourcegate/internal/version"
)

const (
	PrivateKeyEnv = "PRIVATE_KEY_BASE64"
	PublicKeyEnv  = "PUBLIC_KEY_BASE64"

	CheckRootEnv   = "GATE_CHECK_ROOT"
	PrefixEnv      = "GATE_CHECKPATH_PREFIX"
	PathPatternEnv = "GATE_PATH_PATTERN"

	DefaultCheckRoot = "/check"

	ReadTimeout  = 5 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 120 * time.Second

	PortNumber = 8080
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("version", version.Version),
	)

	g, err := gate.New(gate.Config{
		CheckRoot:   envOrDefault(CheckRootEnv, DefaultCheckRoot),
		Prefix:      os.Getenv(PrefixEnv),
		PathPattern: os.Getenv(PathPatternEnv),
	}, gate.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	sessions, err := newSessionOpener(logger)
	if err != nil {
		log.Fatal(err)
	}

	mux := rest.NewMuxWithHandlers(
		&rest.RouterConfig{
			SignInHandler: handlers.NewSignInHandler(
				authn.NewStaticAuthenticator(map[string]string{
					"user1@example.com": "password",
					"user2@example.com": "password",
				}),
				keyfetcher.FromBase64Env(PrivateKeyEnv),
				logger,
			),
			DecisionHandler: handlers.NewDecisionHandler(g, sessions, logger),
			AuthenticationMiddleware: middlewares.NewJWTAuthenticationMiddleware(
				keyfetcher.FromBase64Env(PublicKeyEnv),
				logger,
			),
		},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%v", PortNumber),
		Handler:      mux,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	log.Printf("Starting server on :%v (Version: %s)\n", PortNumber, version.Version)
	log.Fatal(server.ListenAndServe())
}

// envOrDefault returns the value of the environment variable key, or fallback when unset.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
