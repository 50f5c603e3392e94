package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"
	"go.opentelemetry.io/otel"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

var tracer = otel.Tracer("iot-water-level/authz")

type Scope string

const (
	ScopeRead  Scope = "water.read"
	ScopeWrite Scope = "water.write"
	ScopeAdmin Scope = "water.admin"
)

type Enticator interface {
	RequireAccess(scopes ...Scope) func(http.Handler) http.Handler
}

type impl struct {
	query rego.PreparedEvalQuery
}

var errUnauthorized = errors.New("authorization failed")

// RequireAccess returns a middleware that lets a request through only if the policy
// grants every one of the given scopes to the bearer token.
func (a *impl) RequireAccess(scopes ...Scope) func(http.Handler) http.Handler {
	required := make([]string, 0, len(scopes))
	for _, s := range scopes {
		required = append(required, string(s))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error

			logger := logging.GetFromContext(r.Context())

			ctx, span := tracer.Start(r.Context(), "check-auth")
			defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

			token := r.Header.Get("Authorization")

			if token == "" || !strings.HasPrefix(token, "Bearer ") {
				err = errors.New("authorization header missing")
				logger.Info(err.Error())
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			err = a.evaluate(ctx, token[7:], required)
			if errors.Is(err, errUnauthorized) {
				logger.Warn(err.Error(), "scopes", required)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			if err != nil {
				logger.Error("opa error", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// evaluate asks the policy for the scopes granted to the token and fails unless all required scopes are among them.
func (a *impl) evaluate(ctx context.Context, token string, required []string) error {
	input := map[string]any{
		"token":  token,
		"scopes": required,
	}

	results, err := a.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return fmt.Errorf("opa eval failed: %w", err)
	}

	if len(results) == 0 {
		return errors.New("opa query could not be satisfied")
	}

	binding := results[0].Bindings["x"]

	// a denied request yields a single bool
	if allowed, ok := binding.(bool); ok && !allowed {
		return errUnauthorized
	}

	result, ok := binding.(map[string]any)
	if !ok {
		return errors.New("unexpected result type")
	}

	anyScopes, ok := result["scopes"].([]any)
	if !ok {
		return errors.New("bad response from authz policy engine")
	}

	granted := make([]Scope, 0, len(anyScopes))
	for _, s := range anyScopes {
		scope, ok := s.(string)
		if !ok {
			return errors.New("rego response type error")
		}
		granted = append(granted, Scope(scope))
	}

	for _, s := range required {
		if !slices.Contains(granted, Scope(s)) {
			return errUnauthorized
		}
	}

	return nil
}

func NewAuthenticator(ctx context.Context, policies io.Reader) (Enticator, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	query, err := rego.New(
		rego.Query("x = data.example.authz.allow"),
		rego.Module("example.rego", string(module)),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return &impl{query: query}, nil
}
