// Package basicauth gates requests on the username of an HTTP Basic
// credential. The password half of the pair is never inspected: the username
// acts as a shared API key.
package basicauth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"applicant-records/pkg/platform/httputil"
	"applicant-records/pkg/requestcontext"
	"applicant-records/pkg/secrets"
)

// Realm is advertised in the WWW-Authenticate challenge.
const Realm = "applicant-records"

// Verifier decides whether a presented username is an accepted credential.
type Verifier interface {
	Verify(username string) bool
}

// StaticKey accepts exactly one configured key, compared in constant time.
type StaticKey struct {
	key []byte
}

func NewStaticKey(key string) StaticKey {
	return StaticKey{key: []byte(key)}
}

func (k StaticKey) Verify(username string) bool {
	if len(k.key) == 0 || username == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(username), k.key) == 1
}

// HashedKey accepts the key whose bcrypt hash is configured, so the
// plaintext key never has to live in the service environment.
type HashedKey struct {
	hash string
}

func NewHashedKey(hash string) HashedKey {
	return HashedKey{hash: hash}
}

func (k HashedKey) Verify(username string) bool {
	if k.hash == "" || username == "" {
		return false
	}
	return secrets.VerifyKey(username, k.hash) == nil
}

// Metrics counts rejected requests.
type Metrics struct {
	AuthFailures *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		AuthFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "applicant_records_auth_failures_total",
			Help: "Requests rejected by the basic auth gate, labelled by reason",
		}, []string{"reason"}),
	}
}

type Option func(*gate)

// WithMetrics records every rejection on m.
func WithMetrics(m *Metrics) Option {
	return func(g *gate) {
		g.metrics = m
	}
}

type gate struct {
	verifier Verifier
	logger   *slog.Logger
	metrics  *Metrics
}

// RequireBasicAuth returns middleware that only lets a request through when
// its Basic credential username satisfies verifier. Rejected requests get a
// 401 with a Basic challenge and never reach next.
func RequireBasicAuth(verifier Verifier, logger *slog.Logger, opts ...Option) func(http.Handler) http.Handler {
	g := &gate{verifier: verifier, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, _, ok := r.BasicAuth()
			switch {
			case !ok:
				g.reject(w, r, "missing_credentials")
				return
			case !g.verifier.Verify(username):
				g.reject(w, r, "invalid_credentials")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (g *gate) reject(w http.ResponseWriter, r *http.Request, reason string) {
	ctx := r.Context()
	g.logger.WarnContext(ctx, "unauthorized request",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestcontext.RequestID(ctx),
	)
	if g.metrics != nil {
		g.metrics.AuthFailures.WithLabelValues(reason).Inc()
	}
	w.Header().Set("WWW-Authenticate", `Basic realm="`+Realm+`"`)
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{Error: "Unauthorized"})
}
