package basicauth

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"applicant-records/pkg/secrets"
)

const apiKey = "applicant-api-key"

// BasicAuthSuite tests the credential gate. A rejected request must never
// reach the wrapped handler, whatever the verifier.
type BasicAuthSuite struct {
	suite.Suite
	logger        *slog.Logger
	metrics       *Metrics
	handlerCalled bool
}

func TestBasicAuthSuite(t *testing.T) {
	suite.Run(t, new(BasicAuthSuite))
}

func (s *BasicAuthSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.metrics = NewMetrics(prometheus.NewRegistry())
	s.handlerCalled = false
}

func (s *BasicAuthSuite) serve(verifier Verifier, setup func(r *http.Request)) *httptest.ResponseRecorder {
	handler := RequireBasicAuth(verifier, s.logger, WithMetrics(s.metrics))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.handlerCalled = true
			w.WriteHeader(http.StatusOK)
		}),
	)
	req := httptest.NewRequest(http.MethodGet, "/skills", nil)
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func (s *BasicAuthSuite) assertRejected(w *httptest.ResponseRecorder) {
	s.False(s.handlerCalled, "next handler should NOT be called")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(`Basic realm="applicant-records"`, w.Header().Get("WWW-Authenticate"))
	s.JSONEq(`{"error":"Unauthorized"}`, w.Body.String())
}

func (s *BasicAuthSuite) TestStaticKey() {
	verifier := NewStaticKey(apiKey)

	s.Run("matching username passes, password ignored", func() {
		s.SetupTest()
		w := s.serve(verifier, func(r *http.Request) { r.SetBasicAuth(apiKey, "whatever") })
		s.True(s.handlerCalled)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("empty password still passes", func() {
		s.SetupTest()
		w := s.serve(verifier, func(r *http.Request) { r.SetBasicAuth(apiKey, "") })
		s.True(s.handlerCalled)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("missing header rejected", func() {
		s.SetupTest()
		w := s.serve(verifier, nil)
		s.assertRejected(w)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.AuthFailures.WithLabelValues("missing_credentials")))
	})

	s.Run("wrong username rejected", func() {
		s.SetupTest()
		w := s.serve(verifier, func(r *http.Request) { r.SetBasicAuth("someone-else", apiKey) })
		s.assertRejected(w)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.AuthFailures.WithLabelValues("invalid_credentials")))
	})

	s.Run("comparison is case sensitive", func() {
		s.SetupTest()
		w := s.serve(verifier, func(r *http.Request) { r.SetBasicAuth("APPLICANT-API-KEY", "") })
		s.assertRejected(w)
	})

	s.Run("key in password field does not count", func() {
		s.SetupTest()
		w := s.serve(verifier, func(r *http.Request) { r.SetBasicAuth("", apiKey) })
		s.assertRejected(w)
	})

	s.Run("non-basic scheme rejected", func() {
		s.SetupTest()
		w := s.serve(verifier, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+apiKey) })
		s.assertRejected(w)
	})

	s.Run("malformed base64 rejected", func() {
		s.SetupTest()
		w := s.serve(verifier, func(r *http.Request) { r.Header.Set("Authorization", "Basic !!!") })
		s.assertRejected(w)
	})
}

func (s *BasicAuthSuite) TestUnconfiguredKeyRejectsEverything() {
	w := s.serve(NewStaticKey(""), func(r *http.Request) { r.SetBasicAuth("", "") })
	s.assertRejected(w)
}

func (s *BasicAuthSuite) TestHashedKey() {
	hash, err := secrets.HashKey(apiKey, bcrypt.MinCost)
	s.Require().NoError(err)
	verifier := NewHashedKey(hash)

	s.Run("plaintext key matching the hash passes", func() {
		s.SetupTest()
		w := s.serve(verifier, func(r *http.Request) { r.SetBasicAuth(apiKey, "") })
		s.True(s.handlerCalled)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("hash itself is not a credential", func() {
		s.SetupTest()
		w := s.serve(verifier, func(r *http.Request) { r.SetBasicAuth(hash, "") })
		s.assertRejected(w)
	})
}
