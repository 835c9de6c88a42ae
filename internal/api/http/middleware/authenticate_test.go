package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/mkarpova/slidedeck-server/internal/api/http/context"
	"github.com/mkarpova/slidedeck-server/internal/model"
	"github.com/mkarpova/slidedeck-server/internal/testutil"
)

// MockIdentityResolver mocks the IdentityResolver interface
type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) ResolveIdentity(ctx context.Context, authorization string) (string, error) {
	args := m.Called(ctx, authorization)
	return args.String(0), args.Error(1)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	resolver := &MockIdentityResolver{}
	resolver.On("ResolveIdentity", mock.Anything, "Bearer good-token").Return("a@x.com", nil)
	ctxMgr := httpctx.NewManager()
	authenticate := NewAuthenticate(resolver, ctxMgr, testutil.MakeNoopLogger())

	var seenEmail string
	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenEmail, _ = ctxMgr.GetEmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/store", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	authenticate.Wrap(probe).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", seenEmail)
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
	}{
		{
			name:          "missing header",
			authorization: "",
		},
		{
			name:          "bare prefix",
			authorization: "Bearer ",
		},
		{
			name:          "garbage token",
			authorization: "Bearer not-a-jwt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &MockIdentityResolver{}
			resolver.On("ResolveIdentity", mock.Anything, tt.authorization).
				Return("", model.NewErrInvalidToken())
			authenticate := NewAuthenticate(resolver, httpctx.NewManager(), testutil.MakeNoopLogger())

			reached := false
			probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
			})

			req := httptest.NewRequest(http.MethodGet, "/store", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()
			authenticate.Wrap(probe).ServeHTTP(rec, req)

			require.Equal(t, http.StatusForbidden, rec.Code)
			assert.JSONEq(t, `{"error":"Invalid Token"}`, rec.Body.String())
			assert.False(t, reached)
		})
	}
}

func TestAuthenticate_OpaqueErrorStillForbidden(t *testing.T) {
	resolver := &MockIdentityResolver{}
	resolver.On("ResolveIdentity", mock.Anything, mock.Anything).
		Return("", assert.AnError)
	authenticate := NewAuthenticate(resolver, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/store", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	authenticate.Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid Token"}`, rec.Body.String())
}
