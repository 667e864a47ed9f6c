package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue(Identity{UserID: 42, Role: RoleCustomer})
	require.NoError(t, err)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 42, Role: RoleCustomer}, id)
}

func TestVerifyRejectsGarbageAndWrongSecret(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewManager("different-secret", time.Hour)
	token, err := other.Issue(Identity{UserID: 1, Role: RoleAdmin})
	require.NoError(t, err)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	m.ttl = -time.Minute

	token, err := m.Issue(Identity{UserID: 1, Role: RoleCustomer})
	require.NoError(t, err)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddlewareAttachesIdentity(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	token, err := m.Issue(Identity{UserID: 9, Role: RoleAdmin})
	require.NoError(t, err)

	var seen Identity
	h := m.Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, Identity{UserID: 9, Role: RoleAdmin}, seen)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	h := m.Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRole(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	token, err := m.Issue(Identity{UserID: 3, Role: RoleCustomer})
	require.NoError(t, err)

	called := false
	admin := m.Middleware(RequireRole(RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	admin.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, called)
}

func TestCanAccessUser(t *testing.T) {
	owner := Identity{UserID: 1, Role: RoleCustomer}
	admin := Identity{UserID: 2, Role: RoleAdmin}

	assert.True(t, owner.CanAccessUser(1))
	assert.False(t, owner.CanAccessUser(2))
	assert.True(t, admin.CanAccessUser(1))
}
