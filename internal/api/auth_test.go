package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hoststore/internal/auth"
	"hoststore/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "new@example.com",
		"name":     "New User",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "new@example.com", user["email"])
	assert.Equal(t, domain.RoleUser, user["role"])
	// The password never appears in the response
	assert.NotContains(t, user, "password")

	// Duplicate email is rejected
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "new@example.com",
		"name":     "Other User",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	cases := []map[string]any{
		{"email": "not-an-email", "name": "User", "password": "secret123"},
		{"email": "ok@example.com", "name": "U", "password": "secret123"},
		{"email": "ok@example.com", "name": "User", "password": "short"},
	}
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestLoginIssuesBothCredentials(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "member@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	jwtToken := body["token"].(string)
	sessionToken := body["sessionToken"].(string)
	assert.NotEmpty(t, jwtToken)
	assert.NotEmpty(t, sessionToken)

	// Both credential shapes resolve to the same identity
	fromJWT, err := auth.ResolveIdentity(db, testSecret, jwtToken)
	require.NoError(t, err)
	fromSession, err := auth.ResolveIdentity(db, testSecret, sessionToken)
	require.NoError(t, err)
	assert.Equal(t, fromJWT.UserID, fromSession.UserID)
	assert.Equal(t, fromJWT.Role, fromSession.Role)

	// Resolving twice within the window yields the same user and role
	again, err := auth.ResolveIdentity(db, testSecret, jwtToken)
	require.NoError(t, err)
	assert.Equal(t, fromJWT, again)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	user := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "member@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Deactivated accounts cannot log in even with the right password
	require.NoError(t, db.Model(user).Update("is_active", false).Error)
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "member@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationRequired(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/orders", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionCookieAuthentication(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	user := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)

	sess, err := auth.CreateSession(db, user.ID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: sess.Token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExpiredSessionRejected(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	user := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)

	// Expiry in the past; the row exists but must not resolve
	sess, err := auth.CreateSession(db, user.ID, -time.Hour)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/orders", sess.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleEnforcement(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	member := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)
	admin := seedTestUser(t, db, "admin@example.com", domain.RoleAdmin, 0)
	owner := seedTestUser(t, db, "owner@example.com", domain.RoleOwner, 0)

	// Members cannot reach admin routes
	w := doJSON(t, r, http.MethodGet, "/api/admin/orders", tokenFor(t, member), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins and owners can
	w = doJSON(t, r, http.MethodGet, "/api/admin/orders", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/admin/orders", tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Admins may read payment settings but not write them
	w = doJSON(t, r, http.MethodGet, "/api/owner/payment-settings", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/owner/payment-settings", tokenFor(t, admin),
		map[string]any{"isActive": true})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	user := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)

	sess, err := auth.CreateSession(db, user.ID, time.Hour)
	require.NoError(t, err)

	// Logout with the bearer-carried opaque token
	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", sess.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The session no longer resolves
	w = doJSON(t, r, http.MethodGet, "/api/orders", sess.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
