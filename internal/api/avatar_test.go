package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"hoststore/internal/avatar"
	"hoststore/internal/domain"
	"hoststore/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// avatarRouter wires the avatar routes with a configurable blob store
func avatarRouter(db *gorm.DB, store avatar.BlobStore) http.Handler {
	r := newTestRouter(db)
	authed := r.Group("/api", middleware.Authenticate(db, testSecret))
	authed.POST("/user/avatar", UploadAvatarHandler(db, store))
	authed.DELETE("/user/avatar", DeleteAvatarHandler(db))
	return r
}

// multipartUpload builds an avatar upload request
func multipartUpload(t *testing.T, token string, content []byte, mimeType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="avatar.png"`)
	header.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/user/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadAvatar(t *testing.T) {
	db := newTestDB(t)
	member := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)
	r := avatarRouter(db, avatar.InlineStore{MaxEncodedBytes: 500 * 1024})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, tokenFor(t, member), []byte("fake-png-bytes"), "image/png"))
	require.Equal(t, http.StatusOK, w.Code)

	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", member.ID).Error)
	require.NotNil(t, user.Avatar)
	assert.True(t, strings.HasPrefix(*user.Avatar, "data:image/png;base64,"))
}

func TestUploadAvatarRejectsBadType(t *testing.T) {
	db := newTestDB(t)
	member := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)
	r := avatarRouter(db, avatar.InlineStore{MaxEncodedBytes: 500 * 1024})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, tokenFor(t, member), []byte("binary"), "application/pdf"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadAvatarRejectsOversizedEncoding(t *testing.T) {
	db := newTestDB(t)
	member := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)
	// Tiny encoded cap so a normal upload trips PayloadTooLarge
	r := avatarRouter(db, avatar.InlineStore{MaxEncodedBytes: 8})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, tokenFor(t, member), bytes.Repeat([]byte{0xAB}, 64), "image/png"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The user row stayed clean
	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", member.ID).Error)
	assert.Nil(t, user.Avatar)
}

func TestDeleteAvatar(t *testing.T) {
	db := newTestDB(t)
	member := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)
	url := "data:image/png;base64,Zm9v"
	require.NoError(t, db.Model(member).Update("avatar", url).Error)
	r := avatarRouter(db, avatar.InlineStore{MaxEncodedBytes: 500 * 1024})

	req := httptest.NewRequest(http.MethodDelete, "/api/user/avatar", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, member))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", member.ID).Error)
	assert.Nil(t, user.Avatar)
}
