package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Akib-17/CSE471-Sheba/configs"
	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/routes"
	"github.com/Akib-17/CSE471-Sheba/utils"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "changeme")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.ServiceRequest{},
		&entity.Complaint{},
		&entity.Warning{},
		&entity.ChatMessage{},
		&entity.Notification{},
	))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, db, configs.LoadConfig(), nil)
	return r, db
}

func seedAccount(t *testing.T, db *gorm.DB, username, role string) *entity.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	u := &entity.User{Username: username, Password: string(hash), Role: role}
	require.NoError(t, db.Create(u).Error)
	if role == entity.RoleProvider {
		uid := fmt.Sprintf("PROV-%03d", u.ID)
		require.NoError(t, db.Model(u).Update("provider_unique_id", uid).Error)
		u.ProviderUniqueID = &uid
	}
	return u
}

func bearer(t *testing.T, u *entity.User) string {
	t.Helper()
	token, err := utils.GenerateToken(u.ID, u.Role, "changeme", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestComplaintEndpointsFullFlow(t *testing.T) {
	r, db := newTestServer(t)
	user := seedAccount(t, db, "test_user", entity.RoleUser)
	admin := seedAccount(t, db, "test_admin", entity.RoleAdmin)
	provider := seedAccount(t, db, "test_provider", entity.RoleProvider)

	// create
	w := doJSON(t, r, http.MethodPost, "/complaints", bearer(t, user), gin.H{
		"title":              "Bad service",
		"description":        "late and rude",
		"provider_unique_id": *provider.ProviderUniqueID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decode(t, w)
	require.True(t, env.OK)

	var created struct {
		ID               uint    `json:"id"`
		Status           string  `json:"status"`
		ProviderUniqueID *string `json:"provider_unique_id"`
		UserUsername     string  `json:"user_username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, entity.ComplaintPending, created.Status)
	require.NotNil(t, created.ProviderUniqueID)
	assert.Equal(t, *provider.ProviderUniqueID, *created.ProviderUniqueID)
	assert.Equal(t, "test_user", created.UserUsername)
	path := fmt.Sprintf("/complaints/%d", created.ID)

	// resolve before review conflicts
	w = doJSON(t, r, http.MethodPatch, path+"/resolve", bearer(t, admin), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// warn before review conflicts
	w = doJSON(t, r, http.MethodPost, path+"/warn_provider", bearer(t, admin), gin.H{"message": "early"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// reply
	w = doJSON(t, r, http.MethodPost, path+"/reply", bearer(t, admin), gin.H{"response": "on it"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// warn now succeeds
	w = doJSON(t, r, http.MethodPost, path+"/warn_provider", bearer(t, admin), gin.H{"message": "strike one"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// resolve
	w = doJSON(t, r, http.MethodPatch, path+"/resolve", bearer(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decode(t, w)
	var resolved struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resolved))
	assert.Equal(t, entity.ComplaintResolved, resolved.Status)

	// provider sees it in their warning list
	w = doJSON(t, r, http.MethodGet, "/warnings", bearer(t, provider), nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decode(t, w)
	var warnings []struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &warnings))
	require.Len(t, warnings, 1)
	assert.Equal(t, "strike one", warnings[0].Message)
}

func TestComplaintEndpointsAuthMapping(t *testing.T) {
	r, db := newTestServer(t)
	user := seedAccount(t, db, "test_user", entity.RoleUser)
	admin := seedAccount(t, db, "test_admin", entity.RoleAdmin)

	// no token
	w := doJSON(t, r, http.MethodGet, "/complaints", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	w = doJSON(t, r, http.MethodGet, "/complaints", "Bearer not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// non-admin on an admin route
	w = doJSON(t, r, http.MethodPost, "/complaints/1/reply", bearer(t, user), gin.H{"response": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admin on a missing complaint
	w = doJSON(t, r, http.MethodPost, "/complaints/9999/reply", bearer(t, admin), gin.H{"response": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// unknown provider id on create
	w = doJSON(t, r, http.MethodPost, "/complaints", bearer(t, user), gin.H{
		"title": "t", "description": "d", "provider_unique_id": "PROV-404",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// validation failure
	w = doJSON(t, r, http.MethodPost, "/complaints", bearer(t, user), gin.H{
		"title": "", "description": "d",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComplaintMessagesEndpoint(t *testing.T) {
	r, db := newTestServer(t)
	user := seedAccount(t, db, "test_user", entity.RoleUser)
	stranger := seedAccount(t, db, "stranger", entity.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/complaints", bearer(t, user), gin.H{
		"title": "t", "description": "d",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	path := fmt.Sprintf("/complaints/%d/messages", created.ID)

	w = doJSON(t, r, http.MethodPost, path, bearer(t, user), gin.H{"message": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, path, bearer(t, stranger), gin.H{"message": "me too"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, path, bearer(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decode(t, w)
	var msgs []struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Message)
}

func TestAuthEndpoints(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "fresh", "password": "pw", "role": "provider",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"username": "fresh", "password": "pw",
	})
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	w = doJSON(t, r, http.MethodGet, "/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"username": "fresh", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
