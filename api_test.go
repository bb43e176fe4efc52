package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vols_gis/backend/auth"
	"vols_gis/backend/config"
	"vols_gis/backend/models"
	"vols_gis/backend/store"
)

func newTestApp(t *testing.T) (*app, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		DBPath:          filepath.Join(t.TempDir(), "api.db"),
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		CORSOrigins:     "*",
		NearbyDefaultKm: 5,
	}
	db, err := store.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	a := &app{db: db, cfg: cfg}
	return a, newRouter(a)
}

func newUser(t *testing.T, a *app, username, role, password string) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, store.CreateUser(a.db, &user))
	return user
}

func tokenFor(t *testing.T, a *app, user models.User) string {
	t.Helper()
	token, err := auth.IssueToken(a.secret(), a.cfg.TokenTTL, user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return token
}

func do(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	_, r := newTestApp(t)
	w := do(r, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, Version, body["version"])
}

func TestLogin(t *testing.T) {
	a, r := newTestApp(t)
	newUser(t, a, "alice", "viewer", "correct-horse")

	t.Run("success", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "correct-horse"})
		require.Equal(t, 200, w.Code)
		body := decode(t, w)
		assert.NotEmpty(t, body["access_token"])
		assert.Equal(t, "Bearer", body["token_type"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "alice", user["username"])
		assert.NotContains(t, user, "password_hash")
	})

	t.Run("wrong password and unknown user answer identically", func(t *testing.T) {
		wrong := do(r, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "nope"})
		unknown := do(r, http.MethodPost, "/api/auth/login", "", gin.H{"username": "ghost", "password": "nope"})
		assert.Equal(t, 401, wrong.Code)
		assert.Equal(t, 401, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
		assert.Equal(t, "Unauthorized", decode(t, wrong)["error"])
	})

	t.Run("inactive account", func(t *testing.T) {
		bob := newUser(t, a, "bob", "viewer", "bobs-password")
		_, err := store.UpdateUser(a.db, bob.ID, map[string]interface{}{"is_active": false})
		require.NoError(t, err)
		w := do(r, http.MethodPost, "/api/auth/login", "", gin.H{"username": "bob", "password": "bobs-password"})
		assert.Equal(t, 403, w.Code)
		assert.Equal(t, "Forbidden", decode(t, w)["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice"})
		assert.Equal(t, 400, w.Code)
		assert.Equal(t, "ValidationError", decode(t, w)["error"])
	})
}

func TestAuthMe(t *testing.T) {
	a, r := newTestApp(t)
	alice := newUser(t, a, "alice", "operator", "password1")
	token := tokenFor(t, a, alice)

	w := do(r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, 200, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "operator", user["role"])

	assert.Equal(t, 401, do(r, http.MethodGet, "/api/auth/me", "", nil).Code)
	assert.Equal(t, 401, do(r, http.MethodGet, "/api/auth/me", token[:len(token)-4]+"AAAA", nil).Code)
}

func TestNodeLifecycle(t *testing.T) {
	_, r := newTestApp(t)

	w := do(r, http.MethodPost, "/api/nodes", "", gin.H{
		"name":      "riga-central",
		"node_type": "cross",
		"status":    "active",
		"lat":       56.9496,
		"lon":       24.1052,
		"meta_data": gin.H{"rack": "A3"},
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	node := decode(t, w)["node"].(map[string]interface{})
	id := node["id"].(float64)
	assert.InDelta(t, 56.9496, node["lat"].(float64), 1e-9)
	assert.InDelta(t, 24.1052, node["lon"].(float64), 1e-9)

	t.Run("get", func(t *testing.T) {
		w := do(r, http.MethodGet, fmt.Sprintf("/api/nodes/%.0f", id), "", nil)
		require.Equal(t, 200, w.Code)
		got := decode(t, w)["node"].(map[string]interface{})
		assert.Equal(t, "riga-central", got["name"])
	})

	t.Run("list", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/nodes?status=active", "", nil)
		require.Equal(t, 200, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("partial update touches only named fields", func(t *testing.T) {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/nodes/%.0f", id), "", gin.H{"status": "maintenance"})
		require.Equal(t, 200, w.Code, w.Body.String())
		got := decode(t, w)["node"].(map[string]interface{})
		assert.Equal(t, "maintenance", got["status"])
		assert.Equal(t, "riga-central", got["name"])
		assert.InDelta(t, 56.9496, got["lat"].(float64), 1e-9)
	})

	t.Run("explicit null clears description", func(t *testing.T) {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/nodes/%.0f", id), "", gin.H{"description": "temp"})
		require.Equal(t, 200, w.Code)
		w = do(r, http.MethodPut, fmt.Sprintf("/api/nodes/%.0f", id), "", gin.H{"description": nil})
		require.Equal(t, 200, w.Code)
		got := decode(t, w)["node"].(map[string]interface{})
		assert.Nil(t, got["description"])
	})

	t.Run("explicit null on name is rejected", func(t *testing.T) {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/nodes/%.0f", id), "", gin.H{"name": nil})
		assert.Equal(t, 400, w.Code)
		assert.Equal(t, "ValidationError", decode(t, w)["error"])
	})

	t.Run("lat alone does not move the point", func(t *testing.T) {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/nodes/%.0f", id), "", gin.H{"lat": 10.0})
		require.Equal(t, 200, w.Code)
		got := decode(t, w)["node"].(map[string]interface{})
		assert.InDelta(t, 56.9496, got["lat"].(float64), 1e-9)
	})

	t.Run("lat and lon together move the point", func(t *testing.T) {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/nodes/%.0f", id), "", gin.H{"lat": 57.1, "lon": 24.5})
		require.Equal(t, 200, w.Code)
		got := decode(t, w)["node"].(map[string]interface{})
		assert.InDelta(t, 57.1, got["lat"].(float64), 1e-9)
		assert.InDelta(t, 24.5, got["lon"].(float64), 1e-9)
	})

	t.Run("delete", func(t *testing.T) {
		w := do(r, http.MethodDelete, fmt.Sprintf("/api/nodes/%.0f", id), "", nil)
		require.Equal(t, 200, w.Code)
		assert.Equal(t, "node deleted", decode(t, w)["message"])

		w = do(r, http.MethodGet, fmt.Sprintf("/api/nodes/%.0f", id), "", nil)
		assert.Equal(t, 404, w.Code)
		assert.Equal(t, "NotFound", decode(t, w)["error"])
	})
}

func TestNodeValidation(t *testing.T) {
	_, r := newTestApp(t)

	t.Run("missing required fields", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/nodes", "", gin.H{"name": "x"})
		require.Equal(t, 400, w.Code)
		body := decode(t, w)
		assert.Equal(t, "ValidationError", body["error"])
		assert.NotEmpty(t, body["details"])
	})

	t.Run("latitude out of range", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/nodes", "", gin.H{"name": "x", "lat": 95.0, "lon": 24.0})
		assert.Equal(t, 400, w.Code)
	})

	t.Run("unknown enum value", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/nodes", "", gin.H{"name": "x", "lat": 56.9, "lon": 24.1, "node_type": "tower"})
		assert.Equal(t, 400, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/nodes", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, 400, w.Code)
		assert.Equal(t, "ValidationError", decode(t, w)["error"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/nodes/abc", "", nil)
		assert.Equal(t, 400, w.Code)
	})
}

func TestNearbyNodesEndpoint(t *testing.T) {
	_, r := newTestApp(t)
	for _, n := range []struct {
		name string
		lat  float64
	}{
		{"near", 56.9596}, // about 1 km north
		{"mid", 56.9856},  // about 4 km
		{"far", 57.0396},  // about 10 km
	} {
		w := do(r, http.MethodPost, "/api/nodes", "", gin.H{"name": n.name, "lat": n.lat, "lon": 24.1052})
		require.Equal(t, 201, w.Code)
	}

	t.Run("default radius", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/nodes/nearby?lat=56.9496&lon=24.1052", "", nil)
		require.Equal(t, 200, w.Code)
		assert.Equal(t, float64(2), decode(t, w)["count"])
	})

	t.Run("explicit radius", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/nodes/nearby?lat=56.9496&lon=24.1052&distance=20", "", nil)
		require.Equal(t, 200, w.Code)
		assert.Equal(t, float64(3), decode(t, w)["count"])
	})

	t.Run("missing coordinates", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/nodes/nearby?lat=56.9", "", nil)
		assert.Equal(t, 400, w.Code)
	})

	t.Run("coordinates out of range", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/nodes/nearby?lat=99&lon=24", "", nil)
		assert.Equal(t, 400, w.Code)
	})

	t.Run("negative distance", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/nodes/nearby?lat=56.9&lon=24.1&distance=-1", "", nil)
		assert.Equal(t, 400, w.Code)
	})
}

func TestVolsEndpoints(t *testing.T) {
	_, r := newTestApp(t)

	t.Run("single point path is rejected", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/vols", "", gin.H{
			"name": "broken", "path": [][]float64{{24.1, 56.9}},
		})
		require.Equal(t, 400, w.Code)
		assert.Equal(t, "ValidationError", decode(t, w)["error"])
	})

	w := do(r, http.MethodPost, "/api/vols", "", gin.H{
		"name":      "trunk-north",
		"status":    "active",
		"length_km": 12.5,
		"path":      [][]float64{{24.1052, 56.9496}, {24.2, 57.0}, {24.35, 57.11}},
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	vols := decode(t, w)["vols"].(map[string]interface{})
	id := vols["id"].(float64)
	path := vols["path"].([]interface{})
	require.Len(t, path, 3)
	first := path[0].([]interface{})
	assert.InDelta(t, 24.1052, first[0].(float64), 1e-9)
	assert.InDelta(t, 56.9496, first[1].(float64), 1e-9)

	t.Run("path feature", func(t *testing.T) {
		w := do(r, http.MethodGet, fmt.Sprintf("/api/vols/%.0f/path", id), "", nil)
		require.Equal(t, 200, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Feature", body["type"])
		geom := body["geometry"].(map[string]interface{})
		assert.Equal(t, "LineString", geom["type"])
		props := body["properties"].(map[string]interface{})
		assert.Equal(t, "trunk-north", props["name"])
	})

	t.Run("replace path", func(t *testing.T) {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/vols/%.0f", id), "", gin.H{
			"path": [][]float64{{24.0, 56.8}, {24.1, 56.9}},
		})
		require.Equal(t, 200, w.Code, w.Body.String())
		got := decode(t, w)["vols"].(map[string]interface{})
		assert.Len(t, got["path"].([]interface{}), 2)
		assert.Equal(t, "trunk-north", got["name"])
	})

	t.Run("clear length with null", func(t *testing.T) {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/vols/%.0f", id), "", gin.H{"length_km": nil})
		require.Equal(t, 200, w.Code)
		got := decode(t, w)["vols"].(map[string]interface{})
		assert.Nil(t, got["length_km"])
	})
}

func TestFibersEndpoints(t *testing.T) {
	_, r := newTestApp(t)
	w := do(r, http.MethodPost, "/api/vols", "", gin.H{
		"name": "trunk", "path": [][]float64{{24.1, 56.9}, {24.2, 57.0}},
	})
	require.Equal(t, 201, w.Code)
	volsID := decode(t, w)["vols"].(map[string]interface{})["id"].(float64)

	w = do(r, http.MethodPost, "/api/fibers", "", gin.H{
		"name": "f-trunk-1", "cable_type": "ADSS-24", "fiber_count": 24, "status": "active", "vols_id": volsID,
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	w = do(r, http.MethodPost, "/api/fibers", "", gin.H{"name": "f-spare", "status": "spare"})
	require.Equal(t, 201, w.Code)

	t.Run("by-vols", func(t *testing.T) {
		w := do(r, http.MethodGet, fmt.Sprintf("/api/fibers/by-vols/%.0f", volsID), "", nil)
		require.Equal(t, 200, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("detach with null", func(t *testing.T) {
		w := do(r, http.MethodPut, "/api/fibers/1", "", gin.H{"vols_id": nil})
		require.Equal(t, 200, w.Code, w.Body.String())
		got := decode(t, w)["fiber"].(map[string]interface{})
		assert.Nil(t, got["vols_id"])
	})

	t.Run("null status is rejected, not stored as empty", func(t *testing.T) {
		w := do(r, http.MethodPut, "/api/fibers/1", "", gin.H{"status": nil})
		require.Equal(t, 400, w.Code)
		assert.Equal(t, "ValidationError", decode(t, w)["error"])

		w = do(r, http.MethodGet, "/api/fibers/1", "", nil)
		require.Equal(t, 200, w.Code)
		got := decode(t, w)["fiber"].(map[string]interface{})
		assert.Equal(t, "active", got["status"])
	})
}

func TestLinksEndpoints(t *testing.T) {
	_, r := newTestApp(t)
	w := do(r, http.MethodPost, "/api/fibers", "", gin.H{"name": "f1", "status": "active"})
	require.Equal(t, 201, w.Code)

	t.Run("missing endpoints rejected", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/links", "", gin.H{"fiber_id": 1})
		assert.Equal(t, 400, w.Code)
	})

	for _, ends := range [][2]int{{1, 2}, {2, 3}} {
		w := do(r, http.MethodPost, "/api/links", "", gin.H{
			"fiber_id": 1, "start_node_id": ends[0], "end_node_id": ends[1], "status": "active",
		})
		require.Equal(t, 201, w.Code, w.Body.String())
	}

	t.Run("search by node matches either endpoint", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/links/search?node_id=2", "", nil)
		require.Equal(t, 200, w.Code)
		assert.Equal(t, float64(2), decode(t, w)["count"])

		w = do(r, http.MethodGet, "/api/links/search?node_id=3", "", nil)
		require.Equal(t, 200, w.Code)
		assert.Equal(t, float64(1), decode(t, w)["count"])
	})
}

func TestUserPolicy(t *testing.T) {
	a, r := newTestApp(t)
	admin := newUser(t, a, "root", "admin", "root-password")
	viewer := newUser(t, a, "alice", "viewer", "alice-password")
	adminToken := tokenFor(t, a, admin)
	viewerToken := tokenFor(t, a, viewer)

	t.Run("listing requires a token", func(t *testing.T) {
		assert.Equal(t, 401, do(r, http.MethodGet, "/api/users", "", nil).Code)
		assert.Equal(t, 200, do(r, http.MethodGet, "/api/users", viewerToken, nil).Code)
	})

	t.Run("only admin creates users", func(t *testing.T) {
		payload := gin.H{"username": "carol", "email": "carol@example.com", "password": "carols-pass"}
		assert.Equal(t, 403, do(r, http.MethodPost, "/api/users", viewerToken, payload).Code)

		w := do(r, http.MethodPost, "/api/users", adminToken, payload)
		require.Equal(t, 201, w.Code, w.Body.String())
		user := decode(t, w)["user"].(map[string]interface{})
		assert.Equal(t, "viewer", user["role"], "role defaults to viewer")
		assert.NotContains(t, user, "password_hash")
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/users", adminToken, gin.H{
			"username": "alice", "email": "alice2@example.com", "password": "whatever1",
		})
		assert.Equal(t, 409, w.Code)
		assert.Equal(t, "Conflict", decode(t, w)["error"])
	})

	t.Run("self update allowed, other update forbidden", func(t *testing.T) {
		path := fmt.Sprintf("/api/users/%d", viewer.ID)
		w := do(r, http.MethodPut, path, viewerToken, gin.H{"email": "alice@new.example.com"})
		require.Equal(t, 200, w.Code, w.Body.String())

		other := fmt.Sprintf("/api/users/%d", admin.ID)
		assert.Equal(t, 403, do(r, http.MethodPut, other, viewerToken, gin.H{"email": "x@example.com"}).Code)

		w = do(r, http.MethodPut, path, adminToken, gin.H{"role": "operator"})
		require.Equal(t, 200, w.Code)
		assert.Equal(t, "operator", decode(t, w)["user"].(map[string]interface{})["role"])
	})

	t.Run("password change rehashes", func(t *testing.T) {
		path := fmt.Sprintf("/api/users/%d", viewer.ID)
		w := do(r, http.MethodPut, path, viewerToken, gin.H{"password": "brand-new-pass"})
		require.Equal(t, 200, w.Code, w.Body.String())

		assert.Equal(t, 401, do(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"username": "alice", "password": "alice-password",
		}).Code)
		assert.Equal(t, 200, do(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"username": "alice", "password": "brand-new-pass",
		}).Code)
	})

	t.Run("only admin deletes", func(t *testing.T) {
		path := fmt.Sprintf("/api/users/%d", viewer.ID)
		assert.Equal(t, 403, do(r, http.MethodDelete, path, viewerToken, nil).Code)
		assert.Equal(t, 200, do(r, http.MethodDelete, path, adminToken, nil).Code)
	})
}

func TestWebMapEndpoints(t *testing.T) {
	_, r := newTestApp(t)

	w := do(r, http.MethodPost, "/api/webmaps", "", gin.H{
		"name":           "operations overview",
		"visible_layers": []string{"nodes", "vols"},
		"center_lat":     56.9496,
		"center_lon":     24.1052,
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	webmap := decode(t, w)["webmap"].(map[string]interface{})
	id := webmap["id"].(float64)
	assert.Equal(t, float64(8), webmap["zoom_level"], "zoom defaults to 8")
	assert.InDelta(t, 56.9496, webmap["center_lat"].(float64), 1e-9)
	layers := webmap["visible_layers"].([]interface{})
	assert.Equal(t, []interface{}{"nodes", "vols"}, layers)

	t.Run("center needs both coordinates", func(t *testing.T) {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/webmaps/%.0f", id), "", gin.H{"center_lat": 40.0})
		require.Equal(t, 200, w.Code)
		got := decode(t, w)["webmap"].(map[string]interface{})
		assert.InDelta(t, 56.9496, got["center_lat"].(float64), 1e-9)
	})

	t.Run("move center", func(t *testing.T) {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/webmaps/%.0f", id), "", gin.H{
			"center_lat": 57.0, "center_lon": 24.3, "zoom_level": 12,
		})
		require.Equal(t, 200, w.Code)
		got := decode(t, w)["webmap"].(map[string]interface{})
		assert.InDelta(t, 57.0, got["center_lat"].(float64), 1e-9)
		assert.Equal(t, float64(12), got["zoom_level"])
	})

	t.Run("map without center", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/webmaps", "", gin.H{"name": "bare"})
		require.Equal(t, 201, w.Code)
		got := decode(t, w)["webmap"].(map[string]interface{})
		assert.Nil(t, got["center_lat"])
	})
}

func TestExportEndpoints(t *testing.T) {
	a, r := newTestApp(t)
	token := tokenFor(t, a, newUser(t, a, "alice", "viewer", "password1"))

	desc := "main exchange"
	require.Equal(t, 201, do(r, http.MethodPost, "/api/nodes", "", gin.H{
		"name": "riga-central", "description": desc, "node_type": "cross", "status": "active",
		"lat": 56.9496, "lon": 24.1052,
	}).Code)
	require.Equal(t, 201, do(r, http.MethodPost, "/api/vols", "", gin.H{
		"name": "trunk", "status": "active", "length_km": 12.5,
		"path": [][]float64{{24.1, 56.9}, {24.2, 57.0}},
	}).Code)
	require.Equal(t, 201, do(r, http.MethodPost, "/api/fibers", "", gin.H{
		"name": "f1", "cable_type": "ADSS-24", "fiber_count": 24, "status": "active", "vols_id": 1,
	}).Code)

	t.Run("exports require a token", func(t *testing.T) {
		for _, path := range []string{
			"/api/export/nodes.geojson", "/api/export/vols.geojson",
			"/api/export/nodes.csv", "/api/export/fibers.csv", "/api/export/all.json",
		} {
			assert.Equal(t, 401, do(r, http.MethodGet, path, "", nil).Code, path)
		}
	})

	t.Run("nodes geojson", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/export/nodes.geojson", token, nil)
		require.Equal(t, 200, w.Code)
		assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "nodes.geojson")
		body := decode(t, w)
		assert.Equal(t, "FeatureCollection", body["type"])
		features := body["features"].([]interface{})
		require.Len(t, features, 1)
		f := features[0].(map[string]interface{})
		coords := f["geometry"].(map[string]interface{})["coordinates"].([]interface{})
		assert.InDelta(t, 24.1052, coords[0].(float64), 1e-6, "GeoJSON order is [lon, lat]")
		assert.InDelta(t, 56.9496, coords[1].(float64), 1e-6)
	})

	t.Run("vols geojson", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/export/vols.geojson", token, nil)
		require.Equal(t, 200, w.Code)
		body := decode(t, w)
		features := body["features"].([]interface{})
		require.Len(t, features, 1)
		geom := features[0].(map[string]interface{})["geometry"].(map[string]interface{})
		assert.Equal(t, "LineString", geom["type"])
	})

	t.Run("nodes csv", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/export/nodes.csv", token, nil)
		require.Equal(t, 200, w.Code)
		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "ID,Name,Description,Type,Status,Latitude,Longitude", lines[0])
		assert.Contains(t, lines[1], "riga-central")
		assert.Contains(t, lines[1], "main exchange")
	})

	t.Run("fibers csv", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/export/fibers.csv", token, nil)
		require.Equal(t, 200, w.Code)
		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "ID,Name,Cable Type,Fiber Count,Status,Vols ID", lines[0])
		assert.Contains(t, lines[1], "ADSS-24")
	})

	t.Run("full dump", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/export/all.json", token, nil)
		require.Equal(t, 200, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "vols_gis_export.json")
		body := decode(t, w)
		for _, key := range []string{"nodes", "vols", "fibers", "links"} {
			assert.Contains(t, body, key)
		}
		nodes := body["nodes"].([]interface{})
		require.Len(t, nodes, 1)
		assert.Contains(t, nodes[0].(map[string]interface{}), "lat")
	})
}

func TestStatsEndpoints(t *testing.T) {
	a, r := newTestApp(t)
	token := tokenFor(t, a, newUser(t, a, "alice", "viewer", "password1"))

	for _, status := range []string{"active", "active", "maintenance"} {
		require.Equal(t, 201, do(r, http.MethodPost, "/api/nodes", "", gin.H{
			"name": "n", "status": status, "node_type": "muft", "lat": 56.9, "lon": 24.1,
		}).Code)
	}
	require.Equal(t, 201, do(r, http.MethodPost, "/api/vols", "", gin.H{
		"name": "trunk", "status": "active", "length_km": 12.5,
		"path": [][]float64{{24.1, 56.9}, {24.2, 57.0}},
	}).Code)

	t.Run("requires a token", func(t *testing.T) {
		assert.Equal(t, 401, do(r, http.MethodGet, "/api/stats/summary", "", nil).Code)
		assert.Equal(t, 401, do(r, http.MethodGet, "/api/stats/dashboard", "", nil).Code)
	})

	t.Run("summary keys counts by bare entity name", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/stats/summary", token, nil)
		require.Equal(t, 200, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(3), body["nodes"])
		assert.Equal(t, float64(1), body["vols"])
		assert.Equal(t, float64(0), body["fibers"])
		assert.Equal(t, float64(0), body["links"])
		assert.InDelta(t, 12.5, body["total_length_km"].(float64), 1e-9)
		assert.NotContains(t, body, "total_nodes")
	})

	t.Run("dashboard", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/stats/dashboard", token, nil)
		require.Equal(t, 200, w.Code)
		body := decode(t, w)
		summary := body["summary"].(map[string]interface{})
		assert.Equal(t, float64(3), summary["total_nodes"])
		nodes := body["nodes"].(map[string]interface{})
		byStatus := nodes["by_status"].(map[string]interface{})
		assert.Equal(t, float64(2), byStatus["active"])
		assert.Equal(t, float64(1), byStatus["maintenance"])
		byType := nodes["by_type"].(map[string]interface{})
		assert.Equal(t, float64(3), byType["muft"])
		vols := body["vols"].(map[string]interface{})
		assert.InDelta(t, 12.5, vols["total_length_km"].(float64), 1e-9)
	})
}

func TestCORSPreflight(t *testing.T) {
	_, r := newTestApp(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/nodes", nil)
	req.Header.Set("Origin", "https://maps.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestNoRouteEnvelope(t *testing.T) {
	_, r := newTestApp(t)
	w := do(r, http.MethodGet, "/api/no/such/route", "", nil)
	require.Equal(t, 404, w.Code)
	assert.Equal(t, "NotFound", decode(t, w)["error"])
}
