package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w, res := doJSON(t, router, "GET", "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "ok", res["status"])
	assert.NotEmpty(t, res["timestamp"])
}

func TestCreateThenFetchRoundTrip(t *testing.T) {
	router := setupTestRouter(t)

	created := createPost(t, router, map[string]interface{}{
		"slug": "hello-world", "title": "Hi", "content": "Body",
	})
	assert.Equal(t, "Anonymous", created["author"])
	assert.Equal(t, []interface{}{}, created["tags"])
	assert.Equal(t, false, created["published"])
	assert.Equal(t, created["createdAt"], created["updatedAt"])

	w, res := doJSON(t, router, "GET", "/api/blog/posts/hello-world", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	post := res["post"].(map[string]interface{})
	assert.Equal(t, "Hi", post["title"])
	assert.Equal(t, "Body", post["content"])
}

func TestCreateValidation(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("missing fields", func(t *testing.T) {
		w, res := doJSON(t, router, "POST", "/api/blog/posts",
			map[string]interface{}{"slug": "ok-slug"}, testAPIKey)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "slug, title, and content are required", res["error"])
	})

	t.Run("bad slug format", func(t *testing.T) {
		w, res := doJSON(t, router, "POST", "/api/blog/posts",
			map[string]interface{}{"slug": "Bad Slug", "title": "T", "content": "C"}, testAPIKey)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid slug. Use lowercase alphanumeric and hyphens only.", res["error"])
	})
}

func TestCreateConflict(t *testing.T) {
	router := setupTestRouter(t)

	body := map[string]interface{}{"slug": "dup", "title": "T", "content": "C"}
	createPost(t, router, body)

	w, res := doJSON(t, router, "POST", "/api/blog/posts", body, testAPIKey)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "A post with this slug already exists", res["error"])
}

func TestListExcludesUnpublished(t *testing.T) {
	router := setupTestRouter(t)

	createPost(t, router, map[string]interface{}{
		"slug": "visible", "title": "Visible", "content": "Pub", "published": true,
	})
	createPost(t, router, map[string]interface{}{
		"slug": "draft", "title": "Draft", "content": "WIP",
	})

	w, res := doJSON(t, router, "GET", "/api/blog/posts", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	posts := res["posts"].([]interface{})
	require.Len(t, posts, 1)
	summary := posts[0].(map[string]interface{})
	assert.Equal(t, "visible", summary["slug"])
	assert.Equal(t, "Pub", summary["excerpt"])
	_, hasContent := summary["content"]
	assert.False(t, hasContent, "list projection must omit content")

	// The draft is still reachable by direct link, full content included.
	w, res = doJSON(t, router, "GET", "/api/blog/posts/draft", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	post := res["post"].(map[string]interface{})
	assert.Equal(t, "WIP", post["content"])
	assert.Equal(t, false, post["published"])
}

func TestGetPostErrors(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("invalid slug", func(t *testing.T) {
		w, res := doJSON(t, router, "GET", "/api/blog/posts/NOPE", nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid slug", res["error"])
	})

	t.Run("not found", func(t *testing.T) {
		w, res := doJSON(t, router, "GET", "/api/blog/posts/missing-post", nil, "")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Post not found", res["error"])
	})
}

func TestUpdatePreservesImmutables(t *testing.T) {
	router := setupTestRouter(t)

	created := createPost(t, router, map[string]interface{}{
		"slug": "stable", "title": "Before", "content": "C",
	})

	time.Sleep(5 * time.Millisecond) // updatedAt must strictly increase

	// The body tries to change slug and createdAt; both must be ignored.
	w, res := doJSON(t, router, "PUT", "/api/blog/posts/stable", map[string]interface{}{
		"title":     "After",
		"slug":      "hijacked",
		"createdAt": "1999-01-01T00:00:00Z",
	}, testAPIKey)
	require.Equal(t, http.StatusOK, w.Code)

	post := res["post"].(map[string]interface{})
	assert.Equal(t, "stable", post["slug"])
	assert.Equal(t, "After", post["title"])
	assert.Equal(t, created["createdAt"], post["createdAt"])

	updatedAt, err := time.Parse(time.RFC3339Nano, post["updatedAt"].(string))
	require.NoError(t, err)
	createdAt, err := time.Parse(time.RFC3339Nano, post["createdAt"].(string))
	require.NoError(t, err)
	assert.True(t, updatedAt.After(createdAt))
}

func TestUpdateNotFound(t *testing.T) {
	router := setupTestRouter(t)

	w, res := doJSON(t, router, "PUT", "/api/blog/posts/missing-post",
		map[string]interface{}{"title": "T"}, testAPIKey)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", res["error"])
}

func TestDeleteIdempotent(t *testing.T) {
	router := setupTestRouter(t)

	// Deleting a slug that never existed reports deleted, twice in a row.
	for i := 0; i < 2; i++ {
		w, res := doJSON(t, router, "DELETE", "/api/blog/posts/never-existed", nil, testAPIKey)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, res["deleted"])
	}
}

func TestWriteRoutesRequireKey(t *testing.T) {
	router := setupTestRouter(t)
	body := map[string]interface{}{"slug": "ab", "title": "T", "content": "C"}

	t.Run("no Authorization header", func(t *testing.T) {
		w, res := doJSON(t, router, "POST", "/api/blog/posts", body, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", res["error"])
	})

	t.Run("wrong token", func(t *testing.T) {
		w, res := doJSON(t, router, "POST", "/api/blog/posts", body, "wrong-key")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", res["error"])
	})
}

func TestReadRoutesCrossOrigin(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("without token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/blog/posts", nil)
		req.Header.Set("Origin", "http://elsewhere.test")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("with valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/blog/posts", nil)
		req.Header.Set("Origin", "http://elsewhere.test")
		req.Header.Set("Authorization", "Bearer "+testAPIKey)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestBackupTriggerAndList(t *testing.T) {
	router := setupTestRouter(t)

	createPost(t, router, map[string]interface{}{
		"slug": "archived", "title": "T", "content": "C",
	})

	// Trigger requires the key.
	w, _ := doJSON(t, router, "POST", "/api/backup", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, res := doJSON(t, router, "POST", "/api/backup", nil, testAPIKey)
	require.Equal(t, http.StatusOK, w.Code)
	backup := res["backup"].(map[string]interface{})
	assert.Contains(t, backup["label"], "backup-")
	assert.Greater(t, backup["size"].(float64), float64(0))

	w, res = doJSON(t, router, "GET", "/api/backups", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	backups := res["backups"].([]interface{})
	require.Len(t, backups, 1)
	assert.Equal(t, backup["label"], backups[0].(map[string]interface{})["label"])
}

func TestFrontendServed(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Homebase")
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	// Prime the counters with one observed request.
	w0, _ := doJSON(t, router, "GET", "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w0.Code)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "homebase_http_requests_total")
}
