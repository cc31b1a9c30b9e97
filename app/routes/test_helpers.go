package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"homebase/app/config"
	"homebase/app/services"
	"homebase/app/storage"
)

const testAPIKey = "test-api-key"

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T) *mux.Router {
	db := setupTestDB(t)
	blogStore := storage.NewBadgerStore(db, storage.BlogNamespace)
	backupStore := storage.NewBadgerStore(db, storage.BackupNamespace)

	blog := services.NewBlogService(blogStore)
	backups := services.NewBackupService(blogStore, backupStore)
	params := config.StaticParams{"API_KEY": testAPIKey}

	return SetupRoutes(blog, backups, params)
}

// doJSON performs a request against router with an optional JSON body and
// bearer token, and decodes the response body into a generic map.
func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	decoded := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func createPost(t *testing.T, router *mux.Router, body map[string]interface{}) map[string]interface{} {
	w, res := doJSON(t, router, "POST", "/api/blog/posts", body, testAPIKey)
	require.Equal(t, http.StatusCreated, w.Code)
	post, ok := res["post"].(map[string]interface{})
	require.True(t, ok, "response should contain a post object")
	return post
}
