package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reko-cms/pkg/blocks"
	"reko-cms/pkg/config"
	"reko-cms/pkg/logger"
	"reko-cms/pkg/models"
	"reko-cms/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter serves the API without the auth middleware.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	old := config.RepoPath
	config.RepoPath = t.TempDir()
	services.InvalidateCache()
	t.Cleanup(func() {
		config.RepoPath = old
		services.InvalidateCache()
	})

	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	RegisterAPI(r.Group("/api"))
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// editorState mirrors models.EditorState with the content kept raw.
type editorState struct {
	ID      string          `json:"id"`
	Content json.RawMessage `json:"content"`
	Focus   blocks.Focus    `json:"focus"`
	Handled bool            `json:"handled"`
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) (editorState, blocks.Document) {
	t.Helper()
	var st editorState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st), w.Body.String())
	var doc blocks.Document
	require.NoError(t, json.Unmarshal(st.Content, &doc))
	return st, doc
}

func TestAPIRequiresLogin(t *testing.T) {
	old := config.SessionSecret
	config.SessionSecret = "test-secret"
	t.Cleanup(func() { config.SessionSecret = old })

	r := NewRouter(logger.Nop())
	w := do(t, r, http.MethodGet, "/api/articles", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestArticleCRUD(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/articles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/articles", gin.H{"slug": "first", "title": "First"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/articles", gin.H{"slug": "first", "title": "First"})
	assert.Equal(t, http.StatusConflict, w.Code)

	update := map[string]interface{}{
		"title":  "First, edited",
		"status": "draft",
		"content": []map[string]interface{}{
			{"serial": 1, "style": "h1", "content": "Top"},
			{"serial": 2, "style": "enumerate", "points": []string{"a", "b"}},
		},
	}
	w = do(t, r, http.MethodPut, "/api/articles/first", update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/articles/first/markdown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# Top\n\n1. a\n2. b\n", w.Body.String())

	w = do(t, r, http.MethodGet, "/api/articles/first", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var art models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &art))
	assert.Equal(t, "First, edited", art.Title)
	assert.Equal(t, 2, art.Content.Len())

	w = do(t, r, http.MethodDelete, "/api/articles/first", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/api/articles/first", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateArticleRejectsUnknownStyle(t *testing.T) {
	r := newTestRouter(t)
	update := map[string]interface{}{
		"title":   "T",
		"content": []map[string]interface{}{{"serial": 1, "style": "marquee", "content": "x"}},
	}
	w := do(t, r, http.MethodPut, "/api/articles/t", update)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateArticleValidation(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPut, "/api/articles/t", gin.H{"title": "", "content": []interface{}{}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEditorFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/editor", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	st, doc := decodeState(t, w)
	require.Equal(t, 1, doc.Len())
	base := "/api/editor/" + st.ID

	w = do(t, r, http.MethodPost, base+"/ops", models.EditorOp{Op: "update", Field: "content", Value: "Hello"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, base+"/ops", models.EditorOp{Op: "key", Key: &blocks.KeyEvent{Key: "Enter", Point: -1}})
	require.Equal(t, http.StatusOK, w.Code)
	st, doc = decodeState(t, w)
	assert.True(t, st.Handled)
	assert.Equal(t, 2, doc.Len())
	assert.Equal(t, 1, st.Focus.Block)

	w = do(t, r, http.MethodPost, base+"/ops", models.EditorOp{Op: "key", Key: &blocks.KeyEvent{Key: "Backspace", Block: 1, Point: -1}})
	st, doc = decodeState(t, w)
	assert.True(t, st.Handled)
	assert.Equal(t, 1, doc.Len())
	assert.Equal(t, blocks.Focus{Block: 0, Point: -1, Caret: 5}, st.Focus)

	w = do(t, r, http.MethodPost, base+"/ops", models.EditorOp{Op: "update", Field: "style", Value: "h7"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, base+"/save", models.SaveEditorRequest{Slug: "greeting", Title: "Greeting"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/articles/greeting/markdown", nil)
	assert.Equal(t, "Hello\n", w.Body.String())

	w = do(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportMarkdownAndStyles(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/import", gin.H{"markdown": "## Title\n\n- x\n- y\n"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":[
		{"serial":1,"style":"h2","content":"Title"},
		{"serial":2,"style":"bullet","points":["x","y"]}
	]}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/styles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var infos []blocks.StyleInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	assert.Len(t, infos, 10)
}
