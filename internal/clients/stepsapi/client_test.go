package stepsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/builder"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/steps"
)

type seen struct {
	method, path, auth, role string
	payload                  steps.Payload
}

func newServer(t *testing.T, status int, reply any) (*Client, *[]seen) {
	t.Helper()
	var calls []seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := seen{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization"), role: r.Header.Get("X-User-Role")}
		if r.Body != nil && r.Method != http.MethodGet {
			_ = json.NewDecoder(r.Body).Decode(&s.payload)
		}
		calls = append(calls, s)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/", Token: "tok"}, nil)
	require.NoError(t, err)
	return c, &calls
}

func TestListSteps(t *testing.T) {
	id := uuid.New()
	c, calls := newServer(t, http.StatusOK, []map[string]any{
		{"id": id, "title": "a", "order": 1, "content": map[string]any{"type": "text", "value": "legacy"}},
	})
	course := uuid.New()

	list, err := c.ListSteps(context.Background(), course)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, *list[0].ID)
	assert.Equal(t, content.Text{Text: "legacy"}, list[0].Content.Blocks[0].Data)

	require.Len(t, *calls, 1)
	got := (*calls)[0]
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/courses/"+course.String()+"/steps", got.path)
	assert.Equal(t, "Bearer tok", got.auth)
	assert.Equal(t, "teacher", got.role)
}

func TestCreateAndUpdateStep(t *testing.T) {
	id := uuid.New()
	c, calls := newServer(t, http.StatusCreated, map[string]any{"id": id, "title": "t", "order": 2})
	course := uuid.New()

	s := builder.New(content.Document{})
	require.NoError(t, s.AddBlock(content.TypeAlert))
	p := steps.Payload{Title: "t", Order: 2, Content: s.Document()}

	created, err := c.CreateStep(context.Background(), course, p)
	require.NoError(t, err)
	assert.Equal(t, id, *created.ID)

	_, err = c.UpdateStep(context.Background(), id, p)
	require.NoError(t, err)

	require.Len(t, *calls, 2)
	assert.Equal(t, http.MethodPost, (*calls)[0].method)
	assert.Equal(t, "/api/teacher/courses/"+course.String()+"/steps", (*calls)[0].path)
	assert.Equal(t, http.MethodPut, (*calls)[1].method)
	assert.Equal(t, "/api/teacher/steps/"+id.String(), (*calls)[1].path)
	assert.Equal(t, p.Content, (*calls)[1].payload.Content)
}

func TestHTTPError(t *testing.T) {
	c, _ := newServer(t, http.StatusUnprocessableEntity, map[string]any{"error": map[string]any{"message": "order: min=1"}})

	_, err := c.CreateStep(context.Background(), uuid.New(), steps.Payload{})
	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusUnprocessableEntity, herr.StatusCode)
	assert.Contains(t, herr.Body, "order: min=1")
}

func TestSaveThroughClient(t *testing.T) {
	id := uuid.New()
	c, calls := newServer(t, http.StatusOK, map[string]any{"id": id, "title": "x", "order": 1})

	coll := steps.NewCollection(nil)
	coll.AddStep()
	require.NoError(t, coll.Save(context.Background(), c, uuid.New(), nil))
	assert.Len(t, *calls, 2)
	for _, s := range coll.Steps() {
		assert.True(t, s.Persisted())
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)
}
