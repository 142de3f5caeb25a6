package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	dom "Pastel/internal/domain"
	"Pastel/internal/dto"
	"Pastel/internal/handlers"
	"Pastel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo is a minimal in-memory ChecklistRepo for driving handlers through
// a real service.
type stubRepo struct {
	nextID     int64
	checklists map[int64]dom.Checklist
	items      map[int64]dom.ChecklistItem
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		checklists: make(map[int64]dom.Checklist),
		items:      make(map[int64]dom.ChecklistItem),
	}
}

func (r *stubRepo) List(_ context.Context, userID string) ([]dom.Checklist, error) {
	var out []dom.Checklist
	for _, cl := range r.checklists {
		if cl.UserID == userID {
			cl.Items = r.itemsOf(cl.ID)
			out = append(out, cl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubRepo) GetByID(_ context.Context, userID string, id int64) (dom.Checklist, error) {
	cl, ok := r.checklists[id]
	if !ok || cl.UserID != userID {
		return dom.Checklist{}, pgx.ErrNoRows
	}
	cl.Items = r.itemsOf(id)
	return cl, nil
}

func (r *stubRepo) Create(_ context.Context, userID, name string, color dom.Color) (dom.Checklist, error) {
	r.nextID++
	cl := dom.Checklist{ID: r.nextID, Name: name, Color: color, UserID: userID,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	r.checklists[cl.ID] = cl
	return cl, nil
}

func (r *stubRepo) Update(_ context.Context, userID string, id int64, name string, color *dom.Color) (dom.Checklist, error) {
	cl, ok := r.checklists[id]
	if !ok || cl.UserID != userID {
		return dom.Checklist{}, pgx.ErrNoRows
	}
	cl.Name = name
	if color != nil {
		cl.Color = *color
	}
	r.checklists[id] = cl
	return cl, nil
}

func (r *stubRepo) Delete(_ context.Context, userID string, id int64) error {
	cl, ok := r.checklists[id]
	if !ok || cl.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.checklists, id)
	for itemID, it := range r.items {
		if it.ChecklistID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *stubRepo) CreateItem(_ context.Context, userID string, checklistID int64, text string, imageURL *string) (dom.ChecklistItem, error) {
	cl, ok := r.checklists[checklistID]
	if !ok || cl.UserID != userID {
		return dom.ChecklistItem{}, pgx.ErrNoRows
	}
	r.nextID++
	it := dom.ChecklistItem{ID: r.nextID, ChecklistID: checklistID, Text: text,
		ImageURL: imageURL, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	r.items[it.ID] = it
	return it, nil
}

func (r *stubRepo) ToggleItem(_ context.Context, userID string, itemID int64) (dom.ChecklistItem, error) {
	it, ok := r.items[itemID]
	if !ok {
		return dom.ChecklistItem{}, pgx.ErrNoRows
	}
	if cl, ok := r.checklists[it.ChecklistID]; !ok || cl.UserID != userID {
		return dom.ChecklistItem{}, pgx.ErrNoRows
	}
	it.Completed = !it.Completed
	r.items[itemID] = it
	return it, nil
}

func (r *stubRepo) DeleteItem(_ context.Context, userID string, itemID int64) error {
	it, ok := r.items[itemID]
	if !ok {
		return pgx.ErrNoRows
	}
	if cl, ok := r.checklists[it.ChecklistID]; !ok || cl.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.items, itemID)
	return nil
}

func (r *stubRepo) itemsOf(checklistID int64) []dom.ChecklistItem {
	var out []dom.ChecklistItem
	for _, it := range r.items {
		if it.ChecklistID == checklistID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// newTestRouter wires the handler behind a middleware that injects userID,
// standing in for the session check.
func newTestRouter(repo *stubRepo, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewChecklistService(repo, nil)
	h := handlers.NewChecklistHandler(svc)

	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	api.GET("/checklists", h.List)
	api.POST("/checklists", h.Create)
	api.GET("/checklists/:id", h.Get)
	api.PATCH("/checklists/:id", h.Update)
	api.DELETE("/checklists/:id", h.Delete)
	api.POST("/checklists/:id/items", h.AddItem)
	api.POST("/items/:id/toggle", h.ToggleItem)
	api.DELETE("/items/:id", h.DeleteItem)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateChecklistHandler(t *testing.T) {
	repo := newStubRepo()
	r := newTestRouter(repo, "u1")

	w := doJSON(t, r, http.MethodPost, "/api/v1/checklists", `{"name":"Groceries","color":"chartreuse"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.ChecklistResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Groceries", resp.Name)
	assert.Equal(t, "pink", resp.Color, "unknown color falls back to the default")

	w = doJSON(t, r, http.MethodPost, "/api/v1/checklists", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/checklists", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "binding rejects a missing name")
}

func TestUpdateChecklistHandler(t *testing.T) {
	repo := newStubRepo()

	owner := newTestRouter(repo, "u1")
	w := doJSON(t, owner, http.MethodPost, "/api/v1/checklists", `{"name":"Groceries","color":"blue"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, owner, http.MethodPatch, "/api/v1/checklists/1", `{"name":"Weekend","color":"red"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ChecklistResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Weekend", resp.Name)
	assert.Equal(t, "blue", resp.Color, "invalid color keeps the stored one")

	// another user sees the same id as missing
	stranger := newTestRouter(repo, "u2")
	w = doJSON(t, stranger, http.MethodPatch, "/api/v1/checklists/1", `{"name":"Hacked","color":"red"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, stranger, http.MethodGet, "/api/v1/checklists/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, owner, http.MethodPatch, "/api/v1/checklists/abc", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemHandlers(t *testing.T) {
	repo := newStubRepo()
	r := newTestRouter(repo, "u1")

	w := doJSON(t, r, http.MethodPost, "/api/v1/checklists", `{"name":"Groceries","color":"blue"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/checklists/1/items", `{"text":"Milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var item dto.ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.False(t, item.Completed)

	w = doJSON(t, r, http.MethodPost, "/api/v1/items/2/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.True(t, item.Completed)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/items/2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/items/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListHandler(t *testing.T) {
	repo := newStubRepo()
	r := newTestRouter(repo, "u1")

	w := doJSON(t, r, http.MethodGet, "/api/v1/checklists", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.ListChecklistsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Items)

	doJSON(t, r, http.MethodPost, "/api/v1/checklists", `{"name":"Groceries","color":"blue"}`)
	doJSON(t, r, http.MethodPost, "/api/v1/checklists/1/items", `{"text":"Milk"}`)

	w = doJSON(t, r, http.MethodGet, "/api/v1/checklists", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	require.Len(t, list.Items[0].Items, 1)
	assert.Equal(t, "Milk", list.Items[0].Items[0].Text)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/checklists/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/checklists", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Items)
}
