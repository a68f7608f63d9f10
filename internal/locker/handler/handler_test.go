package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smartlocker/smartlocker/internal/identity"
	"github.com/smartlocker/smartlocker/internal/locker"
	"github.com/smartlocker/smartlocker/internal/locker/repository"
	"github.com/smartlocker/smartlocker/internal/locker/service"
	"github.com/stretchr/testify/require"
)

// newRouter mounts the locker routes with a stub auth layer injecting the
// given caller, the way the verifier middleware does in production.
func newRouter(svc service.Service, caller identity.Identity) *gin.Engine {
	g := gin.New()
	grp := g.Group("/", func(c *gin.Context) {
		c.Set("identity", caller)
		c.Next()
	})
	RegisterLockerRoutes(grp, svc)
	return g
}

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestLockerLifecycle(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := service.New(store)
	asOwner := newRouter(svc, identity.Identity{ID: "user-abc", DisplayName: "alice"})
	asOther := newRouter(svc, identity.Identity{ID: "other-user", DisplayName: "mallory"})

	// create
	w := do(asOwner, http.MethodPost, "/api/lockers", `{"uuid":"1234","location":"Mexico","size":"large"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	require.Equal(t, "Locker created successfully", body["message"])
	created := body["locker"].(map[string]interface{})
	require.Equal(t, "1234", created["lockerId"])
	require.Equal(t, "user-abc", created["ownerId"])
	require.Equal(t, "available", created["status"])

	// read as someone else
	w = do(asOther, http.MethodGet, "/api/lockers/1234", "")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "You are not the owner of this locker", decode(t, w)["message"])

	// read as owner
	w = do(asOwner, http.MethodGet, "/api/lockers/1234", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	require.Equal(t, "1234", got["lockerId"])
	require.Equal(t, "Mexico", got["location"])
	require.Equal(t, "large", got["size"])

	// update a single field
	w = do(asOwner, http.MethodPut, "/api/lockers/1234", `{"status":"occupied"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)
	require.Equal(t, "occupied", updated["status"])
	require.Equal(t, "Mexico", updated["location"])

	// delete: 201 with the id as confirmation
	w = do(asOwner, http.MethodDelete, "/api/lockers/1234", "")
	require.Equal(t, http.StatusCreated, w.Code)
	body = decode(t, w)
	require.Equal(t, "Locker deleted successfully", body["message"])
	require.Equal(t, "1234", body["locker"])

	// gone afterwards
	w = do(asOwner, http.MethodGet, "/api/lockers/1234", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Locker not found", decode(t, w)["message"])
}

func TestCreateLockerConflict(t *testing.T) {
	svc := service.New(repository.NewMemoryStore())
	g := newRouter(svc, identity.Identity{ID: "user-abc"})

	w := do(g, http.MethodPost, "/api/lockers", `{"uuid":"1234","location":"Mexico","size":"large"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(g, http.MethodPost, "/api/lockers", `{"uuid":"1234","location":"Mexico","size":"large"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "Locker already exists", decode(t, w)["message"])
}

func TestCreateLockerValidation(t *testing.T) {
	svc := service.New(repository.NewMemoryStore())
	g := newRouter(svc, identity.Identity{ID: "user-abc"})

	// missing size
	w := do(g, http.MethodPost, "/api/lockers", `{"uuid":"1234","location":"Mexico"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// malformed body
	w = do(g, http.MethodPost, "/api/lockers", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateLockerEmptyPatch(t *testing.T) {
	svc := service.New(repository.NewMemoryStore())
	g := newRouter(svc, identity.Identity{ID: "user-abc"})

	do(g, http.MethodPost, "/api/lockers", `{"uuid":"1234","location":"Mexico","size":"large"}`)
	w := do(g, http.MethodPut, "/api/lockers/1234", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListLockers(t *testing.T) {
	svc := service.New(repository.NewMemoryStore())
	g := newRouter(svc, identity.Identity{ID: "user-abc"})

	w := do(g, http.MethodGet, "/api/lockers", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.NotNil(t, body["lockers"])
	require.Empty(t, body["lockers"])

	do(g, http.MethodPost, "/api/lockers", `{"uuid":"a","location":"x","size":"s"}`)
	w = do(g, http.MethodGet, "/api/lockers", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode(t, w)["lockers"], 1)
}

// brokenStore fails every primitive, standing in for an unavailable store.
type brokenStore struct{}

var errStoreDown = errors.New("store unavailable")

func (brokenStore) Get(ctx context.Context, id string) (*locker.Locker, error) {
	return nil, errStoreDown
}
func (brokenStore) Put(ctx context.Context, l *locker.Locker) error { return errStoreDown }
func (brokenStore) Update(ctx context.Context, id string, p locker.Patch) (*locker.Locker, error) {
	return nil, errStoreDown
}
func (brokenStore) Delete(ctx context.Context, id string) error { return errStoreDown }
func (brokenStore) Scan(ctx context.Context) ([]*locker.Locker, error) {
	return nil, errStoreDown
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	svc := service.New(brokenStore{})
	g := newRouter(svc, identity.Identity{ID: "user-abc"})

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPost, "/api/lockers", `{"uuid":"1","location":"x","size":"s"}`},
		{http.MethodGet, "/api/lockers/1", ""},
		{http.MethodGet, "/api/lockers", ""},
		{http.MethodPut, "/api/lockers/1", `{"status":"occupied"}`},
		{http.MethodDelete, "/api/lockers/1", ""},
	} {
		w := do(g, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusInternalServerError, w.Code, "%s %s", tc.method, tc.path)
		// internal detail never leaks
		require.Equal(t, "Internal Server Error", decode(t, w)["message"])
		require.NotContains(t, w.Body.String(), errStoreDown.Error())
	}
}

func TestMissingIdentityRejected(t *testing.T) {
	g := gin.New()
	RegisterLockerRoutes(g, service.New(repository.NewMemoryStore()))

	w := do(g, http.MethodGet, "/api/lockers", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
