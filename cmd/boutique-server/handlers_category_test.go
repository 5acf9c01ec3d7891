package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique-backend/internal/category"
)

func TestCategoryLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/product-categories",
		`{"name":"Tea","description":"loose leaf"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/api/product-categories/1", w.Header().Get("Location"))

	var created category.ProductCategory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	// a full update replaces every field
	w = doJSON(t, env.router, http.MethodPut, "/api/product-categories/1", `{"id":1,"name":"Teas"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, env.router, http.MethodGet, "/api/product-categories/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var found category.ProductCategory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, "Teas", found.Name)
	assert.Nil(t, found.Description, "a full update does not preserve omitted fields")

	// a patch preserves what it does not name
	w = doJSON(t, env.router, http.MethodPatch, "/api/product-categories/1",
		`{"id":1,"description":"all of them"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var patched category.ProductCategory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patched))
	assert.Equal(t, "Teas", patched.Name)
	require.NotNil(t, patched.Description)
	assert.Equal(t, "all of them", *patched.Description)
}

func TestCreateCategory_RejectsBlankName(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/product-categories", `{"description":"nameless"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCategory_RequiresPayloadID(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(t, env.router, http.MethodPut, "/api/product-categories/1", `{"name":"Teas"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCategory_UnknownIs404(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(t, env.router, http.MethodPut, "/api/product-categories/9", `{"id":9,"name":"Teas"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCategories_TotalCountHeader(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"Tea", "Cups", "Spoons"} {
		w := doJSON(t, env.router, http.MethodPost, "/api/product-categories", `{"name":"`+name+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, env.router, http.MethodGet, "/api/product-categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-Total-Count"))
}
