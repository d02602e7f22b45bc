package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eshop/models"
)

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t)
	env.seedCategory(t, "tools")
	env.seedCategory(t, "toys")

	w := env.do(http.MethodGet, "/api/v1/categories", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var categories []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Len(t, categories, 2)
}

func TestGetCategoryMissAnswers500(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/categories/"+primitive.NewObjectID().Hex(), nil, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "was not found")
}

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(`{"name":"tools","icon":"wrench","color":"#00ff00"}`)
	w := env.do(http.MethodPost, "/api/v1/categories", body, "application/json")

	require.Equal(t, http.StatusOK, w.Code)
	var category models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))
	assert.False(t, category.ID.IsZero())
	assert.Equal(t, "tools", category.Name)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(`{"icon":"wrench"}`)
	w := env.do(http.MethodPost, "/api/v1/categories", body, "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCategory(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seedCategory(t, "tools")

	body := bytes.NewBufferString(`{"name":"hardware"}`)
	w := env.do(http.MethodPut, "/api/v1/categories/"+seeded.ID.Hex(), body, "application/json")

	require.Equal(t, http.StatusOK, w.Code)
	var category models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))
	assert.Equal(t, "hardware", category.Name)
	assert.Equal(t, seeded.ID, category.ID)
}

func TestDeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seedCategory(t, "tools")

	w := env.do(http.MethodDelete, "/api/v1/categories/"+seeded.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	w = env.do(http.MethodDelete, "/api/v1/categories/"+seeded.ID.Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
