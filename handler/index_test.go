package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Index(ServiceInfo{CatalogItems: 3, Categories: []string{"Tea"}, CartStore: "redis", OrderStore: "postgres"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool        `json:"success"`
		Data    ServiceInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Coffee Order API", body.Data.Name)
	assert.Equal(t, Version, body.Data.Version)
	assert.Equal(t, "/swagger/index.html", body.Data.Docs)
	assert.Equal(t, 3, body.Data.CatalogItems)
	assert.Equal(t, "redis", body.Data.CartStore)
	assert.Equal(t, "postgres", body.Data.OrderStore)
}
