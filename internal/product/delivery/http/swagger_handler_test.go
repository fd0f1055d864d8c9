package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	_ "github.com/tair/storefront/docs"
)

func TestRegisterSwaggerDocs(t *testing.T) {
	router := mux.NewRouter()
	RegisterSwaggerDocs(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title": "Storefront API"`)
	assert.Contains(t, rec.Body.String(), "/api/orders")
}
