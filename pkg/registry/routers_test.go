package registry_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	registry "github.com/antiquarium-museum/artifact-register/pkg/registry"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/handler"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/helpers/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestServedOpenAPIDocumentIsValid(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := handler.NewArtifactsAPIController(nil)
	router := registry.NewRouter("9.9.9", controller)

	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/openapi.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	spec, err := util.ParseAndValidateOAS(data)
	require.NoError(t, err)
	require.Equal(t, "9.9.9", spec.Info.Version)
	require.Equal(t, "Artifact register API v1", spec.Info.Title)

	require.Contains(t, spec.Paths.Map(), "/v1/artifacts")
	require.Contains(t, spec.Paths.Map(), "/v1/artifacts/{inventoryId}")
	require.Contains(t, spec.Paths.Map(), "/v1/health")
}
