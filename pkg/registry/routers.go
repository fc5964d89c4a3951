package registry

import (
	"github.com/antiquarium-museum/artifact-register/pkg/registry/handler"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/middleware"
	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
)

var apiVersionHeader = fizz.Header(
	"API-Version",
	"API version of the response",
	"", // empty string: plain string schema in the spec
)

func NewRouter(apiVersion string, controller *handler.ArtifactsAPIController) *fizz.Fizz {
	g := gin.Default()
	g.Use(APIVersionMiddleware(apiVersion))
	f := fizz.NewFromEngine(g)

	f.Generator().SetServers([]*openapi.Server{
		{
			URL:         "https://api.antiquarium-museum.ru/v1",
			Description: "Production",
		},
	})

	info := &openapi.Info{
		Title:       "Artifact register API v1",
		Description: "Registry of catalogued museum artifacts",
		Version:     apiVersion,
		Contact: &openapi.Contact{
			Name:  "Antiquarium collections team",
			Email: "collections@antiquarium-museum.ru",
		},
	}

	root := f.Group("/v1", "Artifacts v1", "Artifact register v1 routes")

	read := root.Group("", "Read", "Read-only endpoints", middleware.RequireAccess("artifacts:read"))
	read.GET("/artifacts",
		[]fizz.OperationOption{
			fizz.Summary("List registered artifacts"),
			apiVersionHeader,
		},
		tonic.Handler(controller.ListArtifacts, 200),
	)

	read.GET("/artifacts/:inventoryId",
		[]fizz.OperationOption{
			fizz.Summary("Retrieve an artifact, registering it on first access"),
			apiVersionHeader,
		},
		tonic.Handler(controller.RetrieveArtifact, 200),
	)

	f.GET("/v1/health", []fizz.OperationOption{
		fizz.Summary("Liveness probe"),
	}, tonic.Handler(controller.Health, 200))

	f.GET("/v1/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}
