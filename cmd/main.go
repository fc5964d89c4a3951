package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/antiquarium-museum/artifact-register/pkg/jobs"
	registry "github.com/antiquarium-museum/artifact-register/pkg/registry"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/broker"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/cache"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/config"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/database"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/handler"
	httpclient "github.com/antiquarium-museum/artifact-register/pkg/registry/helpers/httpclient"
	problem "github.com/antiquarium-museum/artifact-register/pkg/registry/helpers/problem"
	util "github.com/antiquarium-museum/artifact-register/pkg/registry/helpers/util"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/models"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/repositories"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/loopfz/gadgeto/tonic"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func invalidParamsFromBinding(err error, sample any) []problem.InvalidParam {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []problem.InvalidParam{{Name: "request", Reason: err.Error()}}
	}

	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	out := make([]problem.InvalidParam, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
				name = strings.Split(tag, ",")[0]
			}
		}
		out = append(out, problem.InvalidParam{
			Name:   name,
			Reason: humanReason(fe),
		})
	}
	return out
}

func humanReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return fe.Error()
	}
}

func init() {
	tonic.SetErrorHook(func(c *gin.Context, err error) (int, interface{}) {
		var be tonic.BindError
		if errors.As(err, &be) || isValidationErr(err) {
			invalids := invalidParamsFromBinding(err, models.ArtifactParams{})
			apiErr := problem.NewBadRequest("request", "Invalid request input", invalids...)
			c.Header("Content-Type", "application/problem+json")
			return apiErr.Status, apiErr
		}

		if apiErr, ok := err.(problem.APIError); ok {
			c.Header("Content-Type", "application/problem+json")
			return apiErr.Status, apiErr
		}

		internal := problem.NewInternalServerError(err.Error())
		c.Header("Content-Type", "application/problem+json")
		return internal.Status, internal
	})
}

func isValidationErr(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func main() {
	_ = godotenv.Load()

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	version, err := util.LoadOASVersion("./api/openapi.json")
	if err != nil {
		log.Fatalf("failed to load OAS version: %v", err)
	}

	db, err := database.Connect(settings.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     settings.RedisAddr,
		Password: settings.RedisPassword,
		DB:       settings.RedisDB,
	})
	artifactCache := cache.NewRedisCache(redisClient, settings.CacheKeyPrefix, settings.CacheTTL)

	kafkaWriter := broker.NewWriter(settings.KafkaBrokers, settings.KafkaTopic)
	defer kafkaWriter.Close()
	events := broker.NewKafkaPublisher(kafkaWriter)

	museum := httpclient.NewMuseumClient(settings.MuseumAPIBase, httpclient.HTTPClient, 0)
	catalog := httpclient.NewCatalogClient(settings.CatalogAPIBase, httpclient.HTTPClient, 0)

	uow := repositories.NewUnitOfWork(db)
	service := services.NewArtifactsAPIService(uow, artifactCache, museum, catalog, events, settings.PublishPolicy, settings.CacheTTL)
	controller := handler.NewArtifactsAPIController(service)
	jobs.ScheduleCacheWarmup(context.Background(), service)

	router := registry.NewRouter(version, controller)

	log.Printf("Server is running on port %s", settings.Port)
	log.Fatal(http.ListenAndServe(":"+settings.Port, router))
}
