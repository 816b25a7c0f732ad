package models

import (
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire name so clients can map errors to inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return IsCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return IsDifficulty(fl.Field().String())
	})
	_ = v.RegisterValidation("season", func(fl validator.FieldLevel) bool {
		return IsSeason(fl.Field().String())
	})
	return v
}

// DefaultRequestTimeout bounds every public read against PostgREST.
const DefaultRequestTimeout = 10 * time.Second

type SupabaseRepo struct {
	supabaseClient *supabase.Client
	// rest serves anonymous reads. Its transport has deadlines because
	// postgrest-go requests carry no context.
	rest *postgrest.Client
	url  string
	key  string
}

func SupabaseNewRepo(supabaseClient *supabase.Client, url, key string) *SupabaseRepo {
	su := &SupabaseRepo{
		supabaseClient: supabaseClient,
		url:            url,
		key:            key,
	}
	return su.WithRequestTimeout(DefaultRequestTimeout)
}

// WithRequestTimeout rebuilds the read client so connecting and waiting for
// a response each give up after timeout.
func (su *SupabaseRepo) WithRequestTimeout(timeout time.Duration) *SupabaseRepo {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	su.rest = postgrest.NewClient(strings.TrimRight(su.url, "/")+"/rest/v1", "public", map[string]string{
		"Authorization": "Bearer " + su.key,
		"apikey":        su.key,
	})
	if su.rest.Transport != nil {
		su.rest.Transport.Parent = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
			IdleConnTimeout:       90 * time.Second,
		}
	}
	return su
}

func (su *SupabaseRepo) from(table string) *postgrest.QueryBuilder {
	return su.rest.From(table)
}

// GetAuthenticatedClient returns a Supabase client that acts as the owner of
// accessToken, so row level security sees the caller rather than anon.
func (su *SupabaseRepo) GetAuthenticatedClient(accessToken string) (*supabase.Client, error) {
	if accessToken == "" || su.url == "" || su.key == "" {
		return su.supabaseClient, nil
	}

	options := &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supabase.NewClient(su.url, su.key, options)
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}
