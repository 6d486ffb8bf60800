// Command sample binds a small pet store description onto a chi
// router and serves it.
//
// Run:
//
//	go run ./cmd/sample serve
//	go run ./cmd/sample spec
//	go run ./cmd/sample spec --yaml
//
// Then explore:
//
//	GET http://localhost:8080/v1/api-docs        the API document
//	GET http://localhost:8080/docs               interactive docs UI
//	GET http://localhost:8080/v1/pets            list pets
//	GET http://localhost:8080/v1/pets/1          one pet (X-API-Key: letmein)
//	GET http://localhost:8080/metrics            Prometheus metrics
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/bind"
	"github.com/bjaus/bind/chibind"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sample",
		Short:        "Pet store bound with github.com/bjaus/bind",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), specCmd())
	return root
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pet store API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mux, err := newRouter()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			slog.Info("starting server", "addr", addr, "docs", "http://localhost"+addr+"/v1/api-docs")

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func specCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Print the API document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := petstoreDoc()
			if asYAML {
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(doc)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of JSON")
	return cmd
}

func newRouter() (http.Handler, error) {
	mux := chi.NewRouter()
	mux.Handle("/metrics", promhttp.Handler())

	b, err := bind.New(chibind.New(mux),
		bind.WithMiddleware(
			bind.Recovery(),
			bind.RequestID(),
			bind.Logger(slog.Default()),
			bind.Metrics(bind.MetricsConfig{Namespace: "petstore"}),
		),
		bind.WithConsumesStep("application/json", requireJSON),
	)
	if err != nil {
		return nil, err
	}

	doc := petstoreDoc()
	handlers := map[string]http.Handler{
		"listPets": http.HandlerFunc(listPets),
		"getPet":   http.HandlerFunc(getPet),
	}
	features := map[string]bind.FeatureSet{
		"getPet": {
			RequestValidator: bind.RequestValidatorFunc(validatePetID),
			Security:         bind.SecurityHandlerFunc(checkAPIKey),
		},
	}

	err = b.Bind(doc, "/v1", func(_, _ string, def *bind.OperationDoc) (bind.Operation, bool) {
		h, ok := handlers[def.OperationID]
		if !ok {
			return bind.Operation{}, false
		}
		return bind.Operation{
			Handler:         h,
			FeaturesEnabled: true,
			Features:        features[def.OperationID],
		}, true
	})
	if err != nil {
		return nil, err
	}

	b.ServeUI("/docs", "/v1", bind.WithUITitle("Pet Store"))
	return mux, nil
}

type pet struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var pets = []pet{
	{ID: 1, Name: "Rex"},
	{ID: 2, Name: "Mittens"},
}

func listPets(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(pets)
}

func getPet(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "petId"))
	for _, p := range pets {
		if p.ID == id {
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck,gosec // best-effort after WriteHeader
			json.NewEncoder(w).Encode(p)
			return
		}
	}
	bind.DefaultErrorHandler(w, r, bind.Errorf(http.StatusNotFound, "no pet %d", id))
}

func validatePetID(r *http.Request) error {
	id := chi.URLParam(r, "petId")
	if _, err := strconv.Atoi(id); err != nil {
		return &bind.ProblemDetail{
			Title:  "invalid parameter",
			Status: http.StatusBadRequest,
			Errors: []bind.ValidationError{
				{Field: "petId", Message: "must be an integer", Value: id},
			},
		}
	}
	return nil
}

func checkAPIKey(r *http.Request) error {
	if r.Header.Get("X-API-Key") != "letmein" {
		return &bind.SecurityError{
			Status:    http.StatusUnauthorized,
			Message:   "missing or invalid API key",
			Challenge: `ApiKey realm="petstore"`,
		}
	}
	return nil
}

func requireJSON(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
	if r.Method == http.MethodGet || r.Body == nil {
		return nil, nil
	}
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "application/json") {
		return nil, bind.Errorf(http.StatusUnsupportedMediaType, "unsupported content type %q", ct)
	}
	return nil, nil
}

func petstoreDoc() *bind.Document {
	return &bind.Document{
		Swagger: "2.0",
		Info: bind.Info{
			Title:   "Pet Store",
			Version: "1.0.0",
		},
		Consumes: []string{"application/json"},
		Paths: map[string]bind.PathItem{
			"/pets": {
				"get": &bind.OperationDoc{
					OperationID: "listPets",
					Summary:     "List pets",
					Responses: map[string]bind.ResponseDoc{
						"200": {Description: "A list of pets"},
					},
				},
			},
			"/pets/{petId}": {
				"get": &bind.OperationDoc{
					OperationID: "getPet",
					Summary:     "Get one pet",
					Parameters: []bind.Parameter{
						{Name: "petId", In: "path", Required: true, Type: "integer"},
					},
					Responses: map[string]bind.ResponseDoc{
						"200": {Description: "A pet"},
						"404": {Description: "Not found"},
					},
					Security: []map[string][]string{{"apiKey": {}}},
				},
			},
		},
		SecurityDefinitions: map[string]bind.SecurityScheme{
			"apiKey": {Type: "apiKey", Name: "X-API-Key", In: "header"},
		},
	}
}
