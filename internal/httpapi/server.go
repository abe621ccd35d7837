package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"naamd/pkg/artifact"
	"naamd/pkg/naam"
	"naamd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(ctx context.Context, in naam.Input, lang types.Lang, latest bool) ([]types.Prediction, error)
	Status() types.StatusResponse
	Loaded() bool
}

// NewMux registers /predict, /status, /healthz, /readyz and /metrics.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	// Predict godoc
	// @Summary      Predict religion from names
	// @Accept       json
	// @Produce      json
	// @Param        request body types.PredictRequest true "names and language"
	// @Success      200 {object} types.PredictResponse
	// @Failure      400 {object} types.ErrorResponse
	// @Failure      503 {object} types.ErrorResponse
	// @Router       /predict [post]
	r.Post("/predict", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		in, err := inputFromRequest(req)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		lang := req.Lang
		if lang == "" {
			lang = types.LangEnglish
		}

		start := time.Now()
		logPredictStart(r, req)
		// Join server base context with request context so shutdown cancels
		// an in-flight model download too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		preds, err := svc.Predict(ctx, in, lang, req.Latest)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := statusForError(err)
			writeJSONError(w, status, err.Error())
			logPredictEnd(r, status, start, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.PredictResponse{Predictions: preds}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
		logPredictEnd(r, http.StatusOK, start, nil)
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Loaded() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no model loaded"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// inputFromRequest maps the wire payload onto the tagged input union.
// Exactly one of name, names, column may be set.
func inputFromRequest(req types.PredictRequest) (naam.Input, error) {
	set := 0
	if req.Name != "" {
		set++
	}
	if req.Names != nil {
		set++
	}
	if req.Column != nil {
		set++
	}
	if set > 1 {
		return naam.Input{}, errMultipleInputs
	}
	switch {
	case req.Name != "":
		return naam.Single(req.Name), nil
	case req.Column != nil:
		return naam.Column(*req.Column), nil
	default:
		// Empty Names falls through to the validator's empty-batch error.
		return naam.Batch(req.Names), nil
	}
}

// statusForError maps the prediction error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case naam.IsInvalidArgument(err):
		return http.StatusBadRequest
	case naam.IsArtifactUnavailable(err), artifact.IsSecurityViolation(err):
		return http.StatusServiceUnavailable
	default:
		// Model load and prediction failures are server-side faults.
		return http.StatusInternalServerError
	}
}

func logPredictStart(r *http.Request, req types.PredictRequest) {
	if requestLogLevel(r) < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Str("lang", string(req.Lang)).Bool("latest", req.Latest)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("predict start")
		return
	}
	log.Printf("predict start path=%s lang=%s latest=%v", r.URL.Path, req.Lang, req.Latest)
}

func logPredictEnd(r *http.Request, status int, start time.Time, err error) {
	if requestLogLevel(r) < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Int("status", status).Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("predict end")
		return
	}
	if err != nil {
		log.Printf("predict end status=%d dur=%s err=%v", status, time.Since(start), err)
		return
	}
	log.Printf("predict end status=%d dur=%s", status, time.Since(start))
}
