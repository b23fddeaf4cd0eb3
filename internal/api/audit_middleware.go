package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"hosteria/internal/auth"
	"hosteria/internal/entities"
	"hosteria/internal/service"
)

// statusRecorder captures the status code a handler writes so the audit
// event can record the outcome.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// AuditMiddleware publishes one audit event per mutating request after the
// response is written. The event carries the sanitized request body and the
// route params; publishing runs on its own goroutine and can never fail the
// request.
func AuditMiddleware(audits *service.AuditService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			ctx, info := auth.WithRequestInfo(r.Context())
			r = r.WithContext(ctx)

			var bodyData map[string]interface{}
			if r.Body != nil {
				raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
				if err == nil {
					r.Body = io.NopCloser(bytes.NewReader(raw))
					_ = json.Unmarshal(raw, &bodyData)
				}
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			data := map[string]interface{}{}
			if body := service.Sanitize(bodyData); len(body) > 0 {
				data["body"] = body
			}
			if vars := mux.Vars(r); len(vars) > 0 {
				params := make(map[string]interface{}, len(vars))
				for k, v := range vars {
					params[k] = v
				}
				data["params"] = params
			}

			event := entities.AuditEvent{
				IDUsuario: info.UserID,
				Status:    recorder.status,
				Ruta:      r.URL.Path,
				Metodo:    r.Method,
				Accion:    info.Action,
				Fecha:     time.Now().UTC().Format(time.RFC3339),
				Datos:     data,
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = audits.Publish(ctx, event)
			}()
		})
	}
}
