package generated

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Look up an artwork by artist and title
	// (GET /api/v1/lookup)
	Lookup(w http.ResponseWriter, r *http.Request, params LookupParams)
	// Health check
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// Prometheus metrics
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
	// Build information
	// (GET /version)
	GetVersion(w http.ResponseWriter, r *http.Request)
	// Redirect to the project documentation
	// (GET /doc)
	GetDoc(w http.ResponseWriter, r *http.Request)
}

// Unimplemented server implementation that returns http.StatusNotImplemented for each endpoint.
type Unimplemented struct{}

// Lookup (GET /api/v1/lookup)
func (Unimplemented) Lookup(w http.ResponseWriter, _ *http.Request, _ LookupParams) {
	w.WriteHeader(http.StatusNotImplemented)
}

// HealthCheck (GET /health)
func (Unimplemented) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Metrics (GET /metrics)
func (Unimplemented) Metrics(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// GetVersion (GET /version)
func (Unimplemented) GetVersion(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// GetDoc (GET /doc)
func (Unimplemented) GetDoc(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// MiddlewareFunc wraps a single route handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts requests into handler calls with bound parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// Lookup binds the query parameters and calls Handler.Lookup.
func (siw *ServerInterfaceWrapper) Lookup(w http.ResponseWriter, r *http.Request) {
	var err error
	var params LookupParams

	query := r.URL.Query()

	err = runtime.BindQueryParameter("form", true, false, "title", query, &params.Title)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "title", Err: err})
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "artist", query, &params.Artist)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "artist", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.Lookup(w, r, params)
	}))
	siw.wrap(handler).ServeHTTP(w, r)
}

// HealthCheck calls Handler.HealthCheck.
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.HealthCheck)).ServeHTTP(w, r)
}

// Metrics calls Handler.Metrics.
func (siw *ServerInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.Metrics)).ServeHTTP(w, r)
}

// GetVersion calls Handler.GetVersion.
func (siw *ServerInterfaceWrapper) GetVersion(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.GetVersion)).ServeHTTP(w, r)
}

// GetDoc calls Handler.GetDoc.
func (siw *ServerInterfaceWrapper) GetDoc(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.GetDoc)).ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) wrap(h http.Handler) http.Handler {
	for _, m := range siw.HandlerMiddlewares {
		h = m(h)
	}
	return h
}

// InvalidParamFormatError reports a query parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ChiServerOptions configures route registration.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates http.Handler with routing matching the lookup API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/lookup", wrapper.Lookup)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.HealthCheck)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/metrics", wrapper.Metrics)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/version", wrapper.GetVersion)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/doc", wrapper.GetDoc)
	})

	return r
}
