package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ajans/visit-form/pkg/metrics"
	"github.com/ajans/visit-form/pkg/version"
	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type apiServer struct {
	ctx  context.Context
	log  *logrus.Entry
	port int
}

func NewAPIServer(ctx context.Context, log *logrus.Entry, port int) *apiServer {
	return &apiServer{
		ctx:  ctx,
		log:  log,
		port: port,
	}
}

// NewRouter wires the form pages and the JSON API.
func NewRouter(log *logrus.Entry, h *Handler) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(loggingMiddleware(log))

	router.Path("/").Methods("GET").HandlerFunc(h.formPage)
	router.Path("/submit").Methods("POST").HandlerFunc(h.submitForm)

	router.Path("/healthz").HandlerFunc(h.version)
	router.Path("/version").HandlerFunc(h.version)
	router.Path("/metrics").Handler(metrics.Handler())

	api := router.PathPrefix("/v1").Subrouter()
	api.Path("/dealers").Methods("GET").HandlerFunc(h.listDealers)
	api.Path("/dealers/refresh").Methods("POST").HandlerFunc(h.refreshDealers)
	api.Path("/visits").Methods("POST").HandlerFunc(h.createVisit)

	// Note: this allows not found urls to be logged via the middleware
	// It **HAS** to be defined after all other paths are defined.
	router.NotFoundHandler = router.NewRoute().HandlerFunc(http.NotFound).GetHandler()

	return ghandlers.CORS(
		ghandlers.AllowedMethods([]string{"GET", "POST"}),
		ghandlers.AllowedHeaders([]string{"Content-Type"}),
	)(router)
}

// Start serves handler until the server context is cancelled, then shuts
// down gracefully.
func (a *apiServer) Start(handler http.Handler) error {
	a.log.Infof("Version: %s", version.Get())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.WithField("port", a.port).Info("starting visit form server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatalf("listen: %s\n", err)
		}
	}()

	<-a.ctx.Done()

	a.log.Info("shutting down the server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.log.WithError(err).Error("unable to shutdown the server gracefully")
		return err
	}

	return nil
}
