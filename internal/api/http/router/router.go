package router

import (
	"net/http"

	"github.com/mkarpova/slidedeck-server/internal/api/http/handler"
	"github.com/mkarpova/slidedeck-server/internal/api/http/middleware"
	"github.com/mkarpova/slidedeck-server/internal/logger"
	"github.com/mkarpova/slidedeck-server/internal/model"
	"github.com/mkarpova/slidedeck-server/internal/service"
)

// Router wires the API endpoints, middleware and services together.
type Router struct {
	sessions       *service.Session
	syncer         *service.Syncer
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	sessions *service.Session,
	syncer *service.Syncer,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		sessions:       sessions,
		syncer:         syncer,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the HTTP handler tree: public auth endpoints, bearer-token
// protected session and store endpoints, request-id and logging middleware
// around everything.
func (r *Router) Register() http.Handler {
	authenticate := middleware.NewAuthenticate(r.sessions, r.contextManager, r.logger)
	logging := middleware.NewLogging(r.logger)

	authHandler := handler.NewAuth(r.sessions, r.syncer, r.contextManager, r.logger)
	storeHandler := handler.NewStore(r.sessions, r.syncer, r.contextManager, r.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/auth/register", authHandler.Register)
	mux.HandleFunc("POST /admin/auth/login", authHandler.Login)
	mux.Handle("POST /admin/auth/logout", authenticate.Wrap(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /store", authenticate.Wrap(http.HandlerFunc(storeHandler.Get)))
	mux.Handle("PUT /store", authenticate.Wrap(http.HandlerFunc(storeHandler.Put)))

	return middleware.RequestID(logging.Wrap(mux))
}
