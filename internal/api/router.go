package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/planora/server/internal/api/handlers"
	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/auth"
	"github.com/planora/server/internal/config"
	"github.com/planora/server/internal/domain/catering"
	"github.com/planora/server/internal/domain/coupons"
	"github.com/planora/server/internal/domain/decorations"
	"github.com/planora/server/internal/domain/escrow"
	"github.com/planora/server/internal/domain/events"
	"github.com/planora/server/internal/domain/guests"
	"github.com/planora/server/internal/domain/messages"
	"github.com/planora/server/internal/domain/notifications"
	"github.com/planora/server/internal/domain/tickets"
	"github.com/planora/server/internal/domain/vendors"
	"github.com/planora/server/internal/email"
	"github.com/planora/server/internal/metrics"
	"github.com/planora/server/internal/storage"
	"github.com/planora/server/internal/uploads"
	"github.com/rs/zerolog"
)

// Dependencies carries the shared services the router wires into handlers.
// The caller owns their lifecycles; the router only routes.
type Dependencies struct {
	Repo    storage.Repository
	Uploads *uploads.Service
	Email   *email.Service
}

func NewRouter(cfg config.Config, logger zerolog.Logger, deps Dependencies) http.Handler {
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)

	notificationsService := notifications.NewService(deps.Repo.Notifications())
	eventsService := events.NewService(deps.Repo.Events())
	var inviter guests.Inviter
	if deps.Email != nil {
		inviter = deps.Email
	}
	guestsService := guests.NewService(deps.Repo.Guests(), inviter)
	vendorsService := vendors.NewService(deps.Repo.Vendors())
	cateringService := catering.NewService(deps.Repo.Catering())
	decorationsService := decorations.NewService(deps.Repo.Decorations())
	ticketsService := tickets.NewService(deps.Repo.Tickets())
	couponsService := coupons.NewService(deps.Repo.Coupons())
	messagesService := messages.NewService(deps.Repo.Messages())
	escrowService := escrow.NewService(escrow.NewClient(cfg.Escrow), deps.Repo.Escrow())

	env := cfg.Environment
	eventsHandler := handlers.NewEventsHandler(eventsService, notificationsService, env)
	guestsHandler := handlers.NewGuestsHandler(guestsService, env)
	vendorsHandler := handlers.NewVendorsHandler(vendorsService, env)
	cateringHandler := handlers.NewCateringHandler(cateringService, env)
	decorationsHandler := handlers.NewDecorationsHandler(decorationsService, env)
	ticketsHandler := handlers.NewTicketsHandler(ticketsService, env)
	couponsHandler := handlers.NewCouponsHandler(couponsService, env)
	messagesHandler := handlers.NewMessagesHandler(messagesService, env)
	notificationsHandler := handlers.NewNotificationsHandler(notificationsService, env)
	uploadsHandler := handlers.NewUploadsHandler(deps.Uploads, env)
	escrowHandler := handlers.NewEscrowHandler(escrowService, env)
	healthHandler := handlers.NewHealthHandler(deps.Repo, Version)

	authRequired := middleware.Auth(jwtManager, env)
	jsonBody := middleware.RequestSize(middleware.DefaultMaxBodySize)
	uploadBody := middleware.RequestSize(middleware.UploadMaxBodySize)

	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(healthHandler.Liveness))
	mux.Handle("/readyz", http.HandlerFunc(healthHandler.Readiness))
	mux.Handle("/health", http.HandlerFunc(healthHandler.Health))
	mux.Handle("/version", VersionHandler())
	mux.Handle("/metrics", metrics.Handler())

	registerCRUD(mux, "/api/v1/events", crudHandlers{
		list:    eventsHandler.List,
		get:     eventsHandler.Get,
		create:  eventsHandler.Create,
		update:  eventsHandler.Update,
		delete:  eventsHandler.Delete,
		mine:    eventsHandler.ListMine,
		guarded: authRequired,
		body:    jsonBody,
	})
	registerCRUD(mux, "/api/v1/event-types", crudHandlers{
		list:    eventsHandler.ListTypes,
		get:     eventsHandler.GetType,
		create:  eventsHandler.CreateType,
		update:  eventsHandler.UpdateType,
		delete:  eventsHandler.DeleteType,
		guarded: authRequired,
		body:    jsonBody,
	})
	registerCRUD(mux, "/api/v1/guests", crudHandlers{
		list:    guestsHandler.List,
		get:     guestsHandler.Get,
		create:  guestsHandler.Create,
		update:  guestsHandler.Update,
		delete:  guestsHandler.Delete,
		mine:    guestsHandler.ListMine,
		guarded: authRequired,
		body:    jsonBody,
	})
	registerCRUD(mux, "/api/v1/vendors", crudHandlers{
		list:    vendorsHandler.List,
		get:     vendorsHandler.Get,
		create:  vendorsHandler.Create,
		update:  vendorsHandler.Update,
		delete:  vendorsHandler.Delete,
		mine:    vendorsHandler.ListMine,
		guarded: authRequired,
		body:    jsonBody,
	})
	registerCRUD(mux, "/api/v1/vendor-categories", crudHandlers{
		list:    vendorsHandler.ListCategories,
		get:     vendorsHandler.GetCategory,
		create:  vendorsHandler.CreateCategory,
		update:  vendorsHandler.UpdateCategory,
		delete:  vendorsHandler.DeleteCategory,
		guarded: authRequired,
		body:    jsonBody,
	})
	registerCRUD(mux, "/api/v1/vendor-contacts", crudHandlers{
		list:    vendorsHandler.ListContacts,
		get:     vendorsHandler.GetContact,
		create:  vendorsHandler.CreateContact,
		delete:  vendorsHandler.DeleteContact,
		guarded: authRequired,
		body:    jsonBody,
	})
	registerCRUD(mux, "/api/v1/catering-packages", crudHandlers{
		list:    cateringHandler.List,
		get:     cateringHandler.Get,
		create:  cateringHandler.Create,
		update:  cateringHandler.Update,
		delete:  cateringHandler.Delete,
		mine:    cateringHandler.ListMine,
		guarded: authRequired,
		body:    jsonBody,
	})
	registerCRUD(mux, "/api/v1/decorations", crudHandlers{
		list:    decorationsHandler.List,
		get:     decorationsHandler.Get,
		create:  decorationsHandler.Create,
		update:  decorationsHandler.Update,
		delete:  decorationsHandler.Delete,
		mine:    decorationsHandler.ListMine,
		guarded: authRequired,
		body:    jsonBody,
	})
	registerCRUD(mux, "/api/v1/tickets", crudHandlers{
		list:    ticketsHandler.List,
		get:     ticketsHandler.Get,
		create:  ticketsHandler.Create,
		update:  ticketsHandler.Update,
		delete:  ticketsHandler.Delete,
		mine:    ticketsHandler.ListMine,
		guarded: authRequired,
		body:    jsonBody,
	})
	registerCRUD(mux, "/api/v1/coupons", crudHandlers{
		list:    couponsHandler.List,
		get:     couponsHandler.Get,
		create:  couponsHandler.Create,
		update:  couponsHandler.Update,
		delete:  couponsHandler.Delete,
		mine:    couponsHandler.ListMine,
		guarded: authRequired,
		body:    jsonBody,
	})
	registerCRUD(mux, "/api/v1/messages", crudHandlers{
		list:    messagesHandler.List,
		get:     messagesHandler.Get,
		create:  messagesHandler.Create,
		delete:  messagesHandler.Delete,
		mine:    messagesHandler.ListMine,
		guarded: authRequired,
		body:    jsonBody,
	})

	// Notifications are always scoped to the authenticated user, so even
	// the list endpoint requires a token.
	mux.Handle("/api/v1/notifications", methodMux(map[string]http.Handler{
		http.MethodGet: authRequired(http.HandlerFunc(notificationsHandler.List)),
	}))
	mux.Handle("/api/v1/notifications/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    authRequired(http.HandlerFunc(notificationsHandler.Get)),
		http.MethodDelete: authRequired(http.HandlerFunc(notificationsHandler.Delete)),
	}))
	mux.Handle("/api/v1/notifications/{id}/read", methodMux(map[string]http.Handler{
		http.MethodPatch: authRequired(http.HandlerFunc(notificationsHandler.MarkRead)),
	}))

	mux.Handle("/api/v1/uploads", methodMux(map[string]http.Handler{
		http.MethodPost: authRequired(uploadBody(http.HandlerFunc(uploadsHandler.Upload))),
	}))
	mux.Handle("/api/v1/uploads/batch", methodMux(map[string]http.Handler{
		http.MethodPost: authRequired(uploadBody(http.HandlerFunc(uploadsHandler.UploadBatch))),
	}))
	mux.Handle("/api/v1/uploads/base64", methodMux(map[string]http.Handler{
		http.MethodPost: authRequired(uploadBody(http.HandlerFunc(uploadsHandler.UploadBase64))),
	}))
	mux.Handle("/api/v1/uploads/presign", methodMux(map[string]http.Handler{
		http.MethodPost: authRequired(jsonBody(http.HandlerFunc(uploadsHandler.Presign))),
	}))

	mux.Handle("/api/v1/escrow/customers", methodMux(map[string]http.Handler{
		http.MethodPost: authRequired(jsonBody(http.HandlerFunc(escrowHandler.CreateCustomer))),
	}))
	mux.Handle("/api/v1/escrow/customers/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: authRequired(http.HandlerFunc(escrowHandler.GetCustomer)),
	}))
	mux.Handle("/api/v1/escrow/transactions", methodMux(map[string]http.Handler{
		http.MethodGet:  authRequired(http.HandlerFunc(escrowHandler.ListTransactions)),
		http.MethodPost: authRequired(jsonBody(http.HandlerFunc(escrowHandler.CreateTransaction))),
	}))
	mux.Handle("/api/v1/escrow/transactions/local/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: authRequired(http.HandlerFunc(escrowHandler.GetLocalTransaction)),
	}))
	mux.Handle("/api/v1/escrow/transactions/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:   authRequired(http.HandlerFunc(escrowHandler.GetTransaction)),
		http.MethodPatch: authRequired(jsonBody(http.HandlerFunc(escrowHandler.UpdateTransaction))),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.Server.CORSAllowAll, cfg.Server.CORSAllowedOrigins, logger)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

// crudHandlers describes one resource's endpoints. Reads are public; writes
// pass through the auth and body-size middleware. Nil slots are simply not
// registered, which is how hard-delete-only resources skip update.
type crudHandlers struct {
	list    http.HandlerFunc
	get     http.HandlerFunc
	create  http.HandlerFunc
	update  http.HandlerFunc
	delete  http.HandlerFunc
	mine    http.HandlerFunc
	guarded func(http.Handler) http.Handler
	body    func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, base string, h crudHandlers) {
	collection := map[string]http.Handler{}
	if h.list != nil {
		collection[http.MethodGet] = h.list
	}
	if h.create != nil {
		collection[http.MethodPost] = h.guarded(h.body(h.create))
	}
	mux.Handle(base, methodMux(collection))

	if h.mine != nil {
		mux.Handle(base+"/mine", methodMux(map[string]http.Handler{
			http.MethodGet: h.guarded(http.HandlerFunc(h.mine)),
		}))
	}

	item := map[string]http.Handler{}
	if h.get != nil {
		item[http.MethodGet] = h.get
	}
	if h.update != nil {
		item[http.MethodPut] = h.guarded(h.body(h.update))
	}
	if h.delete != nil {
		item[http.MethodDelete] = h.guarded(http.HandlerFunc(h.delete))
	}
	mux.Handle(base+"/{id}", methodMux(item))
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
