package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"rentshare/internal/config"
	"rentshare/internal/domain"
	"rentshare/internal/export"

	"github.com/rs/zerolog"
)

// HTTPServer — тонкий транспорт над сервисами. Идентификатор действующего
// пользователя приходит в заголовке и принимается на веру: аутентификации
// здесь нет, только авторизация внутри сервисов.
type HTTPServer struct {
	cfg      config.HTTPConfig
	bookings domain.BookingService
	items    domain.ItemService
	users    domain.UserService
	comments domain.CommentService
	requests domain.RequestService
	exporter *export.Exporter
	server   *http.Server
	log      zerolog.Logger
}

func NewHTTPServer(
	cfg config.HTTPConfig,
	bookings domain.BookingService,
	items domain.ItemService,
	users domain.UserService,
	comments domain.CommentService,
	requests domain.RequestService,
	exporter *export.Exporter,
	limiter *RateLimiter,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		bookings: bookings,
		items:    items,
		users:    users,
		comments: comments,
		requests: requests,
		exporter: exporter,
	}
	if logger != nil {
		srv.log = logger.With().Str("component", "http").Logger()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /bookings", srv.handleCreateBooking)
	mux.HandleFunc("PATCH /bookings/{id}", srv.handleApproveBooking)
	mux.HandleFunc("GET /bookings", srv.handleListBookerBookings)
	mux.HandleFunc("GET /bookings/owner", srv.handleListOwnerBookings)
	mux.HandleFunc("GET /bookings/{id}", srv.handleGetBooking)

	mux.HandleFunc("POST /items", srv.handleCreateItem)
	mux.HandleFunc("PATCH /items/{id}", srv.handleUpdateItem)
	mux.HandleFunc("GET /items", srv.handleListOwnerItems)
	mux.HandleFunc("GET /items/search", srv.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", srv.handleGetItem)
	mux.HandleFunc("POST /items/{id}/comment", srv.handleCreateComment)
	mux.HandleFunc("GET /items/{id}/comments", srv.handleListComments)

	mux.HandleFunc("POST /requests", srv.handleCreateRequest)
	mux.HandleFunc("GET /requests", srv.handleListOwnRequests)
	mux.HandleFunc("GET /requests/all", srv.handleListAllRequests)
	mux.HandleFunc("GET /requests/{id}", srv.handleGetRequest)

	mux.HandleFunc("POST /users", srv.handleCreateUser)
	mux.HandleFunc("GET /users/{id}", srv.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", srv.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", srv.handleDeleteUser)

	mux.HandleFunc("GET /admin/export/bookings", srv.handleExportBookings)
	mux.HandleFunc("GET /healthz", srv.handleHealth)

	var handler http.Handler = mux
	if limiter != nil {
		handler = limiter.Wrap(handler)
	}
	handler = loggingMiddleware(srv.log, handler)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

// Handler отдает корневой обработчик, используется в тестах.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
