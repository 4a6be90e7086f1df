// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/emogo-app/emogo-server/api"
	"github.com/emogo-app/emogo-server/internal/config"
	"github.com/emogo-app/emogo-server/internal/database"
	"github.com/emogo-app/emogo-server/internal/monitoring"
	"github.com/emogo-app/emogo-server/internal/repository/mongodb"
	"github.com/emogo-app/emogo-server/internal/service"
	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	service    *service.RecordService
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{config: cfg}
}

// Start connects the store, wires dependencies and begins listening.
// A store that cannot be reached at startup is a fatal error.
func (s *Server) Start() error {
	db, err := database.NewMongoDB(s.config.MongoDB)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	s.db = db
	defer s.closeDatabase()

	records := mongodb.NewRecordRepository(db, s.config.MongoDB.QueryTimeout)
	s.service = service.New(records)
	if err := s.service.Validate(); err != nil {
		return err
	}
	s.monitoring = monitoring.NewService()

	router := api.NewRouter(s.service, s.monitoring)
	handler := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
	)(handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(router))

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// closeDatabase releases the store handle on every exit path
func (s *Server) closeDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.db.Close(ctx); err != nil {
		nuts.L.Errorf("[Server] Error closing MongoDB connection: %v", err)
		return
	}
	nuts.L.Infof("[Server] Closed MongoDB connection")
}

// recoveryLogger routes panics recovered by the middleware to our logger
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	nuts.L.Errorf("[Server] Recovered from panic: %v", v)
}
