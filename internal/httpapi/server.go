package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/cuesheet/internal/session"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Engine *gin.Engine
	store  *session.Store
	log    *zap.Logger
}

func NewServer(cfg RouterConfig, store *session.Store) *Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{Engine: NewRouter(cfg), store: store, log: log}
}

// Run serves on address until ctx is cancelled, then shuts down
// gracefully. Idle sessions are swept once a minute meanwhile.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	if s.store != nil {
		go s.store.RunJanitor(janitorCtx, time.Minute)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
