package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/chameleongame/backend/internal/hub"
	"github.com/chameleongame/backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, reg *ws.Registry, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, reg, log))
	return r
}
