package api

import (
	"net/http"

	_ "ratelock/docs"
	lockhandler "ratelock/internal/lock/handler"
	ratehandler "ratelock/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *ratehandler.Handler, lockHandler *lockhandler.Handler, authMiddleware func(http.Handler) http.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/currencies", rateHandler.GetCurrencies)
		r.Get("/rates", rateHandler.GetRates)
		r.Get("/rates/convert", rateHandler.Convert)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Post("/locks", lockHandler.CreateLock)
			r.Get("/locks", lockHandler.ListLocks)
			r.Get("/locks/reference/{reference}", lockHandler.GetLockByReference)
			r.Get("/locks/{id}", lockHandler.GetLock)
			r.Post("/locks/{id}/use", lockHandler.MarkUsed)
			r.Get("/locks/{id}/redemption", lockHandler.GetRedemption)
			r.Get("/locks/{id}/qr.png", lockHandler.GetRedemptionQR)
		})
	})
	return router
}
