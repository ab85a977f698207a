package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockpilot/pkg/app"
	"github.com/ghuser/stockpilot/pkg/auth"
	"github.com/ghuser/stockpilot/services/ledger/application/handlers"
	appsvcs "github.com/ghuser/stockpilot/services/ledger/application/services"
)

// LedgerRoutes registers all ledger endpoints on the provided chi router.
// The auth endpoints stay outside the session gate; everything else requires
// a valid session.
func LedgerRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", handlers.NewLoginHandler(a).Execute)
		r.Post("/logout", handlers.NewLogoutHandler(a).Execute)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutItemHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", handlers.NewListEventsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostEventHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetEventHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutEventHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteEventHandler(svcs).Execute)

			r.Get("/{id}/allocations", handlers.NewListAllocationsHandler(svcs).Execute)
			r.Post("/{id}/allocations", handlers.NewPostAllocationHandler(svcs).Execute)
			r.Get("/{id}/sales", handlers.NewListEventSalesHandler(svcs).Execute)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", handlers.NewListSalesHandler(svcs).Execute)
			r.Post("/", handlers.NewPostSaleHandler(svcs).Execute)
		})

		r.Get("/dashboard", handlers.NewDashboardHandler(svcs).Execute)
	})
}
