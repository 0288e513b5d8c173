package api

import (
	"net/http"

	"github.com/JaimeStill/vigil/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Incidents.Handler().Routes(),
	)
}
