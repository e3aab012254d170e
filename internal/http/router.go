package transporthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/insurly/autoquote/internal/http/handlers"
	"github.com/insurly/autoquote/internal/middleware"
)

// Deps bundles feature handlers that implement handlers.Mountable.
type Deps struct {
	Mounts []handlers.Mountable
}

// NewRouter assembles the public quotation API from the mounted feature
// handlers. Cross-cutting middleware lives on the outer router in cmd/api.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.SetJSONContentType)

	// Mount each feature's routes into this router.
	for _, m := range d.Mounts {
		m.Mount(r)
	}

	return r
}
