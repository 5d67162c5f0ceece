package devapi

import (
	"net/http"

	"github.com/dmitrijs2005/constructhub/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API under basePath ("" or "/" for the root) and
// serves uploaded files under /media/.
func NewRouter(h *Handlers, logger logging.Logger, basePath string) http.Handler {
	root := chi.NewRouter()

	root.Use(
		middleware.Recoverer,
		RequestLogger(logger),
	)

	if basePath == "" || basePath == "/" {
		registerRoutes(root, h)
	} else {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(basePath, sub)
	}

	root.Get("/media/*", h.Media)

	return root
}

func registerRoutes(r chi.Router, h *Handlers) {
	// profiles
	r.Post("/profiles/register/", h.Register)
	r.Post("/profiles/login/", h.Login)
	r.Post("/profiles/token/refresh/", h.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(h.Authenticate)

		r.Get("/profiles/me/", h.Me)
		r.Put("/profiles/me/", h.UpdateMe)

		// posts
		r.Get("/postagens/", h.ListPosts)
		r.Post("/postagens/", h.CreatePost)
		r.Get("/postagens/minhas/", h.MyPosts)
		r.Get("/postagens/{id}/", h.GetPost)
		r.Patch("/postagens/{id}/", h.UpdatePost)
		r.Delete("/postagens/{id}/", h.DeletePost)

		// comments
		r.Get("/postagens/{id}/comentarios/", h.ListComments)
		r.Post("/postagens/comentarios/", h.CreateComment)

		r.Post("/predict/", h.Predict)
	})
}
