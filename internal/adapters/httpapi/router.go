package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterOptions struct {
	// Logger receives request logs. Nil disables request logging.
	Logger *slog.Logger
}

// NewRouter constructs the console HTTP router.
//
// /healthz, /login and /logout are reachable while logged out; every other
// route sits behind the login gate.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if opts.Logger != nil {
		r.Use(NewRequestLogger(opts.Logger))
	}
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/login", s.LogIn)
	r.Post("/logout", s.LogOut)

	r.Group(func(r chi.Router) {
		r.Use(NewGateMiddleware(s.Gate))

		r.Route("/members", func(r chi.Router) {
			r.Get("/", s.ListMembers)
			r.Post("/", s.AddMember)
			r.Get("/stats", s.GetStats)
			r.Get("/view", s.GetView)
			r.Patch("/view", s.UpdateView)

			r.Route("/{memberId}", func(r chi.Router) {
				r.Get("/", s.GetMember)
				r.Patch("/", s.EditMember)
				r.Post("/suspend", s.SuspendMember)
				r.Post("/email", s.SendEmail)
			})
		})
	})
	return r
}
