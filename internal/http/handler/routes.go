package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docportal/docs"
	"docportal/internal/http/middleware"
	"docportal/internal/service"
	"docportal/internal/view"
)

// Deps carries what the routes need beyond the per-client controller.
type Deps struct {
	Registry *view.Registry
	Storage  Pinger
	Client   middleware.ClientOptions
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.Storage))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	web := app.Group("", middleware.Client(d.Registry, d.Client), middleware.NoStore())
	registerPages(web)
}

func registerPages(r fiber.Router) {
	r.Get("/", func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		if ctrl.Session().Authenticated() {
			return c.Redirect(service.DashboardPath, fiber.StatusSeeOther)
		}
		return c.Redirect(service.LoginPath, fiber.StatusSeeOther)
	})
	r.Get(service.LoginPath, LoginPage())
	r.Get("/register", RegisterPage())
	r.Get("/session", SessionInfo())

	auth := r.Group("/auth")
	auth.Post("/login", Login())
	auth.Post("/register", Register())
	auth.Post("/logout", Logout())

	guard := middleware.RequireSession(service.LoginPath)

	dash := r.Group(service.DashboardPath, guard)
	dash.Get("/", Dashboard())
	dash.Get("/state", State())
	dash.Post("/search", Search())
	dash.Post("/page/:page", GoToPage())
	dash.Post("/refresh", Refresh())
	dash.Get("/filter/:by", Filter())
	dash.Post("/upload", Upload())
	dash.Get("/documents/:id", GetDocument())
	dash.Post("/documents/:id/delete", Delete())
	dash.Delete("/documents/:id", Delete())

	r.Get("/documents/:id", guard, DocumentPage())

	qa := r.Group("/qa", guard)
	qa.Get("/", QAPage())
	qa.Post("/ask", Ask())
	qa.Get("/search", KeywordSearch())
	qa.Get("/snippets/:id", Snippets())
}
