package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edutec/campus-backend/internal/api/http/handlers"
	"github.com/edutec/campus-backend/internal/auth"
	"github.com/edutec/campus-backend/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Gate          *auth.RequestGate
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Accounts      *handlers.AccountsHandler
	Academics     *handlers.AcademicsHandler
	Classrooms    *handlers.ClassroomsHandler
	Invitations   *handlers.InvitationsHandler
	Announcements *handlers.AnnouncementsHandler
	Debug         *handlers.DebugHandler
}

// RegisterRoutes wires HTTP routes. The gate runs before every route and
// decides from its rule table whether the request needs a valid token, so
// the registrations below do not repeat that decision.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/", cfg.Health.Live)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/google-login", cfg.Auth.GoogleLogin)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/token/status", cfg.Auth.TokenStatus)
	authGroup.Get("/user", cfg.Auth.CurrentUser)

	app.Get("/oauth2/callback/google", cfg.Auth.OAuthCallback)

	users := app.Group("/api/usuarios")
	users.Post("/register", cfg.Accounts.Register)
	users.Post("/login", cfg.Auth.Login)
	users.Get("/me", cfg.Accounts.Me)
	users.Put("/completar-perfil", cfg.Accounts.CompleteProfile)

	adminOnly := auth.RequireRole(domain.RoleAdmin)

	departments := app.Group("/api/departamentos")
	departments.Get("/health", cfg.Academics.Health)
	departments.Get("/activos", cfg.Academics.ActiveDepartments)
	departments.Post("/", adminOnly, cfg.Academics.CreateDepartment)
	departments.Put("/:id", adminOnly, cfg.Academics.UpdateDepartment)
	departments.Delete("/:id", adminOnly, cfg.Academics.DeleteDepartment)

	careers := app.Group("/api/carreras")
	careers.Get("/health", cfg.Academics.Health)
	careers.Get("/activas", cfg.Academics.ActiveCareers)
	careers.Get("/departamento/:id", cfg.Academics.ActiveCareersByDepartment)
	careers.Post("/", adminOnly, cfg.Academics.CreateCareer)
	careers.Put("/:id", adminOnly, cfg.Academics.UpdateCareer)
	careers.Delete("/:id", adminOnly, cfg.Academics.DeleteCareer)

	cycles := app.Group("/api/ciclos")
	cycles.Get("/health", cfg.Academics.Health)
	cycles.Get("/todos", cfg.Academics.AllCycles)
	cycles.Get("/carrera/:id", cfg.Academics.CyclesByCareer)

	sections := app.Group("/api/secciones")
	sections.Get("/health", cfg.Academics.Health)
	sections.Get("/carrera/:id", cfg.Academics.SectionsByCareer)
	sections.Get("/carrera/:id/ciclo/:cycle", cfg.Academics.SectionsByCareerAndCycle)

	classrooms := app.Group("/api/aulas")
	classrooms.Post("/", cfg.Classrooms.Create)
	classrooms.Get("/", cfg.Classrooms.ListMine)
	classrooms.Post("/unirse", cfg.Classrooms.Join)
	classrooms.Get("/:id", cfg.Classrooms.Get)
	classrooms.Put("/:id", cfg.Classrooms.Update)
	classrooms.Get("/:id/participantes", cfg.Classrooms.Roster)
	classrooms.Delete("/:id/participantes/:studentId", cfg.Classrooms.RemoveParticipant)

	invitations := app.Group("/api/invitaciones")
	invitations.Post("/", cfg.Invitations.Create)
	invitations.Get("/pendientes", cfg.Invitations.ListMine)
	invitations.Get("/aula/:id", cfg.Invitations.ListByClassroom)
	invitations.Post("/:code/responder", cfg.Invitations.Respond)

	announcements := app.Group("/api/anuncios")
	announcements.Post("/", cfg.Announcements.Publish)
	announcements.Get("/generales", cfg.Announcements.GeneralFeed)
	announcements.Get("/aula/:id", cfg.Announcements.ListByClassroom)
	announcements.Delete("/:id", cfg.Announcements.Remove)

	if cfg.Debug != nil {
		app.Get("/api/debug/token-stats", cfg.Debug.TokenStats)
	}
}
