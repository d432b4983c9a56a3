package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/protecta/crm-pro/internal/application/analytics"
	"github.com/protecta/crm-pro/internal/application/appointments"
	"github.com/protecta/crm-pro/internal/application/auth"
	"github.com/protecta/crm-pro/internal/application/leads"
	"github.com/protecta/crm-pro/internal/application/usecase"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	OrgUC         *usecase.OrganizationUseCase
	TeamUC        *usecase.TeamUseCase
	LeadUC        *leads.LeadUseCase
	AppointmentUC *appointments.AppointmentUseCase
	DashboardUC   *analytics.DashboardUseCase
	UserRepo      repository.UserRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; me requiere token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)

	// Rutas protegidas: Bearer Token + carga del actor desde BD.
	// Las reglas finas (scope, pares de roles, ownership) viven en los use cases.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), ActorMiddleware(deps.UserRepo))

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/assignable", userHandler.Assignable)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/toggle-active", userHandler.ToggleActive)
	users.Delete("/:id", userHandler.Delete)

	// Organizations (crear es exclusivo de Admin y Group Director)
	orgs := protected.Group("/organizations")
	orgHandler := NewOrganizationHandler(deps.OrgUC)
	orgs.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGroupDirector), orgHandler.Create)
	orgs.Get("/", orgHandler.List)
	orgs.Get("/:id", orgHandler.GetByID)
	orgs.Put("/:id", orgHandler.Update)
	orgs.Patch("/:id/toggle-active", orgHandler.ToggleActive)
	orgs.Delete("/:id", orgHandler.Delete)

	// Teams y membresía
	teams := protected.Group("/teams")
	teamHandler := NewTeamHandler(deps.TeamUC)
	teams.Post("/", teamHandler.Create)
	teams.Get("/", teamHandler.List)
	teams.Get("/mine", teamHandler.Mine)
	teams.Get("/:id", teamHandler.GetByID)
	teams.Put("/:id", teamHandler.Update)
	teams.Delete("/:id", teamHandler.Delete)
	teams.Get("/:id/members", teamHandler.ListMembers)
	teams.Post("/:id/members/:user_id", teamHandler.AddMember)
	teams.Delete("/:id/members/:user_id", teamHandler.RemoveMember)

	// Leads y workflow de asignación
	leadGroup := protected.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC)
	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC)
	leadGroup.Post("/", leadHandler.Create)
	leadGroup.Get("/", leadHandler.List)
	leadGroup.Get("/:id", leadHandler.GetByID)
	leadGroup.Put("/:id", leadHandler.Update)
	leadGroup.Delete("/:id", leadHandler.Delete)
	leadGroup.Post("/:id/assign", leadHandler.Assign)
	leadGroup.Patch("/:id/status", leadHandler.UpdateStatus)
	leadGroup.Get("/:id/appointments", appointmentHandler.ListByLead)

	// Appointments (las rutas fijas van antes de /:id)
	appts := protected.Group("/appointments")
	appts.Get("/upcoming", appointmentHandler.Upcoming)
	appts.Get("/daily", appointmentHandler.Daily)
	appts.Get("/weekly", appointmentHandler.Weekly)
	appts.Get("/statistics", appointmentHandler.Statistics)
	appts.Post("/", appointmentHandler.Create)
	appts.Get("/", appointmentHandler.List)
	appts.Get("/:id", appointmentHandler.GetByID)
	appts.Put("/:id", appointmentHandler.Update)
	appts.Delete("/:id", appointmentHandler.Delete)
	appts.Post("/:id/reschedule", appointmentHandler.Reschedule)
	appts.Patch("/:id/status", appointmentHandler.UpdateStatus)
	appts.Post("/:id/cancel", appointmentHandler.Cancel)
	appts.Post("/:id/confirm", appointmentHandler.Confirm)
	appts.Post("/:id/complete", appointmentHandler.Complete)
	appts.Post("/:id/no-show", appointmentHandler.NoShow)

	// Dashboard (roles con acceso a reportes)
	dashboard := protected.Group("/dashboard", RequireRole(
		entity.RoleAdmin, entity.RoleGroupDirector,
		entity.RolePartnerDirector, entity.RoleSalesManager,
	))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Post("/refresh", dashboardHandler.Refresh)
}
