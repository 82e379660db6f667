package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/payment"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucDoctor "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/doctor"
	ucReview "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/review"
)

// Infra bundles the process-wide collaborators built in main.
type Infra struct {
	Locker      domain.SlotLocker
	Gateway     payment.Gateway
	Audit       audit.Recorder
	AuditLogger *audit.Logger
}

type Handlers struct {
	Appointment *handlers.AppointmentHandler
	Doctor      *handlers.DoctorHandler
	Review      *handlers.ReviewHandler
	AuditLogs   *handlers.AuditLogsHandler
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	doctorRepo := infraRepo.NewDoctorGormRepository(db)
	reviewRepo := infraRepo.NewReviewGormRepository(db)

	tz := cfg.ClinicTimezone
	now := time.Now

	// ======================================================
	// USE CASES
	// ======================================================
	appointmentUC := handlers.AppointmentUseCases{
		Availability: ucAppointment.NewGetAvailability(appointmentRepo),
		Create:       ucAppointment.NewCreateAppointment(appointmentRepo, infra.Locker, infra.Audit, tz, now),
		Get:          ucAppointment.NewGetAppointment(appointmentRepo),
		List:         ucAppointment.NewListAppointments(appointmentRepo),
		Update:       ucAppointment.NewUpdateAppointment(appointmentRepo, infra.Audit),
		UpdateStatus: ucAppointment.NewUpdateStatus(appointmentRepo, infra.Audit, now),
		Cancel:       ucAppointment.NewCancelAppointment(appointmentRepo, infra.Audit, now),
		Stats:        ucAppointment.NewGetStats(appointmentRepo, tz, now),
		Settle:       ucAppointment.NewSettlePayment(appointmentRepo, infra.Gateway, infra.Audit),
		Refund:       ucAppointment.NewRefundPayment(appointmentRepo, infra.Gateway, infra.Audit),
	}

	doctorUC := handlers.DoctorUseCases{
		Get:                ucDoctor.NewGetDoctor(doctorRepo),
		GetByUser:          ucDoctor.NewGetDoctorByUser(doctorRepo),
		List:               ucDoctor.NewListDoctors(doctorRepo),
		ListByDepartment:   ucDoctor.NewListDoctorsByDepartment(doctorRepo),
		UpdateAvailability: ucDoctor.NewUpdateAvailability(doctorRepo, infra.Audit),
	}

	reviewUC := handlers.ReviewUseCases{
		Create:     ucReview.NewCreateReview(reviewRepo, infra.Audit),
		Update:     ucReview.NewUpdateReview(reviewRepo, infra.Audit),
		Delete:     ucReview.NewDeleteReview(reviewRepo, infra.Audit),
		ListDoctor: ucReview.NewListDoctorReviews(reviewRepo),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	Mount(r, cfg, Handlers{
		Appointment: handlers.NewAppointmentHandler(appointmentUC),
		Doctor:      handlers.NewDoctorHandler(doctorUC),
		Review:      handlers.NewReviewHandler(reviewUC),
		AuditLogs:   handlers.NewAuditLogsHandler(infra.AuditLogger),
	})
}

// Mount wires the HTTP surface onto r.
func Mount(r *gin.Engine, cfg *config.Config, h Handlers) {
	auth := middleware.AuthMiddleware(cfg)

	patient := middleware.RequireRoles(actor.RolePatient)
	admin := middleware.RequireRoles(actor.RoleAdmin)
	patientOrAdmin := middleware.RequireRoles(actor.RolePatient, actor.RoleAdmin)
	doctorOrAdmin := middleware.RequireRoles(actor.RoleDoctor, actor.RoleAdmin)

	api := r.Group("/api")

	// ------------------------------
	// APPOINTMENTS
	// ------------------------------
	appointments := api.Group("/appointments")
	{
		appointments.GET("/available-slots/:doctorId/:date", h.Appointment.AvailableSlots)

		secured := appointments.Group("")
		secured.Use(auth)
		{
			secured.GET("", h.Appointment.List)
			secured.POST("", patient, h.Appointment.Create)
			secured.GET("/stats", admin, h.Appointment.Stats)
			secured.GET("/:id", h.Appointment.Get)
			secured.PUT("/:id", h.Appointment.Update)
			secured.PUT("/:id/status", h.Appointment.UpdateStatus)
			secured.PUT("/:id/cancel", h.Appointment.Cancel)
			secured.POST("/:id/payment", patientOrAdmin, h.Appointment.SettlePayment)
			secured.POST("/:id/refund", admin, h.Appointment.RefundPayment)
		}
	}

	// ------------------------------
	// DOCTORS
	// ------------------------------
	doctors := api.Group("/doctors")
	{
		doctors.GET("", h.Doctor.List)
		doctors.GET("/department/:departmentId", h.Doctor.ListByDepartment)
		doctors.GET("/user/:userId", auth, h.Doctor.GetByUser)
		doctors.GET("/:id", h.Doctor.Get)
		doctors.PUT("/:id/availability", auth, doctorOrAdmin, h.Doctor.UpdateAvailability)
	}

	// ------------------------------
	// REVIEWS
	// ------------------------------
	reviews := api.Group("/reviews")
	{
		reviews.GET("/doctor/:doctorId", h.Review.ListForDoctor)
		reviews.POST("", auth, patient, h.Review.Create)
		reviews.PUT("/:id", auth, patient, h.Review.Update)
		reviews.DELETE("/:id", auth, patientOrAdmin, h.Review.Delete)
	}

	// ------------------------------
	// AUDIT
	// ------------------------------
	api.GET("/audit-logs", auth, admin, h.AuditLogs.List)
}
