package main

import (
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type seedDoctor struct {
	Name           string
	Email          string
	Department     string
	Specialization string
	Fee            float64
	Days           []string
}

var departments = []models.Department{
	{Name: "Cardiology", Description: "Heart and blood vessels"},
	{Name: "Dermatology", Description: "Skin, hair and nails"},
	{Name: "Pediatrics", Description: "Care for children"},
}

var doctors = []seedDoctor{
	{"Dr. Ana Costa", "ana.costa@clinic.test", "Cardiology", "Cardiologist", 250, []string{"Monday", "Wednesday", "Friday"}},
	{"Dr. Rafael Lima", "rafael.lima@clinic.test", "Dermatology", "Dermatologist", 180, []string{"Tuesday", "Thursday"}},
	{"Dr. Helena Souza", "helena.souza@clinic.test", "Pediatrics", "Pediatrician", 150, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}},
}

var morning = []models.TimeSlot{
	{StartTime: "09:00", EndTime: "09:30"},
	{StartTime: "09:30", EndTime: "10:00"},
	{StartTime: "10:00", EndTime: "10:30"},
	{StartTime: "10:30", EndTime: "11:00"},
	{StartTime: "14:00", EndTime: "14:30"},
	{StartTime: "14:30", EndTime: "15:00"},
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	db := dbpkg.NewDB(cfg, zl)

	if err := db.Transaction(seed); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}

	zl.Info("seed completed",
		zap.Int("departments", len(departments)),
		zap.Int("doctors", len(doctors)),
	)
}

func seed(tx *gorm.DB) error {
	deptIDs := map[string]models.Department{}

	for _, d := range departments {
		dept := d
		if err := tx.Where("name = ?", d.Name).
			Attrs(models.Department{Description: d.Description, IsActive: true}).
			FirstOrCreate(&dept).Error; err != nil {
			return err
		}
		deptIDs[d.Name] = dept
	}

	for _, s := range doctors {
		var user models.User
		if err := tx.Where("email = ?", s.Email).
			Attrs(models.User{Name: s.Name, Role: string(actor.RoleDoctor), IsActive: true}).
			FirstOrCreate(&user).Error; err != nil {
			return err
		}

		doc := models.Doctor{}
		if err := tx.Where("user_id = ?", user.ID).
			Attrs(models.Doctor{
				DepartmentID:    deptIDs[s.Department].ID,
				Specialization:  s.Specialization,
				Qualification:   "MD",
				Experience:      8,
				ConsultationFee: s.Fee,
				AvailableDays:   s.Days,
				AvailableSlots:  morning,
				Rating:          models.DefaultDoctorRating,
				IsAvailable:     true,
			}).
			FirstOrCreate(&doc).Error; err != nil {
			return err
		}
	}

	var patient models.User
	return tx.Where("email = ?", "patient@clinic.test").
		Attrs(models.User{Name: "Test Patient", Role: string(actor.RolePatient), IsActive: true}).
		FirstOrCreate(&patient).Error
}
