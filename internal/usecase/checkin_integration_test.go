package usecase

import (
	"context"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/domain/entity"
	"city-services-backend/internal/infrastructure/database"
	"city-services-backend/internal/repository"
	"city-services-backend/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupIntegrationDB(t *testing.T) (*gorm.DB, *logrus.Logger, *service.QueueNotifier) {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is required for integration tests")
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	// Publishing to an unreachable broker exercises the fire-and-forget
	// path without a live Redis.
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	notifier := service.NewQueueNotifier(db, redisClient, log, repository.NewNotificationRepository())
	return db, log, notifier
}

func seedCitizenAndService(t *testing.T, db *gorm.DB) (*entity.User, *entity.Service) {
	t.Helper()
	suffix := uuid.NewString()[:8]

	department := &entity.Department{Name: "Registry " + suffix}
	if err := db.Create(department).Error; err != nil {
		t.Fatalf("seed department: %v", err)
	}

	active := true
	svc := &entity.Service{
		Name:            "Passport Renewal " + suffix,
		DepartmentID:    department.ID,
		DurationMin:     15,
		CapacityPerSlot: 2,
		IsActive:        &active,
	}
	if err := db.Create(svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	user := &entity.User{
		Role:  entity.RoleCitizen,
		Name:  "Citizen " + suffix,
		Email: suffix + "@example.com",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user, svc
}

func seedBookedAppointment(t *testing.T, db *gorm.DB, user *entity.User, svc *entity.Service) *entity.Appointment {
	t.Helper()
	slotStart := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)
	day := time.Date(slotStart.Year(), slotStart.Month(), slotStart.Day(), 0, 0, 0, 0, time.UTC)
	appointment := &entity.Appointment{
		UserID:       user.ID,
		ServiceID:    svc.ID,
		DepartmentID: svc.DepartmentID,
		SlotDate:     day,
		SlotStart:    slotStart,
		SlotEnd:      slotStart.Add(15 * time.Minute),
		Status:       entity.AppointmentStatusBooked,
		CheckinToken: generateCheckinToken(),
	}
	if err := db.Create(appointment).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return appointment
}

func TestConcurrentCheckinIssuesOneTicket(t *testing.T) {
	db, log, notifier := setupIntegrationDB(t)
	user, svc := seedCitizenAndService(t, db)
	appointment := seedBookedAppointment(t, db, user, svc)

	uc := NewCheckinUsecase(db, log,
		repository.NewAppointmentRepository(),
		repository.NewQueueTicketRepository(),
		repository.NewDepartmentRepository(),
		repository.NewServiceRepository(),
		notifier)

	type result struct {
		ticket *dto.TicketResponse
		err    error
	}
	results := make(chan result, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket, err := uc.CheckIn(context.Background(), appointment.ID, appointment.CheckinToken)
			results <- result{ticket: ticket, err: err}
		}()
	}
	wg.Wait()
	close(results)

	numbers := make(map[int]bool)
	for r := range results {
		if r.err != nil {
			t.Fatalf("check-in error: %v", r.err)
		}
		numbers[r.ticket.Number] = true
	}
	if len(numbers) != 1 {
		t.Fatalf("concurrent check-ins produced %d distinct numbers, want 1", len(numbers))
	}

	var count int64
	if err := db.Model(&entity.QueueTicket{}).
		Where("appointment_id = ?", appointment.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count tickets: %v", err)
	}
	if count != 1 {
		t.Fatalf("appointment holds %d tickets, want 1", count)
	}
}

func TestCancelAfterCheckinRejected(t *testing.T) {
	db, log, notifier := setupIntegrationDB(t)
	user, svc := seedCitizenAndService(t, db)
	appointment := seedBookedAppointment(t, db, user, svc)

	appointmentRepo := repository.NewAppointmentRepository()
	checkinUC := NewCheckinUsecase(db, log,
		appointmentRepo,
		repository.NewQueueTicketRepository(),
		repository.NewDepartmentRepository(),
		repository.NewServiceRepository(),
		notifier)
	bookingUC := NewBookingUsecase(db, log,
		appointmentRepo,
		repository.NewServiceRepository(),
		repository.NewScheduleWindowRepository(),
		notifier)

	if _, err := checkinUC.CheckIn(context.Background(), appointment.ID, appointment.CheckinToken); err != nil {
		t.Fatalf("check-in error: %v", err)
	}

	err := bookingUC.CancelBooking(context.Background(), user.ID, appointment.ID)
	if err != ErrNotCancellable {
		t.Fatalf("cancel after check-in: got %v, want ErrNotCancellable", err)
	}

	var got entity.Appointment
	if err := db.First(&got, "id = ?", appointment.ID).Error; err != nil {
		t.Fatalf("reload appointment: %v", err)
	}
	if got.Status != entity.AppointmentStatusCheckedIn {
		t.Fatalf("status = %q, want %q", got.Status, entity.AppointmentStatusCheckedIn)
	}
}

func TestConcurrentCancelAndCheckinStayConsistent(t *testing.T) {
	db, log, notifier := setupIntegrationDB(t)
	user, svc := seedCitizenAndService(t, db)
	appointment := seedBookedAppointment(t, db, user, svc)

	appointmentRepo := repository.NewAppointmentRepository()
	checkinUC := NewCheckinUsecase(db, log,
		appointmentRepo,
		repository.NewQueueTicketRepository(),
		repository.NewDepartmentRepository(),
		repository.NewServiceRepository(),
		notifier)
	bookingUC := NewBookingUsecase(db, log,
		appointmentRepo,
		repository.NewServiceRepository(),
		repository.NewScheduleWindowRepository(),
		notifier)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = checkinUC.CheckIn(context.Background(), appointment.ID, appointment.CheckinToken)
	}()
	go func() {
		defer wg.Done()
		_ = bookingUC.CancelBooking(context.Background(), user.ID, appointment.ID)
	}()
	wg.Wait()

	var got entity.Appointment
	if err := db.First(&got, "id = ?", appointment.ID).Error; err != nil {
		t.Fatalf("reload appointment: %v", err)
	}
	var tickets int64
	if err := db.Model(&entity.QueueTicket{}).
		Where("appointment_id = ?", appointment.ID).
		Count(&tickets).Error; err != nil {
		t.Fatalf("count tickets: %v", err)
	}

	switch got.Status {
	case entity.AppointmentStatusCancelled:
		if tickets != 0 {
			t.Fatalf("cancelled appointment holds %d tickets, want 0", tickets)
		}
	case entity.AppointmentStatusCheckedIn:
		if tickets != 1 {
			t.Fatalf("checked-in appointment holds %d tickets, want 1", tickets)
		}
	default:
		t.Fatalf("unexpected final status %q", got.Status)
	}
}
