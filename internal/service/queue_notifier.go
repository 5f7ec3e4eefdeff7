package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"city-services-backend/internal/domain/entity"
	"city-services-backend/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Queue event types published to display boards and push relays.
const (
	EventAppointmentBooked = "appointment.booked"
	EventTicketCreated     = "ticket.created"
	EventTicketCalled      = "ticket.called"
	EventTicketDone        = "ticket.done"
	EventTicketNoShow      = "ticket.no_show"
)

const notifyTimeout = 5 * time.Second

// QueueNotifier fans queue lifecycle events out to Redis pub/sub and
// writes in-app notification rows for the affected citizen. Delivery is
// fire-and-forget: every failure is logged and swallowed so it can never
// roll back the booking or check-in that produced the event.
type QueueNotifier struct {
	db               *gorm.DB
	redisClient      *redis.Client
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewQueueNotifier(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
) *QueueNotifier {
	return &QueueNotifier{
		db:               db,
		redisClient:      redisClient,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

// AppointmentBooked announces a fresh booking to the owner.
func (n *QueueNotifier) AppointmentBooked(appointment *entity.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	n.publish(ctx, appointment.DepartmentID, map[string]interface{}{
		"type":           EventAppointmentBooked,
		"appointment_id": appointment.ID,
		"service_id":     appointment.ServiceID,
		"slot_start":     appointment.SlotStart,
	})
	n.record(ctx, &entity.Notification{
		UserID:        appointment.UserID,
		AppointmentID: &appointment.ID,
		Message: fmt.Sprintf("Your appointment on %s is booked.",
			appointment.SlotStart.Format("2006-01-02 15:04")),
	})
}

// TicketCreated announces a new waiting ticket. appointment is nil for walk-ins.
func (n *QueueNotifier) TicketCreated(ticket *entity.QueueTicket, appointment *entity.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	n.publish(ctx, ticket.DepartmentID, map[string]interface{}{
		"type":      EventTicketCreated,
		"ticket_id": ticket.ID,
		"number":    ticket.Number,
		"date":      ticket.Date,
	})
	if appointment != nil {
		n.record(ctx, &entity.Notification{
			UserID:        appointment.UserID,
			AppointmentID: &appointment.ID,
			QueueTicketID: &ticket.ID,
			Message:       fmt.Sprintf("You are checked in. Your queue number is %d.", ticket.Number),
		})
	}
}

// TicketCalled announces that a counter is now serving the ticket.
func (n *QueueNotifier) TicketCalled(ticket *entity.QueueTicket, appointment *entity.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	payload := map[string]interface{}{
		"type":      EventTicketCalled,
		"ticket_id": ticket.ID,
		"number":    ticket.Number,
		"date":      ticket.Date,
	}
	if ticket.WindowID != nil {
		payload["window_id"] = *ticket.WindowID
	}
	n.publish(ctx, ticket.DepartmentID, payload)
	if appointment != nil {
		n.record(ctx, &entity.Notification{
			UserID:        appointment.UserID,
			AppointmentID: &appointment.ID,
			QueueTicketID: &ticket.ID,
			Message:       fmt.Sprintf("Number %d is being called. Please proceed to the counter.", ticket.Number),
		})
	}
}

// TicketClosed announces a terminal ticket status (done or no_show).
func (n *QueueNotifier) TicketClosed(ticket *entity.QueueTicket, appointment *entity.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	eventType := EventTicketDone
	if ticket.Status == entity.TicketStatusNoShow {
		eventType = EventTicketNoShow
	}
	n.publish(ctx, ticket.DepartmentID, map[string]interface{}{
		"type":      eventType,
		"ticket_id": ticket.ID,
		"number":    ticket.Number,
		"date":      ticket.Date,
	})
	if appointment != nil && ticket.Status == entity.TicketStatusDone {
		n.record(ctx, &entity.Notification{
			UserID:        appointment.UserID,
			AppointmentID: &appointment.ID,
			QueueTicketID: &ticket.ID,
			Message:       "Your visit is complete. Thank you.",
		})
	}
}

func (n *QueueNotifier) publish(ctx context.Context, departmentID int, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		n.log.Warnf("Failed to encode queue event: %+v", err)
		return
	}
	channel := fmt.Sprintf("queue:events:%d", departmentID)
	if err := n.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		n.log.Warnf("Failed to publish queue event to %s (non-fatal): %+v", channel, err)
	}
}

func (n *QueueNotifier) record(ctx context.Context, notification *entity.Notification) {
	if err := n.notificationRepo.Create(n.db.WithContext(ctx), notification); err != nil {
		n.log.Warnf("Failed to write notification for user %s (non-fatal): %+v", notification.UserID, err)
	}
}
