package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"salonchain-backend/models"
	"salonchain-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends next-day appointment reminders over email and SMS.
// ReminderLog's unique (appointment, channel) index makes each send
// idempotent, so rerunning a day never double-messages a client.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	cron   *cron.Cron
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the reminder job every day at 9 AM server time.
func (s *ReminderService) StartScheduler() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Reminder scheduler started")
	return nil
}

func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SendDailyReminders processes tomorrow's confirmed appointments.
func (s *ReminderService) SendDailyReminders() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(utils.DateLayout)
	log.Printf("Processing appointment reminders for %s", tomorrow)

	var appointments []models.Appointment
	err := s.db.Where("date = ? AND status = ?", tomorrow, models.AppointmentStatusConfirmed).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Failed to fetch appointments for reminders: %v", err)
		return
	}

	for i := range appointments {
		s.remindAppointment(&appointments[i])
	}

	log.Printf("Reminder processing completed: %d appointments", len(appointments))
}

func (s *ReminderService) remindAppointment(appointment *models.Appointment) {
	if appointment.ClientEmail != "" && !s.alreadySent(appointment.ID.String(), "email") {
		err := utils.SendAppointmentReminder(appointment.ClientEmail,
			appointment.ClientFirstName, appointment.Date, appointment.Time)
		s.logReminder(appointment, "email", err)
	}
	if appointment.ClientPhone != "" && !s.alreadySent(appointment.ID.String(), "sms") {
		err := s.sendSMS(appointment.ClientPhone, fmt.Sprintf(
			"Hi %s, a reminder of your salon appointment tomorrow (%s) at %s. Reply to your branch to reschedule.",
			appointment.ClientFirstName, appointment.Date, appointment.Time))
		s.logReminder(appointment, "sms", err)
	}
}

func (s *ReminderService) sendSMS(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		log.Printf("SMS reminder sent to %s, SID: %s", to, *resp.Sid)
	}
	return nil
}

func (s *ReminderService) alreadySent(appointmentID, channel string) bool {
	var count int64
	s.db.Model(&models.ReminderLog{}).
		Where("appointment_id = ? AND channel = ? AND status = ?", appointmentID, channel, "sent").
		Count(&count)
	return count > 0
}

func (s *ReminderService) logReminder(appointment *models.Appointment, channel string, sendErr error) {
	entry := models.ReminderLog{
		AppointmentID: appointment.ID,
		Channel:       channel,
		Status:        "sent",
		SentAt:        time.Now(),
	}
	if sendErr != nil {
		log.Printf("Failed to send %s reminder for appointment %s: %v",
			channel, appointment.ID, sendErr)
		entry.Status = "failed"
		entry.ErrorMessage = sendErr.Error()
	}

	// A failed attempt leaves a row behind; the retry updates it in place.
	var existing models.ReminderLog
	err := s.db.Where("appointment_id = ? AND channel = ?", appointment.ID, channel).
		First(&existing).Error
	if err == nil {
		err = s.db.Model(&existing).Updates(map[string]interface{}{
			"status":        entry.Status,
			"error_message": entry.ErrorMessage,
			"sent_at":       entry.SentAt,
		}).Error
	} else if err == gorm.ErrRecordNotFound {
		err = s.db.Create(&entry).Error
	}
	if err != nil {
		log.Printf("Failed to log %s reminder for appointment %s: %v",
			channel, appointment.ID, err)
	}
}
