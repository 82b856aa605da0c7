package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

func SendWelcomeEmail(email, firstName string) {
	go func() {
		subject := "Welcome to SalonChain!"
		body := fmt.Sprintf(`<h2>Welcome, %s!</h2>
<p>Your account has been created. You can now:</p>
<ul>
<li>Book appointments at any of our branches</li>
<li>Earn loyalty points on every visit</li>
<li>Refer friends with your referral code</li>
</ul>
<p>See you soon!</p>
<p>The SalonChain Team</p>`, firstName)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()
}

// SendVerificationCode mails a registration OTP. Sent synchronously so the
// caller can report delivery failures.
func SendVerificationCode(email, firstName, code string) error {
	subject := "Your SalonChain verification code"
	body := fmt.Sprintf(`<h2>Email Verification</h2>
<p>Hi %s,</p>
<p>Your verification code is:</p>
<p style="font-size:28px;font-weight:bold;letter-spacing:6px;">%s</p>
<p>This code expires in 10 minutes.</p>
<p>The SalonChain Team</p>`, firstName, code)
	return SendEmail(email, subject, body)
}

func SendAppointmentConfirmation(email, firstName, branchName, date, timeSlot string, total float64) {
	go func() {
		subject := fmt.Sprintf("Appointment Booked - %s at %s", date, timeSlot)
		body := fmt.Sprintf(`<h2>Appointment Booked!</h2>
<p>Hi %s,</p>
<p>Your appointment at <strong>%s</strong> is booked for <strong>%s %s</strong>.</p>
<p>Estimated total: <strong>%.2f</strong></p>
<p>We'll notify you when your appointment status changes.</p>
<p>The SalonChain Team</p>`, firstName, branchName, date, timeSlot, total)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send appointment confirmation to %s: %v", email, err)
		}
	}()
}

// SendAppointmentReminder mails a next-day reminder. Sent synchronously so
// the reminder job can record the outcome.
func SendAppointmentReminder(email, firstName, date, timeSlot string) error {
	subject := fmt.Sprintf("Reminder: your appointment tomorrow at %s", timeSlot)
	body := fmt.Sprintf(`<h2>Appointment Reminder</h2>
<p>Hi %s,</p>
<p>This is a reminder of your appointment tomorrow, <strong>%s</strong> at <strong>%s</strong>.</p>
<p>If you need to reschedule, please contact your branch.</p>
<p>The SalonChain Team</p>`, firstName, date, timeSlot)
	return SendEmail(email, subject, body)
}

func SendAppointmentStatusUpdate(email, firstName, date, timeSlot, status string) {
	go func() {
		subject := fmt.Sprintf("Appointment %s %s - Status Update", date, timeSlot)
		body := fmt.Sprintf(`<h2>Appointment Status Update</h2>
<p>Hi %s,</p>
<p>Your appointment on <strong>%s %s</strong> is now: <strong>%s</strong></p>
<p>The SalonChain Team</p>`, firstName, date, timeSlot, strings.ReplaceAll(status, "-", " "))
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send status update email to %s: %v", email, err)
		}
	}()
}

func SendPasswordResetEmail(email, firstName, resetToken, frontendURL string) {
	go func() {
		resetLink := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, resetToken)
		subject := "Reset Your Password - SalonChain"
		body := fmt.Sprintf(`<h2>Password Reset Request</h2>
<p>Hi %s,</p>
<p>We received a request to reset your password. Click the link below to set a new password:</p>
<p><a href="%s" style="display:inline-block;padding:12px 24px;background:#C98A5E;color:#fff;text-decoration:none;border-radius:8px;font-weight:bold;">Reset Password</a></p>
<p>This link will expire in 1 hour.</p>
<p>If you didn't request this, you can safely ignore this email.</p>
<p>The SalonChain Team</p>`, firstName, resetLink)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send password reset email to %s: %v", email, err)
		}
	}()
}
