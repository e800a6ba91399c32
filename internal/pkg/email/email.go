package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/tausif-btb/cbl-erp/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// AppraisalEntry is one row of an HR appraisal reminder mail.
type AppraisalEntry struct {
	EmployeeName  string
	Department    string
	NextAppraisal string
}

// EmailService defines the interface for sending alert emails
type EmailService interface {
	SendBirthdayGreeting(to, employeeName string) error
	SendBirthdayReminder(to string, employeeNames []string) error
	SendAppraisalReminder(to string, entries []AppraisalEntry) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type birthdayGreetingData struct {
	EmployeeName string
}

// SendBirthdayGreeting sends a birthday mail to the employee
func (s *emailServiceImpl) SendBirthdayGreeting(to, employeeName string) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "birthday.html", birthdayGreetingData{
		EmployeeName: employeeName,
	}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Happy Birthday!", body.String())
}

type birthdayReminderData struct {
	EmployeeNames []string
	Date          string
}

// SendBirthdayReminder notifies an HR inbox of today's birthdays
func (s *emailServiceImpl) SendBirthdayReminder(to string, employeeNames []string) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "birthday_reminder.html", birthdayReminderData{
		EmployeeNames: employeeNames,
		Date:          time.Now().UTC().Format("2006-01-02"),
	}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Birthday reminder: %s", strings.Join(employeeNames, ", "))
	return s.sendHTML(to, subject, body.String())
}

type appraisalReminderData struct {
	Entries []AppraisalEntry
}

// SendAppraisalReminder notifies an HR inbox of upcoming appraisals
func (s *emailServiceImpl) SendAppraisalReminder(to string, entries []AppraisalEntry) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "appraisal_reminder.html", appraisalReminderData{
		Entries: entries,
	}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("%d appraisals due within 30 days", len(entries)), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s\r\n", from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
