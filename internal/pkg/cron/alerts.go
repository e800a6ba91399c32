package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tausif-btb/cbl-erp/internal/domain/employee"
	"github.com/tausif-btb/cbl-erp/internal/domain/user"
	"github.com/tausif-btb/cbl-erp/internal/pkg/clock"
	"github.com/tausif-btb/cbl-erp/internal/pkg/email"
)

const appraisalLookahead = 30 * 24 * time.Hour

type AlertJobs struct {
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	emailService email.EmailService
	clock        clock.Clock
	hrInbox      string
}

func NewAlertJobs(
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	emailService email.EmailService,
	clk clock.Clock,
	hrInbox string,
) *AlertJobs {
	return &AlertJobs{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		emailService: emailService,
		clock:        clk,
		hrInbox:      hrInbox,
	}
}

// RegisterJobs registers the daily alert scans. Neither job runs at start:
// both send mail, and a midday restart must not repeat the day's sends.
func (j *AlertJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{Name: "birthday_alerts", Interval: 24 * time.Hour, Fn: j.SendBirthdayAlerts})
	scheduler.AddJob(Job{Name: "appraisal_alerts", Interval: 24 * time.Hour, Fn: j.SendAppraisalAlerts})
}

// hrRecipients is the HR/admin inbox list plus the configured fallback inbox.
func (j *AlertJobs) hrRecipients(ctx context.Context) []string {
	recipients, err := j.userRepo.GetHREmails(ctx)
	if err != nil {
		slog.Error("Cron: failed to load HR inbox list", "error", err)
	}
	if j.hrInbox != "" {
		recipients = append(recipients, j.hrInbox)
	}
	return recipients
}

// SendBirthdayAlerts greets employees whose birthday is today and reminds HR.
func (j *AlertJobs) SendBirthdayAlerts(ctx context.Context) error {
	today := j.clock.Now().UTC()

	celebrants, err := j.employeeRepo.GetWithBirthdayOn(ctx, int(today.Month()), today.Day())
	if err != nil {
		return fmt.Errorf("failed to scan directory for birthdays: %w", err)
	}
	if len(celebrants) == 0 {
		return nil
	}

	names := make([]string, 0, len(celebrants))
	for _, e := range celebrants {
		names = append(names, e.FullName())
		if err := j.emailService.SendBirthdayGreeting(e.Email, e.FullName()); err != nil {
			slog.Error("Cron: failed to send birthday greeting", "employee_id", e.ID, "error", err)
		}
	}

	for _, inbox := range j.hrRecipients(ctx) {
		if err := j.emailService.SendBirthdayReminder(inbox, names); err != nil {
			slog.Error("Cron: failed to send birthday reminder", "to", inbox, "error", err)
		}
	}

	slog.Info("Cron: birthday alerts sent", "celebrants", len(celebrants))
	return nil
}

// SendAppraisalAlerts reminds HR of appraisals due within the next 30 days.
func (j *AlertJobs) SendAppraisalAlerts(ctx context.Context) error {
	now := j.clock.Now().UTC()
	from := now.Format("2006-01-02")
	to := now.Add(appraisalLookahead).Format("2006-01-02")

	due, err := j.employeeRepo.GetWithAppraisalDue(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to scan directory for due appraisals: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	entries := make([]email.AppraisalEntry, 0, len(due))
	for _, e := range due {
		entry := email.AppraisalEntry{
			EmployeeName: e.FullName(),
			Department:   e.Department,
		}
		if e.NextAppraisal != nil {
			entry.NextAppraisal = e.NextAppraisal.Format("2006-01-02")
		}
		entries = append(entries, entry)
	}

	for _, inbox := range j.hrRecipients(ctx) {
		if err := j.emailService.SendAppraisalReminder(inbox, entries); err != nil {
			slog.Error("Cron: failed to send appraisal reminder", "to", inbox, "error", err)
		}
	}

	slog.Info("Cron: appraisal alerts sent", "due", len(due))
	return nil
}
