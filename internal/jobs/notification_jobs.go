package jobs

import (
	"context"
	"fmt"
	"time"

	"servigo-backend/internal/logger"
)

// DispatchNotifications drains one batch of the notification outbox.
func (jr *JobRunner) DispatchNotifications() {
	jr.runWithRecovery("DispatchNotifications", func() {
		ctx := context.Background()

		sent, err := jr.services.Notification.DispatchPending(ctx)
		if err != nil {
			logger.Error("Failed to dispatch notifications", "error", err)
			return
		}
		if sent > 0 {
			logger.Info("Notifications dispatched", "count", sent)
		}
	})
}

// RemindStalePendingReviews emails every admin a digest of registrations
// that have been sitting in the pending queue longer than the configured
// threshold.
func (jr *JobRunner) RemindStalePendingReviews() {
	jr.runWithRecovery("RemindStalePendingReviews", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().Add(-time.Duration(jr.config.Review.StalePendingHours) * time.Hour)
		stale, err := jr.store.Users.ListPendingBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to query stale pending users", "error", err)
			return
		}
		if len(stale) == 0 {
			logger.Debug("No stale pending reviews")
			return
		}

		admins, err := jr.store.Users.ListAdmins(ctx)
		if err != nil {
			logger.Error("Failed to query admins", "error", err)
			return
		}
		if len(admins) == 0 {
			logger.Warn("Stale pending reviews but no admin accounts to notify", "count", len(stale))
			return
		}

		subject := fmt.Sprintf("ServiGo: %d registration(s) awaiting review", len(stale))
		body := fmt.Sprintf("The following registrations have been pending for more than %d hours:\n\n", jr.config.Review.StalePendingHours)
		for _, u := range stale {
			body += fmt.Sprintf("- %s (%s, %s) registered %s\n", u.FullName, u.Email, u.UserType, u.CreatedAt.Format("2006-01-02 15:04"))
		}
		body += "\nPlease review them in the admin back-office."

		count := 0
		for _, admin := range admins {
			if err := jr.services.Email.Send(ctx, admin.Email, admin.FullName, subject, body); err != nil {
				logger.Error("Failed to send review reminder",
					"admin_id", admin.ID,
					"email", admin.Email,
					"error", err)
				continue
			}
			count++
		}

		logger.Info("Review reminders sent", "stale_users", len(stale), "admins_notified", count)
	})
}
