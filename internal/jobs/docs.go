// Package jobs provides scheduled background tasks for the order flow.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the order lifecycle.
//
// # Available Jobs
//
// 1. PendingOrderReminderJob - Periodically finds orders stuck in PENDING
// status and publishes a reminder notification for each one.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reminderJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs that fail are logged and retried on the next tick; a failing run
// never stops the schedule.
package jobs
