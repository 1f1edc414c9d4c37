package cron

import (
	"context"
	"time"

	"github.com/planboard/capacity-backend-go/internal/service/feed"
)

// FeedJobs contains feed-related cron jobs
type FeedJobs struct {
	refresher    *feed.Refresher
	pollInterval time.Duration
}

// NewFeedJobs creates feed cron jobs
func NewFeedJobs(refresher *feed.Refresher, pollInterval time.Duration) *FeedJobs {
	return &FeedJobs{
		refresher:    refresher,
		pollInterval: pollInterval,
	}
}

// RegisterJobs registers all feed-related cron jobs
func (j *FeedJobs) RegisterJobs(scheduler *Scheduler) {
	// Periodic poll as a safety net for missed change notifications.
	scheduler.AddJob(
		"poll_assignment_feed",
		j.pollInterval,
		j.PollFeed,
	)
}

// PollFeed reloads the assignment feed from the backing store.
func (j *FeedJobs) PollFeed(ctx context.Context) error {
	return j.refresher.RefreshNow(ctx)
}
