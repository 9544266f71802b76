package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// InvitationExpirer is satisfied by service.StaffService.
type InvitationExpirer interface {
	ExpireInvitations(ctx context.Context, ttl time.Duration) (int, error)
}

// InvitationExpiryJob marks stale employee invitations as expired.
type InvitationExpiryJob struct {
	staff    InvitationExpirer
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewInvitationExpiryJob builds the job.
func NewInvitationExpiryJob(staff InvitationExpirer, ttl, interval time.Duration, logger *zap.Logger) *InvitationExpiryJob {
	return &InvitationExpiryJob{staff: staff, ttl: ttl, interval: interval, logger: logger}
}

// Name identifies the job in the scheduler.
func (j *InvitationExpiryJob) Name() string { return "invitation_expiry" }

// Interval is the time between runs.
func (j *InvitationExpiryJob) Interval() time.Duration { return j.interval }

// Run expires invitations once.
func (j *InvitationExpiryJob) Run(ctx context.Context) {
	n, err := j.staff.ExpireInvitations(ctx, j.ttl)
	if err != nil {
		j.logger.Error("expire invitations", zap.Error(err))
		return
	}
	if n > 0 {
		j.logger.Info("invitations expired", zap.Int("count", n))
	}
}
