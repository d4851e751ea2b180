package jobs

import (
	"context"
	"log/slog"
	"time"

	"refill/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentExpiryJob periodically fails gateway payments whose checkout was
// abandoned. A PENDING payment older than the configured TTL becomes FAILED
// and its order's payment status follows, so the customer can retry.
type PaymentExpiryJob struct {
	handler  commands.ExpireStalePaymentsCommandHandler
	maxAge   time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPaymentExpiryJob creates the expiry sweep job. maxAge is how long a
// gateway payment may sit PENDING; schedule is a standard cron expression.
func NewPaymentExpiryJob(
	handler commands.ExpireStalePaymentsCommandHandler,
	maxAge time.Duration,
	schedule string,
	logger *slog.Logger,
) *PaymentExpiryJob {
	return &PaymentExpiryJob{
		handler:  handler,
		maxAge:   maxAge,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "payment_expiry_job"),
	}
}

// Start schedules the expiry sweep.
func (j *PaymentExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireStalePaymentsCommand(j.maxAge)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Payment expiry job misconfigured", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Payment expiry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment expiry job started",
		"schedule", j.schedule, "maxAge", j.maxAge)
	return nil
}

// Stop stops the expiry sweep.
func (j *PaymentExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment expiry job stopped")
}
