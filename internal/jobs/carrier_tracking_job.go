package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// CarrierTrackingJob polls one carrier's tracking API for every shipped
// consignment of that carrier and feeds the reported events through the
// carrier status command. Runs every minute. One instance exists per carrier.
type CarrierTrackingJob struct {
	tracker    ports.CarrierTracker
	uowFactory ports.UnitOfWorkFactory
	handler    commands.UpdateCarrierStatusCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewCarrierTrackingJob creates a tracking job for the tracker's carrier.
func NewCarrierTrackingJob(
	tracker ports.CarrierTracker,
	uowFactory ports.UnitOfWorkFactory,
	handler commands.UpdateCarrierStatusCommandHandler,
	logger *slog.Logger,
) *CarrierTrackingJob {
	return &CarrierTrackingJob{
		tracker:    tracker,
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger: logger.With(
			"component", "carrier_tracking_job",
			"carrier", tracker.Carrier().String(),
		),
	}
}

// Start begins polling the carrier every minute.
func (j *CarrierTrackingJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.poll(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Carrier tracking poll failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Carrier tracking job started (polling every minute)")
	return nil
}

// Stop stops the tracking job.
func (j *CarrierTrackingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Carrier tracking job stopped")
}

// poll loads the carrier's shipped consignments, fetches their current
// tracking status and applies each reported event. A rejected event, for
// example an unknown status code, is logged and skipped; it never stops the
// remaining events from being applied.
func (j *CarrierTrackingJob) poll(ctx context.Context) error {
	trackingIDs, err := j.shippedTrackingIDs(ctx)
	if err != nil {
		return err
	}
	if len(trackingIDs) == 0 {
		return nil
	}

	events, err := j.tracker.Track(ctx, trackingIDs)
	if err != nil {
		return err
	}

	for _, event := range events {
		j.applyEvent(ctx, event)
	}

	return nil
}

func (j *CarrierTrackingJob) shippedTrackingIDs(ctx context.Context) ([]string, error) {
	uow := j.uowFactory.Create()

	shipped, err := uow.ConsignmentRepository().GetAllByStatus(ctx, consignment.Shipped)
	if err != nil {
		return nil, err
	}

	trackingIDs := make([]string, 0, len(shipped))
	for _, cons := range shipped {
		if cons.Carrier() == j.tracker.Carrier() {
			trackingIDs = append(trackingIDs, cons.TrackingID())
		}
	}

	return trackingIDs, nil
}

func (j *CarrierTrackingJob) applyEvent(ctx context.Context, event ports.CarrierStatusEvent) {
	cmd, err := commands.NewUpdateCarrierStatusCommand(
		j.tracker.Carrier().String(),
		event.TrackingID,
		event.StatusCode,
		event.StatusText,
		time.Now(),
	)
	if err != nil {
		j.logger.WarnContext(ctx, "Carrier reported an unprocessable event",
			"trackingId", event.TrackingID,
			"statusCode", event.StatusCode,
			"error", err)
		return
	}

	if err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Applying carrier event failed",
			"trackingId", event.TrackingID,
			"statusCode", event.StatusCode,
			"error", err)
	}
}
