// Package jobs provides scheduled background tasks for the fulfillment engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic carrier polling the reconciliation needs.
//
// # Available Jobs
//
// Two instances of CarrierTrackingJob run, one per carrier (DHL and DPD).
// Each polls its carrier's tracking API every minute for all shipped
// consignments of that carrier and applies the reported status events through
// the carrier status command, which owns the vocabulary mapping and rejects
// unknown codes.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dhlTracker, dpdTracker, uowFactory, handler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
