// Package jobs provides scheduled background tasks.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field in the
// schedule. The only job today is LedgerProbeJob, which pings the ledger and
// backs the /health endpoint and the ftl_ledger_up gauge.
//
//	probe := jobs.NewLedgerProbeJob(ledger, cfg.LedgerProbeSchedule, cfg.LedgerTimeout, registry, logger)
//	manager := jobs.NewJobManager(probe)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// A failed start stops any job that was already running.
package jobs
