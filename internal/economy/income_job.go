package economy

import "context"

// PassiveIncomeJob is the worker job the scheduler enqueues once per passive
// income interval
type PassiveIncomeJob struct {
	svc Service
}

// NewPassiveIncomeJob creates a job that calls svc.PassiveTick
func NewPassiveIncomeJob(svc Service) *PassiveIncomeJob {
	return &PassiveIncomeJob{svc: svc}
}

// Process implements worker.Job
func (j *PassiveIncomeJob) Process(ctx context.Context) error {
	j.svc.PassiveTick(ctx)
	return nil
}
