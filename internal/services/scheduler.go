package services

import (
	"context"
	"errors"
	"time"

	"bidding-engine/internal/clock"
	"bidding-engine/internal/domain"
	"bidding-engine/pkg/logger"
	"bidding-engine/pkg/utils"

	"github.com/robfig/cron/v3"
)

// JobRunner executes durable jobs. AuctionRegistry is the production one.
type JobRunner interface {
	Schedule(ctx context.Context, auctionID string) (domain.Auction, error)
	Activate(ctx context.Context, auctionID string, now time.Time) error
	Close(ctx context.Context, auctionID string, now time.Time) error
}

// CronAuctionScheduler stores start and end jobs in MySQL and sweeps the due
// ones on a cron schedule. The in-memory machine timers normally fire first;
// the sweep covers restarts and leader changes. Only the leader sweeps.
type CronAuctionScheduler struct {
	cron       *cron.Cron
	repo       domain.SchedulerRepository
	runner     JobRunner
	leader     domain.LeaderElection
	instanceID string
	sweepSpec  string
	clock      clock.Clock
	log        logger.Logger
}

func NewCronAuctionScheduler(repo domain.SchedulerRepository, runner JobRunner, leader domain.LeaderElection,
	instanceID, sweepSpec string, clk clock.Clock, log logger.Logger) *CronAuctionScheduler {
	if clk == nil {
		clk = clock.New()
	}
	return &CronAuctionScheduler{
		cron:       cron.New(cron.WithSeconds()),
		repo:       repo,
		runner:     runner,
		leader:     leader,
		instanceID: instanceID,
		sweepSpec:  sweepSpec,
		clock:      clk,
		log:        log,
	}
}

func (s *CronAuctionScheduler) Start(ctx context.Context) error {
	s.log.Info("Starting auction scheduler", "spec", s.sweepSpec)

	_, err := s.cron.AddFunc(s.sweepSpec, func() {
		s.processPendingJobs(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish.
func (s *CronAuctionScheduler) Stop() error {
	s.log.Info("Stopping auction scheduler")
	<-s.cron.Stop().Done()
	return nil
}

func (s *CronAuctionScheduler) ScheduleAuctionStart(ctx context.Context, auctionID string, startTime time.Time) error {
	return s.createJob(ctx, auctionID, domain.JobStartAuction, startTime)
}

func (s *CronAuctionScheduler) ScheduleAuctionEnd(ctx context.Context, auctionID string, endTime time.Time) error {
	return s.createJob(ctx, auctionID, domain.JobEndAuction, endTime)
}

func (s *CronAuctionScheduler) createJob(ctx context.Context, auctionID string, jobType domain.JobType, runAt time.Time) error {
	job := &domain.ScheduledJob{
		ID:        utils.GenerateID("job"),
		AuctionID: auctionID,
		JobType:   jobType,
		RunAt:     runAt,
		Status:    domain.JobPending,
		CreatedAt: s.clock.Now(),
	}
	return s.repo.CreateJob(ctx, job)
}

func (s *CronAuctionScheduler) RescheduleAuctionEnd(ctx context.Context, auctionID string, newEndTime time.Time) error {
	if err := s.repo.CancelJobsForAuction(ctx, auctionID, domain.JobEndAuction); err != nil {
		return err
	}
	return s.ScheduleAuctionEnd(ctx, auctionID, newEndTime)
}

func (s *CronAuctionScheduler) CancelSchedule(ctx context.Context, auctionID string) error {
	if err := s.repo.CancelJobsForAuction(ctx, auctionID, domain.JobStartAuction); err != nil {
		return err
	}
	return s.repo.CancelJobsForAuction(ctx, auctionID, domain.JobEndAuction)
}

func (s *CronAuctionScheduler) processPendingJobs(ctx context.Context) {
	if s.leader != nil {
		isLeader, err := s.leader.IsLeader(ctx, s.instanceID)
		if err != nil || !isLeader {
			if err != nil {
				s.log.Error("Failed to check leadership", "error", err)
			}
			return
		}
	}

	now := s.clock.Now()
	jobs, err := s.repo.GetPendingJobs(ctx, now)
	if err != nil {
		s.log.Error("Failed to get pending jobs", "error", err)
		return
	}

	for _, job := range jobs {
		s.log.Info("Processing job", "job_id", job.ID, "type", job.JobType, "auction_id", job.AuctionID)

		if err := s.runJob(ctx, job, now); err != nil {
			if errors.Is(err, domain.ErrAuctionHalted) {
				s.log.Error("Job cannot run on a halted auction, giving up", "job_id", job.ID,
					"auction_id", job.AuctionID, "error", err)
				if err := s.repo.UpdateJobStatus(ctx, job.ID, domain.JobFailed); err != nil {
					s.log.Error("Failed to mark job failed", "job_id", job.ID, "error", err)
				}
				continue
			}
			// left pending, the next sweep retries it
			s.log.Error("Failed to execute job", "job_id", job.ID, "error", err)
			continue
		}

		if err := s.repo.UpdateJobStatus(ctx, job.ID, domain.JobExecuted); err != nil {
			s.log.Error("Failed to mark job executed", "job_id", job.ID, "error", err)
		}
	}
}

func (s *CronAuctionScheduler) runJob(ctx context.Context, job *domain.ScheduledJob, now time.Time) error {
	var err error
	switch job.JobType {
	case domain.JobStartAuction:
		err = s.runner.Activate(ctx, job.AuctionID, now)
		if errors.Is(err, domain.ErrUnknownAuction) {
			if _, err = s.runner.Schedule(ctx, job.AuctionID); err == nil {
				err = s.runner.Activate(ctx, job.AuctionID, now)
			}
		}
	case domain.JobEndAuction:
		err = s.runner.Close(ctx, job.AuctionID, now)
	}

	// nothing left to do for auctions that are gone or already past this step
	if errors.Is(err, domain.ErrUnknownAuction) || errors.Is(err, domain.ErrAuctionNotOpen) {
		s.log.Debug("Job no longer applicable", "job_id", job.ID, "error", err)
		return nil
	}
	return err
}
