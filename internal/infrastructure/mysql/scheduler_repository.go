package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bidding-engine/internal/domain"
)

// pendingJobBatch caps one sweep; the rest is picked up by the next one.
const pendingJobBatch = 500

type MySQLSchedulerRepository struct {
	db *sql.DB
}

func NewMySQLSchedulerRepository(db *sql.DB) *MySQLSchedulerRepository {
	return &MySQLSchedulerRepository{db: db}
}

func (r *MySQLSchedulerRepository) CreateJob(ctx context.Context, job *domain.ScheduledJob) error {
	query := `
        INSERT INTO scheduled_jobs (id, auction_id, job_type, run_at, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	if _, err := r.db.ExecContext(ctx, query,
		job.ID, job.AuctionID, string(job.JobType),
		job.RunAt.UTC(), string(job.Status), job.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("create %s job for auction %s: %w", job.JobType, job.AuctionID, err)
	}
	return nil
}

// GetPendingJobs returns due jobs, oldest first. Start jobs sort before end
// jobs due at the same instant.
func (r *MySQLSchedulerRepository) GetPendingJobs(ctx context.Context, before time.Time) ([]*domain.ScheduledJob, error) {
	query := `
        SELECT id, auction_id, job_type, run_at, status, created_at
        FROM scheduled_jobs
        WHERE status = ? AND run_at <= ?
        ORDER BY run_at ASC, job_type DESC
        LIMIT ?
    `

	rows, err := r.db.QueryContext(ctx, query, string(domain.JobPending), before.UTC(), pendingJobBatch)
	if err != nil {
		return nil, fmt.Errorf("query pending jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.ScheduledJob
	for rows.Next() {
		var job domain.ScheduledJob
		var jobType, status string

		if err := rows.Scan(&job.ID, &job.AuctionID, &jobType,
			&job.RunAt, &status, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan scheduled job: %w", err)
		}

		job.JobType = domain.JobType(jobType)
		job.Status = domain.JobStatus(status)
		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}

// UpdateJobStatus moves a pending job to status. A job that already left
// pending, for instance one cancelled by a reschedule, keeps its status.
func (r *MySQLSchedulerRepository) UpdateJobStatus(ctx context.Context, jobID string, status domain.JobStatus) error {
	query := `UPDATE scheduled_jobs SET status = ? WHERE id = ? AND status = ?`
	if _, err := r.db.ExecContext(ctx, query, string(status), jobID, string(domain.JobPending)); err != nil {
		return fmt.Errorf("mark job %s %s: %w", jobID, status, err)
	}
	return nil
}

// CancelJobsForAuction cancels the pending jobs of one type for an auction.
func (r *MySQLSchedulerRepository) CancelJobsForAuction(ctx context.Context, auctionID string, jobType domain.JobType) error {
	query := `
        UPDATE scheduled_jobs SET status = ?
        WHERE auction_id = ? AND job_type = ? AND status = ?
    `
	if _, err := r.db.ExecContext(ctx, query,
		string(domain.JobCancelled), auctionID, string(jobType), string(domain.JobPending)); err != nil {
		return fmt.Errorf("cancel %s jobs for auction %s: %w", jobType, auctionID, err)
	}
	return nil
}
