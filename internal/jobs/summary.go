package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/ledger"
	"github.com/dvloznov/partner-ledger/internal/logger"
	"github.com/dvloznov/partner-ledger/internal/summary"
)

// Reporter builds the report a summary is written from.
type Reporter interface {
	Report(ctx context.Context, period domain.DateRange) (ledger.Report, error)
}

// NewSummaryHandler returns a JobHandler that generates summaries and
// stores the text on the job.
func NewSummaryHandler(reporter Reporter, summarizer summary.Summarizer) JobHandler {
	return func(ctx context.Context, job Job) error {
		log := logger.FromContext(ctx)

		summaryJob, ok := job.(*SummaryJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", summaryJob.JobID).
			Str("period", summaryJob.Period.String()).
			Msg("Generating summary")

		report, err := reporter.Report(ctx, summaryJob.Period)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}

		text, err := summarizer.Summarize(ctx, summary.Snapshot{Report: report, GeneratedAt: time.Now()})
		if err != nil {
			return fmt.Errorf("summarize: %w", err)
		}

		summaryJob.Result = text
		log.Info().Str("job_id", summaryJob.JobID).Int("chars", len(text)).Msg("Summary generated")
		return nil
	}
}
