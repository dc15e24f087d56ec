package spelling

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	unreadableFileWarningMessage = "skipping unreadable file"
	fileScannedDebugMessage      = "file scanned"
	logFieldPathConstant         = "path"
	logFieldLineCountConstant    = "line_count"
	logFieldMistakeCountConstant = "mistake_count"
	minimumWorkerCountConstant   = 1
)

// Aggregator scans files and collects their reports in input order.
type Aggregator struct {
	scanner FileScanner
	logger  *zap.Logger
	workers int
}

type scanOutcome struct {
	report    FileReport
	readError error
}

// NewAggregator constructs an Aggregator. Worker counts below one run sequentially.
func NewAggregator(scanner FileScanner, logger *zap.Logger, workers int) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < minimumWorkerCountConstant {
		workers = minimumWorkerCountConstant
	}
	return &Aggregator{scanner: scanner, logger: logger, workers: workers}
}

// Aggregate scans every path once. Every successfully scanned file is appended to the result,
// including clean ones; unreadable files are recorded separately and never abort the run.
// When the context is cancelled the partial result is discarded and the context error returned.
func (aggregator *Aggregator) Aggregate(executionContext context.Context, paths []string) (AuditResult, error) {
	outcomes := make([]scanOutcome, len(paths))

	group, groupContext := errgroup.WithContext(executionContext)
	group.SetLimit(aggregator.workers)

	for pathIndex, path := range paths {
		if groupContext.Err() != nil {
			break
		}
		group.Go(func() error {
			report, scanError := aggregator.scanner.ScanFile(groupContext, path)
			if scanError != nil {
				if isCancellation(scanError) {
					return scanError
				}
				outcomes[pathIndex] = scanOutcome{readError: scanError}
				return nil
			}
			outcomes[pathIndex] = scanOutcome{report: report}
			return nil
		})
	}

	if waitError := group.Wait(); waitError != nil {
		return AuditResult{}, waitError
	}
	if contextError := executionContext.Err(); contextError != nil {
		return AuditResult{}, contextError
	}

	result := AuditResult{Files: make([]FileReport, 0, len(paths))}
	for pathIndex, outcome := range outcomes {
		if outcome.readError != nil {
			aggregator.logger.Warn(unreadableFileWarningMessage, zap.String(logFieldPathConstant, paths[pathIndex]), zap.Error(outcome.readError))
			result.Unreadable = append(result.Unreadable, UnreadableFile{Path: paths[pathIndex], Err: outcome.readError})
			continue
		}
		aggregator.logger.Debug(
			fileScannedDebugMessage,
			zap.String(logFieldPathConstant, outcome.report.Path),
			zap.Int(logFieldLineCountConstant, len(outcome.report.Lines)),
			zap.Int(logFieldMistakeCountConstant, outcome.report.MistakeCount()),
		)
		result.Files = append(result.Files, outcome.report)
	}

	return result, nil
}

func isCancellation(scanError error) bool {
	return errors.Is(scanError, context.Canceled) || errors.Is(scanError, context.DeadlineExceeded)
}
