package audit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/spellscan/internal/report"
	"github.com/temirov/spellscan/internal/source"
	"github.com/temirov/spellscan/internal/spelling"
	"github.com/temirov/spellscan/internal/utils"
)

const (
	dictionaryLoadErrorTemplate     = "unable to load dictionary %s: %w"
	fetchErrorTemplate              = "unable to fetch repository %s: %w"
	discoveryErrorTemplate          = "unable to discover files: %w"
	aggregationErrorTemplate        = "audit interrupted: %w"
	renderErrorTemplate             = "unable to render report: %w"
	mistakesFoundErrorTemplate      = "%w: %d mistake(s)"
	checkoutReleaseWarningMessage   = "unable to release checkout lock"
	debugDiscoveredTemplate         = "Discovered %d file(s) under: %v\n"
	debugUnreadableTemplate         = "Unreadable: %s\n"
	auditStartedMessageConstant     = "audit started"
	dictionaryLoadedMessageConstant = "dictionary loaded"
	auditCompletedMessageConstant   = "audit completed"
	logFieldRunIdentifierConstant   = "run_id"
	logFieldRootsConstant           = "roots"
	logFieldExtensionsConstant      = "extensions"
	logFieldDictionaryConstant      = "dictionary"
	logFieldWorkersConstant         = "workers"
	logFieldFileCountConstant       = "file_count"
	logFieldMistakeCountConstant    = "mistake_count"
	logFieldUnreadableCountConstant = "unreadable_count"
	logFieldReportBytesConstant     = "report_bytes"
)

// ErrMistakesFound reports a run that flagged at least one token while fail-on-mistakes is set.
var ErrMistakesFound = errors.New("spelling mistakes found")

// Service coordinates dictionary loading, optional checkout, discovery, scanning, and reporting.
type Service struct {
	discoverer       FileDiscoverer
	dictionaryLoader DictionaryLoader
	fetcher          RepositoryFetcher
	logger           *zap.Logger
	outputWriter     io.Writer
	errorWriter      io.Writer
	contextAccessor  utils.CommandContextAccessor
}

// NewService constructs a Service using the provided dependencies.
func NewService(discoverer FileDiscoverer, dictionaryLoader DictionaryLoader, fetcher RepositoryFetcher, logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer) *Service {
	if dictionaryLoader == nil {
		dictionaryLoader = FrequencyDictionaryLoader{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}
	return &Service{
		discoverer:       discoverer,
		dictionaryLoader: dictionaryLoader,
		fetcher:          fetcher,
		logger:           logger,
		outputWriter:     outputWriter,
		errorWriter:      errorWriter,
		contextAccessor:  utils.NewCommandContextAccessor(),
	}
}

// Run executes one audit and writes the report. The returned AuditResult is empty when the run fails
// before scanning completes.
func (service *Service) Run(executionContext context.Context, options CommandOptions) (spelling.AuditResult, error) {
	runIdentifier, hasRunIdentifier := service.contextAccessor.RunIdentifier(executionContext)
	if !hasRunIdentifier {
		runIdentifier = uuid.NewString()
		executionContext = service.contextAccessor.WithRunIdentifier(executionContext, runIdentifier)
	}
	logger := service.logger.With(zap.String(logFieldRunIdentifierConstant, runIdentifier))

	renderer, rendererError := report.NewRenderer(report.RendererOptions{
		Format:       options.Format,
		ColorEnabled: options.ColorEnabled,
		ToolVersion:  options.ToolVersion,
	})
	if rendererError != nil {
		return spelling.AuditResult{}, rendererError
	}

	lookup, loadError := service.dictionaryLoader.LoadDictionary(options.Dictionary)
	if loadError != nil {
		return spelling.AuditResult{}, fmt.Errorf(dictionaryLoadErrorTemplate, options.Dictionary.Path, loadError)
	}
	logger.Debug(dictionaryLoadedMessageConstant, zap.String(logFieldDictionaryConstant, options.Dictionary.Path))

	roots := options.Roots
	if len(roots) == 0 {
		roots = []string{defaultRootPathConstant}
	}

	if len(options.Source.Repository) > 0 {
		checkout, fetchError := service.fetchRepository(executionContext, options.Source)
		if fetchError != nil {
			return spelling.AuditResult{}, fetchError
		}
		defer func() {
			if releaseError := checkout.Release(); releaseError != nil {
				logger.Warn(checkoutReleaseWarningMessage, zap.Error(releaseError))
			}
		}()
		roots = []string{checkout.Path}
	}

	logger.Info(
		auditStartedMessageConstant,
		zap.Strings(logFieldRootsConstant, roots),
		zap.Strings(logFieldExtensionsConstant, options.Extensions),
		zap.Int(logFieldWorkersConstant, options.Workers),
	)

	files, discoveryError := service.discoverer.DiscoverFiles(roots, options.Extensions)
	if discoveryError != nil {
		return spelling.AuditResult{}, fmt.Errorf(discoveryErrorTemplate, discoveryError)
	}
	if options.DebugOutput {
		fmt.Fprintf(service.errorWriter, debugDiscoveredTemplate, len(files), roots)
	}

	scanner := spelling.NewScanner(lookup, nil)
	aggregator := spelling.NewAggregator(scanner, logger, options.Workers)
	result, aggregateError := aggregator.Aggregate(executionContext, files)
	if aggregateError != nil {
		return spelling.AuditResult{}, fmt.Errorf(aggregationErrorTemplate, aggregateError)
	}
	if options.DebugOutput {
		for _, unreadable := range result.Unreadable {
			fmt.Fprintf(service.errorWriter, debugUnreadableTemplate, unreadable.Path)
		}
	}

	reportWriter := utils.NewFlushingWriter(service.outputWriter)
	if renderError := renderer.Render(reportWriter, result); renderError != nil {
		return result, fmt.Errorf(renderErrorTemplate, renderError)
	}

	mistakeCount := result.MistakeCount()
	logger.Info(
		auditCompletedMessageConstant,
		zap.Int(logFieldFileCountConstant, len(result.Files)),
		zap.Int(logFieldMistakeCountConstant, mistakeCount),
		zap.Int(logFieldUnreadableCountConstant, len(result.Unreadable)),
		zap.Int64(logFieldReportBytesConstant, reportWriter.BytesWritten()),
	)

	if options.FailOnMistakes && mistakeCount > 0 {
		return result, fmt.Errorf(mistakesFoundErrorTemplate, ErrMistakesFound, mistakeCount)
	}
	return result, nil
}

func (service *Service) fetchRepository(executionContext context.Context, sourceOptions SourceOptions) (*source.Checkout, error) {
	fetcher := service.fetcher
	if fetcher == nil {
		fetcher = source.NewFetcher(nil, service.logger, service.errorWriter)
	}

	checkout, fetchError := fetcher.Fetch(executionContext, source.Request{
		RepositoryURL:     sourceOptions.Repository,
		CheckoutDirectory: sourceOptions.Checkout,
		Branch:            sourceOptions.Branch,
	})
	if fetchError != nil {
		return nil, fmt.Errorf(fetchErrorTemplate, sourceOptions.Repository, fetchError)
	}
	return checkout, nil
}
