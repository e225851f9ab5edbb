package conveyor

import (
	"time"

	"github.com/viant/afs/storage"
	"github.com/viant/conveyor/progress"
	"github.com/viant/conveyor/runtime/transfer"
	"github.com/viant/conveyor/service/dao"
	"github.com/viant/conveyor/service/dao/scenario"
	"github.com/viant/conveyor/service/journal"
	"github.com/viant/conveyor/service/meta"
	"github.com/viant/conveyor/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customizes the conveyor service
type Option func(s *Service)

// WithConfig applies a serialisable configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config == nil {
			return
		}
		s.config.Capacity = config.Capacity
		s.config.ProducerThrottle = time.Duration(config.ProducerThrottleMs) * time.Millisecond
		s.config.ConsumerThrottle = time.Duration(config.ConsumerThrottleMs) * time.Millisecond
		if config.ConsoleJournal {
			s.journalOptions = append(s.journalOptions, journal.WithConsole())
		}
		if config.JournalFile != "" {
			s.journalOptions = append(s.journalOptions, journal.WithFile(config.JournalFile))
		}
	}
}

// WithCapacity bounds every transfer channel
func WithCapacity(capacity int) Option {
	return func(s *Service) {
		s.config.Capacity = capacity
	}
}

// WithProducerThrottle paces puts
func WithProducerThrottle(throttle time.Duration) Option {
	return func(s *Service) {
		s.config.ProducerThrottle = throttle
	}
}

// WithConsumerThrottle paces takes
func WithConsumerThrottle(throttle time.Duration) Option {
	return func(s *Service) {
		s.config.ConsumerThrottle = throttle
	}
}

// WithMetaService sets the meta service
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithMetaBaseURL sets the meta base URL
func WithMetaBaseURL(url string) Option {
	return func(s *Service) {
		s.metaBaseURL = url
	}
}

// WithMetaFsOptions with meta file system options
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithScenarioDAO sets the scenario service
func WithScenarioDAO(service *scenario.Service) Option {
	return func(s *Service) {
		s.runtime.scenarioDAO = service
	}
}

// WithReportDAO sets the report store
func WithReportDAO(reports dao.Service[string, transfer.Report]) Option {
	return func(s *Service) {
		s.runtime.reportDAO = reports
	}
}

// WithJournal sets a prebuilt journal; the caller owns its sinks
func WithJournal(aJournal *journal.Journal) Option {
	return func(s *Service) {
		s.runtime.journal = aJournal
	}
}

// WithJournalOptions configures the runtime journal sinks
func WithJournalOptions(options ...journal.Option) Option {
	return func(s *Service) {
		s.journalOptions = append(s.journalOptions, options...)
	}
}

// WithConsoleJournal adds a human-readable journal sink on stderr
func WithConsoleJournal() Option {
	return func(s *Service) {
		s.journalOptions = append(s.journalOptions, journal.WithConsole())
	}
}

// WithJournalFile adds an append-only journal file sink
func WithJournalFile(location string) Option {
	return func(s *Service) {
		s.journalOptions = append(s.journalOptions, journal.WithFile(location))
	}
}

// WithProgressHook observes counter changes of every run in flight
func WithProgressHook(onChange func(progress.Progress)) Option {
	return func(s *Service) {
		s.onChange = onChange
	}
}

// WithTracing configures OpenTelemetry tracing for the service.  If outputFile
// is empty spans go to stdout, otherwise to the supplied file.  Only the first
// successful initialisation installs a provider; later calls are no-ops.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, enabling back-ends other than the built-in stdout exporter
// such as OTLP, Jaeger or Zipkin.  Only the first successful initialisation
// installs a provider.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
