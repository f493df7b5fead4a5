package runtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	argspkg "github.com/drblury/protoargs/internal/runtime/args"
	configpkg "github.com/drblury/protoargs/internal/runtime/config"
	delegatespkg "github.com/drblury/protoargs/internal/runtime/delegates"
	descpkg "github.com/drblury/protoargs/internal/runtime/descriptors"
	errspkg "github.com/drblury/protoargs/internal/runtime/errors"
	idspkg "github.com/drblury/protoargs/internal/runtime/ids"
	loggingpkg "github.com/drblury/protoargs/internal/runtime/logging"
	metricspkg "github.com/drblury/protoargs/internal/runtime/metrics"
)

// ArgSet is the flattened form of one message.
type ArgSet struct {
	ID       string             `json:"id"`
	TypeName string             `json:"type_name"`
	Args     []delegatespkg.Arg `json:"args"`
}

// FlattenerDependencies holds optional collaborators. Leave fields nil to use
// the defaults.
type FlattenerDependencies struct {
	// Registerer receives the Prometheus collectors when metrics are
	// enabled. Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// TracerProvider is used when tracing is enabled. Defaults to the
	// global otel provider.
	TracerProvider trace.TracerProvider
}

// Flattener turns encoded messages into arg sets. Unlike args.Parser it is
// safe for concurrent use: every call borrows its own parser.
type Flattener struct {
	Conf   configpkg.Config
	Logger loggingpkg.ServiceLogger

	pool    descpkg.Pool
	base    *argspkg.Parser
	baseMu  sync.Mutex
	frozen  atomic.Bool
	parsers sync.Pool

	metrics *metricspkg.Metrics
	tracer  trace.Tracer
}

// NewFlattener validates conf and builds a Flattener over pool.
func NewFlattener(pool descpkg.Pool, conf *configpkg.Config, log loggingpkg.ServiceLogger, deps FlattenerDependencies) (*Flattener, error) {
	if pool == nil {
		return nil, errspkg.ErrPoolRequired
	}
	if conf == nil {
		return nil, errspkg.ErrConfigRequired
	}
	if log == nil {
		return nil, errspkg.ErrLoggerRequired
	}
	if err := conf.Validate(); err != nil {
		return nil, errspkg.NewConfigValidationError(err)
	}

	resolved := conf.WithDefaults()
	f := &Flattener{
		Conf:   resolved,
		Logger: log,
		pool:   pool,
		base:   argspkg.NewParser(pool, argspkg.WithKeyPrefixCapacity(resolved.KeyPrefixCapacity)),
	}
	f.parsers.New = func() any {
		f.baseMu.Lock()
		defer f.baseMu.Unlock()
		return f.base.Clone()
	}

	if resolved.MetricsEnabled {
		f.metrics = metricspkg.New(resolved.MetricsNamespace, deps.Registerer)
		if err := f.metrics.Register(); err != nil {
			return nil, err
		}
	}

	if resolved.TracingEnabled {
		provider := deps.TracerProvider
		if provider == nil {
			provider = otel.GetTracerProvider()
		}
		f.tracer = provider.Tracer(resolved.TracerName)
	} else {
		f.tracer = noop.NewTracerProvider().Tracer(resolved.TracerName)
	}

	log.Info("Creating flattener", loggingpkg.LogFields{"config": resolved.String()})
	return f, nil
}

// AddParsingOverride registers fn for a flat key. Overrides must be added
// before the first Flatten call; later registrations fail with
// ErrOverridesFrozen.
func (f *Flattener) AddParsingOverride(flatKey string, fn argspkg.ParsingOverride) error {
	if fn == nil {
		return errspkg.ErrOverrideRequired
	}
	f.baseMu.Lock()
	defer f.baseMu.Unlock()
	if f.frozen.Load() {
		return errspkg.ErrOverridesFrozen
	}
	f.base.AddParsingOverride(flatKey, fn)
	return nil
}

// Flatten parses b as typeName into a new arg set.
func (f *Flattener) Flatten(ctx context.Context, typeName string, b []byte) (*ArgSet, error) {
	recorder := delegatespkg.NewRecorder()
	if err := f.FlattenTo(ctx, typeName, b, recorder); err != nil {
		return nil, err
	}
	set := &ArgSet{
		ID:       idspkg.NewArgSetID(),
		TypeName: typeName,
		Args:     recorder.Args(),
	}
	f.Logger.Debug("Flattened message", loggingpkg.LogFields{
		"type_name":  typeName,
		"arg_set_id": set.ID,
		"args":       len(set.Args),
	})
	return set, nil
}

// FlattenTo parses b as typeName and streams values to d.
func (f *Flattener) FlattenTo(ctx context.Context, typeName string, b []byte, d argspkg.Delegate) error {
	if typeName == "" {
		return errspkg.ErrTypeNameRequired
	}
	if d == nil {
		return errspkg.ErrDelegateRequired
	}

	_, span := f.tracer.Start(ctx, "FlattenMessage")
	defer span.End()
	span.SetAttributes(
		attribute.String("protoargs.type_name", typeName),
		attribute.Int("protoargs.payload_bytes", len(b)),
	)

	start := time.Now()
	counting := delegatespkg.NewCounting(d, f.argObserver())

	parser := f.acquire()
	err := parser.ParseMessage(b, typeName, f.Conf.AllowedFields, counting)
	f.parsers.Put(parser)

	span.SetAttributes(attribute.Int("protoargs.args", counting.Count()))
	if f.metrics != nil {
		f.metrics.ObserveMessage(typeName, counting.Count(), time.Since(start), errorKind(err))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		loggingpkg.ForMessage(f.Logger, typeName, len(b)).Error("Failed to flatten message", err, loggingpkg.LogFields{
			"kind": errorKind(err),
		})
		return err
	}
	return nil
}

func (f *Flattener) acquire() *argspkg.Parser {
	f.frozen.Store(true)
	return f.parsers.Get().(*argspkg.Parser)
}

func (f *Flattener) argObserver() delegatespkg.ArgObserver {
	if f.metrics == nil {
		return nil
	}
	return f.metrics
}

func errorKind(err error) string {
	if err == nil {
		return ""
	}
	var unsupported *errspkg.UnsupportedFieldTypeError
	switch {
	case errors.Is(err, errspkg.ErrDescriptorNotFound):
		return "descriptor_not_found"
	case errors.As(err, &unsupported):
		return "unsupported_field_type"
	default:
		return "override"
	}
}
