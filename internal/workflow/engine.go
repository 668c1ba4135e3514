package workflow

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ctisdesk/autopilot/internal/observability/metrics"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

var tracer = otel.Tracer("autopilot/workflow")

// handler runs one scenario's verify → act → escalate protocol. Handlers
// return an error only for infrastructure failures; the engine converts those
// into a declined result so the caller can route to its fallback path.
type handler interface {
	Scenario() Scenario
	Handle(ctx context.Context, req Request) (Result, error)
}

// Runner is the caller-facing contract: one synchronous run per request.
type Runner interface {
	Run(ctx context.Context, scenario Scenario, req Request) Result
}

// EngineConfig carries the tunable policy the engine applies to every run.
type EngineConfig struct {
	// RelevanceThreshold gates knowledge-base resolution in the general
	// handler; zero selects DefaultRelevanceThreshold.
	RelevanceThreshold float64
	// CallTimeout bounds each run's facade calls. A timed-out call is
	// treated like any failed call: decline, never retry here.
	CallTimeout time.Duration
	// TicketQueue and HardwareQueue name the ticketing destinations for
	// general support and printer hardware follow-ups.
	TicketQueue   string
	HardwareQueue string
}

// Engine routes a classified request to its scenario handler and normalizes
// the outcome. It holds no per-request state; concurrent runs need no
// coordination.
type Engine struct {
	accountUnlock      *AccountUnlockHandler
	accessRequest      *AccessRequestHandler
	courseCompletion   *CourseCompletionHandler
	notificationHealth *NotificationHealthHandler
	printerIssue       *PrinterIssueHandler
	generalSupport     *GeneralSupportHandler

	callTimeout time.Duration
	logger      *logging.Logger
	metrics     *metrics.WorkflowMetrics
}

var _ Runner = (*Engine)(nil)

// NewEngine wires the six scenario handlers onto the given systems of record.
// Every capability in systems must be non-nil.
func NewEngine(systems Systems, cfg EngineConfig, logger *logging.Logger, m *metrics.WorkflowMetrics) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	if systems.Directory == nil || systems.Collaboration == nil || systems.Learning == nil ||
		systems.Operations == nil || systems.Knowledge == nil || systems.Ticketing == nil {
		panic("workflow: all system-of-record capabilities must be provided")
	}

	return &Engine{
		accountUnlock:      NewAccountUnlockHandler(systems.Directory, logger),
		accessRequest:      NewAccessRequestHandler(systems.Directory, systems.Collaboration, logger),
		courseCompletion:   NewCourseCompletionHandler(systems.Learning, logger),
		notificationHealth: NewNotificationHealthHandler(systems.Operations, logger),
		printerIssue:       NewPrinterIssueHandler(systems.Ticketing, cfg.HardwareQueue, logger),
		generalSupport:     NewGeneralSupportHandler(systems.Knowledge, systems.Ticketing, cfg.TicketQueue, cfg.RelevanceThreshold, logger),
		callTimeout:        cfg.CallTimeout,
		logger:             logger,
		metrics:            m,
	}
}

// Run executes the handler for the given scenario. An unknown scenario tag is
// programmer error upstream; the engine declines rather than guessing.
func (e *Engine) Run(ctx context.Context, scenario Scenario, req Request) Result {
	switch scenario {
	case ScenarioAccountUnlock:
		return e.run(ctx, e.accountUnlock, req)
	case ScenarioAccessRequest:
		return e.run(ctx, e.accessRequest, req)
	case ScenarioCourseCompletion:
		return e.run(ctx, e.courseCompletion, req)
	case ScenarioNotificationHealth:
		return e.run(ctx, e.notificationHealth, req)
	case ScenarioPrinterIssue:
		return e.run(ctx, e.printerIssue, req)
	case ScenarioGeneralSupport:
		return e.run(ctx, e.generalSupport, req)
	default:
		e.logger.Error("unknown scenario tag, declining", "scenario", scenario)
		e.metrics.ObserveRun(string(scenario), string(DispositionDeclined), 0)
		return declined(scenario)
	}
}

// run wraps one handler invocation with tracing, timing, the facade call
// timeout, and the decline-on-failure boundary. A panic inside a handler is
// treated like any other infrastructure failure.
func (e *Engine) run(ctx context.Context, h handler, req Request) (res Result) {
	scenario := h.Scenario()
	start := time.Now()

	ctx, span := tracer.Start(ctx, "workflow.run")
	span.SetAttributes(
		attribute.String("workflow.scenario", string(scenario)),
		attribute.Bool("workflow.is_thread", req.IsThread),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("handler panicked, declining", "scenario", scenario, "panic", r)
			e.metrics.ObserveFacadeError(string(scenario))
			res = declined(scenario)
		}
		span.SetAttributes(attribute.String("workflow.disposition", string(res.Disposition())))
		e.metrics.ObserveRun(string(scenario), string(res.Disposition()), time.Since(start).Seconds())
	}()

	if e.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
	}

	out, err := h.Handle(ctx, req)
	if err != nil {
		e.logger.Error("handler declined after system-of-record failure",
			"scenario", scenario, "error", err)
		e.metrics.ObserveFacadeError(string(scenario))
		return declined(scenario)
	}

	e.logger.Info("workflow run finished",
		"scenario", scenario,
		"disposition", out.Disposition(),
		"actions", len(out.SystemActions),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out
}
