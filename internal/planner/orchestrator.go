package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/sar-mission-planner/internal/domain"
	"github.com/couchcryptid/sar-mission-planner/internal/observability"
)

// Action is the closed set of operations the orchestrator dispatches on.
type Action string

const (
	ActionGenerateStrategy  Action = "generate_strategy"
	ActionCreateMissionPlan Action = "create_mission_plan"
)

// ParseAction maps a wire string onto the closed Action set. Unknown strings
// fail with UnsupportedActionError before any collaborator call.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionGenerateStrategy, ActionCreateMissionPlan:
		return Action(s), nil
	default:
		return "", &domain.UnsupportedActionError{Action: s}
	}
}

// MapReferenceBuilder is the external static-map collaborator. Failure yields
// a missing reference, never a failed plan.
type MapReferenceBuilder interface {
	BuildURL(ctx context.Context, location string, bounds domain.Bounds) (string, error)
}

// Summarizer produces advisory human-readable text from a structured
// document. Its output never affects structured fields.
type Summarizer interface {
	Summarize(ctx context.Context, doc any) (string, error)
}

// DocumentPublisher receives completed planning documents for downstream
// consumers (audit trail, dashboards).
type DocumentPublisher interface {
	Publish(ctx context.Context, kind, key string, doc any) error
}

// Request is the caller's planning input. Action selects the pipeline;
// remaining fields feed it.
type Request struct {
	Action      string                       `json:"action"`
	Incident    domain.IncidentRecord        `json:"incident"`
	Environment domain.EnvironmentalSnapshot `json:"environment"`
	Logistics   domain.LogisticsInventory    `json:"logistics"`
	Areas       []domain.SearchArea          `json:"areas,omitempty"`
}

// Strategy is the generate_strategy output: ranked areas with their
// contributing factors plus the weather and map context used to rank them.
type Strategy struct {
	Incident     domain.IncidentRecord `json:"incident"`
	Areas        []domain.SearchArea   `json:"areas"`
	Weather      domain.WeatherReport  `json:"weather"`
	MapReference string                `json:"map_reference,omitempty"`
	Summary      string                `json:"summary,omitempty"`
}

// Result carries exactly one of the two action outputs.
type Result struct {
	Strategy *Strategy           `json:"strategy,omitempty"`
	Plan     *domain.MissionPlan `json:"plan,omitempty"`
}

// Orchestrator is the public planning entry point. All collaborators are
// injected at construction; optional ones (variants, maps, summarizer,
// publisher) may be nil, in which case their contribution degrades to absent.
type Orchestrator struct {
	variants    domain.VariantGenerator
	weather     *WeatherGateway
	maps        MapReferenceBuilder
	summarizer  Summarizer
	publisher   DocumentPublisher
	weights     domain.Weights
	maxVariants int
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// Options configures optional orchestrator collaborators and tunables.
type Options struct {
	Variants    domain.VariantGenerator
	Maps        MapReferenceBuilder
	Summarizer  Summarizer
	Publisher   DocumentPublisher
	Weights     *domain.Weights // nil means DefaultWeights
	MaxVariants int             // 0 means domain.DefaultMaxVariants
}

// New creates an Orchestrator around the weather gateway and options.
func New(weather *WeatherGateway, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Orchestrator {
	weights := domain.DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	maxVariants := opts.MaxVariants
	if maxVariants <= 0 {
		maxVariants = domain.DefaultMaxVariants
	}
	return &Orchestrator{
		variants:    opts.Variants,
		weather:     weather,
		maps:        opts.Maps,
		summarizer:  opts.Summarizer,
		publisher:   opts.Publisher,
		weights:     weights,
		maxVariants: maxVariants,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness reports whether the orchestrator can serve requests. The
// planner holds no state beyond its wiring, so a constructed orchestrator
// with a weather gateway is ready.
func (o *Orchestrator) CheckReadiness(_ context.Context) error {
	if o.weather == nil {
		return fmt.Errorf("weather gateway not wired")
	}
	return nil
}

// Handle dispatches one planning request. Validation and action parsing
// happen before any collaborator call; collaborator failures degrade rather
// than fail the request.
func (o *Orchestrator) Handle(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	action, err := ParseAction(req.Action)
	if err != nil {
		o.metrics.PlanRequests.WithLabelValues("unknown", "unsupported_action").Inc()
		return Result{}, err
	}

	if err := o.validate(req); err != nil {
		o.metrics.PlanRequests.WithLabelValues(string(action), "validation_error").Inc()
		return Result{}, err
	}

	var result Result
	switch action {
	case ActionGenerateStrategy:
		strategy := o.generateStrategy(ctx, req)
		o.publish(ctx, "strategy", strategy.Incident.ID, strategy)
		result = Result{Strategy: strategy}

	case ActionCreateMissionPlan:
		strategy := o.generateStrategy(ctx, req)
		plan, err := o.createMissionPlan(ctx, req, strategy)
		if err != nil {
			o.metrics.PlanRequests.WithLabelValues(string(action), "internal_error").Inc()
			o.logger.Error("mission plan assembly failed", "incident_id", req.Incident.ID, "error", err)
			return Result{}, err
		}
		o.publish(ctx, "mission_plan", plan.ID, plan)
		result = Result{Plan: plan}
	}

	o.metrics.PlanRequests.WithLabelValues(string(action), "success").Inc()
	o.metrics.RequestDuration.WithLabelValues(string(action)).Observe(time.Since(start).Seconds())
	return result, nil
}

// validate performs the request-level checks: required incident fields and
// non-negative inventory. Entity-level clamping happens inside scoring.
func (o *Orchestrator) validate(req Request) error {
	if err := domain.ValidateIncident(req.Incident); err != nil {
		return err
	}
	return domain.ValidateInventory(req.Logistics)
}

// generateStrategy runs resolve-location → fetch-weather → prioritize-areas
// and decorates the ranked output with a map reference and advisory summary.
func (o *Orchestrator) generateStrategy(ctx context.Context, req Request) *Strategy {
	candidates := domain.ResolveLocation(ctx, req.Incident.Location, o.variants, o.maxVariants, o.logger)
	weather := o.weather.Fetch(ctx, candidates)

	ranked := domain.PrioritizeAreas(req.Incident, req.Environment, weather.Snapshot, req.Areas, o.weights)

	strategy := &Strategy{
		Incident: req.Incident,
		Areas:    ranked,
		Weather:  weather,
	}
	strategy.MapReference = o.buildMapReference(ctx, req.Incident, ranked)
	strategy.Summary = o.summarize(ctx, strategy)
	return strategy
}

// createMissionPlan extends a strategy with allocate-resources → assemble-plan.
func (o *Orchestrator) createMissionPlan(ctx context.Context, req Request, strategy *Strategy) (*domain.MissionPlan, error) {
	alloc, err := domain.AllocateResources(strategy.Areas, req.Logistics)
	if err != nil {
		return nil, err
	}

	var mapRefs []string
	if strategy.MapReference != "" {
		mapRefs = []string{strategy.MapReference}
	}

	plan := domain.AssembleMissionPlan(req.Incident, req.Environment, req.Logistics.Channels, strategy.Areas, alloc, mapRefs)
	plan.Summary = o.summarize(ctx, plan)
	return &plan, nil
}

// buildMapReference asks the map collaborator for a static-map URL of the
// top-ranked area. Failure degrades to an absent reference.
func (o *Orchestrator) buildMapReference(ctx context.Context, inc domain.IncidentRecord, ranked []domain.SearchArea) string {
	if o.maps == nil || len(ranked) == 0 {
		return ""
	}
	url, err := o.maps.BuildURL(ctx, inc.Location, ranked[0].Bounds)
	if err != nil {
		o.metrics.MapReferences.WithLabelValues("failure").Inc()
		o.logger.Warn("map reference unavailable", "incident_id", inc.ID, "error", err)
		return ""
	}
	o.metrics.MapReferences.WithLabelValues("success").Inc()
	return url
}

// summarize asks the summarization collaborator for advisory text. Failure
// degrades to an omitted summary.
func (o *Orchestrator) summarize(ctx context.Context, doc any) string {
	if o.summarizer == nil {
		return ""
	}
	text, err := o.summarizer.Summarize(ctx, doc)
	if err != nil {
		o.metrics.Summaries.WithLabelValues("failure").Inc()
		o.logger.Warn("summary unavailable", "error", err)
		return ""
	}
	o.metrics.Summaries.WithLabelValues("success").Inc()
	return text
}

// publish hands the completed document to the audit publisher, if wired.
// Publish failures are logged, never surfaced: the plan already exists.
func (o *Orchestrator) publish(ctx context.Context, kind, key string, doc any) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.Publish(ctx, kind, key, doc); err != nil {
		o.logger.Warn("plan audit publish failed", "kind", kind, "key", key, "error", err)
	}
}
