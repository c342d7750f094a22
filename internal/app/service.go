// Package app wires the substance source, the timeline engine, charts and
// notifications into the operations the CLI exposes
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mrcode/dose-timeline/internal/chart"
	"github.com/mrcode/dose-timeline/internal/models"
	"github.com/mrcode/dose-timeline/internal/notifications"
	"github.com/mrcode/dose-timeline/internal/timeline"
	"github.com/mrcode/dose-timeline/internal/wiki"
	"github.com/samber/lo"
)

var (
	// ErrSubstanceNotFound is returned when the source has no matching substance
	ErrSubstanceNotFound = errors.New("substance not found")
	// ErrRouteNotFound is returned when the substance has no data for a route
	ErrRouteNotFound = errors.New("route not documented")
)

// DoseRequest describes an ingestion to evaluate. Empty Unit and Route fall
// back to the settings defaults; a zero At means now.
type DoseRequest struct {
	Substance string
	Amount    float64
	Unit      string
	Route     string
	At        time.Time
}

// Service answers substance and ingestion queries
type Service struct {
	settings      *models.Settings
	source        wiki.Source
	notifyManager *notifications.Manager
	logger        *slog.Logger
	now           func() time.Time

	// alertStatePath keeps alert history between runs when set
	alertStatePath string

	mu sync.RWMutex
}

// NewService creates a service reading from the catalog when one is
// configured and from the API otherwise
func NewService(settings *models.Settings, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	source, err := newSource(settings, logger)
	if err != nil {
		return nil, err
	}
	return NewServiceWithSource(settings, source, logger), nil
}

// NewServiceWithSource creates a service with an explicit source
func NewServiceWithSource(settings *models.Settings, source wiki.Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		settings:      settings,
		source:        source,
		notifyManager: notifications.NewManager(settings),
		logger:        logger,
		now:           time.Now,
	}
}

func newSource(settings *models.Settings, logger *slog.Logger) (wiki.Source, error) {
	s := settings.Clone()
	if s.UsesCatalog() {
		catalog, err := wiki.LoadCatalog(s.CatalogPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("using offline catalog", "path", s.CatalogPath, "substances", catalog.Len())
		return catalog, nil
	}

	logger.Debug("using substance API", "url", s.APIURL, "timeout", s.RequestTimeout)
	return wiki.NewClient(s.APIURL, time.Duration(s.RequestTimeout)*time.Second), nil
}

// SetAlertStatePath sets the file alert history is loaded from and saved to
// around each notifying Status call. Empty keeps history in memory only.
func (s *Service) SetAlertStatePath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alertStatePath = path
}

// GetSettings returns a copy of the current settings
func (s *Service) GetSettings() *models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// SaveSettings applies settings and writes them to path, or to the default
// location when path is empty
func (s *Service) SaveSettings(settings *models.Settings, path string) error {
	s.mu.Lock()
	if settings != s.settings {
		s.settings.Update(settings)
	}
	s.mu.Unlock()

	s.settings.Validate()

	var err error
	if path == "" {
		err = s.settings.Save()
	} else {
		err = s.settings.SaveFile(path)
	}
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	s.notifyManager.UpdateSettings(s.settings)
	return nil
}

// Lookup fetches the substance called name. A case-insensitive exact match
// is preferred over the first partial match.
func (s *Service) Lookup(ctx context.Context, name string) (*models.Substance, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrSubstanceNotFound)
	}

	start := time.Now()
	substances, err := s.source.FetchSubstances(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	s.logger.Debug("fetched substances", "query", name, "results", len(substances), "took", time.Since(start))

	if len(substances) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSubstanceNotFound, name)
	}

	match, ok := lo.Find(substances, func(sub models.Substance) bool {
		return strings.EqualFold(sub.Name, name)
	})
	if !ok {
		match = substances[0]
		s.logger.Info("no exact match, using first result", "query", name, "substance", match.Name)
	}
	return &match, nil
}

// Ingest looks up the substance and builds the ingestion event and route
// profile for req
func (s *Service) Ingest(ctx context.Context, req DoseRequest) (*models.IngestionEvent, models.RouteProfile, error) {
	settings := s.GetSettings()

	unitName := lo.Ternary(req.Unit == "", settings.DefaultUnit, req.Unit)
	unit := models.ParseMassUnit(unitName)
	if err := unit.Validate(); err != nil {
		return nil, models.RouteProfile{}, fmt.Errorf("%q: %w", unitName, err)
	}

	routeName := lo.Ternary(req.Route == "", settings.DefaultRoute, req.Route)
	kind := models.ParseRouteKind(routeName)
	if kind == models.RouteInvalid {
		return nil, models.RouteProfile{}, fmt.Errorf("%w: unknown route %q", ErrRouteNotFound, routeName)
	}

	if req.Amount <= 0 {
		return nil, models.RouteProfile{}, fmt.Errorf("dose must be positive, got %g", req.Amount)
	}

	substance, err := s.Lookup(ctx, req.Substance)
	if err != nil {
		return nil, models.RouteProfile{}, err
	}

	route, ok := substance.Route(kind)
	if !ok {
		documented := lo.Map(substance.RouteKinds(), func(k models.RouteKind, _ int) string { return k.String() })
		return nil, models.RouteProfile{}, fmt.Errorf("%w: %s has no %s data (documented: %s)",
			ErrRouteNotFound, substance.Name, kind, strings.Join(documented, ", "))
	}

	at := req.At
	if at.IsZero() {
		at = s.now()
	}
	ing := substance.NewIngestion(req.Amount, unit, at, kind)
	ing.ID = models.IngestionID(substance.Name, kind, req.Amount, unit, at)
	return ing, route, nil
}

// Status evaluates req at the current time. With notify set, a desktop
// notification is sent if the ingestion is in an alerting phase.
func (s *Service) Status(ctx context.Context, req DoseRequest, notify bool) (*StatusReport, error) {
	ing, route, err := s.Ingest(ctx, req)
	if err != nil {
		return nil, err
	}

	report, err := s.buildReport(ing, route)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("evaluated ingestion",
		"id", ing.ID, "substance", report.Substance, "tier", report.Tier,
		"phase", report.Phase, "active", report.Active, "intensity", report.Intensity)

	if notify {
		s.notifyPhase(ing, report)
	}
	return report, nil
}

// notifyPhase alerts the report's phase. Failures are logged, not returned.
func (s *Service) notifyPhase(ing *models.IngestionEvent, report *StatusReport) {
	s.mu.RLock()
	statePath := s.alertStatePath
	s.mu.RUnlock()

	if statePath != "" {
		if err := s.notifyManager.LoadState(statePath); err != nil {
			s.logger.Warn("alert history unreadable, starting fresh", "path", statePath, "error", err)
		}
	}

	sent, err := s.notifyManager.CheckAndNotify(*ing, report.Phase, report.Active)
	if err != nil {
		s.logger.Warn("notification failed", "error", err)
		return
	}
	if !sent {
		return
	}
	s.logger.Info("notification sent", "phase", report.Phase)

	if statePath != "" {
		if err := s.notifyManager.SaveState(statePath); err != nil {
			s.logger.Warn("saving alert history", "path", statePath, "error", err)
		}
	}
}

// ExportChart renders the timeline of req as a PNG file at path
func (s *Service) ExportChart(ctx context.Context, req DoseRequest, path string) error {
	ing, route, err := s.Ingest(ctx, req)
	if err != nil {
		return err
	}

	settings := s.GetSettings()
	opts := chart.OptionsFromSettings(settings)
	opts.Title = fmt.Sprintf("%s - %g %s %s", ing.Substance.Name, ing.Amount, ing.Unit, ing.Route)
	if settings.ChartShowNow {
		opts.NowHours = ing.Elapsed(s.now())
	}

	data, err := chart.Render(route, *ing, opts)
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // Chart images are not sensitive
		return fmt.Errorf("writing chart: %w", err)
	}

	s.logger.Info("chart written", "path", path, "bytes", len(data))
	return nil
}

// CheckSource verifies the configured source answers. Sources without a
// connection check always pass.
func (s *Service) CheckSource(ctx context.Context) error {
	checker, ok := s.source.(interface {
		TestConnection(ctx context.Context) error
	})
	if !ok {
		return nil
	}
	if err := checker.TestConnection(ctx); err != nil {
		return fmt.Errorf("source check failed: %w", err)
	}
	s.logger.Debug("source check passed")
	return nil
}

// SendTestNotification sends a test desktop notification
func (s *Service) SendTestNotification() error {
	return s.notifyManager.SendTestNotification()
}

// buildReport evaluates the ingestion at the service's current time
func (s *Service) buildReport(ing *models.IngestionEvent, route models.RouteProfile) (*StatusReport, error) {
	settings := s.GetSettings()

	tier, err := timeline.Classify(route, *ing)
	if err != nil {
		return nil, err
	}

	elapsed := ing.Elapsed(s.now())
	phase, active, err := timeline.CurrentPhase(route, *ing, elapsed)
	if err != nil {
		return nil, err
	}
	intensity, err := timeline.Effect(route, *ing, elapsed)
	if err != nil {
		return nil, err
	}

	total, err := timeline.CumulativeTotal(route)
	if err != nil {
		return nil, err
	}
	totalHours, err := models.ConvertTime(total, models.TimeSeconds, models.TimeHours)
	if err != nil {
		return nil, err
	}

	report := &StatusReport{
		ID:         ing.ID.String(),
		Substance:  ing.Substance.Name,
		Route:      ing.Route,
		Amount:     ing.Amount,
		Unit:       ing.Unit,
		TakenAt:    ing.Timestamp,
		Tier:       tier,
		Phase:      phase,
		Active:     active,
		Intensity:  intensity,
		Elapsed:    elapsed,
		Remaining:  max(0, totalHours-elapsed),
		TotalHours: totalHours,
	}

	// Sparkline columns cover the timeline; skip it for sub-threshold doses
	if tier != models.TierBelowThreshold && totalHours > 0 {
		curve, err := timeline.SampleCurve(route, *ing, 0, totalHours, sparklineColumns)
		if err != nil {
			return nil, err
		}
		report.Sparkline = chart.Sparkline(lo.Map(curve, func(p timeline.Point, _ int) float64 { return p.Y }), settings.SparklineHeight)
	}

	return report, nil
}

const sparklineColumns = 48
