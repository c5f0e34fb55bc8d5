package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/knetlabel/internal/config"
	"github.com/agenthands/knetlabel/internal/core/common"
	"github.com/agenthands/knetlabel/internal/core/labels"
	"github.com/agenthands/knetlabel/internal/core/model"
	"github.com/agenthands/knetlabel/internal/driver"
	"github.com/agenthands/knetlabel/internal/logger"
	"github.com/agenthands/knetlabel/internal/metrics"
)

var ErrConceptNotFound = errors.New("concept not found")

// Labeler computes concept labels and keeps them in the graph.
type Labeler struct {
	Driver         driver.GraphDriver
	Config         *config.Config
	Log            *logger.Logger
	RunIDGenerator func() string
	Now            func() time.Time

	tracer trace.Tracer
}

func NewLabeler(d driver.GraphDriver, cfg *config.Config, log *logger.Logger) *Labeler {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Labeler{
		Driver:         d,
		Config:         cfg,
		Log:            log.With("component", "labeler"),
		RunIDGenerator: func() string { return uuid.New().String() },
		Now:            func() time.Time { return time.Now().UTC() },
		tracer:         otel.Tracer("knetlabel/core"),
	}
}

func (l *Labeler) BuildIndices(ctx context.Context) error {
	return l.Driver.BuildIndices(ctx)
}

// Options turns the labels section of the config into resolver options.
func (l *Labeler) Options() []labels.Option {
	return []labels.Option{
		labels.WithAccessionFiltering(l.Config.Labels.FilterAccessions),
		labels.WithMaxLen(l.Config.Labels.MaxLen),
	}
}

// Label resolves a concept with the configured options plus opts.
func (l *Labeler) Label(c *model.Concept, opts ...labels.Option) (model.ConceptLabel, error) {
	res, err := labels.Resolve(c, append(l.Options(), opts...)...)
	if err != nil {
		metrics.RecordError("label")
		return model.ConceptLabel{}, err
	}
	metrics.RecordResolution(string(res.Stage), labels.IsGeneOrProtein(c.TypeID))
	return res, nil
}

// LabelAll labels concepts in parallel. Results keep the input order.
func (l *Labeler) LabelAll(ctx context.Context, concepts []model.Concept, opts ...labels.Option) ([]model.ConceptLabel, error) {
	ctx, span := l.tracer.Start(ctx, "Labeler.LabelAll", trace.WithAttributes(attribute.Int("concepts", len(concepts))))
	defer span.End()

	out := make([]model.ConceptLabel, len(concepts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(l.Config.Concurrency.Labeling, 1))
	for i := range concepts {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := l.Label(&concepts[i], opts...)
			if err != nil {
				return fmt.Errorf("concept %d (%s): %w", i, concepts[i].ID, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return out, nil
}

func (l *Labeler) SaveConcept(ctx context.Context, c model.Concept) error {
	if c.ID == "" {
		return fmt.Errorf("%w: concept id is required", labels.ErrInvalidArgument)
	}
	_, err := l.Driver.ExecuteQuery(ctx, driver.SaveConceptQuery, common.ConceptParams(c))
	if err != nil {
		return fmt.Errorf("failed to save concept %s: %w", c.ID, err)
	}
	return nil
}

func (l *Labeler) GetConcept(ctx context.Context, id string) (*model.Concept, error) {
	res, err := l.Driver.ExecuteQuery(ctx, driver.GetConceptQuery, map[string]interface{}{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get concept %s: %w", id, err)
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrConceptNotFound, id)
	}
	c, err := common.ConceptFromRecord(res.Records[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode concept %s: %w", id, err)
	}
	return &c, nil
}

// LabelConcept loads a stored concept and resolves its label, without
// writing anything back.
func (l *Labeler) LabelConcept(ctx context.Context, id string) (model.ConceptLabel, error) {
	ctx, span := l.tracer.Start(ctx, "Labeler.LabelConcept", trace.WithAttributes(attribute.String("concept.id", id)))
	defer span.End()

	c, err := l.GetConcept(ctx, id)
	if err != nil {
		span.RecordError(err)
		return model.ConceptLabel{}, err
	}
	return l.Label(c)
}

// RelabelConcept resolves the label of one stored concept and writes it back
// under a fresh run id.
func (l *Labeler) RelabelConcept(ctx context.Context, id string) (model.ConceptLabel, error) {
	ctx, span := l.tracer.Start(ctx, "Labeler.RelabelConcept", trace.WithAttributes(attribute.String("concept.id", id)))
	defer span.End()

	res, err := l.LabelConcept(ctx, id)
	if err != nil {
		return model.ConceptLabel{}, err
	}

	runID := l.RunIDGenerator()
	out, err := l.Driver.ExecuteQuery(ctx, driver.SaveConceptLabelQuery, map[string]interface{}{
		"id":          res.ConceptID,
		"label":       res.Label,
		"stage":       string(res.Stage),
		"accession":   res.Accession,
		"run_id":      runID,
		"labelled_at": l.Now().Format(time.RFC3339),
	})
	if err != nil {
		metrics.RecordError("relabel")
		span.RecordError(err)
		return model.ConceptLabel{}, fmt.Errorf("failed to save label of %s: %w", id, err)
	}
	// The concept can vanish between the read and the write.
	if len(out.Records) == 0 {
		return model.ConceptLabel{}, fmt.Errorf("%w: %s", ErrConceptNotFound, id)
	}
	metrics.RecordWritten(1)
	l.Log.Debug("concept relabelled", "id", id, "run_id", runID, "stage", res.Stage)
	return res, nil
}

func (l *Labeler) listConcepts(ctx context.Context, typeID string, skip, limit int) ([]model.Concept, error) {
	res, err := l.Driver.ExecuteQuery(ctx, driver.ListConceptsQuery, map[string]interface{}{
		"type":  typeID,
		"skip":  skip,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list concepts: %w", err)
	}
	concepts := make([]model.Concept, 0, len(res.Records))
	for _, rec := range res.Records {
		c, err := common.ConceptFromRecord(rec)
		if err != nil {
			return nil, err
		}
		concepts = append(concepts, c)
	}
	return concepts, nil
}

func (l *Labeler) saveLabels(ctx context.Context, runID string, at time.Time, results []model.ConceptLabel) (int, error) {
	rows := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		rows = append(rows, map[string]interface{}{
			"id":        r.ConceptID,
			"label":     r.Label,
			"stage":     string(r.Stage),
			"accession": r.Accession,
		})
	}
	res, err := l.Driver.ExecuteQuery(ctx, driver.SaveConceptLabelsQuery, map[string]interface{}{
		"labels":      rows,
		"run_id":      runID,
		"labelled_at": at.Format(time.RFC3339),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save labels: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, nil
	}
	return int(common.RecordInt(res.Records[0], "written")), nil
}

// Relabel pages through the stored concepts (all of them, or those of typeID),
// resolves their labels and writes them back. Every written concept is
// stamped with the same run id.
func (l *Labeler) Relabel(ctx context.Context, typeID string) (model.RelabelStats, error) {
	ctx, span := l.tracer.Start(ctx, "Labeler.Relabel", trace.WithAttributes(attribute.String("concept.type", typeID)))
	defer span.End()

	stats := model.RelabelStats{
		RunID:     l.RunIDGenerator(),
		TypeID:    typeID,
		Stages:    map[string]int{},
		StartedAt: l.Now(),
	}
	log := l.Log.With("run_id", stats.RunID, "type", typeID)
	log.Info("relabel started")

	pageSize := l.Config.Concurrency.PageSize
	if pageSize < 1 {
		pageSize = config.Default().Concurrency.PageSize
	}
	for skip := 0; ; skip += pageSize {
		page, err := l.listConcepts(ctx, typeID, skip, pageSize)
		if err != nil {
			return l.failRelabel(span, log, stats, err)
		}
		if len(page) == 0 {
			break
		}

		results, err := l.LabelAll(ctx, page)
		if err != nil {
			return l.failRelabel(span, log, stats, err)
		}
		written, err := l.saveLabels(ctx, stats.RunID, stats.StartedAt, results)
		if err != nil {
			return l.failRelabel(span, log, stats, err)
		}

		stats.Concepts += len(page)
		stats.Written += written
		for _, r := range results {
			stats.Stages[string(r.Stage)]++
		}
		metrics.RecordWritten(written)
		log.Debug("relabel page done", "skip", skip, "concepts", len(page), "written", written)

		if len(page) < pageSize {
			break
		}
	}

	stats.Duration = l.Now().Sub(stats.StartedAt)
	metrics.RecordRelabel(typeID, stats.Duration)
	span.SetAttributes(attribute.Int("concepts", stats.Concepts), attribute.Int("written", stats.Written))
	log.Info("relabel finished", "concepts", stats.Concepts, "written", stats.Written, "duration", stats.Duration)
	return stats, nil
}

func (l *Labeler) failRelabel(span trace.Span, log *logger.Logger, stats model.RelabelStats, err error) (model.RelabelStats, error) {
	metrics.RecordError("relabel")
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	log.Error("relabel failed", "concepts", stats.Concepts, "error", err)
	return stats, fmt.Errorf("relabel %s: %w", stats.RunID, err)
}
