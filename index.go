package main

import (
	"context"
	"fmt"

	meilisearch "github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// CatalogIndexer mirrors catalog records into an external search index.
type CatalogIndexer interface {
	IndexSupplements(ctx context.Context, records []Supplement) error
	Rebuild(ctx context.Context, records []Supplement) error
}

type meiliIndexer struct {
	client    meilisearch.ServiceManager
	indexName string
	dosage    *DosageNormalizer
	log       *zap.Logger
}

// newMeiliIndexer returns nil when no Meilisearch URL is configured.
func newMeiliIndexer(cfg MeiliConfig, log *zap.Logger) *meiliIndexer {
	if cfg.URL == "" {
		return nil
	}
	return &meiliIndexer{
		client:    meilisearch.New(cfg.URL, meilisearch.WithAPIKey(cfg.APIKey)),
		indexName: cfg.Index,
		dosage:    NewDosageNormalizer(),
		log:       log,
	}
}

// IndexSupplements adds or replaces documents for records.
func (m *meiliIndexer) IndexSupplements(ctx context.Context, records []Supplement) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]map[string]interface{}, 0, len(records))
	for _, s := range records {
		docs = append(docs, m.document(s))
	}
	if _, err := m.client.Index(m.indexName).AddDocumentsWithContext(ctx, docs, nil); err != nil {
		return fmt.Errorf("index error: %w", err)
	}
	return nil
}

// Rebuild drops the index and fills it with records.
func (m *meiliIndexer) Rebuild(ctx context.Context, records []Supplement) error {
	_, _ = m.client.DeleteIndexWithContext(ctx, m.indexName)
	if _, err := m.client.CreateIndexWithContext(ctx, &meilisearch.IndexConfig{Uid: m.indexName, PrimaryKey: "id"}); err != nil {
		m.log.Warn("could not create index", zap.String("index", m.indexName), zap.Error(err))
	}

	// best effort, as in the initial index creation
	settings := meilisearch.Settings{
		SearchableAttributes: []string{"name", "normalizedName", "description", "goals", "positiveEffects"},
		FilterableAttributes: []string{"category", "source", "goals", "positiveEffects", "doseUnit", "doseTier"},
		SortableAttributes:   []string{"name", "idealDoseHigh"},
	}
	_, _ = m.client.Index(m.indexName).UpdateSettingsWithContext(ctx, &settings)

	if err := m.IndexSupplements(ctx, records); err != nil {
		return err
	}
	m.log.Info("rebuilt catalog index", zap.String("index", m.indexName), zap.Int("documents", len(records)))
	return nil
}

func (m *meiliIndexer) document(s Supplement) map[string]interface{} {
	doc := map[string]interface{}{
		"id":              s.ID,
		"name":            s.Name,
		"normalizedName":  nameKey(s.Name),
		"description":     s.Description,
		"category":        string(s.Category),
		"goals":           s.Goals,
		"positiveEffects": s.PositiveEffects,
		"sideEffects":     s.SideEffects,
		"minDose":         s.MinDose,
		"idealDose":       s.IdealDose,
		"timing":          s.Timing,
		"source":          s.Source,
		"doseTier":        "any",
	}
	if dose, ok := m.dosage.ParseDose(s.IdealDose); ok {
		doc["idealDoseLow"] = dose.Low
		doc["idealDoseHigh"] = dose.High
		doc["doseUnit"] = dose.Unit
		doc["doseTier"] = m.dosage.DoseTier(dose)
	}
	return doc
}
