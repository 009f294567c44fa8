package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// SearchResult is what a grounded search contributes: candidate records and
// the web sources that back them.
type SearchResult struct {
	Supplements []Supplement `json:"supplements"`
	Sources     []Source     `json:"sources"`
}

// Searcher finds supplements for a free-text query. Failures degrade to an
// empty result.
type Searcher interface {
	SearchByQuery(ctx context.Context, query string) SearchResult
}

// StackGenerator designs a protocol for a goal. A blank goal yields nil, nil.
type StackGenerator interface {
	GenerateStack(ctx context.Context, goal string) (*GeneratedStack, error)
}

// GenerationError is returned when a stack cannot be produced. Message is
// safe to show to the user.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

const stackFailureMessage = "No se pudo generar la mezcla. Intenta de nuevo."

// contentGenerator is the slice of *genai.Models the adapter needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAdapter implements Searcher and StackGenerator on top of the Gemini
// API with Google Search grounding.
type GeminiAdapter struct {
	models      contentGenerator
	initErr     error
	searchModel string
	stackModel  string
	log         *zap.Logger
	metrics     *Metrics
}

// NewGeminiAdapter builds the adapter. A missing key or client error does not
// fail construction; every later call reports it through its failure path.
func NewGeminiAdapter(ctx context.Context, cfg AIConfig, log *zap.Logger, metrics *Metrics) *GeminiAdapter {
	a := &GeminiAdapter{
		searchModel: cfg.SearchModel,
		stackModel:  cfg.StackModel,
		log:         log,
		metrics:     metrics,
	}
	if cfg.APIKey == "" {
		a.initErr = errors.New("no Gemini API key configured")
		log.Warn("Gemini API key missing, AI search and stack generation will fail")
		return a
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})
	if err != nil {
		a.initErr = fmt.Errorf("failed to create genai client: %w", err)
		log.Warn("Gemini client unavailable", zap.Error(err))
		return a
	}
	a.models = client.Models
	return a
}

// SearchByQuery asks the model to research query on the web and return
// supplement records. It never returns an error: failures are logged and an
// empty result comes back.
func (a *GeminiAdapter) SearchByQuery(ctx context.Context, query string) SearchResult {
	empty := SearchResult{Supplements: []Supplement{}, Sources: []Source{}}
	query = strings.TrimSpace(query)
	if query == "" {
		return empty
	}

	resp, err := a.generate(ctx, a.searchModel, searchPrompt(query), searchSchema)
	if err != nil {
		a.log.Warn("AI search failed", zap.String("query", query), zap.Error(err))
		a.metrics.observeAI("search", "error")
		return empty
	}

	supplements, err := decodeSupplements(resp.Text())
	if err != nil {
		a.log.Warn("AI search returned an unreadable payload", zap.String("query", query), zap.Error(err))
		a.metrics.observeAI("search", "invalid")
		return empty
	}
	a.metrics.observeAI("search", "ok")
	return SearchResult{Supplements: supplements, Sources: groundingSources(resp)}
}

// GenerateStack asks the model for a synergistic protocol for goal.
func (a *GeminiAdapter) GenerateStack(ctx context.Context, goal string) (*GeneratedStack, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, nil
	}

	resp, err := a.generate(ctx, a.stackModel, stackPrompt(goal), stackSchema)
	if err != nil {
		a.metrics.observeAI("stack", "error")
		return nil, &GenerationError{Message: stackFailureMessage, Err: err}
	}
	stack, err := decodeStack(resp.Text())
	if err != nil {
		a.metrics.observeAI("stack", "invalid")
		return nil, &GenerationError{Message: stackFailureMessage, Err: err}
	}
	a.metrics.observeAI("stack", "ok")
	return &stack, nil
}

func (a *GeminiAdapter) generate(ctx context.Context, model, prompt string, schema *genai.Schema) (*genai.GenerateContentResponse, error) {
	if a.initErr != nil {
		return nil, a.initErr
	}
	config := &genai.GenerateContentConfig{
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	resp, err := a.models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errors.New("no candidates returned")
	}
	return resp, nil
}

// groundingSources extracts the web citations of the first candidate. Missing
// titles get a placeholder and chunks without a URI are skipped.
func groundingSources(resp *genai.GenerateContentResponse) []Source {
	sources := []Source{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return sources
	}
	for _, chunk := range meta.GroundingChunks {
		src := Source{Title: defaultSourceTitle, URI: missingSourceURI}
		if chunk != nil && chunk.Web != nil {
			if chunk.Web.Title != "" {
				src.Title = chunk.Web.Title
			}
			if chunk.Web.URI != "" {
				src.URI = chunk.Web.URI
			}
		}
		if src.URI == missingSourceURI {
			continue
		}
		sources = append(sources, src)
	}
	return sources
}

func searchPrompt(query string) string {
	var ids []string
	for _, c := range categories {
		ids = append(ids, fmt.Sprintf("%q", c.ID))
	}
	return fmt.Sprintf(`Actúa como un farmacólogo clínico. Investiga en la web y en la literatura científica sobre: %q.

Encuentra los suplementos con evidencia para este objetivo, incluidos hallazgos recientes.
Para cada uno indica dosis mínima, dosis ideal según estudios, efectos positivos, efectos secundarios y el mejor momento de toma.

Responde solo con JSON con esta forma:
{
  "supplements": [
    {
      "id": "slug-unico",
      "name": "Nombre del suplemento",
      "description": "Descripción con base científica",
      "category": %s,
      "goals": ["objetivo"],
      "positiveEffects": ["efecto"],
      "sideEffects": ["efecto"],
      "minDose": "X mg",
      "idealDose": "Y mg",
      "timing": "mañana/noche/con comida"
    }
  ]
}`, query, strings.Join(ids, " | "))
}

func stackPrompt(goal string) string {
	return fmt.Sprintf(`Diseña una mezcla (stack) de suplementos basada en sinergia farmacológica para el objetivo: %q.
Revisa interacciones en la web para que la mezcla sea segura y eficaz.

Responde solo con JSON con esta forma:
{
  "title": "Nombre del stack",
  "description": "Explicación científica de la sinergia",
  "items": [
    {"supplement": "Nombre", "dosage": "Dosis", "timing": "Toma", "reason": "Razón científica"}
  ],
  "precautions": "Advertencias importantes"
}`, goal)
}

func stringSchema() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func stringListSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: stringSchema()}
}

var searchSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"supplements": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":              stringSchema(),
					"name":            stringSchema(),
					"description":     stringSchema(),
					"category":        stringSchema(),
					"goals":           stringListSchema(),
					"positiveEffects": stringListSchema(),
					"sideEffects":     stringListSchema(),
					"minDose":         stringSchema(),
					"idealDose":       stringSchema(),
					"timing":          stringSchema(),
				},
			},
		},
	},
}

var stackSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       stringSchema(),
		"description": stringSchema(),
		"items": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"supplement": stringSchema(),
					"dosage":     stringSchema(),
					"timing":     stringSchema(),
					"reason":     stringSchema(),
				},
			},
		},
		"precautions": stringSchema(),
	},
}
