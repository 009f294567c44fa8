package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Placeholders used when the model leaves a field out
const (
	notSpecified       = "No especificado"
	defaultStackTiming = "Según indicación"
	defaultPrecautions = "Consulta a un profesional de la salud antes de iniciar cualquier suplementación, especialmente si tomas medicación."
	defaultSourceTitle = "Fuente Científica"
	missingSourceURI   = "#"
)

// Source is a grounding citation attached to an AI answer
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// StackItem is one line of a generated protocol
type StackItem struct {
	Supplement string `json:"supplement"`
	Dosage     string `json:"dosage"`
	Timing     string `json:"timing"`
	Reason     string `json:"reason"`
}

// GeneratedStack is a multi-item supplement protocol for a goal
type GeneratedStack struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Items       []StackItem `json:"items"`
	Precautions string      `json:"precautions"`
}

var (
	errNotObject     = errors.New("payload is not a JSON object")
	errMissingTitle  = errors.New("stack has no title")
	errItemsNotAList = errors.New("stack items missing or not a list")
)

// decodeSupplements parses a search payload of the form {"supplements": [...]}.
// Each candidate is coerced into a Supplement; a missing or non-list
// "supplements" field is an empty batch, not an error.
func decodeSupplements(payload string) ([]Supplement, error) {
	obj, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}
	raw, ok := obj["supplements"].([]interface{})
	if !ok {
		return []Supplement{}, nil
	}
	out := make([]Supplement, 0, len(raw))
	for _, r := range raw {
		m, ok := r.(map[string]interface{})
		if !ok {
			// no fields means no name; Merge would drop it anyway
			continue
		}
		out = append(out, coerceSupplement(m))
	}
	return out, nil
}

func coerceSupplement(m map[string]interface{}) Supplement {
	category, ok := ParseCategory(getString(m, "category"))
	if !ok {
		category = DefaultCategory
	}
	id := strings.TrimSpace(getString(m, "id"))
	if id == "" {
		id = newRecordID()
	}
	return Supplement{
		ID:              id,
		Name:            getString(m, "name"),
		Description:     stringOr(m, "description", notSpecified),
		Category:        category,
		Goals:           getStringList(m, "goals"),
		PositiveEffects: getStringList(m, "positiveEffects"),
		SideEffects:     getStringList(m, "sideEffects"),
		MinDose:         stringOr(m, "minDose", notSpecified),
		IdealDose:       stringOr(m, "idealDose", notSpecified),
		Timing:          strings.TrimSpace(getString(m, "timing")),
		Source:          SourceAI,
	}
}

// decodeStack parses a stack payload. Unlike search payloads a structurally
// invalid stack is an error.
func decodeStack(payload string) (GeneratedStack, error) {
	obj, err := decodeObject(payload)
	if err != nil {
		return GeneratedStack{}, err
	}
	title := strings.TrimSpace(getString(obj, "title"))
	if title == "" {
		return GeneratedStack{}, errMissingTitle
	}
	rawItems, ok := obj["items"].([]interface{})
	if !ok {
		return GeneratedStack{}, errItemsNotAList
	}

	items := make([]StackItem, 0, len(rawItems))
	for _, r := range rawItems {
		m, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		items = append(items, StackItem{
			Supplement: stringOr(m, "supplement", notSpecified),
			Dosage:     stringOr(m, "dosage", notSpecified),
			Timing:     stringOr(m, "timing", defaultStackTiming),
			Reason:     stringOr(m, "reason", notSpecified),
		})
	}
	return GeneratedStack{
		Title:       title,
		Description: getString(obj, "description"),
		Items:       items,
		Precautions: stringOr(obj, "precautions", defaultPrecautions),
	}, nil
}

func decodeObject(payload string) (map[string]interface{}, error) {
	payload = stripCodeFence(payload)
	if payload == "" {
		return nil, errNotObject
	}
	var v interface{}
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

// stripCodeFence removes a ```json fence some models wrap around JSON output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		switch t := v.(type) {
		case string:
			return t
		case float64, bool:
			return fmt.Sprint(t)
		}
	}
	return ""
}

func stringOr(m map[string]interface{}, key, fallback string) string {
	if s := strings.TrimSpace(getString(m, key)); s != "" {
		return s
	}
	return fallback
}

// getStringList reads a list of strings. A bare string becomes a one-element
// list and empty or non-string elements are skipped.
func getStringList(m map[string]interface{}, key string) []string {
	out := []string{}
	switch v := m[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []interface{}:
		for _, e := range v {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
