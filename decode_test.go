package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSupplements_FullRecord(t *testing.T) {
	payload := `{"supplements":[{
		"id": "ashwagandha-ksm66",
		"name": "Ashwagandha KSM-66",
		"description": "Adaptógeno que reduce el cortisol.",
		"category": "nootropicos",
		"goals": ["Adaptógenos", "Estado de Ánimo"],
		"positiveEffects": ["Reduce el cortisol"],
		"sideEffects": ["Somnolencia"],
		"minDose": "300mg/día",
		"idealDose": "600mg/día",
		"timing": "Noche",
		"source": "local"
	}]}`

	got, err := decodeSupplements(payload)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Supplement{
		ID:              "ashwagandha-ksm66",
		Name:            "Ashwagandha KSM-66",
		Description:     "Adaptógeno que reduce el cortisol.",
		Category:        CategoryNootropics,
		Goals:           []string{"Adaptógenos", "Estado de Ánimo"},
		PositiveEffects: []string{"Reduce el cortisol"},
		SideEffects:     []string{"Somnolencia"},
		MinDose:         "300mg/día",
		IdealDose:       "600mg/día",
		Timing:          "Noche",
		Source:          SourceAI,
	}, got[0])
}

func TestDecodeSupplements_Defaults(t *testing.T) {
	payload := `{"supplements":[{"name":"Rhodiola","category":"Adaptogens","goals":"Energía","positiveEffects":[1, "", "Menos fatiga"]}]}`

	got, err := decodeSupplements(payload)
	require.NoError(t, err)
	require.Len(t, got, 1)
	s := got[0]
	assert.True(t, strings.HasPrefix(s.ID, "ai-"))
	assert.Equal(t, DefaultCategory, s.Category)
	assert.Equal(t, []string{"Energía"}, s.Goals)
	assert.Equal(t, []string{"Menos fatiga"}, s.PositiveEffects)
	assert.NotNil(t, s.SideEffects)
	assert.Empty(t, s.SideEffects)
	assert.Equal(t, notSpecified, s.Description)
	assert.Equal(t, notSpecified, s.MinDose)
	assert.Equal(t, notSpecified, s.IdealDose)
	assert.Empty(t, s.Timing)
	assert.Equal(t, SourceAI, s.Source)
}

func TestDecodeSupplements_KeepsNamelessForMerge(t *testing.T) {
	got, err := decodeSupplements(`{"supplements":[{"description":"sin nombre"}, "texto suelto", {"name":"Zinc"}]}`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Empty(t, got[0].Name)

	c := catalogWith()
	added := c.Merge(got)
	require.Len(t, added, 1)
	assert.Equal(t, "Zinc", added[0].Name)
}

func TestDecodeSupplements_Shapes(t *testing.T) {
	got, err := decodeSupplements(`{"other": true}`)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = decodeSupplements("```json\n{\"supplements\":[{\"name\":\"Magnesio\"}]}\n```")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Magnesio", got[0].Name)

	_, err = decodeSupplements(`not json`)
	assert.Error(t, err)
	_, err = decodeSupplements(`[{"name":"x"}]`)
	assert.Error(t, err)
	_, err = decodeSupplements(``)
	assert.Error(t, err)
}

func TestDecodeStack(t *testing.T) {
	payload := `{
		"title": "Stack Vascular",
		"description": "Óxido nítrico por dos vías.",
		"items": [
			{"supplement": "L-Citrulina", "dosage": "6g", "timing": "Pre-entreno", "reason": "Precursor de arginina"},
			{"supplement": "Icariina", "dosage": "500mg"}
		],
		"precautions": "Evitar con nitratos."
	}`

	got, err := decodeStack(payload)
	require.NoError(t, err)
	assert.Equal(t, "Stack Vascular", got.Title)
	assert.Equal(t, "Óxido nítrico por dos vías.", got.Description)
	assert.Equal(t, "Evitar con nitratos.", got.Precautions)
	require.Len(t, got.Items, 2)
	assert.Equal(t, StackItem{Supplement: "Icariina", Dosage: "500mg", Timing: defaultStackTiming, Reason: notSpecified}, got.Items[1])
}

func TestDecodeStack_DefaultPrecautions(t *testing.T) {
	got, err := decodeStack(`{"title":"Foco","items":[]}`)
	require.NoError(t, err)
	assert.Equal(t, defaultPrecautions, got.Precautions)
	assert.Empty(t, got.Items)
}

func TestDecodeStack_StructuralErrors(t *testing.T) {
	tests := map[string]string{
		"not json":      `{"title":`,
		"not an object": `["a"]`,
		"no title":      `{"items":[]}`,
		"blank title":   `{"title":"  ","items":[]}`,
		"no items":      `{"title":"Foco"}`,
		"items object":  `{"title":"Foco","items":{"supplement":"x"}}`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decodeStack(payload)
			assert.Error(t, err)
		})
	}
}
