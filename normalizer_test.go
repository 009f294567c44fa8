package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Café", "cafe"},
		{"cafe", "cafe"},
		{"Función", "funcion"},
		{"ESTADO DE ÁNIMO", "estado de animo"},
		{"Señal", "senal"},
		{"BPC-157", "bpc-157"},
		{"Angiogénesis nerviosa", "angiogenesis nerviosa"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Café", "Función", "Telómeros", "NAD+ Boosters", "Glutatión", "Über", "  mixed Ñandú  "}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
	assert.Equal(t, Normalize("Café"), Normalize("cafe"))
}

func TestNormalize_DoesNotTrim(t *testing.T) {
	assert.Equal(t, "bpc-157 ", Normalize("BPC-157 "))
	assert.Equal(t, "bpc-157", nameKey("  BPC-157 "))
}
