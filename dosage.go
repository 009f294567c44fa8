package main

import (
	"regexp"
	"strconv"
	"strings"
)

// Dose is a parsed dose string such as "500mg - 750mg/día"
type Dose struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
	Unit string  `json:"unit"`
}

// DosageNormalizer parses free-text doses into values in a standard unit
type DosageNormalizer struct {
	unitConversions map[string]float64
	unitAliases     map[string]string
	rangePattern    *regexp.Regexp
	singlePattern   *regexp.Regexp
}

const unitAlternation = `mg|mcg|μg|µg|g|gr|kg|iu|ui|ie|unidades|ml|l`

func NewDosageNormalizer() *DosageNormalizer {
	return &DosageNormalizer{
		unitConversions: map[string]float64{
			// weight to mg
			"mg":  1.0,
			"g":   1000.0,
			"mcg": 0.001,
			"kg":  1000000.0,

			// no conversion
			"iu": 1.0,
			"ml": 1.0,
			"l":  1000.0,
		},
		unitAliases:   buildDosageUnitMap(),
		rangePattern:  regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(` + unitAlternation + `)?\s*(?:-|–|a)\s*(\d+(?:[.,]\d+)?)\s*(` + unitAlternation + `)\b`),
		singlePattern: regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(` + unitAlternation + `)\b`),
	}
}

// buildDosageUnitMap maps unit spellings found in dose strings to a short form
func buildDosageUnitMap() map[string]string {
	return map[string]string{
		"mg":  "mg",
		"g":   "g",
		"gr":  "g",
		"mcg": "mcg",
		"μg":  "mcg",
		"µg":  "mcg",
		"kg":  "kg",

		// international / activity units
		"iu":       "iu",
		"ui":       "iu",
		"ie":       "iu",
		"unidades": "iu",

		"ml": "ml",
		"l":  "l",
	}
}

// ParseDose extracts a dose range from text. "500 - 1000 Unidades/día" gives
// 500..1000 iu; a single value gives Low == High. ok is false when no value
// with a unit is present.
func (d *DosageNormalizer) ParseDose(text string) (Dose, bool) {
	lower := strings.ToLower(text)

	if m := d.rangePattern.FindStringSubmatch(lower); len(m) == 5 {
		low, err1 := parseAmount(m[1])
		high, err2 := parseAmount(m[3])
		if err1 == nil && err2 == nil {
			unit := d.normalizeUnit(m[4])
			lowUnit := unit
			if m[2] != "" {
				lowUnit = d.normalizeUnit(m[2])
			}
			lv, lu := d.normalize(low, lowUnit)
			hv, hu := d.normalize(high, unit)
			if lu == hu {
				return Dose{Low: lv, High: hv, Unit: hu}, true
			}
		}
	}

	if m := d.singlePattern.FindStringSubmatch(lower); len(m) == 3 {
		value, err := parseAmount(m[1])
		if err != nil {
			return Dose{}, false
		}
		v, u := d.normalize(value, d.normalizeUnit(m[2]))
		return Dose{Low: v, High: v, Unit: u}, true
	}
	return Dose{}, false
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func (d *DosageNormalizer) normalizeUnit(unit string) string {
	if normalized, ok := d.unitAliases[unit]; ok {
		return normalized
	}
	return unit
}

// normalize converts weights to mg; iu and volumes keep their own scale
func (d *DosageNormalizer) normalize(value float64, unit string) (float64, string) {
	switch unit {
	case "iu":
		return value, "iu"
	case "ml", "l":
		return value * d.unitConversions[unit], "ml"
	}
	if conversion, ok := d.unitConversions[unit]; ok {
		return value * conversion, "mg"
	}
	return value, unit
}

// DoseTier buckets a dose for faceting
func (d *DosageNormalizer) DoseTier(dose Dose) string {
	if dose.High == 0 {
		return "any"
	}
	v := dose.High
	switch dose.Unit {
	case "mg":
		switch {
		case v <= 1:
			return "micro-mg"
		case v <= 100:
			return "low-mg"
		case v <= 500:
			return "standard-mg"
		case v <= 1500:
			return "high-mg"
		default:
			return "ultra-mg"
		}
	case "iu":
		switch {
		case v <= 500:
			return "low-iu"
		case v <= 2000:
			return "standard-iu"
		case v <= 5000:
			return "high-iu"
		default:
			return "ultra-iu"
		}
	}
	return "other-" + dose.Unit
}
