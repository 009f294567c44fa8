package main

// seedSupplements returns a fresh copy of the local catalog.
func seedSupplements() []Supplement {
	return []Supplement{
		// telómeros / rejuvenecimiento
		{
			ID:          "ta-65",
			Name:        "TA-65 (Extracto de Astragalus)",
			Description: "Activador de telomerasa purificado derivado de la raíz de Astragalus membranaceus.",
			Category:    CategoryRejuvenation,
			Goals:       []string{"Telómeros", "Longevidad Celular"},
			PositiveEffects: []string{
				"Activa la enzima telomerasa",
				"Alarga telómeros cortos en células T",
				"Mejora la respuesta inmune adaptativa",
				"Mejora marcadores metabólicos",
				"Protección celular avanzada",
				"Promueve reparación de ADN",
			},
			SideEffects: []string{"Seguro en dosis estudiadas", "Posible interacción con inmunosupresores"},
			MinDose:     "250 Unidades/día",
			IdealDose:   "500 - 1000 Unidades/día",
			Timing:      "En ayunas o lejos de las comidas",
			Source:      SourceLocal,
		},
		// hormonales hombres / angiogénesis
		{
			ID:          "bpc-157-oral",
			Name:        "BPC-157 (Cápsulas Arginato)",
			Description: "Péptido gástrico estable que promueve la angiogénesis (formación de nuevos vasos sanguíneos) y regeneración de tejidos nerviosos y vasculares.",
			Category:    CategoryHormonalMen,
			Goals:       []string{"Angiogénesis", "Regeneración", "Salud Vascular", "Angiogénesis nerviosa", "Erección"},
			PositiveEffects: []string{
				"Estimulación de la angiogénesis nerviosa",
				"Acelera la curación de tejidos blandos",
				"Protección del endotelio vascular",
				"Efecto citoprotector sistémico",
				"Mejora la microcirculación local",
			},
			SideEffects: []string{"Pocos efectos secundarios reportados en dosis terapéuticas", "Investigación en humanos aún emergente"},
			MinDose:     "200mcg/día",
			IdealDose:   "500mcg/día",
			Timing:      "Con o sin comida",
			Source:      SourceLocal,
		},
		{
			ID:          "icariin-60",
			Name:        "Icariina (Horny Goat Weed 60%)",
			Description: "Fitoestrógeno que actúa como inhibidor suave de la PDE5 y promueve la síntesis de óxido nítrico.",
			Category:    CategoryHormonalMen,
			Goals:       []string{"Libido", "Erección", "Testosterona", "Salud Cardiovascular"},
			PositiveEffects: []string{
				"Mejora la dureza y calidad de la erección",
				"Aumenta la expresión de eNOS (óxido nítrico)",
				"Efecto mimético de la testosterona",
				"Neuroprotección vascular",
				"Soporte a la densidad ósea",
			},
			SideEffects: []string{"Aumento de la frecuencia cardíaca", "Sed excesiva"},
			MinDose:     "250mg (extracto estandarizado)",
			IdealDose:   "500mg - 750mg/día",
			Timing:      "Mañana o antes de la actividad",
			Source:      SourceLocal,
		},
		{
			ID:          "l-citrulline-pure",
			Name:        "L-Citrulina Malato (2:1)",
			Description: "Precursor de arginina para la vasodilatación masiva.",
			Category:    CategoryPhysicalPerformance,
			Goals:       []string{"Vasodilatación", "Resistencia", "Erección", "Salud Cardiovascular"},
			PositiveEffects: []string{
				"Optimiza el flujo sanguíneo cavernoso",
				"Mejora la dureza eréctil",
				"Aumenta la resistencia al ejercicio",
				"Reduce el dolor muscular",
				"Aumenta la síntesis de óxido nítrico",
			},
			SideEffects: []string{"Malestar gástrico leve"},
			MinDose:     "3000mg/día",
			IdealDose:   "6000mg - 8000mg/día",
			Timing:      "45-60 min antes de la actividad",
			Source:      SourceLocal,
		},
		// nootrópicos
		{
			ID:          "lions-mane",
			Name:        "Melena de León (Hericium erinaceus)",
			Description: "Hongo que estimula el factor de crecimiento nervioso (NGF).",
			Category:    CategoryNootropics,
			Goals:       []string{"Memoria", "Neuroplasticidad", "Enfoque"},
			PositiveEffects: []string{
				"Mejora memoria a corto plazo",
				"Reparación neuronal activa",
				"Reduce niebla mental",
				"Protección contra neurodegeneración",
				"Mejora estado de ánimo",
			},
			SideEffects: []string{"Alergias"},
			MinDose:     "500mg/día",
			IdealDose:   "1000mg - 3000mg/día",
			Timing:      "Mañana",
			Source:      SourceLocal,
		},
		// metabolismo
		{
			ID:          "berberine-hcl",
			Name:        "Berberina HCl",
			Description: "Activador de AMPK y optimizador de glucosa.",
			Category:    CategoryMetabolism,
			Goals:       []string{"Sensibilidad Insulina", "Activación AMPK", "Quema de Grasa"},
			PositiveEffects: []string{
				"Control glucémico potente",
				"Optimización lipídica (colesterol)",
				"Pérdida de grasa visceral",
				"Activación de vías de longevidad",
				"Salud intestinal",
			},
			SideEffects: []string{"Estreñimiento"},
			MinDose:     "500mg/día",
			IdealDose:   "1500mg/día",
			Timing:      "Antes de comidas ricas en carbohidratos",
			Source:      SourceLocal,
		},
	}
}
