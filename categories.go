package main

import "strings"

// CategoryID is one of the eight fixed biological-system tags.
type CategoryID string

const (
	CategoryRejuvenation        CategoryID = "rejuvenecimiento"
	CategoryHormonalMen         CategoryID = "hormonales-hombres"
	CategoryHormonalWomen       CategoryID = "hormonales-mujeres"
	CategoryAntioxidants        CategoryID = "antioxidantes"
	CategoryNootropics          CategoryID = "nootropicos"
	CategoryPhysicalPerformance CategoryID = "desempeno-fisico"
	CategoryImmunity            CategoryID = "inmunidad"
	CategoryMetabolism          CategoryID = "metabolismo"
)

// DefaultCategory is assigned to AI records whose category is missing or unknown.
const DefaultCategory = CategoryRejuvenation

// Category is static display metadata for a CategoryID
type Category struct {
	ID            CategoryID `json:"id"`
	Name          string     `json:"name"`
	Icon          string     `json:"icon"`
	Color         string     `json:"color"`
	Subcategories []string   `json:"subcategories"`
}

var categories = []Category{
	{
		ID:            CategoryRejuvenation,
		Name:          "Rejuvenecimiento",
		Icon:          "fa-seedling",
		Color:         "bg-emerald-100 text-emerald-700",
		Subcategories: []string{"Longevidad Celular", "Senolíticos", "NAD+ Boosters", "Telómeros", "Colágeno"},
	},
	{
		ID:            CategoryHormonalMen,
		Name:          "Hormonales Hombres",
		Icon:          "fa-mars",
		Color:         "bg-blue-100 text-blue-700",
		Subcategories: []string{"Testosterona", "Optimización de SHBG", "Libido", "Salud de Próstata", "Angiogénesis"},
	},
	{
		ID:            CategoryHormonalWomen,
		Name:          "Hormonales Mujeres",
		Icon:          "fa-venus",
		Color:         "bg-pink-100 text-pink-700",
		Subcategories: []string{"SOP/Inositol", "Menopausia", "Equilibrio Estrogénico", "Ciclo Menstrual"},
	},
	{
		ID:            CategoryAntioxidants,
		Name:          "Antioxidantes",
		Icon:          "fa-shield-halved",
		Color:         "bg-orange-100 text-orange-700",
		Subcategories: []string{"Mitocondrial", "Glutatión", "Protección Cardiovascular"},
	},
	{
		ID:            CategoryNootropics,
		Name:          "Nootrópicos",
		Icon:          "fa-brain",
		Color:         "bg-indigo-100 text-indigo-700",
		Subcategories: []string{"Enfoque", "Neuroplasticidad", "Adaptógenos", "Estado de Ánimo", "Memoria"},
	},
	{
		ID:            CategoryPhysicalPerformance,
		Name:          "Desempeño Físico",
		Icon:          "fa-dumbbell",
		Color:         "bg-red-100 text-red-700",
		Subcategories: []string{"Fuerza", "Hipertrofia", "Resistencia", "Vasodilatación"},
	},
	{
		ID:            CategoryImmunity,
		Name:          "Inmunidad",
		Icon:          "fa-virus-slash",
		Color:         "bg-teal-100 text-teal-700",
		Subcategories: []string{"Antiviral", "Inmunomodulación", "Salud de Barrera"},
	},
	{
		ID:            CategoryMetabolism,
		Name:          "Metabolismo",
		Icon:          "fa-bolt",
		Color:         "bg-amber-100 text-amber-700",
		Subcategories: []string{"Sensibilidad Insulina", "Activación AMPK", "Quema de Grasa"},
	},
}

// Categories returns the category table in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Subcategories = append([]string(nil), c.Subcategories...)
		out[i] = c
	}
	return out
}

// CategoryByID returns the metadata for id.
func CategoryByID(id CategoryID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// categoryAliases maps normalized ids and display names to a CategoryID
var categoryAliases = buildCategoryAliases()

func buildCategoryAliases() map[string]CategoryID {
	aliases := map[string]CategoryID{
		// English labels the model sometimes answers with
		"rejuvenation":         CategoryRejuvenation,
		"longevity":            CategoryRejuvenation,
		"hormonal-men":         CategoryHormonalMen,
		"hormonal-women":       CategoryHormonalWomen,
		"antioxidants":         CategoryAntioxidants,
		"nootropics":           CategoryNootropics,
		"physical-performance": CategoryPhysicalPerformance,
		"immunity":             CategoryImmunity,
		"metabolism":           CategoryMetabolism,
	}
	for _, c := range categories {
		aliases[Normalize(string(c.ID))] = c.ID
		aliases[Normalize(c.Name)] = c.ID
	}
	return aliases
}

// ParseCategory resolves a free-form category label to a CategoryID.
func ParseCategory(s string) (CategoryID, bool) {
	id, ok := categoryAliases[Normalize(strings.TrimSpace(s))]
	return id, ok
}
