package main

import (
	"github.com/google/uuid"
)

// Provenance of a supplement record
const (
	SourceLocal = "local"
	SourceAI    = "ai"
)

// Supplement describes one substance in the catalog
type Supplement struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Category        CategoryID `json:"category"`
	Goals           []string   `json:"goals"`
	PositiveEffects []string   `json:"positiveEffects"`
	SideEffects     []string   `json:"sideEffects"`
	MinDose         string     `json:"minDose"`
	IdealDose       string     `json:"idealDose"`
	Timing          string     `json:"timing,omitempty"`
	Source          string     `json:"source"`
}

// Catalog is the ordered in-memory supplement collection. Local seed records
// come first, AI records follow in arrival order. It is not safe for
// concurrent use; App serializes access.
type Catalog struct {
	records []Supplement
	ids     map[string]struct{}
}

// NewCatalog returns a catalog holding the seed records.
func NewCatalog() *Catalog {
	c := &Catalog{}
	c.Reset()
	return c
}

// Records returns a copy of the catalog in insertion order.
func (c *Catalog) Records() []Supplement {
	return append([]Supplement(nil), c.records...)
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Reset discards every AI record and restores the seed list.
func (c *Catalog) Reset() {
	c.records = seedSupplements()
	c.ids = make(map[string]struct{}, len(c.records))
	for _, s := range c.records {
		c.ids[s.ID] = struct{}{}
	}
}

// Merge appends the candidates whose normalized name is not yet present and
// returns the records actually added. Nameless candidates are dropped, and
// within one batch the first occurrence of a name wins.
func (c *Catalog) Merge(batch []Supplement) []Supplement {
	existing := make(map[string]struct{}, len(c.records)+len(batch))
	for _, s := range c.records {
		existing[nameKey(s.Name)] = struct{}{}
	}

	var added []Supplement
	for _, cand := range batch {
		key := nameKey(cand.Name)
		if key == "" {
			continue
		}
		if _, dup := existing[key]; dup {
			continue
		}
		existing[key] = struct{}{}

		// names decide identity, but ids still have to stay unique
		if _, taken := c.ids[cand.ID]; taken || cand.ID == "" {
			cand.ID = newRecordID()
		}
		c.ids[cand.ID] = struct{}{}
		added = append(added, cand)
	}
	c.records = append(c.records, added...)
	return added
}

func newRecordID() string {
	return "ai-" + uuid.NewString()
}
