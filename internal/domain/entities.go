package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxStatBar is the value at which stat bars are drawn full.
const MaxStatBar = 100

// Pokemon is the full detail record for one Pokémon as served by /pokemon/{id}.
// Records are immutable once fetched; share pointers, never mutate them.
type Pokemon struct {
	ID             int      // National dex number
	Name           string   // Lowercase API name ("pikachu")
	BaseExperience int      // Experience yielded when defeated
	Height         int      // Decimetres
	Weight         int      // Hectograms
	Sprites        Sprites  // Image references
	Types          []string // Type names in slot order
	Abilities      []string // Ability names
	Stats          []Stat   // Base stats in API order
	Moves          []string // Learnable move names
}

// Sprites holds the image URLs for a Pokémon.
type Sprites struct {
	Front   string // Small front sprite
	Artwork string // Official artwork (may be empty)
}

// Stat is a single named base stat.
type Stat struct {
	Name string
	Base int
}

// SpriteURL returns the official artwork, falling back to the front sprite
func (p *Pokemon) SpriteURL() string {
	if p.Sprites.Artwork != "" {
		return p.Sprites.Artwork
	}
	return p.Sprites.Front
}

// DisplayName returns the name upper-cased for card headers
func (p *Pokemon) DisplayName() string {
	return strings.ToUpper(p.Name)
}

// TitleName returns the name with its first letter capitalised for list rows
func (p *Pokemon) TitleName() string {
	return Capitalize(p.Name)
}

// Key returns the canonical identifier for this record (its dex number)
func (p *Pokemon) Key() string {
	return strconv.Itoa(p.ID)
}

// HeightMeters returns the height converted from decimetres
func (p *Pokemon) HeightMeters() float64 {
	return float64(p.Height) / 10
}

// WeightKilograms returns the weight converted from hectograms
func (p *Pokemon) WeightKilograms() float64 {
	return float64(p.Weight) / 10
}

// StatTotal returns the sum of all base stats
func (p *Pokemon) StatTotal() int {
	total := 0
	for _, s := range p.Stats {
		total += s.Base
	}
	return total
}

// Clamped returns the stat value limited to MaxStatBar for bar rendering
func (s Stat) Clamped() int {
	if s.Base > MaxStatBar {
		return MaxStatBar
	}
	if s.Base < 0 {
		return 0
	}
	return s.Base
}

// Bar renders the stat as a filled bar of the given width
func (s Stat) Bar(width int) string {
	if width <= 0 {
		return ""
	}
	filled := s.Clamped() * width / MaxStatBar
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// SpeciesRef is one entry of the species index (/pokemon?limit=N).
type SpeciesRef struct {
	ID   string // Dex number derived from the URL
	Name string
	URL  string
}

// Label returns "#025 pikachu" style text for list rows
func (r SpeciesRef) Label() string {
	if n, err := strconv.Atoi(r.ID); err == nil {
		return fmt.Sprintf("#%03d %s", n, r.Name)
	}
	return r.Name
}

// Capitalize upper-cases the first letter of s
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NormalizeID trims and lower-cases an identifier so "Pikachu " and
// "pikachu" name the same entity.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
