package domain

import (
	"fmt"
	"strconv"
)

// Trainer is a named trainer with a fixed roster of Pokémon names.
type Trainer struct {
	Name   string   `yaml:"name"`
	Title  string   `yaml:"title"`
	Roster []string `yaml:"roster"`
}

// GymLeader is one entry of the badge collection.
type GymLeader struct {
	ID        int      `yaml:"id"`
	Name      string   `yaml:"name"`
	Title     string   `yaml:"title"`
	City      string   `yaml:"city"`
	Specialty string   `yaml:"specialty"`
	Pokemon   []string `yaml:"pokemon"`
	Badge     string   `yaml:"badge"`
	Color     string   `yaml:"color"`
}

// LightColor returns the leader colour as a 20% alpha rgba tint.
// Anything that is not a #rrggbb string is returned as is, or white when empty.
func (g GymLeader) LightColor() string {
	c := g.Color
	if len(c) == 7 && c[0] == '#' {
		r, errR := strconv.ParseUint(c[1:3], 16, 8)
		gr, errG := strconv.ParseUint(c[3:5], 16, 8)
		b, errB := strconv.ParseUint(c[5:7], 16, 8)
		if errR == nil && errG == nil && errB == nil {
			return fmt.Sprintf("rgba(%d, %d, %d, 0.2)", r, gr, b)
		}
	}
	if c == "" {
		return "rgba(255,255,255,0.9)"
	}
	return c
}

// PokeCenter is a Pokémon Center location for the hospital locator.
type PokeCenter struct {
	ID        int     `yaml:"id"`
	Title     string  `yaml:"title"`
	Address   string  `yaml:"address"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Image     string  `yaml:"image"`
}

// typeColors is the palette used for type badges
var typeColors = map[string]string{
	"normal":   "#A8A878",
	"fire":     "#F08030",
	"water":    "#6890F0",
	"grass":    "#78C850",
	"electric": "#F8D030",
	"ice":      "#98D8D8",
	"fighting": "#C03028",
	"poison":   "#A040A0",
	"ground":   "#E0C068",
	"flying":   "#A890F0",
	"psychic":  "#F85888",
	"bug":      "#A8B820",
	"rock":     "#B8A038",
	"ghost":    "#705898",
	"dragon":   "#7038F8",
	"dark":     "#705848",
	"steel":    "#B8B8D0",
	"fairy":    "#EE99AC",
}

// DefaultTypeColor is used for types missing from the palette
const DefaultTypeColor = "#68A090"

// TypeColor returns the badge colour for a type name
func TypeColor(typeName string) string {
	if c, ok := typeColors[typeName]; ok {
		return c
	}
	return DefaultTypeColor
}
