// Package catalog holds the static data shipped with the binary: trainer
// rosters, the Kanto gym leaders and the Pokémon Center locations.
package catalog

import (
	"embed"
	"fmt"
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmcdole/pokedex/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

const earthRadiusKm = 6371.0

type trainersFile struct {
	Trainers []domain.Trainer `yaml:"trainers"`
}

type gymsFile struct {
	Leaders []domain.GymLeader `yaml:"leaders"`
}

type centersFile struct {
	Centers []domain.PokeCenter `yaml:"centers"`
}

// Catalog is the parsed static data. It is read-only after Load.
type Catalog struct {
	trainers map[string]domain.Trainer
	leaders  []domain.GymLeader
	centers  []domain.PokeCenter
}

// Load parses the embedded data files
func Load() (*Catalog, error) {
	var tf trainersFile
	if err := decode("data/trainers.yaml", &tf); err != nil {
		return nil, err
	}
	var gf gymsFile
	if err := decode("data/gyms.yaml", &gf); err != nil {
		return nil, err
	}
	var cf centersFile
	if err := decode("data/centers.yaml", &cf); err != nil {
		return nil, err
	}

	c := &Catalog{
		trainers: make(map[string]domain.Trainer, len(tf.Trainers)),
		leaders:  gf.Leaders,
		centers:  cf.Centers,
	}
	for _, t := range tf.Trainers {
		c.trainers[strings.ToLower(t.Name)] = t
	}
	sort.SliceStable(c.leaders, func(i, j int) bool {
		return c.leaders[i].ID < c.leaders[j].ID
	})
	return c, nil
}

// MustLoad is Load for callers that cannot recover from broken embedded data
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func decode(name string, dest interface{}) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Trainer returns the named trainer
func (c *Catalog) Trainer(name string) (domain.Trainer, error) {
	t, ok := c.trainers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain.Trainer{}, fmt.Errorf("%w: %s", domain.ErrUnknownTrainer, name)
	}
	t.Roster = append([]string(nil), t.Roster...)
	return t, nil
}

// GymLeaders returns the gym leaders in badge order
func (c *Catalog) GymLeaders() []domain.GymLeader {
	out := make([]domain.GymLeader, len(c.leaders))
	copy(out, c.leaders)
	return out
}

// GymLeader returns the leader with the given id
func (c *Catalog) GymLeader(id int) (domain.GymLeader, error) {
	for _, l := range c.leaders {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.GymLeader{}, fmt.Errorf("%w: %d", domain.ErrUnknownGymLeader, id)
}

// Centers returns the Pokémon Centers in file order
func (c *Catalog) Centers() []domain.PokeCenter {
	out := make([]domain.PokeCenter, len(c.centers))
	copy(out, c.centers)
	return out
}

// CenterDistance pairs a center with its distance from a point
type CenterDistance struct {
	Center     domain.PokeCenter
	DistanceKm float64
}

// NearestCenters returns every center sorted by great-circle distance from
// lat/lon, nearest first
func (c *Catalog) NearestCenters(lat, lon float64) []CenterDistance {
	out := make([]CenterDistance, len(c.centers))
	for i, center := range c.centers {
		out[i] = CenterDistance{
			Center:     center,
			DistanceKm: Haversine(lat, lon, center.Latitude, center.Longitude),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// Haversine returns the great-circle distance in kilometres between two
// coordinates given in degrees
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
