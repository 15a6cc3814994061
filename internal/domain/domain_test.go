package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatBar(t *testing.T) {
	assert.Equal(t, 100, Stat{Base: 160}.Clamped())
	assert.Equal(t, 0, Stat{Base: -3}.Clamped())
	assert.Equal(t, "█████░░░░░", Stat{Base: 50}.Bar(10))
	assert.Equal(t, "██████████", Stat{Base: 255}.Bar(10))
	assert.Equal(t, "", Stat{Base: 50}.Bar(0))
}

func TestPokemonHelpers(t *testing.T) {
	p := &Pokemon{
		ID: 25, Name: "pikachu", Height: 4, Weight: 60,
		Sprites: Sprites{Front: "front.png"},
		Stats:   []Stat{{Name: "hp", Base: 35}, {Name: "speed", Base: 90}},
	}
	assert.Equal(t, "PIKACHU", p.DisplayName())
	assert.Equal(t, "Pikachu", p.TitleName())
	assert.Equal(t, "25", p.Key())
	assert.InDelta(t, 0.4, p.HeightMeters(), 1e-9)
	assert.InDelta(t, 6.0, p.WeightKilograms(), 1e-9)
	assert.Equal(t, 125, p.StatTotal())
	assert.Equal(t, "front.png", p.SpriteURL())

	p.Sprites.Artwork = "art.png"
	assert.Equal(t, "art.png", p.SpriteURL())
}

func TestSpeciesRefLabel(t *testing.T) {
	assert.Equal(t, "#007 squirtle", SpeciesRef{ID: "7", Name: "squirtle"}.Label())
	assert.Equal(t, "missingno", SpeciesRef{Name: "missingno"}.Label())
	assert.Equal(t, "pikachu", NormalizeID("  Pikachu "))
}

func TestLightColor(t *testing.T) {
	assert.Equal(t, "rgba(184, 160, 56, 0.2)", GymLeader{Color: "#B8A038"}.LightColor())
	assert.Equal(t, "rgba(255,255,255,0.9)", GymLeader{}.LightColor())
	assert.Equal(t, "tomato", GymLeader{Color: "tomato"}.LightColor())
}

func TestTypeColor(t *testing.T) {
	assert.Equal(t, "#F8D030", TypeColor("electric"))
	assert.Equal(t, DefaultTypeColor, TypeColor("shadow"))
}

func TestFetchState(t *testing.T) {
	assert.True(t, Unfetched().CanFetch())
	assert.True(t, Failed(errors.New("x")).CanFetch())
	assert.False(t, Pending().CanFetch())
	assert.False(t, Resolved(&Pokemon{}).CanFetch())

	p := &Pokemon{ID: 1}
	assert.True(t, Resolved(p).Equal(Resolved(p)))
	assert.False(t, Resolved(p).Equal(Resolved(&Pokemon{ID: 1})))
	assert.Equal(t, "pending", StatusPending.String())
}

func TestErrorTaxonomy(t *testing.T) {
	notFound := &HTTPError{StatusCode: 404}
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.NotErrorIs(t, &HTTPError{StatusCode: 500}, ErrNotFound)
	assert.Equal(t, "http error 404 (Not Found)", notFound.Error())

	wrapped := fmt.Errorf("fetch: %w", &NetworkError{Err: errors.New("dial tcp")})
	assert.ErrorIs(t, wrapped, ErrServerOffline)

	var httpErr *HTTPError
	assert.ErrorAs(t, ClassifyFetchError(fmt.Errorf("wrap: %w", notFound)), &httpErr)

	var netErr *NetworkError
	assert.ErrorAs(t, ClassifyFetchError(errors.New("boom")), &netErr)

	var decErr *DecodeError
	assert.ErrorAs(t, ClassifyFetchError(&DecodeError{Err: errors.New("eof")}), &decErr)
	assert.NoError(t, ClassifyFetchError(nil))
}
