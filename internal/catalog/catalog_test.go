package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/pokedex/internal/domain"
)

func TestLoad_AshRoster(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	ash, err := c.Trainer("Ash")
	require.NoError(t, err)
	assert.Len(t, ash.Roster, 45)
	assert.Equal(t, "pikachu", ash.Roster[0])
	assert.Equal(t, "riolu", ash.Roster[len(ash.Roster)-1])

	seen := make(map[string]bool)
	for _, name := range ash.Roster {
		assert.False(t, seen[name], "duplicate roster entry %q", name)
		seen[name] = true
		assert.Equal(t, strings.ToLower(name), name)
	}
}

func TestTrainer_ReturnsCopy(t *testing.T) {
	c := MustLoad()

	a, err := c.Trainer("ash")
	require.NoError(t, err)
	a.Roster[0] = "missingno"

	b, err := c.Trainer("ash")
	require.NoError(t, err)
	assert.Equal(t, "pikachu", b.Roster[0])
}

func TestTrainer_Unknown(t *testing.T) {
	c := MustLoad()

	_, err := c.Trainer("gary")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownTrainer))
}

func TestGymLeaders(t *testing.T) {
	c := MustLoad()

	leaders := c.GymLeaders()
	require.Len(t, leaders, 8)
	for i, l := range leaders {
		assert.Equal(t, i+1, l.ID)
		assert.NotEmpty(t, l.Badge)
		assert.NotEmpty(t, l.Pokemon)
	}
	assert.Equal(t, "Brock", leaders[0].Name)
	assert.Equal(t, "Giovanni", leaders[7].Name)

	misty, err := c.GymLeader(2)
	require.NoError(t, err)
	assert.Equal(t, "Cascade Badge", misty.Badge)
	assert.Equal(t, "rgba(104, 144, 240, 0.2)", misty.LightColor())

	_, err = c.GymLeader(9)
	assert.ErrorIs(t, err, domain.ErrUnknownGymLeader)
}

func TestNearestCenters(t *testing.T) {
	c := MustLoad()
	require.Len(t, c.Centers(), 2)

	// standing on the Konyaaltı center
	got := c.NearestCenters(36.87424, 30.65714)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Center.Address, "Konyaaltı")
	assert.InDelta(t, 0, got[0].DistanceKm, 1e-9)
	assert.InDelta(t, 5.5, got[1].DistanceKm, 0.5)

	// city centre is closer to Muratpaşa
	got = c.NearestCenters(36.8885, 30.7)
	assert.Contains(t, got[0].Center.Address, "Muratpaşa")
	assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
}

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 0, Haversine(10, 10, 10, 10), 1e-12)
	// one degree of latitude is about 111.2 km
	assert.InDelta(t, 111.19, Haversine(0, 0, 1, 0), 0.05)
	assert.InDelta(t, Haversine(1, 2, 3, 4), Haversine(3, 4, 1, 2), 1e-9)
}
