package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/favorites"
	"github.com/mmcdole/pokedex/internal/logging"
)

const apiURL = "https://pokeapi.co/api/v2"

var kanto = []domain.SpeciesRef{
	{ID: "1", Name: "bulbasaur", URL: apiURL + "/pokemon/1/"},
	{ID: "4", Name: "charmander", URL: apiURL + "/pokemon/4/"},
}

func TestMemoryOnly(t *testing.T) {
	s, err := NewDiskStore("", apiURL)
	require.NoError(t, err)
	defer s.Close()

	assert.False(t, s.Persistent())

	_, ok := s.GetFavorites()
	assert.False(t, ok)

	require.NoError(t, s.SaveFavorites([]string{"25", "4"}))
	ids, ok := s.GetFavorites()
	require.True(t, ok)
	assert.Equal(t, []string{"25", "4"}, ids)
}

func TestDiskStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewDiskStore(dir, apiURL)
	require.NoError(t, err)
	require.True(t, s.Persistent())
	require.NoError(t, s.SaveFavorites([]string{"7", "25"}))
	require.NoError(t, s.SaveSpecies(151, kanto))
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, hashAPIURL(apiURL), "pokedex.db"))
	require.NoError(t, err)

	s, err = NewDiskStore(dir, apiURL)
	require.NoError(t, err)
	defer s.Close()

	ids, ok := s.GetFavorites()
	require.True(t, ok)
	assert.Equal(t, []string{"7", "25"}, ids)

	refs, ok := s.GetSpecies(151)
	require.True(t, ok)
	assert.Equal(t, kanto, refs)

	_, ok = s.GetSpecies(500)
	assert.False(t, ok)
}

func TestDiskStore_NamespacedByURL(t *testing.T) {
	dir := t.TempDir()

	a, err := NewDiskStore(dir, apiURL)
	require.NoError(t, err)
	require.NoError(t, a.SaveFavorites([]string{"1"}))
	require.NoError(t, a.Close())

	b, err := NewDiskStore(dir, "http://localhost:8080/api/v2")
	require.NoError(t, err)
	defer b.Close()

	_, ok := b.GetFavorites()
	assert.False(t, ok)
	assert.Equal(t, hashAPIURL(apiURL), hashAPIURL(apiURL+"/"))
	assert.Equal(t, hashAPIURL(apiURL), hashAPIURL("HTTPS://POKEAPI.CO/api/v2"))
}

func TestSaveFavorites_EmptyIsStored(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), apiURL)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveFavorites(nil))
	ids, ok := s.GetFavorites()
	assert.True(t, ok)
	assert.Empty(t, ids)
}

func TestInvalidateSpecies(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), apiURL)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveSpecies(151, kanto))
	require.NoError(t, s.SaveSpecies(500, kanto))
	require.NoError(t, s.SaveFavorites([]string{"4"}))

	s.InvalidateSpecies()

	_, ok := s.GetSpecies(151)
	assert.False(t, ok)
	_, ok = s.GetSpecies(500)
	assert.False(t, ok)
	_, ok = s.GetFavorites()
	assert.True(t, ok)
}

func TestInvalidateAll(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), apiURL)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveSpecies(151, kanto))
	require.NoError(t, s.SaveFavorites([]string{"4"}))

	s.InvalidateAll()

	_, ok := s.GetSpecies(151)
	assert.False(t, ok)
	_, ok = s.GetFavorites()
	assert.False(t, ok)
}

func TestSyncFavorites(t *testing.T) {
	s, err := NewDiskStore("", apiURL)
	require.NoError(t, err)
	require.NoError(t, s.SaveFavorites([]string{"25", "7"}))

	favs := favorites.New(RestoreFavorites(s)...)
	stop := SyncFavorites(s, favs, logging.NullLogger())

	favs.Add("4")
	favs.Remove("25")

	ids, _ := s.GetFavorites()
	assert.Equal(t, []string{"7", "4"}, ids)

	stop()
	favs.Add("1")
	ids, _ = s.GetFavorites()
	assert.Equal(t, []string{"7", "4"}, ids)
}

func TestRestoreFavorites_Empty(t *testing.T) {
	s, err := NewDiskStore("", apiURL)
	require.NoError(t, err)
	assert.Nil(t, RestoreFavorites(s))
}
