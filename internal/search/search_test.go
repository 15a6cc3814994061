package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/logging"
	"github.com/mmcdole/pokedex/internal/store"
)

var index = []domain.SpeciesRef{
	{ID: "1", Name: "bulbasaur"},
	{ID: "4", Name: "charmander"},
	{ID: "5", Name: "charmeleon"},
	{ID: "6", Name: "charizard"},
	{ID: "25", Name: "pikachu"},
	{ID: "26", Name: "raichu"},
	{ID: "172", Name: "pichu"},
}

type fakeClient struct {
	calls int
	refs  []domain.SpeciesRef
	err   error
}

func (c *fakeClient) GetPokemon(context.Context, string) (*domain.Pokemon, error) {
	return nil, errors.New("not used")
}

func (c *fakeClient) ListSpecies(_ context.Context, limit int) ([]domain.SpeciesRef, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.refs, nil
}

func names(refs []domain.SpeciesRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Name
	}
	return out
}

func TestFilter_Substring(t *testing.T) {
	res := Filter("CHAR", index)
	assert.Equal(t, []string{"charmander", "charmeleon", "charizard"}, names(res.Matches))
	assert.Empty(t, res.Suggestions)

	res = Filter("chu", index)
	assert.Equal(t, []string{"pikachu", "raichu", "pichu"}, names(res.Matches))
}

func TestFilter_EmptyQueryKeepsAll(t *testing.T) {
	res := Filter("  ", index)
	assert.Equal(t, index, res.Matches)
}

func TestFilter_SuggestsOnMiss(t *testing.T) {
	res := Filter("pikachoo", index)
	assert.Empty(t, res.Matches)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "pikachu", res.Suggestions[0].Name)

	res = Filter("xyzzy", index)
	assert.Empty(t, res.Matches)
	assert.Empty(t, res.Suggestions)
}

func TestSuggest_RanksByDistance(t *testing.T) {
	got := Suggest("picu", index, 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "pichu", got[0].Name)

	assert.Len(t, Suggest("charmandr", index, 1), 1)
	assert.Nil(t, Suggest("", index, 5))
}

func TestFuzzyFind(t *testing.T) {
	list := []string{"Bulbasaur", "Pikachu", "Pichu"}

	matches := FuzzyFind("pkch", list)
	require.NotEmpty(t, matches)
	assert.Equal(t, 1, matches[0].Index)
	assert.NotEmpty(t, matches[0].MatchedIndexes)

	assert.Nil(t, FuzzyFind("", list))
	assert.Empty(t, FuzzyFind("zzz", list))
}

func TestLookup(t *testing.T) {
	ref, ok := Lookup(index, "25")
	require.True(t, ok)
	assert.Equal(t, "pikachu", ref.Name)

	ref, ok = Lookup(index, " Raichu")
	require.True(t, ok)
	assert.Equal(t, "26", ref.ID)

	_, ok = Lookup(index, "mew")
	assert.False(t, ok)
}

func TestLoadIndex_CachesInStore(t *testing.T) {
	client := &fakeClient{refs: index}
	s, err := store.NewDiskStore("", "")
	require.NoError(t, err)
	svc := NewService(client, s, 151, logging.NullLogger())

	_, ok := svc.CachedIndex()
	assert.False(t, ok)

	refs, err := svc.LoadIndex(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, index, refs)

	refs, err = svc.LoadIndex(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, index, refs)
	assert.Equal(t, 1, client.calls)

	_, err = svc.LoadIndex(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestLoadIndex_NoStore(t *testing.T) {
	client := &fakeClient{refs: index}
	svc := NewService(client, nil, 0, logging.NullLogger())

	_, err := svc.LoadIndex(context.Background(), false)
	require.NoError(t, err)
	_, err = svc.LoadIndex(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestLoadIndex_Error(t *testing.T) {
	client := &fakeClient{err: &domain.NetworkError{Err: errors.New("offline")}}
	svc := NewService(client, nil, 0, logging.NullLogger())

	_, err := svc.LoadIndex(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}
