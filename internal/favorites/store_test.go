package favorites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SkipsDuplicatesAndEmpty(t *testing.T) {
	s := New("25", "", "4", "25", "7")
	assert.Equal(t, []string{"25", "4", "7"}, s.Snapshot())
	assert.Equal(t, 3, s.Len())
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	s := New()
	require.True(t, s.Add("7"))
	require.True(t, s.Add("4"))
	require.True(t, s.Add("25"))

	assert.Equal(t, []string{"7", "4", "25"}, s.Snapshot())
	assert.True(t, s.Contains("4"))
	assert.False(t, s.Contains("1"))
}

func TestAdd_DuplicateIsNoop(t *testing.T) {
	s := New()
	var calls int
	s.Subscribe(func([]string) { calls++ })

	assert.True(t, s.Add("25"))
	assert.False(t, s.Add("25"))
	assert.False(t, s.Add(""))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"25"}, s.Snapshot())
}

func TestRemove(t *testing.T) {
	s := New("4", "7", "25")
	var got [][]string
	s.Subscribe(func(ids []string) { got = append(got, ids) })

	assert.True(t, s.Remove("7"))
	assert.False(t, s.Remove("7"))
	assert.False(t, s.Remove("999"))

	assert.Equal(t, [][]string{{"4", "25"}}, got)
	assert.False(t, s.Contains("7"))
}

func TestToggle(t *testing.T) {
	s := New()

	assert.True(t, s.Toggle("pikachu"))
	assert.True(t, s.Contains("pikachu"))
	assert.False(t, s.Toggle("pikachu"))
	assert.False(t, s.Contains("pikachu"))
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New("4", "7")
	snap := s.Snapshot()
	snap[0] = "changed"

	assert.Equal(t, []string{"4", "7"}, s.Snapshot())
}

func TestSubscribe_EachListenerGetsOwnCopy(t *testing.T) {
	s := New()
	var first, second []string
	s.Subscribe(func(ids []string) {
		ids[0] = "mutated"
		first = ids
	})
	s.Subscribe(func(ids []string) { second = ids })

	s.Add("25")

	assert.Equal(t, []string{"mutated"}, first)
	assert.Equal(t, []string{"25"}, second)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := New()
	var calls int
	unsub := s.Subscribe(func([]string) { calls++ })

	s.Add("1")
	unsub()
	unsub()
	s.Add("2")

	assert.Equal(t, 1, calls)
}

func TestListenerMayCallBack(t *testing.T) {
	s := New()
	var seen []int
	s.Subscribe(func(ids []string) {
		seen = append(seen, len(ids))
		if len(ids) == 1 {
			s.Add("follow-up")
		}
	})

	s.Add("first")

	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, []string{"first", "follow-up"}, s.Snapshot())
}
