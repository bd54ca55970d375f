package results

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/stories/internal/catalog"
)

func book(id, name string) catalog.Record {
	return catalog.Record{ID: id, Fields: map[string]any{"Id": id, "Name": name}}
}

func ids(records []catalog.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

type bogusAction struct{}

func (bogusAction) action() {}

func mustReduce(t *testing.T, s State, a Action) State {
	t.Helper()
	next, err := Reduce(s, a)
	require.NoError(t, err)
	return next
}

func TestInitialState(t *testing.T) {
	s := Initial()
	assert.NotNil(t, s.Data)
	assert.Empty(t, s.Data)
	assert.False(t, s.IsLoading)
	assert.False(t, s.IsError)
}

func TestReduce_FetchStartKeepsData(t *testing.T) {
	s := State{Data: []catalog.Record{book("1", "Clean Code")}, IsError: true}

	next := mustReduce(t, s, FetchStart{Seq: 3})
	assert.True(t, next.IsLoading)
	assert.False(t, next.IsError)
	assert.Equal(t, uint64(3), next.Seq)
	assert.Equal(t, s.Data, next.Data)
}

func TestReduce_FetchFailureKeepsData(t *testing.T) {
	s := mustReduce(t, State{Data: []catalog.Record{book("1", "Clean Code")}}, FetchStart{Seq: 1})

	next := mustReduce(t, s, FetchFailure{Seq: 1, Err: errors.New("boom")})
	assert.False(t, next.IsLoading)
	assert.True(t, next.IsError)
	assert.Equal(t, []string{"1"}, ids(next.Data))
}

func TestReduce_FetchSuccessReplacesDataAfterRemovals(t *testing.T) {
	s := State{Data: []catalog.Record{book("1", "a"), book("2", "b")}}
	s = mustReduce(t, s, RemoveItem{Record: book("1", "")})
	require.Equal(t, []string{"2"}, ids(s.Data))

	s = mustReduce(t, s, FetchStart{Seq: 1})
	s = mustReduce(t, s, FetchSuccess{Seq: 1, Payload: []catalog.Record{book("1", "a"), book("2", "b"), book("3", "c")}})
	assert.Equal(t, []string{"1", "2", "3"}, ids(s.Data), "removed records come back on the next success")
	assert.False(t, s.IsLoading)
	assert.False(t, s.IsError)
}

func TestReduce_FetchSuccessNilPayloadIsEmpty(t *testing.T) {
	s := mustReduce(t, Initial(), FetchStart{Seq: 1})
	s = mustReduce(t, s, FetchSuccess{Seq: 1})
	assert.NotNil(t, s.Data)
	assert.Empty(t, s.Data)
}

func TestReduce_RemoveItem(t *testing.T) {
	s := State{Data: []catalog.Record{book("1", "a"), book("2", "b"), book("3", "c")}, IsLoading: true}

	next := mustReduce(t, s, RemoveItem{Record: book("2", "ignored")})
	assert.Equal(t, []string{"1", "3"}, ids(next.Data), "others keep their order")
	assert.True(t, next.IsLoading, "flags untouched")
	assert.Equal(t, []string{"1", "2", "3"}, ids(s.Data), "input state not mutated")

	same := mustReduce(t, s, RemoveItem{Record: book("99", "")})
	assert.Equal(t, s, same, "removing an unknown id is a no-op")
}

func TestReduce_RemoveItemWithoutID(t *testing.T) {
	first := catalog.Record{Fields: map[string]any{"Name": "first"}}
	second := catalog.Record{Fields: map[string]any{"Name": "second"}}
	s := State{Data: []catalog.Record{first, book("1", "a"), second}}

	next := mustReduce(t, s, RemoveItem{Record: second})
	require.Len(t, next.Data, 2)
	assert.Equal(t, "first", next.Data[0].Fields["Name"], "other id-less rows survive")
	assert.Equal(t, "1", next.Data[1].ID)

	lookalike := catalog.Record{Fields: map[string]any{"Name": "first"}}
	same := mustReduce(t, next, RemoveItem{Record: lookalike})
	assert.Len(t, same.Data, 2, "only the displayed record itself is removed")

	same = mustReduce(t, next, RemoveItem{Record: catalog.Record{}})
	assert.Len(t, same.Data, 2)
}

func TestReduce_InvalidActionFailsLoudly(t *testing.T) {
	s := State{Data: []catalog.Record{book("1", "a")}, IsLoading: true, Seq: 4}

	next, err := Reduce(s, bogusAction{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, s, next)

	_, err = Reduce(s, nil)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestReduce_StaleCompletionsAreIgnored(t *testing.T) {
	s := mustReduce(t, Initial(), FetchStart{Seq: 1})
	s = mustReduce(t, s, FetchStart{Seq: 2})

	assert.True(t, Stale(s, FetchSuccess{Seq: 1}))
	assert.False(t, Stale(s, FetchSuccess{Seq: 2}))
	assert.False(t, Stale(s, RemoveItem{}))

	after := mustReduce(t, s, FetchFailure{Seq: 1, Err: errors.New("late")})
	assert.Equal(t, s, after)

	after = mustReduce(t, s, FetchSuccess{Seq: 1, Payload: []catalog.Record{book("a", "")}})
	assert.Equal(t, s, after)
}

// Two overlapping cycles A then B where A resolves last: B's payload wins.
func TestReduce_OverlappingCyclesLatestRequestWins(t *testing.T) {
	s := Initial()
	s = mustReduce(t, s, FetchStart{Seq: 1, URL: "A"})
	s = mustReduce(t, s, FetchStart{Seq: 2, URL: "B"})
	s = mustReduce(t, s, FetchSuccess{Seq: 2, Payload: []catalog.Record{book("b", "")}})
	s = mustReduce(t, s, FetchSuccess{Seq: 1, Payload: []catalog.Record{book("a", "")}})

	assert.Equal(t, []string{"b"}, ids(s.Data))
	assert.False(t, s.IsLoading)
	assert.False(t, s.IsError)
}

func TestReduce_Scenario(t *testing.T) {
	s := Initial()

	s = mustReduce(t, s, FetchStart{Seq: 1, URL: "http://x/books?name=Design"})
	s = mustReduce(t, s, FetchSuccess{Seq: 1, Payload: []catalog.Record{book("1", "Clean Code")}})
	assert.Equal(t, State{Data: []catalog.Record{book("1", "Clean Code")}, Seq: 1}, s)

	s = mustReduce(t, s, RemoveItem{Record: catalog.Record{ID: "1"}})
	assert.Equal(t, State{Data: []catalog.Record{}, Seq: 1}, s)

	s = mustReduce(t, s, FetchStart{Seq: 2, URL: "http://x/books?name=Go"})
	assert.Equal(t, State{Data: []catalog.Record{}, IsLoading: true, Seq: 2}, s)

	s = mustReduce(t, s, FetchFailure{Seq: 2, Err: errors.New("offline")})
	assert.Equal(t, State{Data: []catalog.Record{}, IsError: true, Seq: 2}, s)
}

func TestReduce_RandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := []catalog.Record{book("1", "a"), book("2", "b"), book("3", "c"), book("4", "d")}

	for run := 0; run < 200; run++ {
		s := Initial()
		var issued uint64
		for step := 0; step < 40; step++ {
			var a Action
			switch rng.Intn(4) {
			case 0:
				issued++
				a = FetchStart{Seq: issued}
			case 1:
				n := rng.Intn(len(pool) + 1)
				a = FetchSuccess{Seq: uint64(rng.Intn(int(issued) + 1)), Payload: append([]catalog.Record(nil), pool[:n]...)}
			case 2:
				a = FetchFailure{Seq: uint64(rng.Intn(int(issued) + 1))}
			default:
				a = RemoveItem{Record: pool[rng.Intn(len(pool))]}
			}

			next, err := Reduce(s, a)
			require.NoError(t, err)
			require.False(t, next.IsLoading && next.IsError, "run %d step %d: both flags set after %#v", run, step, a)

			switch a.(type) {
			case FetchStart, FetchFailure:
				require.Equal(t, ids(s.Data), ids(next.Data), "%T must not alter data", a)
			case RemoveItem:
				require.LessOrEqual(t, len(s.Data)-len(next.Data), 1)
			}
			s = next
		}
	}
}
