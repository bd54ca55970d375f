package results

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/five82/stories/internal/catalog"
)

// ErrInvalidAction reports an action kind the reducer does not know. It
// signals a programming defect, never a runtime condition.
var ErrInvalidAction = errors.New("invalid action")

// State is the result set as the UI sees it.
type State struct {
	Data      []catalog.Record
	IsLoading bool
	IsError   bool
	Seq       uint64 // sequence number of the latest FetchStart
}

// Initial returns the state a store starts with.
func Initial() State {
	return State{Data: []catalog.Record{}}
}

// Action is a transition request. The set of actions is closed; see the
// types below.
type Action interface {
	action()
}

// FetchStart marks the beginning of fetch cycle Seq.
type FetchStart struct {
	Seq uint64
	URL string
}

// FetchSuccess completes cycle Seq with a payload that replaces Data.
type FetchSuccess struct {
	Seq     uint64
	Payload []catalog.Record
}

// FetchFailure completes cycle Seq with an error. Data is kept.
type FetchFailure struct {
	Seq uint64
	Err error
}

// RemoveItem drops the record with the same ID from Data.
type RemoveItem struct {
	Record catalog.Record
}

func (FetchStart) action()   {}
func (FetchSuccess) action() {}
func (FetchFailure) action() {}
func (RemoveItem) action()   {}

// Reduce applies a to s and returns the next state. It has no side effects
// and never mutates s.Data in place. Completions for any cycle other than
// the latest one are stale and leave s unchanged.
func Reduce(s State, a Action) (State, error) {
	switch act := a.(type) {
	case FetchStart:
		s.IsLoading = true
		s.IsError = false
		s.Seq = act.Seq
		return s, nil

	case FetchSuccess:
		if Stale(s, a) {
			return s, nil
		}
		s.IsLoading = false
		s.IsError = false
		s.Data = act.Payload
		if s.Data == nil {
			s.Data = []catalog.Record{}
		}
		return s, nil

	case FetchFailure:
		if Stale(s, a) {
			return s, nil
		}
		s.IsLoading = false
		s.IsError = true
		return s, nil

	case RemoveItem:
		if act.Record.ID == "" {
			s.Data = removeSame(s.Data, act.Record)
			return s, nil
		}
		s.Data = removeByID(s.Data, act.Record.ID)
		return s, nil

	default:
		return s, fmt.Errorf("%w: %T", ErrInvalidAction, a)
	}
}

// Stale reports whether a completes a cycle other than the latest started
// one. Only completions can be stale.
func Stale(s State, a Action) bool {
	switch act := a.(type) {
	case FetchSuccess:
		return act.Seq != s.Seq
	case FetchFailure:
		return act.Seq != s.Seq
	default:
		return false
	}
}

func removeByID(data []catalog.Record, id string) []catalog.Record {
	out := make([]catalog.Record, 0, len(data))
	for _, r := range data {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// removeSame drops the one record sharing target's field map. Records
// decoded without an id all carry "", so matching on id would drop every
// one of them.
func removeSame(data []catalog.Record, target catalog.Record) []catalog.Record {
	if target.Fields == nil {
		return data
	}
	want := reflect.ValueOf(target.Fields).Pointer()
	for i, r := range data {
		if r.ID == "" && r.Fields != nil && reflect.ValueOf(r.Fields).Pointer() == want {
			out := make([]catalog.Record, 0, len(data)-1)
			out = append(out, data[:i]...)
			return append(out, data[i+1:]...)
		}
	}
	return data
}
