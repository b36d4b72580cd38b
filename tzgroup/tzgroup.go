// Package tzgroup builds a per-designation view of a decoded TZif file:
// one record per distinct designation name, carrying the transition
// times that switched into that name.
package tzgroup

import (
	"github.com/zoneinfo-tools/tzwalk/tzif"
)

// Timezone is the set of transitions recorded under one designation
// name. Records are immutable once Group returns.
type Timezone struct {
	// Name is the designation resolved from the designation octets.
	Name string
	// Utoff is the offset from UT in seconds, taken from the first local
	// time type seen under this name.
	Utoff int32
	// Dst is the DST flag of the first local time type seen under this
	// name.
	Dst bool
	// Transitions are the transition times that switched to this name,
	// in file order.
	Transitions []int32
}

// Group maps every designation name in the body to its Timezone record.
//
// Transitions are visited in file order. The final transition type entry
// is skipped: it selects the type in effect after all known transitions
// and has no transition time paired with it. The first transition seen
// under a name creates its record; later ones append their time. A
// record's offset and DST flag are fixed by the first local time type
// encountered for the name, even if a later transition under the same
// name carries a different offset.
//
// A transition type outside the local time type records fails with
// *tzif.IndexOutOfRangeError; a bad designation reference fails with
// *tzif.IndexOutOfRangeError or *tzif.UnterminatedDesignationError. On
// failure no partial table is returned.
//
// The map carries no iteration order; compare and print by content.
func Group(b tzif.Body) (map[string]*Timezone, error) {
	table := make(map[string]*Timezone)
	for i, t := range b.TransitionTypes {
		if i == len(b.TransitionTypes)-1 {
			break // sentinel entry, no transition time follows
		}
		tt, err := b.Type(t)
		if err != nil {
			return nil, err
		}
		name, err := b.Designation(int(tt.Idx))
		if err != nil {
			return nil, err
		}
		trans := b.TransitionTimes[i]
		if tz, ok := table[name]; ok {
			tz.Transitions = append(tz.Transitions, trans)
			continue
		}
		table[name] = &Timezone{
			Name:        name,
			Utoff:       tt.Utoff,
			Dst:         tt.Dst,
			Transitions: []int32{trans},
		}
	}
	return table, nil
}
