package tzgroup

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zoneinfo-tools/tzwalk/tzif"
)

func TestGroup_SingleDesignation(t *testing.T) {
	// Raw file: two transitions into one "UTC" local time type. The
	// second transition type entry is the trailing sentinel and carries
	// no transition into the table.
	raw := []byte{
		'T', 'Z', 'i', 'f', 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, // isutcnt
		0, 0, 0, 0, // isstdcnt
		0, 0, 0, 0, // leapcnt
		0, 0, 0, 2, // timecnt
		0, 0, 0, 1, // typecnt
		0, 0, 0, 4, // charcnt
		0, 0, 0, 100, // transition times
		0, 0, 0, 200,
		0, 0, // transition types
		0, 0, 0, 0, 0, 0, // local time type
		'U', 'T', 'C', 0,
	}
	f, err := tzif.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	got, err := Group(f.Body)
	if err != nil {
		t.Fatalf("Group() failed: %v", err)
	}
	want := map[string]*Timezone{
		"UTC": {Name: "UTC", Utoff: 0, Dst: false, Transitions: []int32{100}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Group() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_MultipleDesignations(t *testing.T) {
	body := tzif.Body{
		TransitionTimes: []int32{100, 200, 300, 400},
		TransitionTypes: []uint8{0, 1, 0, 1},
		LocalTimeTypes: []tzif.LocalTimeType{
			{Utoff: 3600, Dst: false, Idx: 0},
			{Utoff: 7200, Dst: true, Idx: 4},
		},
		Designations: "CET\x00CEST\x00",
	}
	got, err := Group(body)
	if err != nil {
		t.Fatalf("Group() failed: %v", err)
	}
	want := map[string]*Timezone{
		"CET":  {Name: "CET", Utoff: 3600, Dst: false, Transitions: []int32{100, 300}},
		"CEST": {Name: "CEST", Utoff: 7200, Dst: true, Transitions: []int32{200}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Group() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_FirstSeenOffsetWins(t *testing.T) {
	// Two local time types share the designation but disagree on the
	// offset. The record keeps the first offset it saw; later
	// transitions only contribute their time.
	body := tzif.Body{
		TransitionTimes: []int32{100, 200, 300},
		TransitionTypes: []uint8{0, 1, 0},
		LocalTimeTypes: []tzif.LocalTimeType{
			{Utoff: -18000, Dst: false, Idx: 0},
			{Utoff: -14400, Dst: true, Idx: 0},
		},
		Designations: "EST\x00",
	}
	got, err := Group(body)
	if err != nil {
		t.Fatalf("Group() failed: %v", err)
	}
	want := map[string]*Timezone{
		"EST": {Name: "EST", Utoff: -18000, Dst: false, Transitions: []int32{100, 200}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Group() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_NoTransitions(t *testing.T) {
	for _, body := range []tzif.Body{
		{},
		{
			// A single entry is the sentinel: nothing to pair it with.
			TransitionTimes: []int32{100},
			TransitionTypes: []uint8{0},
			LocalTimeTypes:  []tzif.LocalTimeType{{Idx: 0}},
			Designations:    "UTC\x00",
		},
	} {
		got, err := Group(body)
		if err != nil {
			t.Fatalf("Group() failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Group() = %v, want empty table", got)
		}
	}
}

func TestGroup_TypeIndexOutOfRange(t *testing.T) {
	body := tzif.Body{
		TransitionTimes: []int32{100, 200},
		TransitionTypes: []uint8{5, 0},
		LocalTimeTypes:  []tzif.LocalTimeType{{Idx: 0}},
		Designations:    "UTC\x00",
	}
	_, err := Group(body)
	var rangeErr *tzif.IndexOutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("Group() = %v, want *tzif.IndexOutOfRangeError", err)
	}
	if rangeErr.Index != 5 {
		t.Errorf("IndexOutOfRangeError.Index = %d, want 5", rangeErr.Index)
	}
}

func TestGroup_DesignationIndexOutOfRange(t *testing.T) {
	// Idx equal to charcnt points one past the blob.
	body := tzif.Body{
		TransitionTimes: []int32{100, 200},
		TransitionTypes: []uint8{0, 0},
		LocalTimeTypes:  []tzif.LocalTimeType{{Idx: 4}},
		Designations:    "UTC\x00",
	}
	_, err := Group(body)
	var rangeErr *tzif.IndexOutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("Group() = %v, want *tzif.IndexOutOfRangeError", err)
	}
}

func TestGroup_UnterminatedDesignation(t *testing.T) {
	body := tzif.Body{
		TransitionTimes: []int32{100, 200},
		TransitionTypes: []uint8{0, 0},
		LocalTimeTypes:  []tzif.LocalTimeType{{Idx: 0}},
		Designations:    "UTC", // no NUL terminator
	}
	_, err := Group(body)
	var untermErr *tzif.UnterminatedDesignationError
	if !errors.As(err, &untermErr) {
		t.Fatalf("Group() = %v, want *tzif.UnterminatedDesignationError", err)
	}
}
