package intersection

import (
	"cmp"
	"slices"
)

// Order returns a copy of records sorted by participant count, then by the
// ascending participant IDs compared element by element.
func Order(records []Record) []Record {
	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, compareRecords)
	return ordered
}

func compareRecords(a, b Record) int {
	if c := cmp.Compare(len(a.Participants), len(b.Participants)); c != 0 {
		return c
	}
	return slices.Compare(a.SortedParticipants(), b.SortedParticipants())
}
