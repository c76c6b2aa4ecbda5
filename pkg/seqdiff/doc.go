// Package seqdiff computes minimal insert/delete edit scripts between two
// ordered sequences using a longest-common-subsequence table.
//
// Deletion indices refer to positions in the old sequence and insertion
// indices to positions in the new one. Consumers must apply every deletion
// (highest index first) before any insertion (lowest index first):
//
//	cs := seqdiff.Diff(oldRows, newRows)
//	for i := len(cs.Deletions) - 1; i >= 0; i-- {
//	    table.DeleteRow(cs.Deletions[i].Index)
//	}
//	for _, ins := range cs.Insertions {
//	    table.InsertRow(ins.Index, ins.Value)
//	}
//
// Building the table costs O(n*m) time and memory. Callers with large lists
// should check Exceeds first and reload instead of animating.
//
// All functions are pure and safe for concurrent use on independent inputs.
package seqdiff
