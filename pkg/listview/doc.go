// Package listview keeps a list view's rows in step with its backing data
// using animated batch updates computed by seqdiff.
//
// An Adapter owns the current rows. SetRows diffs them against the new
// rows and hands the target a Batch whose deletions (old indices, highest
// first) must be applied before its insertions (new indices, lowest
// first). When either side is longer than the configured row limit the
// adapter skips the diff and asks the target to reload instead.
package listview
