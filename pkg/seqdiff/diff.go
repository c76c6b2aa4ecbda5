package seqdiff

// Change is one insertion or deletion.
type Change[T any] struct {
	Index int
	Value T
}

// Changeset is the edit script between two sequences. Both slices are in
// ascending index order.
type Changeset[T any] struct {
	Insertions []Change[T]
	Deletions  []Change[T]
}

// Len returns the total number of edits.
func (c Changeset[T]) Len() int {
	return len(c.Insertions) + len(c.Deletions)
}

// IsEmpty reports whether the sequences were equal.
func (c Changeset[T]) IsEmpty() bool {
	return c.Len() == 0
}

// InsertedIndexes returns insertion positions in the new sequence.
func (c Changeset[T]) InsertedIndexes() []int {
	out := make([]int, len(c.Insertions))
	for i, ch := range c.Insertions {
		out[i] = ch.Index
	}
	return out
}

// DeletedIndexes returns deletion positions in the old sequence.
func (c Changeset[T]) DeletedIndexes() []int {
	out := make([]int, len(c.Deletions))
	for i, ch := range c.Deletions {
		out[i] = ch.Index
	}
	return out
}

// Diff computes the edit script turning old into new using ==.
func Diff[T comparable](old, new []T) Changeset[T] {
	return DiffFunc(old, new, func(a, b T) bool { return a == b })
}

// DiffFunc computes the edit script turning old into new using eq.
func DiffFunc[T any](old, new []T, eq func(a, b T) bool) Changeset[T] {
	table := lcsTable(old, new, eq)
	return backtrack(table, old, new, eq)
}

// LCSLength returns the length of the longest common subsequence.
func LCSLength[T comparable](old, new []T) int {
	table := lcsTable(old, new, func(a, b T) bool { return a == b })
	return table[len(old)][len(new)]
}

// Exceeds reports whether diffing sequences of these lengths should be
// skipped under a row limit. A limit of zero or less never trips.
func Exceeds(oldLen, newLen, limit int) bool {
	if limit <= 0 {
		return false
	}
	return oldLen > limit || newLen > limit
}

// lcsTable fills table[i][j] with the LCS length of old[:i] and new[:j].
func lcsTable[T any](old, new []T, eq func(a, b T) bool) [][]int {
	n, m := len(old), len(new)
	cells := make([]int, (n+1)*(m+1))
	table := make([][]int, n+1)
	for i := range table {
		table[i] = cells[i*(m+1) : (i+1)*(m+1)]
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			switch {
			case eq(old[i-1], new[j-1]):
				table[i][j] = table[i-1][j-1] + 1
			case table[i-1][j] >= table[i][j-1]:
				table[i][j] = table[i-1][j]
			default:
				table[i][j] = table[i][j-1]
			}
		}
	}
	return table
}

// backtrack walks the table from the bottom-right corner. Edits come out
// last-first and are reversed at the end.
func backtrack[T any](table [][]int, old, new []T, eq func(a, b T) bool) Changeset[T] {
	var cs Changeset[T]
	i, j := len(old), len(new)

	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && eq(old[i-1], new[j-1]):
			i--
			j--
		case j > 0 && (i == 0 || table[i][j] == table[i][j-1]):
			cs.Insertions = append(cs.Insertions, Change[T]{Index: j - 1, Value: new[j-1]})
			j--
		default:
			cs.Deletions = append(cs.Deletions, Change[T]{Index: i - 1, Value: old[i-1]})
			i--
		}
	}

	reverse(cs.Insertions)
	reverse(cs.Deletions)
	return cs
}

func reverse[T any](s []T) {
	for a, b := 0, len(s)-1; a < b; a, b = a+1, b-1 {
		s[a], s[b] = s[b], s[a]
	}
}

// Apply replays cs against old: deletions from the highest index down,
// then insertions from the lowest index up. Applying Diff(old, new) to old
// yields new. old is not modified.
func Apply[T any](old []T, cs Changeset[T]) []T {
	out := make([]T, len(old), len(old)+len(cs.Insertions))
	copy(out, old)

	for k := len(cs.Deletions) - 1; k >= 0; k-- {
		idx := cs.Deletions[k].Index
		out = append(out[:idx], out[idx+1:]...)
	}
	for _, ins := range cs.Insertions {
		out = append(out, ins.Value)
		copy(out[ins.Index+1:], out[ins.Index:])
		out[ins.Index] = ins.Value
	}
	return out
}
