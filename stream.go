package htmltable

import "iter"

// Collect drains seq into a Frame with the given columns. Rows are kept as
// yielded, so they must not be mutated afterwards.
func Collect(columns []string, seq iter.Seq[Row]) (*Frame, error) {
	var rows []Row
	for row := range seq {
		rows = append(rows, row)
	}
	return NewFrame(columns, rows...)
}

// CollectChan drains ch into a Frame. It is a thin wrapper around
// [Collect].
func CollectChan(columns []string, ch <-chan Row) (*Frame, error) {
	return Collect(columns, chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
