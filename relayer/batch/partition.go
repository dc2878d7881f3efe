package batch

// partition walks pending from the head, accumulating a ready prefix while
// the running totals stay within maxCount and maxSize. A batch that would
// overflow either limit ends the prefix; everything after it goes to
// remaining regardless of its own size, preserving strict order.
//
// Edge case: if the very first batch alone overflows either limit, the
// prefix would be empty — instead that single batch is promoted into ready
// alone, so an oversized head never deadlocks the queue (invariant 4).
func partition[M any, E any](pending []*MessageBatch[M, E], sizes []int, maxCount, maxSize int) (ready, remaining []*MessageBatch[M, E]) {
	if len(pending) == 0 {
		return nil, nil
	}

	msgCount := 0
	byteSize := 0
	cut := 0

	for i, b := range pending {
		n := len(b.Messages)
		s := sizes[i]
		if msgCount+n > maxCount || byteSize+s > maxSize {
			break
		}
		msgCount += n
		byteSize += s
		cut = i + 1
	}

	if cut == 0 {
		// Oversized head batch: submit it alone rather than stall forever.
		return pending[:1], pending[1:]
	}

	return pending[:cut], pending[cut:]
}

// batchSize sums estimateLen across a batch's messages. It does no error
// handling of its own: a fallible estimator is collapsed to size zero on
// failure by WrapEstimateLen before it reaches here.
func batchSize[M any, E any](estimateLen func(m M) int, b *MessageBatch[M, E]) int {
	total := 0
	for _, m := range b.Messages {
		total += estimateLen(m)
	}
	return total
}
