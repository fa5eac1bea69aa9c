package sensor

// AxisBuffer is a sliding-window average over the last N samples of one axis.
//
// The running sum always equals the sum of the N slots and the cursor always
// points at the oldest slot, which is the next one to be overwritten.
type AxisBuffer struct {
	slots  []int32
	sum    int64
	cursor int
}

// NewAxisBuffer returns a zero-filled buffer with a window of n samples.
func NewAxisBuffer(n int) (*AxisBuffer, error) {
	if n < 1 {
		return nil, errWindow(n)
	}
	return &AxisBuffer{slots: make([]int32, n)}, nil
}

// Push replaces the oldest sample with v and returns floor(sum / N).
func (b *AxisBuffer) Push(v int32) int64 {
	b.sum -= int64(b.slots[b.cursor])
	b.slots[b.cursor] = v
	b.sum += int64(v)

	avg := b.Average()

	b.cursor++
	if b.cursor >= len(b.slots) {
		b.cursor = 0
	}
	return avg
}

// Average returns floor(sum / N) for the current contents.
func (b *AxisBuffer) Average() int64 {
	return floorDiv(b.sum, int64(len(b.slots)))
}

// Sum is the running total of the slots.
func (b *AxisBuffer) Sum() int64 { return b.sum }

// Len is the window size N.
func (b *AxisBuffer) Len() int { return len(b.slots) }

// Cursor is the index of the slot the next Push overwrites.
func (b *AxisBuffer) Cursor() int { return b.cursor }

// Reset zeroes every slot, the sum and the cursor.
func (b *AxisBuffer) Reset() {
	for i := range b.slots {
		b.slots[i] = 0
	}
	b.sum = 0
	b.cursor = 0
}
