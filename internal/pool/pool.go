// Package pool provides bucketed sync.Pool instances for the scratch
// pixel buffers used while encoding. Buffers are organized by size class
// to minimize waste.
package pool

import "sync"

// Size classes for bucketed pools. A 16x16 RGBA picture fits the smallest
// class and a 1024x1024 one the largest.
const (
	Size1K   = 1 << 10
	Size16K  = 1 << 14
	Size256K = 1 << 18
	Size4M   = 1 << 22
)

var sizes = [...]int{Size1K, Size16K, Size256K, Size4M}

var pools [len(sizes)]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i].New = func() any {
			b := make([]byte, sz)
			return &b
		}
	}
}

// bucketIndex returns the smallest class holding size, or -1 if size is
// larger than every class.
func bucketIndex(size int) int {
	for i, sz := range sizes {
		if size <= sz {
			return i
		}
	}
	return -1
}

// Get returns a byte slice of length size. Its contents are undefined.
// Requests above Size4M are allocated directly and never pooled.
func Get(size int) []byte {
	idx := bucketIndex(size)
	if idx < 0 {
		return make([]byte, size)
	}
	b := *pools[idx].Get().(*[]byte)
	return b[:size]
}

// Put returns b to the pool it came from. Slices whose capacity is not
// exactly one of the size classes are dropped.
func Put(b []byte) {
	c := cap(b)
	idx := bucketIndex(c)
	if idx < 0 || sizes[idx] != c {
		return
	}
	b = b[:c]
	pools[idx].Put(&b)
}
