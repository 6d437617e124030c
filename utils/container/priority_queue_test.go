package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/junction-sim/utils/container"
)

func TestPriorityQueueOrder(t *testing.T) {
	q := container.NewPriorityQueue[string]()
	q.Push("b", -5)
	q.Push("c", -10)
	q.Push("a", 0)
	q.Heapify()
	assert.Equal(t, 3, q.Len())

	v, p := q.HeapPop()
	assert.Equal(t, "c", v)
	assert.Equal(t, -10., p)
	v, _ = q.HeapPop()
	assert.Equal(t, "b", v)
	v, _ = q.HeapPop()
	assert.Equal(t, "a", v)
	assert.Equal(t, 0, q.Len())
}

func TestPriorityQueueStableTies(t *testing.T) {
	q := container.NewPriorityQueue[int]()
	for i := 0; i < 8; i++ {
		q.Push(i, 1)
	}
	q.Heapify()
	for i := 0; i < 8; i++ {
		v, _ := q.HeapPop()
		assert.Equal(t, i, v)
	}

	// 再次Push的元素次序接续之前的编号
	q.Push(10, 2)
	q.Push(11, 2)
	q.Push(12, 1)
	q.Heapify()
	v, _ := q.HeapPop()
	assert.Equal(t, 12, v)
	v, _ = q.HeapPop()
	assert.Equal(t, 10, v)
	v, _ = q.HeapPop()
	assert.Equal(t, 11, v)
}
