package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakachi-nlp/wakachi/dic"
)

func uniformConnect(int16, int16) int16 { return 1 }

func TestBestPathSimpleChain(t *testing.T) {
	l := New(4)

	mid := &Node{Begin: 0, End: 4, LeftID: 0, RightID: 0, Cost: 5}
	l.Add(mid, uniformConnect)

	require.NoError(t, l.InsertEOS(uniformConnect))

	path, err := l.BestPath()
	require.NoError(t, err)
	require.Len(t, path, 3) // BOS, mid, EOS
	assert.Equal(t, 0, path[0].Begin)
	assert.Equal(t, 0, path[1].Begin)
	assert.Equal(t, 4, path[1].End)
	assert.Equal(t, int64(7), path[2].TotalCost()) // BOS(0) + connect(1) + mid.cost(5) + connect(1) + EOS.cost(0)
}

func TestAddPicksCheapestPredecessor(t *testing.T) {
	l := New(2)

	cheap := &Node{Begin: 0, End: 1, Cost: 1}
	expensive := &Node{Begin: 0, End: 1, Cost: 100}
	l.Add(cheap, uniformConnect)
	l.Add(expensive, uniformConnect)

	tail := &Node{Begin: 1, End: 2, Cost: 1}
	idx := l.Add(tail, uniformConnect)
	got := l.Node(idx)

	require.True(t, got.ConnectedToBOS())
	assert.Equal(t, cheap.index, got.BestPrevious())
}

func TestInhibitedConnectionIsSkipped(t *testing.T) {
	l := New(2)

	alwaysInhibited := func(int16, int16) int16 { return dic.InhibitedConnection }
	n := &Node{Begin: 0, End: 1, Cost: 1}
	idx := l.Add(n, alwaysInhibited)

	assert.False(t, l.Node(idx).ConnectedToBOS())
}

func TestInsertEOSFailsWithNoPath(t *testing.T) {
	l := New(3)
	// Nothing connects byte offset 0 to byte offset 3, so EOS is unreachable.
	n := &Node{Begin: 0, End: 1, Cost: 1}
	l.Add(n, uniformConnect)

	err := l.InsertEOS(uniformConnect)
	assert.Error(t, err)
}

func TestNodesEndingAtOrdersByInsertion(t *testing.T) {
	l := New(3)
	a := &Node{Begin: 0, End: 1, Cost: 1}
	b := &Node{Begin: 0, End: 1, Cost: 2}
	l.Add(a, uniformConnect)
	l.Add(b, uniformConnect)

	nodes := l.NodesEndingAt(1)
	require.Len(t, nodes, 2)
	assert.Equal(t, int16(1), nodes[0].Cost)
	assert.Equal(t, int16(2), nodes[1].Cost)
}
