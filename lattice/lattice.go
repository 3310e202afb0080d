// Package lattice implements the DAG of candidate nodes the tokenizer
// builds over one piece of input text and searches with Viterbi. Nodes
// live in a flat arena addressed by integer index; bestPrevious is an
// index into that arena, never a pointer, so the natural "node points at
// its predecessor" relationship never forms a Go reference cycle.
package lattice

import (
	"math"

	"github.com/wakachi-nlp/wakachi/dic"
	"github.com/wakachi-nlp/wakachi/werror"
	"github.com/wakachi-nlp/wakachi/wordid"
)

// noPrevious marks a node with no resolved predecessor (BOS, or any node
// not yet connected to BOS).
const noPrevious = -1

// unreachable is the totalCost sentinel for a node with no path from BOS.
const unreachable = math.MaxInt64

// Node is one lattice vertex: a candidate morpheme spanning
// [Begin, End) byte offsets in the lattice's input text.
type Node struct {
	Begin, End      int
	LeftID, RightID int16
	Cost            int16
	WordID          wordid.ID // wordid.Absent for BOS/EOS, OOV nodes, and rewrite-synthesized nodes
	DictionaryID    int       // -1 when WordID is absent
	IsOOV           bool
	Info            *dic.WordInfo // synthesized WordInfo; set iff WordID is wordid.Absent and this isn't BOS/EOS

	index          int
	totalCost      int64
	bestPrevious   int
	connectedToBOS bool
}

// Index returns this node's position in its lattice's arena.
func (n *Node) Index() int { return n.index }

// TotalCost returns the minimum cost from BOS to this node. Only valid
// when ConnectedToBOS is true.
func (n *Node) TotalCost() int64 { return n.totalCost }

// ConnectedToBOS reports whether a chain of (previous.End == this.Begin)
// links connects this node back to BOS.
func (n *Node) ConnectedToBOS() bool { return n.connectedToBOS }

// BestPrevious returns the arena index of this node's best predecessor, or
// noPrevious if none (only BOS itself has no predecessor among connected
// nodes).
func (n *Node) BestPrevious() int { return n.bestPrevious }

// NewBOSNode builds the fixed BOS node at byte offset 0.
func NewBOSNode() *Node {
	return &Node{
		Begin: 0, End: 0,
		LeftID: dic.BOSEOSLeftID, RightID: dic.BOSEOSRightID, Cost: dic.BOSEOSCost,
		WordID: wordid.Absent, DictionaryID: -1,
		bestPrevious: noPrevious, connectedToBOS: true, totalCost: 0,
	}
}

// NewEOSNode builds the fixed EOS node at byteLen.
func NewEOSNode(byteLen int) *Node {
	return &Node{
		Begin: byteLen, End: byteLen,
		LeftID: dic.BOSEOSLeftID, RightID: dic.BOSEOSRightID, Cost: dic.BOSEOSCost,
		WordID: wordid.Absent, DictionaryID: -1,
		bestPrevious: noPrevious,
	}
}

// ConnectCost resolves the bigram connection cost between a predecessor's
// rightId and a candidate's leftId. Implemented by *dic.Grammar in
// production; a plain function type keeps lattice independent of how the
// cost table is stored.
type ConnectCost func(leftID, rightID int16) int16

// Lattice is the arena of nodes plus, for every byte end-offset in
// [0, byteLen], the ordered bucket of nodes ending there.
type Lattice struct {
	byteLen  int
	nodes    []*Node
	endLists [][]int
	bosIndex int
	eosIndex int
}

// New allocates an empty lattice over text of the given byte length and
// inserts the BOS node at end-offset 0.
func New(byteLen int) *Lattice {
	l := &Lattice{
		byteLen:  byteLen,
		endLists: make([][]int, byteLen+1),
	}
	bos := NewBOSNode()
	l.bosIndex = l.append(bos)
	return l
}

func (l *Lattice) append(n *Node) int {
	idx := len(l.nodes)
	n.index = idx
	l.nodes = append(l.nodes, n)
	l.endLists[n.End] = append(l.endLists[n.End], idx)
	return idx
}

// NodesEndingAt returns the nodes in the bucket ending at byte offset pos,
// in insertion order.
func (l *Lattice) NodesEndingAt(pos int) []*Node {
	ids := l.endLists[pos]
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = l.nodes[id]
	}
	return out
}

// Node returns the node at arena index i.
func (l *Lattice) Node(i int) *Node { return l.nodes[i] }

// NodeCount returns the total number of nodes in the arena, BOS/EOS
// included.
func (l *Lattice) NodeCount() int { return len(l.nodes) }

// BosIndex returns the arena index of the lattice's single BOS node.
func (l *Lattice) BosIndex() int { return l.bosIndex }

// EosIndex returns the arena index of the lattice's single EOS node.
func (l *Lattice) EosIndex() int { return l.eosIndex }

// ByteLen returns the lattice's text length in bytes.
func (l *Lattice) ByteLen() int { return l.byteLen }

// Add connects n to every node ending at n.Begin, picks the minimum-cost
// predecessor (lower predecessor arena index wins ties), stores the
// resulting totalCost/bestPrevious/connectedToBOS on n, appends n to the
// lattice, and returns its arena index.
func (l *Lattice) Add(n *Node, connect ConnectCost) int {
	best := unreachable
	bestPrev := noPrevious
	connectedToBOS := false

	for _, predID := range l.endLists[n.Begin] {
		pred := l.nodes[predID]
		if !pred.connectedToBOS {
			continue
		}
		cc := connect(pred.RightID, n.LeftID)
		if cc == dic.InhibitedConnection {
			continue
		}
		cost := pred.totalCost + int64(cc) + int64(n.Cost)
		if cost < best {
			best = cost
			bestPrev = predID
			connectedToBOS = true
		}
	}

	n.totalCost = best
	n.bestPrevious = bestPrev
	n.connectedToBOS = connectedToBOS
	return l.append(n)
}

// InsertEOS adds the fixed EOS node at ByteLen, connecting it the same way
// as any other candidate. Returns a TokenizationError if EOS has no
// predecessor.
func (l *Lattice) InsertEOS(connect ConnectCost) error {
	eos := NewEOSNode(l.byteLen)
	idx := l.Add(eos, connect)
	l.eosIndex = idx
	if !l.nodes[idx].connectedToBOS {
		return werror.Tokenization("lattice: no path to end of text")
	}
	return nil
}

// BestPath walks bestPrevious backward from EOS to BOS and returns the
// nodes in forward (BOS→EOS) order, BOS and EOS both included.
func (l *Lattice) BestPath() ([]*Node, error) {
	eos := l.nodes[l.eosIndex]
	if !eos.connectedToBOS {
		return nil, werror.Tokenization("lattice: EOS not connected to BOS")
	}
	var reversed []*Node
	cur := eos
	for {
		reversed = append(reversed, cur)
		if cur.index == l.bosIndex {
			break
		}
		cur = l.nodes[cur.bestPrevious]
	}
	path := make([]*Node, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path, nil
}
