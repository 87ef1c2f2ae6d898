package decisiontree

import (
	"math"

	"github.com/kiteco/difficulty/kite-golib/workerpool"
)

// minGain is the smallest loss reduction considered a real split; anything
// below is rounding noise.
const minGain = 1e-9

type growNode struct {
	g, h  float64
	count int
	depth int

	split     bool
	feature   int
	threshold float64
	left      int
	right     int
	weight    float64
}

type split struct {
	valid     bool
	gain      float64
	feature   int
	threshold float64
	// sums of the rows sent right
	g, h  float64
	count int
}

// grower builds one regression tree per call from gradient statistics, level
// by level. Split search over features is spread across the pool in
// contiguous chunks and merged in chunk order, so the result does not depend
// on scheduling.
type grower struct {
	x      [][]float64
	cols   *columns
	params BoostParams
	pool   *workerpool.Pool
	chunks [][2]int
}

func newGrower(x [][]float64, cols *columns, params BoostParams, pool *workerpool.Pool) *grower {
	gr := &grower{
		x:      x,
		cols:   cols,
		params: params,
		pool:   pool,
	}
	n := params.workers() * 4
	if n > cols.numFeatures {
		n = cols.numFeatures
	}
	size := (cols.numFeatures + n - 1) / n
	for lo := 0; lo < cols.numFeatures; lo += size {
		hi := lo + size
		if hi > cols.numFeatures {
			hi = cols.numFeatures
		}
		gr.chunks = append(gr.chunks, [2]int{lo, hi})
	}
	return gr
}

// grow fits a tree to the given gradients and hessians and returns it along
// with the (learning-rate scaled) output it assigns to every training row.
func (gr *grower) grow(grad, hess []float64) (*DecisionTree, []float64, error) {
	root := growNode{count: gr.cols.numRows}
	for i := range grad {
		root.g += grad[i]
		root.h += hess[i]
	}
	nodes := []growNode{root}
	nodeOf := make([]int32, gr.cols.numRows)

	frontier := []int{0}
	for depth := 0; depth < gr.params.MaxDepth && len(frontier) > 0; depth++ {
		best, err := gr.findSplits(grad, hess, nodeOf, nodes, frontier)
		if err != nil {
			return nil, nil, err
		}

		var next []int
		for k, id := range frontier {
			s := best[k]
			if !s.valid {
				continue
			}
			parent := nodes[id]
			left := growNode{
				g:     parent.g - s.g,
				h:     parent.h - s.h,
				count: parent.count - s.count,
				depth: depth + 1,
			}
			right := growNode{
				g:     s.g,
				h:     s.h,
				count: s.count,
				depth: depth + 1,
			}
			nodes = append(nodes, left, right)
			nodes[id].split = true
			nodes[id].feature = s.feature
			nodes[id].threshold = s.threshold
			nodes[id].left = len(nodes) - 2
			nodes[id].right = len(nodes) - 1
			next = append(next, nodes[id].left, nodes[id].right)
		}
		if len(next) == 0 {
			break
		}

		for r, id := range nodeOf {
			n := &nodes[id]
			if !n.split {
				continue
			}
			if gr.x[r][n.feature] < n.threshold {
				nodeOf[r] = int32(n.left)
			} else {
				nodeOf[r] = int32(n.right)
			}
		}
		frontier = next
	}

	for i := range nodes {
		if !nodes[i].split {
			nodes[i].weight = -nodes[i].g / (nodes[i].h + gr.params.Lambda) * gr.params.LearningRate
		}
	}

	out := make([]float64, len(nodeOf))
	for r, id := range nodeOf {
		out[r] = nodes[id].weight
	}
	return flatten(nodes, gr.cols.numFeatures), out, nil
}

func (gr *grower) findSplits(grad, hess []float64, nodeOf []int32, nodes []growNode, frontier []int) ([]split, error) {
	pos := make([]int32, len(nodes))
	for i := range pos {
		pos[i] = -1
	}
	for k, id := range frontier {
		pos[id] = int32(k)
	}

	results := make([][]split, len(gr.chunks))
	var jobs []workerpool.Job
	for c, chunk := range gr.chunks {
		c, lo, hi := c, chunk[0], chunk[1]
		jobs = append(jobs, func() error {
			results[c] = gr.scan(lo, hi, grad, hess, nodeOf, pos, nodes, frontier)
			return nil
		})
	}
	gr.pool.Add(jobs)
	if err := gr.pool.Wait(); err != nil {
		return nil, err
	}

	best := make([]split, len(frontier))
	for _, res := range results {
		for k, s := range res {
			if s.valid && (!best[k].valid || s.gain > best[k].gain) {
				best[k] = s
			}
		}
	}
	return best, nil
}

// scan finds the best split of every frontier node over features [lo, hi).
func (gr *grower) scan(lo, hi int, grad, hess []float64, nodeOf []int32, pos []int32, nodes []growNode, frontier []int) []split {
	k := len(frontier)
	best := make([]split, k)
	accG := make([]float64, k)
	accH := make([]float64, k)
	accC := make([]int, k)
	last := make([]float64, k)
	var touched []int32

	for f := lo; f < hi; f++ {
		touched = touched[:0]
		for _, e := range gr.cols.cols[f] {
			p := pos[nodeOf[e.row]]
			if p < 0 {
				continue
			}
			if accC[p] == 0 {
				touched = append(touched, p)
			} else if e.value < last[p] {
				thr := (e.value + last[p]) / 2
				if thr <= e.value {
					thr = last[p]
				}
				gr.consider(&best[p], &nodes[frontier[p]], f, thr, accG[p], accH[p], accC[p])
			}
			accG[p] += grad[e.row]
			accH[p] += hess[e.row]
			accC[p]++
			last[p] = e.value
		}
		for _, p := range touched {
			parent := &nodes[frontier[p]]
			if accC[p] < parent.count {
				// rows with an implicit zero go left
				thr := last[p] / 2
				if thr <= 0 {
					thr = last[p]
				}
				gr.consider(&best[p], parent, f, thr, accG[p], accH[p], accC[p])
			}
			accG[p], accH[p], accC[p], last[p] = 0, 0, 0, 0
		}
	}
	return best
}

func (gr *grower) consider(best *split, parent *growNode, feature int, threshold, gR, hR float64, cR int) {
	gL := parent.g - gR
	hL := parent.h - hR
	if hL < gr.params.MinChildWeight || hR < gr.params.MinChildWeight {
		return
	}
	lambda := gr.params.Lambda
	gain := 0.5*(gL*gL/(hL+lambda)+gR*gR/(hR+lambda)-parent.g*parent.g/(parent.h+lambda)) - gr.params.MinSplitGain
	if gain <= minGain || math.IsNaN(gain) {
		return
	}
	if best.valid && gain <= best.gain {
		return
	}
	*best = split{
		valid:     true,
		gain:      gain,
		feature:   feature,
		threshold: threshold,
		g:         gR,
		h:         hR,
		count:     cR,
	}
}

// flatten converts grown nodes into the flat DecisionTree layout. A root that
// never split becomes a single node whose two bins share the root weight.
func flatten(nodes []growNode, featureSize int) *DecisionTree {
	t := &DecisionTree{FeatureSize: featureSize}
	if !nodes[0].split {
		t.Nodes = []Node{{
			Threshold:   math.MaxFloat64,
			LeftChild:   0,
			LeftIsLeaf:  true,
			RightChild:  1,
			RightIsLeaf: true,
		}}
		t.Outputs = []float64{nodes[0].weight, nodes[0].weight}
		t.Depth = 1
		return t
	}

	var visit func(id int) (int, bool)
	visit = func(id int) (int, bool) {
		n := nodes[id]
		if !n.split {
			t.Outputs = append(t.Outputs, n.weight)
			return len(t.Outputs) - 1, true
		}
		idx := len(t.Nodes)
		t.Nodes = append(t.Nodes, Node{FeatureIndex: n.feature, Threshold: n.threshold})
		if n.depth+1 > t.Depth {
			t.Depth = n.depth + 1
		}
		left, leftIsLeaf := visit(n.left)
		right, rightIsLeaf := visit(n.right)
		t.Nodes[idx].LeftChild = left
		t.Nodes[idx].LeftIsLeaf = leftIsLeaf
		t.Nodes[idx].RightChild = right
		t.Nodes[idx].RightIsLeaf = rightIsLeaf
		return idx, false
	}
	visit(0)
	return t
}
