// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package anomaly

import (
	"fmt"
	"math"
	"math/rand"
)

// eulerGamma is the Euler–Mascheroni constant.
const eulerGamma = 0.5772156649015329

const leaf = -1

// node is one entry of a flattened isolation tree. Internal nodes send
// x[Feature] <= Threshold to Left and everything else to Right. Leaves have
// Feature == -1 and record how many training samples reached them.
type node struct {
	Feature   int     `json:"feature" yaml:"feature"`
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Left      int     `json:"left,omitempty" yaml:"left,omitempty"`
	Right     int     `json:"right,omitempty" yaml:"right,omitempty"`
	Size      int     `json:"size,omitempty" yaml:"size,omitempty"`
}

// tree stores nodes in pre-order; the root is Nodes[0] and every child
// index is greater than its parent's.
type tree struct {
	Nodes []node `json:"nodes" yaml:"nodes"`
}

// forest is a fitted isolation forest over fixed-width float vectors.
type forest struct {
	SampleSize int    `json:"sampleSize" yaml:"sampleSize"`
	Features   int    `json:"features" yaml:"features"`
	Trees      []tree `json:"trees" yaml:"trees"`
}

// averagePathLength is the expected path length of an unsuccessful search
// in a binary search tree built from n points.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		fn := float64(n)
		return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
	}
}

// growForest fits numTrees trees, each on a subsample of at most maxSamples
// rows drawn without replacement.
func growForest(x [][]float64, numTrees, maxSamples int, rng *rand.Rand) *forest {
	n := len(x)
	psi := min(maxSamples, n)
	maxDepth := int(math.Ceil(math.Log2(float64(max(psi, 2)))))

	f := &forest{
		SampleSize: psi,
		Features:   len(x[0]),
		Trees:      make([]tree, 0, numTrees),
	}

	b := &builder{x: x, rng: rng, maxDepth: maxDepth}
	for range numTrees {
		idx := rng.Perm(n)[:psi]
		b.nodes = make([]node, 0, 2*psi)
		b.grow(idx, 0)
		f.Trees = append(f.Trees, tree{Nodes: b.nodes})
	}
	return f
}

type builder struct {
	x        [][]float64
	rng      *rand.Rand
	maxDepth int
	nodes    []node
}

// grow appends the subtree for rows idx and returns its index.
func (b *builder) grow(idx []int, depth int) int {
	self := len(b.nodes)
	b.nodes = append(b.nodes, node{Feature: leaf, Size: len(idx)})

	if len(idx) <= 1 || depth >= b.maxDepth {
		return self
	}

	feature, lo, hi, ok := b.pickFeature(idx)
	if !ok {
		return self
	}

	threshold := lo + b.rng.Float64()*(hi-lo)
	if threshold >= hi {
		threshold = lo
	}

	// partition in place: left rows first
	split := 0
	for i, r := range idx {
		if b.x[r][feature] <= threshold {
			idx[i], idx[split] = idx[split], idx[i]
			split++
		}
	}

	left := b.grow(idx[:split], depth+1)
	right := b.grow(idx[split:], depth+1)
	b.nodes[self] = node{Feature: feature, Threshold: threshold, Left: left, Right: right}
	return self
}

// pickFeature draws features in random order until one varies across idx.
// Returns false when every feature is constant.
func (b *builder) pickFeature(idx []int) (int, float64, float64, bool) {
	for _, f := range b.rng.Perm(len(b.x[idx[0]])) {
		lo, hi := b.x[idx[0]][f], b.x[idx[0]][f]
		for _, r := range idx[1:] {
			v := b.x[r][f]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if hi > lo {
			return f, lo, hi, true
		}
	}
	return 0, 0, 0, false
}

// pathLength returns the depth at which x is isolated, adjusted by the
// expected remaining depth of the leaf it lands in.
func (t *tree) pathLength(x []float64) float64 {
	depth := 0
	i := 0
	for {
		nd := t.Nodes[i]
		if nd.Feature == leaf {
			return float64(depth) + averagePathLength(nd.Size)
		}
		if x[nd.Feature] <= nd.Threshold {
			i = nd.Left
		} else {
			i = nd.Right
		}
		depth++
	}
}

// score returns -2^(-E[h(x)]/c(psi)). Lower is more anomalous; the range
// is [-1, 0).
func (f *forest) score(x []float64) float64 {
	var total float64
	for i := range f.Trees {
		total += f.Trees[i].pathLength(x)
	}
	mean := total / float64(len(f.Trees))

	c := averagePathLength(f.SampleSize)
	if c == 0 {
		return -1
	}
	return -math.Pow(2, -mean/c)
}

// validate checks structure loaded from disk so scoring cannot index out of
// range or loop.
func (f *forest) validate() error {
	if f.SampleSize < 1 {
		return fmt.Errorf("sample size %d must be positive", f.SampleSize)
	}
	if f.Features < 1 {
		return fmt.Errorf("feature count %d must be positive", f.Features)
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, nd := range t.Nodes {
			if nd.Feature == leaf {
				if nd.Size < 0 {
					return fmt.Errorf("tree %d node %d: negative size", ti, ni)
				}
				continue
			}
			if nd.Feature < 0 || nd.Feature >= f.Features {
				return fmt.Errorf("tree %d node %d: feature %d out of range", ti, ni, nd.Feature)
			}
			for _, child := range []int{nd.Left, nd.Right} {
				if child <= ni || child >= len(t.Nodes) {
					return fmt.Errorf("tree %d node %d: child %d out of range", ti, ni, child)
				}
			}
		}
	}
	return nil
}

// percentile returns the p-th percentile (0..100) of sorted values using
// linear interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
