// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package riprare

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"

	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/maps"
	"github.com/cpearce/riptree/lib/rip/ripprim"
	"github.com/cpearce/riptree/lib/slices"
	"github.com/cpearce/riptree/lib/textui"
)

const (
	// GaussianRuns is the number of synthetic datasets sampled.
	GaussianRuns = 100
	// gaussianDelta is the confidence parameter δ of the
	// concentration bound that sets the rarity margin ε.
	gaussianDelta = 0.05
)

type gaussianStats struct {
	Runs textui.Portion[int]
}

func (s gaussianStats) String() string {
	return textui.Sprintf("sampled %v synthetic datasets", s.Runs)
}

// Gaussian labels as rare every item whose actual occurrence count
// sits more than ε below the count that uniform-random chance would
// give it.
//
// It samples GaussianRuns synthetic datasets, each with the same
// number of transactions as the real dataset and each transaction of
// the dataset's mean length rounded up, every slot drawn uniformly from the item
// universe.  The per-item counts are reduced to their element-wise
// minimum across runs, and an item is rare iff
//
//	min_synthetic_count − actual_count > ε,
//	ε = √(max_count² · ln(1/δ) / 2N).
//
// The runs are sampled in parallel; each worker seeds its own PRNG
// with seed+worker, so the result is deterministic for a fixed seed
// and worker count.
func Gaussian(ctx context.Context, counts ripprim.ItemCountMap, numTransactions uint32, maxItem ripprim.Item, seed int64) (containers.Set[ripprim.Item], error) {
	total := counts.Total()
	avgLen := int((total + uint64(numTransactions) - 1) / uint64(numTransactions))
	maxCount := counts.Max()
	epsilon := math.Sqrt(float64(maxCount) * float64(maxCount) * math.Log(1/gaussianDelta) / (2 * float64(numTransactions)))
	dlog.Debugf(ctx, "gaussian rarity: avg_len=%v max_count=%v epsilon=%v", avgLen, maxCount, epsilon)

	numWorkers := slices.Min(runtime.GOMAXPROCS(0), GaussianRuns)

	progress := textui.NewProgress[gaussianStats](ctx, dlog.LogLevelDebug, textui.Tunable(1*time.Second))
	defer progress.Done()
	var runsDone atomic.Int64
	progress.Set(gaussianStats{Runs: textui.Portion[int]{N: 0, D: GaussianRuns}})

	// minCounts[item] is the minimum count of `item` across all
	// synthetic runs folded in so far.
	var mu sync.Mutex
	var minCounts []uint32

	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
	for worker := 0; worker < numWorkers; worker++ {
		worker := worker
		grp.Go(textui.Sprintf("sample-%d", worker), func(ctx context.Context) error {
			rng := rand.New(rand.NewSource(seed + int64(worker)))
			var workerMin []uint32
			synth := make([]uint32, int(maxItem)+1)
			for run := worker; run < GaussianRuns; run += numWorkers {
				if err := ctx.Err(); err != nil {
					return err
				}
				for i := range synth {
					synth[i] = 0
				}
				for t := uint32(0); t < numTransactions; t++ {
					for s := 0; s < avgLen; s++ {
						item := 1 + rng.Int63n(int64(maxItem))
						synth[item]++
					}
				}
				if workerMin == nil {
					workerMin = make([]uint32, len(synth))
					copy(workerMin, synth)
				} else {
					for i, count := range synth {
						workerMin[i] = slices.Min(workerMin[i], count)
					}
				}
				progress.Set(gaussianStats{Runs: textui.Portion[int]{
					N: int(runsDone.Add(1)),
					D: GaussianRuns,
				}})
			}
			if workerMin != nil {
				mu.Lock()
				if minCounts == nil {
					minCounts = workerMin
				} else {
					for i, count := range workerMin {
						minCounts[i] = slices.Min(minCounts[i], count)
					}
				}
				mu.Unlock()
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	rare := make(containers.Set[ripprim.Item])
	for _, item := range maps.Keys(counts) {
		if float64(minCounts[item])-float64(counts.Get(item)) > epsilon {
			rare.Insert(item)
		}
	}
	return rare, nil
}

// ContainsRare reports whether any member of the transaction is in
// the rare set.
func ContainsRare(txn ripprim.ItemSet, rare containers.Set[ripprim.Item]) bool {
	for _, item := range txn {
		if rare.Has(item) {
			return true
		}
	}
	return false
}
