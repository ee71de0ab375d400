package reclaim

import (
	"context"
	"sync"
)

// minBandRows keeps bands from getting so thin that merge cost dominates.
const minBandRows = 16

// band is a contiguous run of interior rows with its private tally.
// The tally spans padded rows from-1 through to+1 because wasteland on the
// band's edge may credit debris in the neighbouring row.
type band struct {
	from, to int
	baseline int
	gain     []int
}

// Options selects between the serial and the row-partitioned scan.
type Options struct {
	Workers           int // 0 or 1 = always serial
	ParallelThreshold int // Minimum cell count before workers are used
}

// AnalyzeWith runs AnalyzeParallel when opts allow it for a grid this size
// and Analyze otherwise.
func AnalyzeWith(ctx context.Context, g *Grid, opts Options) (Analysis, error) {
	if opts.Workers > 1 && g.Size() >= opts.ParallelThreshold {
		return AnalyzeParallel(ctx, g, opts.Workers)
	}
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	return Analyze(g), nil
}

// AnalyzeParallel computes the same Analysis as Analyze, splitting rows into
// contiguous bands scanned by up to workers goroutines. Per-band baselines
// are summed and per-band tallies added before the reducer runs.
// It returns ctx.Err() if the context is cancelled before all bands finish.
func AnalyzeParallel(ctx context.Context, g *Grid, workers int) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	if workers > g.rows/minBandRows {
		workers = g.rows / minBandRows
	}
	if workers <= 1 {
		return Analyze(g), nil
	}

	bands := splitBands(g.rows, workers)

	var wg sync.WaitGroup
	for i := range bands {
		wg.Add(1)
		go func(b *band) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			b.gain = make([]int, (b.to-b.from+3)*g.stride)
			b.baseline = classifyRows(g, b.gain, b.from-1, b.from, b.to)
		}(&bands[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}

	gain := make([]int, len(g.cells))
	baseline := 0
	for _, b := range bands {
		baseline += b.baseline
		off := (b.from - 1) * g.stride
		for i, v := range b.gain {
			gain[off+i] += v
		}
	}
	return finish(g, baseline, gain), nil
}

// splitBands divides rows 1..rows into n contiguous, nearly equal bands.
func splitBands(rows, n int) []band {
	bands := make([]band, n)
	size, extra := rows/n, rows%n
	from := 1
	for i := range bands {
		to := from + size - 1
		if i < extra {
			to++
		}
		bands[i] = band{from: from, to: to}
		from = to + 1
	}
	return bands
}
