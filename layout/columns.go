package layout

import (
	"math"
	"sort"

	"github.com/tsawler/spatialtext/model"
)

// columnBins is the result of greedy centroid binning of token positions
type columnBins struct {
	// centroids of each bin, left to right
	centroids []float64

	// lines[i] is the number of distinct lines with a token in bin i
	lines []int

	// tokens is the total number of binned tokens
	tokens int

	// shared is the number of tokens whose bin is used by at least two lines
	shared int
}

// binColumns collects every token's HPos, line by line, into column bins. A
// value joins the first bin whose centroid is within tolerance and moves that
// centroid to the midpoint; otherwise it starts a new bin. Bins are matched in
// creation order and sorted by centroid once binning is done.
func binColumns(lines []model.Line, tolerance float64) columnBins {
	var bins columnBins
	assigned := make([][]int, len(lines))

	for li, line := range lines {
		xs := make([]float64, len(line.Tokens))
		for i, t := range line.Tokens {
			xs[i] = model.Finite(t.HPos)
		}
		sort.Float64s(xs)

		seen := make(map[int]bool)
		for _, x := range xs {
			idx := -1
			for bi, c := range bins.centroids {
				if math.Abs(x-c) <= tolerance {
					idx = bi
					break
				}
			}
			if idx < 0 {
				bins.centroids = append(bins.centroids, x)
				bins.lines = append(bins.lines, 0)
				idx = len(bins.centroids) - 1
			} else {
				bins.centroids[idx] = (bins.centroids[idx] + x) / 2
			}
			if !seen[idx] {
				seen[idx] = true
				bins.lines[idx]++
			}
			assigned[li] = append(assigned[li], idx)
			bins.tokens++
		}
	}

	for _, idxs := range assigned {
		for _, idx := range idxs {
			if bins.lines[idx] >= 2 {
				bins.shared++
			}
		}
	}

	sort.Sort(byCentroid(bins))
	return bins
}

// byCentroid sorts bins by centroid, keeping each bin's line count with it
type byCentroid columnBins

func (b byCentroid) Len() int           { return len(b.centroids) }
func (b byCentroid) Less(i, j int) bool { return b.centroids[i] < b.centroids[j] }
func (b byCentroid) Swap(i, j int) {
	b.centroids[i], b.centroids[j] = b.centroids[j], b.centroids[i]
	b.lines[i], b.lines[j] = b.lines[j], b.lines[i]
}

// alignmentScore is the fraction of tokens that fall in a bin shared with
// another line
func (b columnBins) alignmentScore() float64 {
	if b.tokens == 0 {
		return 0
	}
	return float64(b.shared) / float64(b.tokens)
}

// hasBigGap reports whether any two consecutive right edges of the line are
// more than threshold apart
func hasBigGap(line model.Line, threshold float64) bool {
	if len(line.Tokens) < 2 {
		return false
	}
	rights := make([]float64, len(line.Tokens))
	for i, t := range line.Tokens {
		rights[i] = model.Finite(model.Finite(t.HPos) + model.Finite(t.Width))
	}
	sort.Float64s(rights)

	for i := 1; i < len(rights); i++ {
		if rights[i]-rights[i-1] > threshold {
			return true
		}
	}
	return false
}

// bigGapRatio returns the fraction of lines with a big gap
func bigGapRatio(lines []model.Line, threshold float64) float64 {
	if len(lines) == 0 {
		return 0
	}
	n := 0
	for _, line := range lines {
		if hasBigGap(line, threshold) {
			n++
		}
	}
	return float64(n) / float64(len(lines))
}

// lineMargins returns each line's integral left margin and content width
func lineMargins(lines []model.Line) (lefts, widths []float64) {
	for _, line := range lines {
		if len(line.Tokens) == 0 {
			continue
		}
		left := math.Inf(1)
		right := math.Inf(-1)
		for _, t := range line.Tokens {
			left = math.Min(left, math.Trunc(model.Finite(t.HPos)))
			right = math.Max(right, math.Trunc(model.Finite(model.Finite(t.HPos)+model.Finite(t.Width))))
		}
		lefts = append(lefts, left)
		widths = append(widths, right-left)
	}
	return lefts, widths
}

// mean calculates the arithmetic mean of values
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance calculates the population variance of values
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}
