package tables

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/spatialtext/model"
)

// GeometricDetector builds tables from token geometry. Column positions come
// from clustering every token's HPos; each line becomes a row and each token
// joins the cell of its nearest column.
type GeometricDetector struct {
	config Config
}

// NewGeometricDetector creates a new geometric table detector with default configuration.
func NewGeometricDetector() *GeometricDetector {
	return &GeometricDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector's identifier ("geometric").
func (d *GeometricDetector) Name() string {
	return "geometric"
}

// Configure sets the detector configuration.
func (d *GeometricDetector) Configure(config Config) error {
	if config.ColumnTolerance < 0 || math.IsNaN(config.ColumnTolerance) {
		return fmt.Errorf("tables: column tolerance must not be negative, got %v", config.ColumnTolerance)
	}
	if config.MinConfidence < 0 || config.MinConfidence > 1 {
		return fmt.Errorf("tables: min confidence must be within [0, 1], got %v", config.MinConfidence)
	}
	d.config = config
	return nil
}

// Detect returns one table per qualifying block, in block order.
func (d *GeometricDetector) Detect(blocks []model.Block) ([]*model.Table, error) {
	var found []*model.Table
	for i := range blocks {
		if table := d.Extract(&blocks[i]); table != nil {
			found = append(found, table)
		}
	}
	return found, nil
}

// Extract builds a table from one block, or returns nil when the block is
// not a table or the result is too small or too poorly aligned.
func (d *GeometricDetector) Extract(block *model.Block) *model.Table {
	if block == nil || len(block.Lines) == 0 {
		return nil
	}
	if d.config.ClassifiedOnly && block.Classification != model.ClassTable {
		return nil
	}

	var rows []model.Line
	for _, line := range block.Lines {
		if len(line.Tokens) > 0 {
			rows = append(rows, line)
		}
	}

	columns := d.columnPositions(rows)
	if len(rows) < d.config.MinRows || len(columns) < d.config.MinCols {
		return nil
	}

	confidence := d.alignmentQuality(rows, columns)
	if confidence < d.config.MinConfidence {
		return nil
	}

	table := model.NewTable(len(rows), len(columns))
	table.Columns = columns
	table.BBox = block.BBox()
	table.AlignmentScore = confidence

	for r, line := range rows {
		for _, t := range line.Tokens {
			if cell := table.GetCell(r, nearestColumn(model.Finite(t.HPos), columns)); cell != nil {
				cell.AppendToken(t)
			}
		}
	}

	if d.config.HeaderRow {
		for c := range table.Rows[0] {
			table.Rows[0][c].IsHeader = true
		}
	}

	return table
}

// columnPositions collects the HPos of every token and clusters the sorted
// values
func (d *GeometricDetector) columnPositions(rows []model.Line) []float64 {
	var xValues []float64
	for _, line := range rows {
		for _, t := range line.Tokens {
			xValues = append(xValues, model.Finite(t.HPos))
		}
	}
	sort.Float64s(xValues)
	return clusterValues(xValues, d.config.ColumnTolerance)
}

// alignmentQuality returns the fraction of tokens whose HPos lies within the
// tolerance of a column position
func (d *GeometricDetector) alignmentQuality(rows []model.Line, columns []float64) float64 {
	total, aligned := 0, 0
	for _, line := range rows {
		for _, t := range line.Tokens {
			total++
			x := model.Finite(t.HPos)
			if math.Abs(x-columns[nearestColumn(x, columns)]) <= d.config.ColumnTolerance {
				aligned++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(aligned) / float64(total)
}

// clusterValues clusters sorted values within the given tolerance, averaging
// values that fall within the tolerance of the cluster center.
func clusterValues(values []float64, tolerance float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	clustered := []float64{values[0]}

	for i := 1; i < len(values); i++ {
		diff := values[i] - clustered[len(clustered)-1]
		if diff > tolerance {
			clustered = append(clustered, values[i])
		} else {
			clustered[len(clustered)-1] = (clustered[len(clustered)-1] + values[i]) / 2
		}
	}

	return clustered
}

// nearestColumn returns the index of the column position closest to x
func nearestColumn(x float64, columns []float64) int {
	best := 0
	for i := 1; i < len(columns); i++ {
		if math.Abs(x-columns[i]) < math.Abs(x-columns[best]) {
			best = i
		}
	}
	return best
}

// Extract builds a table from a single block with the given configuration
func Extract(block *model.Block, config Config) *model.Table {
	d := NewGeometricDetector()
	d.config = config
	return d.Extract(block)
}
