// Package assignment solves the minimum-cost assignment problem with the
// Hungarian method (Kuhn-Munkres with row/column potentials).
package assignment

import (
	"errors"
	"math"
)

// ErrRaggedMatrix is returned when the rows of a cost matrix differ in length
var ErrRaggedMatrix = errors.New("cost matrix rows have different lengths")

// ErrNonFiniteCost is returned when a cost is NaN or infinite
var ErrNonFiniteCost = errors.New("cost matrix contains a non-finite value")

// Pair is one row assigned to one column
type Pair struct {
	Row    int
	Column int
}

// Solve returns a minimum-cost assignment for a rectangular cost matrix.
// Every row is assigned when rows <= columns, every column otherwise.
// Pairs are sorted by row.
func Solve(costs [][]float64) ([]Pair, error) {
	rows := len(costs)
	if rows == 0 {
		return nil, nil
	}
	cols := len(costs[0])
	for _, row := range costs {
		if len(row) != cols {
			return nil, ErrRaggedMatrix
		}
		for _, c := range row {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, ErrNonFiniteCost
			}
		}
	}
	if cols == 0 {
		return nil, nil
	}

	if rows <= cols {
		rowToCol := solve(rows, cols, func(i, j int) float64 { return costs[i][j] })
		pairs := make([]Pair, 0, rows)
		for i, j := range rowToCol {
			pairs = append(pairs, Pair{Row: i, Column: j})
		}
		return pairs, nil
	}

	// more rows than columns: solve the transpose
	colToRow := solve(cols, rows, func(i, j int) float64 { return costs[j][i] })
	assigned := make([]int, rows)
	for i := range assigned {
		assigned[i] = -1
	}
	for j, i := range colToRow {
		assigned[i] = j
	}
	pairs := make([]Pair, 0, cols)
	for i, j := range assigned {
		if j >= 0 {
			pairs = append(pairs, Pair{Row: i, Column: j})
		}
	}
	return pairs, nil
}

// Cost returns the total cost of an assignment
func Cost(costs [][]float64, pairs []Pair) float64 {
	total := 0.0
	for _, p := range pairs {
		total += costs[p.Row][p.Column]
	}
	return total
}

// solve assigns each of n rows to a distinct column among m >= n columns.
// Indices are 1-based internally, index 0 is the virtual start column.
func solve(n, m int, cost func(i, j int) float64) []int {
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	match := make([]int, m+1) // column -> row
	way := make([]int, m+1)
	minv := make([]float64, m+1)
	used := make([]bool, m+1)

	for i := 1; i <= n; i++ {
		match[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = math.Inf(1)
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := match[j0]
			delta := math.Inf(1)
			j1 := 0

			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				reduced := cost(i0-1, j-1) - u[i0] - v[j]
				if reduced < minv[j] {
					minv[j] = reduced
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= m; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if match[j0] == 0 {
				break
			}
		}

		// augment along the alternating path
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	rowToCol := make([]int, n)
	for j := 1; j <= m; j++ {
		if match[j] != 0 {
			rowToCol[match[j]-1] = j - 1
		}
	}
	return rowToCol
}
