package scheduler

// Cell shading bounds for the team heat map.
const (
	minCellWeight   = 0.3
	cellWeightRange = 0.7
	cellWeightCap   = 5
)

// CellWeight maps a vote count to a display intensity in [0.3, 1.0]. Counts
// above five are clamped; zero or negative counts get no emphasis (0).
func CellWeight(count int) float64 {
	if count <= 0 {
		return 0
	}
	n := min(count, cellWeightCap)
	return minCellWeight + float64(n)/cellWeightCap*cellWeightRange
}
