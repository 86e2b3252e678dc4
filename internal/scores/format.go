package scores

import "strconv"

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
