// Package shared holds the small components every page reuses.
package shared

import "strconv"

func formatRating(r float64) string { return strconv.FormatFloat(r, 'f', 1, 64) }
