package calculator

import "math"

// round2 保留 2 位小数（展示用，计算过程不提前舍入）
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round4 保留 4 位小数（QALY 展示用）
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
