package domain

import "math"

const (
	MasterVolumeParam = "MasterVolume"

	silenceDecibels = -144.0
)

func LinearToDecibel(linear float64) float64 {
	if linear <= 0 {
		return silenceDecibels
	}
	return 20 * math.Log10(linear)
}

func DecibelToLinear(db float64) float64 {
	return clamp01(math.Pow(10, db/20))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
