package strength

import "math"

// Quality summarizes the Shannon-entropy distribution of a batch of secrets.
type Quality struct {
	Mean     float64
	Variance float64
	Skewness float64
	Kurtosis float64
}

// Stats computes batch statistics over the per-secret Shannon entropy.
// An empty batch yields the zero Quality.
func Stats(values []string) Quality {
	if len(values) == 0 {
		return Quality{}
	}

	entropies := make([]float64, len(values))
	for i, v := range values {
		entropies[i] = shannon(v)
	}
	n := float64(len(entropies))

	mean := 0.0
	for _, x := range entropies {
		mean += x
	}
	mean /= n

	variance := 0.0
	for _, x := range entropies {
		variance += (x - mean) * (x - mean)
	}
	variance /= n

	skewness := 0.0
	kurtosis := -3.0
	if variance != 0 {
		m3, m4 := 0.0, 0.0
		for _, x := range entropies {
			d := x - mean
			m3 += d * d * d
			m4 += d * d * d * d
		}
		skewness = m3 / (n * math.Pow(variance, 1.5))
		kurtosis = m4/(n*variance*variance) - 3
	}

	return Quality{Mean: mean, Variance: variance, Skewness: skewness, Kurtosis: kurtosis}
}

// shannon is the empirical per-character entropy of one value, in bits.
func shannon(value string) float64 {
	counts := make(map[rune]int)
	length := 0
	for _, r := range value {
		counts[r]++
		length++
	}
	if length == 0 {
		return 0
	}

	entropy := 0.0
	for _, count := range counts {
		p := float64(count) / float64(length)
		entropy -= p * math.Log2(p)
	}
	return entropy
}
