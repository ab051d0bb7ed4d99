// Package psd provides power spectral density estimates of detector strain.
//
// A PSD is consumed through the [Estimator] capability: a mapping from a
// non-negative frequency in Hz to a one-sided density. [Table] is the
// concrete piecewise-linear interpolant over sampled (frequency, density)
// pairs, and [Welch] computes such pairs from a strain stretch by averaging
// windowed periodograms.
//
// Typical use:
//
//	freqs, pxx, err := psd.Welch(strain, 4096, psd.WithSegmentLength(4*4096))
//	table, err := psd.NewTable(freqs, pxx)
//	white, err := condition.Whiten(strain, table, 1.0/4096)
package psd
