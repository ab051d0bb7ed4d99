// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// It operates on one-sided complex bins as produced by a real FFT and offers
// magnitude/power extraction, dominant-frequency lookup and linear
// interpolation of sampled spectra.
package spectrum
