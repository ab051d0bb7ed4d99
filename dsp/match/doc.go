// Package match correlates detector strain with a two-polarisation waveform
// template in the frequency domain, weighting every bin by the inverse noise
// PSD.
//
// [Filter] returns the signal-to-noise ratio time series, its peak and the
// effective distance at which the template would produce that peak, in the
// template's distance units. Both inputs are tapered by a Tukey window with
// alpha 1/8 before transforming.
package match
