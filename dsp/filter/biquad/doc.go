// Package biquad runs second-order IIR sections.
//
// A [Section] filters in Direct Form II Transposed with [Coefficients]
// normalised to a0 = 1. A [Chain] cascades sections for higher orders.
// Coefficient design lives in dsp/filter/design.
package biquad
