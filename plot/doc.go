// Package plot renders diagnostic amplitude spectral density figures.
//
// [ASDTemplate] draws the detector ASD, sqrt(PSD), together with an optional
// template curve |h(f)|*sqrt(f)/dEff on log-log axes spanning 20 Hz to the
// Nyquist frequency and 1e-24 to 1e-20 strain/sqrt(Hz), and writes the
// figure as PNG.
package plot
