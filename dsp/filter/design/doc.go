// Package design computes biquad coefficients for dsp/filter/biquad: RBJ
// low- and high-pass sections and Butterworth cascades built from them.
package design
