// Package condition implements the spectral conditioning applied to detector
// strain before template matching and sonification.
//
//   - [Whiten] flattens the strain spectrum against a noise PSD estimate.
//   - [Shift] translates the one-sided spectrum by a whole number of bins to
//     move low-frequency content into the audible band.
//
// Both transforms are pure: they never modify their input and always return
// a freshly allocated series. They are safe to run concurrently on
// independent inputs.
package condition
