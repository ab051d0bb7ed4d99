// Package strain loads gravitational-wave detector strain recordings.
//
// A recording consists of three parts produced together by one [Load] call:
//
//   - the strain samples, one per detector sample tick;
//   - the time basis, either an [Expanded] per-sample time vector or the
//     [Compact] {start, stop, dt} metadata it is derived from;
//   - the per-second data-quality and injection flags, keyed by channel name.
//
// The supported container is the LOSC/GWOSC HDF5 layout:
//
//	strain/Strain                 float64 samples, attribute Xspacing = dt
//	meta/GPSstart, meta/Duration  numeric scalars
//	meta/Detector                 detector label, e.g. "H1"
//	quality/simple/DQmask         per-second bitmask, names in DQShortnames
//	quality/injections/Injmask    per-second bitmask, names in InjShortnames
//
// Bit i of a mask becomes the channel named by the i-th short name, holding
// (mask>>i)&1 for every second. The DEFAULT channel mirrors DATA.
//
// Metadata-only loads (WithStrain(false)) skip decoding the strain dataset,
// which dominates the cost for long recordings.
package strain
