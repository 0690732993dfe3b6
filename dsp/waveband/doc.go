// Package waveband splits a track-irregularity series into named,
// non-overlapping wavelength bands and reports how much each band
// contributes to the total.
//
// For each band the series is band-limited with the restore package and
// the in-band spectral points are summarised:
//
//	power               = sqrt(mean(p²))       over in-band bins
//	energy              = sum(p²)              over in-band bins
//	contributionPercent = energy / totalEnergy * 100
//
// totalEnergy excludes the DC bin, and band membership for the energy terms
// is half-open [min, max) so that bands sharing a boundary partition the
// spectrum exactly. A complete band set therefore sums to 100 %.
//
// [Compare] contrasts a "before" and an "after" series band by band and
// flags bands whose power reduction stays below a threshold.
package waveband
