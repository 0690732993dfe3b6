// Package spectrum provides the wavelength-indexed power spectrum of a
// uniformly sampled track-irregularity series.
//
// A real series is zero-padded to the next power of two and transformed with
// algo-fft. Each bin i in [0, N/2) becomes a [Point]:
//
//	frequency  = i / (N * samplingInterval)   [cycles per metre]
//	wavelength = 1 / frequency                [metres, +Inf at i = 0]
//	power      = |X[i]| / N
//	phase      = atan2(imag, real)
//
// [Forward] and [Inverse] expose the padded complex bins so that band
// filters can edit them and transform back to the original length.
//
// Basic usage:
//
//	ps, err := spectrum.Transform(values, 0.25)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("dominant wavelength %.1f m\n", ps.DominantWavelength())
package spectrum
