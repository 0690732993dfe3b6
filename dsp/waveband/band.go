package waveband

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-trackgeo/dsp/restore"
	"github.com/cwbudde/algo-trackgeo/track"
)

// Band is a named wavelength window in metres.
type Band struct {
	Name          string  `mapstructure:"name"`
	MinWavelength float64 `mapstructure:"min_wavelength"`
	MaxWavelength float64 `mapstructure:"max_wavelength"`
}

// DefaultBands returns the usual short / medium / long / very-long split.
func DefaultBands() []Band {
	return []Band{
		{Name: "short", MinWavelength: 1, MaxWavelength: 6},
		{Name: "medium", MinWavelength: 6, MaxWavelength: 25},
		{Name: "long", MinWavelength: 25, MaxWavelength: 70},
		{Name: "very-long", MinWavelength: 70, MaxWavelength: 200},
	}
}

// CompleteBands returns a band set covering every non-DC wavelength for the
// given sampling interval: it starts at the Nyquist wavelength and ends at +Inf.
func CompleteBands(interval float64) []Band {
	return []Band{
		{Name: "short", MinWavelength: 2 * interval, MaxWavelength: 6},
		{Name: "medium", MinWavelength: 6, MaxWavelength: 25},
		{Name: "long", MinWavelength: 25, MaxWavelength: 70},
		{Name: "very-long", MinWavelength: 70, MaxWavelength: math.Inf(1)},
	}
}

// ValidateBands checks names and bounds and that no two bands overlap.
// Adjacent bands may share a boundary.
func ValidateBands(bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("%w: no wavebands given", track.ErrInvalidRange)
	}
	seen := make(map[string]struct{}, len(bands))
	for _, b := range bands {
		if b.Name == "" {
			return fmt.Errorf("%w: waveband name must not be empty", track.ErrInvalidRange)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("%w: duplicate waveband %q", track.ErrInvalidRange, b.Name)
		}
		seen[b.Name] = struct{}{}
		if err := restore.ValidateBand(b.MinWavelength, b.MaxWavelength); err != nil {
			return fmt.Errorf("waveband %q: %w", b.Name, err)
		}
	}

	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinWavelength < sorted[j].MinWavelength })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].MinWavelength < sorted[i-1].MaxWavelength {
			return fmt.Errorf("%w: wavebands %q and %q overlap", track.ErrInvalidRange, sorted[i-1].Name, sorted[i].Name)
		}
	}
	return nil
}
