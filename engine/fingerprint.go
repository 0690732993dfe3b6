package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"math"
	"sort"
	"strconv"

	"github.com/cwbudde/algo-trackgeo/dsp/waveband"
	"github.com/cwbudde/algo-trackgeo/track"
)

// params is a flat parameter set. Keys are hashed in sorted order so the
// fingerprint does not depend on how the set was built.
type params map[string]any

func fingerprint(op string, p params, series ...[]track.Point) string {
	h := sha256.New()
	writeString(h, op)

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeString(h, k)
		writeString(h, formatParam(p[k]))
	}

	var buf [8]byte
	for _, s := range series {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		h.Write(buf[:])
		for _, pt := range s {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(pt.Distance))
			h.Write(buf[:])
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(pt.Value))
			h.Write(buf[:])
		}
	}
	return op + ":" + hex.EncodeToString(h.Sum(nil))
}

func writeString(h hash.Hash, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	h.Write(buf[:])
	h.Write([]byte(s))
}

func formatParam(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case string:
		return strconv.Quote(x)
	case []waveband.Band:
		out := ""
		for _, b := range x {
			out += fmt.Sprintf("%q[%s,%s]", b.Name, formatParam(b.MinWavelength), formatParam(b.MaxWavelength))
		}
		return out
	case []track.FixedPoint:
		out := ""
		for _, f := range x {
			out += fmt.Sprintf("[%s,%s,%s]", formatParam(f.StartDistance), formatParam(f.EndDistance), formatParam(f.MaxMovement))
		}
		return out
	}
	return fmt.Sprintf("%#v", v)
}

func planPoints(line track.PlanLine) []track.Point {
	out := make([]track.Point, len(line))
	for i, p := range line {
		out[i] = track.Point{Distance: p.Distance, Value: p.Value}
	}
	return out
}
