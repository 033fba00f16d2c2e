package frame

import (
	"slices"
	"strings"
)

// Detector describes an interferometer site.
type Detector struct {
	// Prefix is the two character channel prefix, such as "H1".
	Prefix    string
	Name      string
	Longitude float64 // radians, east positive
	Latitude  float64 // radians, north positive
	Elevation float32 // metres above the WGS84 ellipsoid
}

// Detectors lists the known detector sites.
var Detectors = []Detector{
	{Prefix: "H1", Name: "LHO_4k", Longitude: -2.08405676917, Latitude: 0.81079526383, Elevation: 142.554},
	{Prefix: "H2", Name: "LHO_2k", Longitude: -2.08405676917, Latitude: 0.81079526383, Elevation: 142.554},
	{Prefix: "L1", Name: "LLO_4k", Longitude: -1.58430937078, Latitude: 0.53342313506, Elevation: -6.574},
	{Prefix: "V1", Name: "VIRGO", Longitude: 0.18333805213, Latitude: 0.76151183984, Elevation: 51.884},
	{Prefix: "G1", Name: "GEO_600", Longitude: 0.17116780435, Latitude: 0.91184982752, Elevation: 114.425},
	{Prefix: "K1", Name: "KAGRA", Longitude: 2.396441015, Latitude: 0.6355068497, Elevation: 414.181},
	{Prefix: "T1", Name: "TAMA_300", Longitude: 2.43536359469, Latitude: 0.62267336022, Elevation: 90},
}

// DetectorByPrefix returns the detector with the given prefix.
func DetectorByPrefix(prefix string) (Detector, bool) {
	i := slices.IndexFunc(Detectors, func(d Detector) bool { return d.Prefix == prefix })
	if i < 0 {
		return Detector{}, false
	}

	return Detectors[i], true
}

// DetectorFor returns the detector named by the prefix of a channel name,
// the part before the first colon, as in "H1:GDS-CALIB_STRAIN".
func DetectorFor(channel string) (Detector, bool) {
	prefix, _, ok := strings.Cut(channel, ":")
	if !ok {
		return Detector{}, false
	}

	return DetectorByPrefix(prefix)
}
