// Package geo converts DMS coordinate strings to decimal degrees and computes
// great-circle distances between them.
package geo

import (
	"fmt"
	"kill-chain-service/internal/domain"
	"regexp"
	"strconv"
	"strings"
)

// <hemisphere><degrees>°<minutes>′<seconds>″, seconds may carry a fraction.
var dmsPattern = regexp.MustCompile(`^([NSEW])(\d+)°(\d+)′(\d+(?:\.\d+)?)″$`)

// ParseDMS converts a single DMS axis value such as "N68°47′48″" to signed
// decimal degrees. S and W yield negative values.
func ParseDMS(dms string) (float64, error) {
	s := strings.TrimSpace(dms)
	if s == "" {
		return 0, &domain.MalformedCoordinateError{Value: dms, Reason: "empty"}
	}

	m := dmsPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &domain.MalformedCoordinateError{Value: dms, Reason: describeMismatch(s)}
	}

	deg, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, &domain.MalformedCoordinateError{Value: dms, Reason: fmt.Sprintf("degrees: %v", err)}
	}
	mins, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, &domain.MalformedCoordinateError{Value: dms, Reason: fmt.Sprintf("minutes: %v", err)}
	}
	secs, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return 0, &domain.MalformedCoordinateError{Value: dms, Reason: fmt.Sprintf("seconds: %v", err)}
	}

	dd := deg + mins/60 + secs/3600
	if m[1] == "S" || m[1] == "W" {
		dd = -dd
	}
	return dd, nil
}

// ParsePoint parses a latitude/longitude DMS pair. The latitude must use N/S,
// the longitude E/W, and both must fall inside their geographic range.
func ParsePoint(latDMS, lonDMS string) (domain.GeoPoint, error) {
	if h := hemisphere(latDMS); h != 'N' && h != 'S' {
		return domain.GeoPoint{}, &domain.MalformedCoordinateError{Value: latDMS, Reason: "latitude must start with N or S"}
	}
	if h := hemisphere(lonDMS); h != 'E' && h != 'W' {
		return domain.GeoPoint{}, &domain.MalformedCoordinateError{Value: lonDMS, Reason: "longitude must start with E or W"}
	}

	lat, err := ParseDMS(latDMS)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	lon, err := ParseDMS(lonDMS)
	if err != nil {
		return domain.GeoPoint{}, err
	}

	if lat < -90 || lat > 90 {
		return domain.GeoPoint{}, &domain.MalformedCoordinateError{Value: latDMS, Reason: "latitude outside [-90,90]"}
	}
	if lon < -180 || lon > 180 {
		return domain.GeoPoint{}, &domain.MalformedCoordinateError{Value: lonDMS, Reason: "longitude outside [-180,180]"}
	}

	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}

// FormatDMS renders decimal degrees back to DMS with whole seconds. isLat
// selects N/S over E/W.
func FormatDMS(dd float64, isLat bool) string {
	h := "E"
	switch {
	case isLat && dd < 0:
		h = "S"
	case isLat:
		h = "N"
	case dd < 0:
		h = "W"
	}
	if dd < 0 {
		dd = -dd
	}

	total := int64(dd*3600 + 0.5)
	return fmt.Sprintf("%s%d°%02d′%02d″", h, total/3600, (total%3600)/60, total%60)
}

func hemisphere(s string) byte {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return s[0]
}

func describeMismatch(s string) string {
	switch {
	case !strings.ContainsAny(s[:1], "NSEW"):
		return "unrecognized hemisphere letter"
	case !strings.Contains(s, "°"):
		return "missing degree glyph"
	case !strings.Contains(s, "′"):
		return "missing minute glyph"
	case !strings.HasSuffix(s, "″"):
		return "missing second glyph"
	default:
		return "non-numeric component"
	}
}
