// config/duration.go
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// parseDurationFlexible reads a duration setting. Bare numbers (ints, floats
// or numeric strings) are seconds; other strings go through time.ParseDuration.
// Empty, nil and bool values yield def without an error. Non-positive or
// unparsable values yield def and an error.
func parseDurationFlexible(raw any, def time.Duration) (time.Duration, error) {
	var d time.Duration

	switch t := raw.(type) {
	case nil, bool:
		return def, nil
	case time.Duration:
		d = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return def, nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			d = seconds(n)
			break
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return def, fmt.Errorf("cannot parse duration %q", s)
		}
		d = parsed
	default:
		n, err := cast.ToFloat64E(raw)
		if err != nil {
			return def, nil
		}
		d = seconds(n)
	}

	if d <= 0 {
		return def, fmt.Errorf("duration %v must be >0", raw)
	}
	return d, nil
}

func seconds(n float64) time.Duration {
	return time.Duration(n * float64(time.Second))
}
