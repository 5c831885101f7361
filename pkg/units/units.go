// Package units converts between the size and duration literals used by
// the scheduler and quota tools ("800G", "1-02:30:00") and canonical
// numeric values. Sizes use binary multiples throughout (1K = 1024).
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"

	"github.com/shanecorder/slurm-schmutz/pkg/models"
)

// Absent is the literal quota and accounting tools emit for a value
// that was never measured or set.
const Absent = "-"

var sizeSuffixes = map[byte]uint64{
	'B': uint64(datasize.B),
	'K': uint64(datasize.KB),
	'M': uint64(datasize.MB),
	'G': uint64(datasize.GB),
	'T': uint64(datasize.TB),
	'P': uint64(datasize.PB),
}

// descending order, for FormatSize
var formatUnits = []struct {
	suffix byte
	size   uint64
}{
	{'P', uint64(datasize.PB)},
	{'T', uint64(datasize.TB)},
	{'G', uint64(datasize.GB)},
	{'M', uint64(datasize.MB)},
	{'K', uint64(datasize.KB)},
}

// ParseSize parses a size literal: a decimal mantissa with an optional
// case-insensitive suffix in {B,K,M,G,T,P}. A bare number is bytes.
func ParseSize(text string) (uint64, error) {
	s := strings.TrimSpace(strings.ToUpper(text))
	if s == "" {
		return 0, models.NewBaseError("empty size literal").WithCode(models.MalformedSize)
	}

	multiplier := uint64(1)
	last := s[len(s)-1]
	if last < '0' || last > '9' {
		m, ok := sizeSuffixes[last]
		if !ok {
			return 0, models.NewBaseError("unrecognized size suffix %q in %q", string(last), text).
				WithCode(models.MalformedSize)
		}
		multiplier = m
		s = s[:len(s)-1]
	}

	mantissa, err := strconv.ParseFloat(s, 64)
	if err != nil || mantissa < 0 {
		return 0, models.NewBaseError("malformed size literal %q", text).
			WithCode(models.MalformedSize).WithCause(err)
	}
	return uint64(math.Round(mantissa * float64(multiplier))), nil
}

// ParseOptionalSize is ParseSize, with the "-" placeholder (and the
// empty string) mapping to nil rather than zero. Zero is a measured
// value; nil means the source had nothing to report.
func ParseOptionalSize(text string) (*uint64, error) {
	s := strings.TrimSpace(text)
	if s == "" || s == Absent {
		return nil, nil
	}
	v, err := ParseSize(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FormatSize renders a byte count using the largest unit whose mantissa
// is at least 1.0, with one decimal place. ParseSize(FormatSize(x))
// recovers x to within half a decimal of the chosen unit.
func FormatSize(bytes uint64) string {
	for _, u := range formatUnits {
		if bytes >= u.size {
			return fmt.Sprintf("%.1f%c", float64(bytes)/float64(u.size), u.suffix)
		}
	}
	return fmt.Sprintf("%.1fB", float64(bytes))
}

// ParseDuration parses scheduler elapsed/limit literals in the forms
// D-HH:MM:SS, HH:MM:SS or MM:SS and returns whole seconds. Fractional
// seconds (as sstat emits for CPU times) are truncated.
func ParseDuration(text string) (int64, error) {
	s := strings.TrimSpace(text)
	malformed := func() error {
		return models.NewBaseError("malformed duration literal %q", text).
			WithCode(models.MalformedDuration)
	}
	if s == "" {
		return 0, malformed()
	}

	var days int64
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		d, err := strconv.ParseInt(s[:idx], 10, 64)
		if err != nil || d < 0 {
			return 0, malformed()
		}
		days = d
		s = s[idx+1:]
		// the day form requires a full HH:MM:SS remainder
		if strings.Count(s, ":") != 2 {
			return 0, malformed()
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, malformed()
	}

	var hours, minutes int64
	var err error
	if len(parts) == 3 {
		if hours, err = strconv.ParseInt(parts[0], 10, 64); err != nil || hours < 0 {
			return 0, malformed()
		}
		parts = parts[1:]
	}
	if minutes, err = strconv.ParseInt(parts[0], 10, 64); err != nil || minutes < 0 {
		return 0, malformed()
	}
	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || seconds < 0 {
		return 0, malformed()
	}

	return days*86400 + hours*3600 + minutes*60 + int64(seconds), nil
}

// FormatDuration renders seconds in the shortest literal that
// ParseDuration accepts, omitting the day segment when zero.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d-%02d:%02d:%02d", days, hours, minutes, secs)
	case hours > 0:
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	default:
		return fmt.Sprintf("%02d:%02d", minutes, secs)
	}
}
