package client

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultRetryAfter applies when neither the payload nor the headers
	// give a usable reset time.
	DefaultRetryAfter = 60
	MaxRetryAfter     = 300
	minRetryAfter     = 1

	// Epoch values below this are seconds rather than milliseconds.
	epochMillisThreshold = 1e11
)

type rateLimitBody struct {
	Reset json.RawMessage `json:"reset"`
}

// RetryAfterSeconds computes how long a rate-limited caller should wait.
//
// The payload's "reset" field (epoch milliseconds, or epoch seconds when
// below 1e11) wins: the result is ceil((reset-now)/1000) clamped to
// [1, MaxRetryAfter]. Otherwise the Retry-After header (delta seconds or
// HTTP date) is used and clamped the same way. Otherwise DefaultRetryAfter.
func RetryAfterSeconds(body []byte, retryAfterHeader string, now time.Time) int {
	if resetMillis, ok := parseReset(body); ok {
		return clampRetryAfter(math.Ceil((resetMillis - float64(now.UnixMilli())) / 1000))
	}

	if secs, ok := parseRetryAfterHeader(retryAfterHeader, now); ok {
		return clampRetryAfter(secs)
	}

	return DefaultRetryAfter
}

func parseReset(body []byte) (float64, bool) {
	var b rateLimitBody
	if len(body) == 0 || json.Unmarshal(body, &b) != nil || len(b.Reset) == 0 {
		return 0, false
	}

	raw := strings.Trim(strings.TrimSpace(string(b.Reset)), `"`)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}

	if v < epochMillisThreshold {
		v *= 1000
	}
	return v, true
}

func parseRetryAfterHeader(h string, now time.Time) (float64, bool) {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0, false
	}

	if secs, err := strconv.ParseFloat(h, 64); err == nil {
		if math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
			return 0, false
		}
		return math.Ceil(secs), true
	}

	if at, err := http.ParseTime(h); err == nil {
		return math.Ceil(at.Sub(now).Seconds()), true
	}
	return 0, false
}

func clampRetryAfter(secs float64) int {
	switch {
	case secs < minRetryAfter:
		return minRetryAfter
	case secs > MaxRetryAfter:
		return MaxRetryAfter
	default:
		return int(secs)
	}
}
