package client

import "regexp"

var mobileUserAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// IsMobileUserAgent reports whether ua carries a known mobile-platform signature.
func IsMobileUserAgent(ua string) bool {
	return mobileUserAgent.MatchString(ua)
}
