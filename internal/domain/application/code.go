package application

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

// codePattern is the public tracking-code shape: HS followed by the 6-digit
// random part and up to 4 timestamp digits.
var codePattern = regexp.MustCompile(`^HS\d{6,10}$`)

// NewTrackingCode generates a tracking code: "HS", a random number in
// [100000, 999999], then the last four digits of the unix-millis timestamp.
// Uniqueness is probabilistic; codes are not checked against the collection.
func NewTrackingCode(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	suffix := millis[len(millis)-4:]
	return fmt.Sprintf("HS%d%s", 100000+rand.IntN(900000), suffix)
}

// ValidCodeFormat reports whether key is shaped like a tracking code.
func ValidCodeFormat(key string) bool {
	return codePattern.MatchString(key)
}
