package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Gourmet stores times as German freeform text. The hour and minute tokens
// are matched independently, so "1 Stunde 30 Minuten", "45 Minuten" and
// "1/2 Stunden" all parse. The hour token may be a simple fraction.
var (
	hourPattern   = regexp.MustCompile(`(?i)(\d+(?:/\d+)?)\s*Stunden?`)
	minutePattern = regexp.MustCompile(`(?i)(\d+)\s*Minuten?`)
)

// ParseDuration converts freeform German duration text into an ISO-8601
// duration string (PT{H}H{M}M, both components always present). Minutes
// ≥ 60 carry into hours. Returns ok=false when neither an hour nor a
// minute token is found.
func ParseDuration(raw string) (string, bool) {
	var hours, minutes int
	found := false

	if m := hourPattern.FindStringSubmatch(raw); m != nil {
		h, ok := parseHourToken(m[1])
		if ok {
			minutes += h
			found = true
		}
	}
	if m := minutePattern.FindStringSubmatch(raw); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			minutes += n
			found = true
		}
	}
	if !found {
		return "", false
	}

	hours = minutes / 60
	minutes %= 60
	return fmt.Sprintf("PT%dH%dM", hours, minutes), true
}

// parseHourToken converts an hour token ("1" or "1/2") into minutes.
func parseHourToken(tok string) (int, bool) {
	if num, denom, isFrac := cutFraction(tok); isFrac {
		if denom == 0 {
			return 0, false
		}
		return int(math.Round(float64(num) / float64(denom) * 60)), true
	}
	h, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return h * 60, true
}

func cutFraction(tok string) (num, denom int, ok bool) {
	for i := 0; i < len(tok); i++ {
		if tok[i] == '/' {
			n, err1 := strconv.Atoi(tok[:i])
			d, err2 := strconv.Atoi(tok[i+1:])
			if err1 != nil || err2 != nil {
				return 0, 0, false
			}
			return n, d, true
		}
	}
	return 0, 0, false
}
