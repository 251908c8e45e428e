package stats

import "strconv"

// FormatFrequency renders a frequency the way the tables show it: 4 decimals, percent.
func FormatFrequency(frequency float64) string {
	return strconv.FormatFloat(frequency*100, 'f', 4, 64) + "%"
}

// FormatWater renders the water ratio with 2 decimals and a percent sign.
func FormatWater(water float64) string {
	return strconv.FormatFloat(water*100, 'f', 2, 64) + "%"
}

// FormatNumber formats large numbers with commas
func FormatNumber(n int) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return addCommas(strconv.Itoa(n))
}

func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}
