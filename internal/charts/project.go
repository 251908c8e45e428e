package charts

import (
	"math"
	"strconv"

	"github.com/yildizm/textlens/internal/stats"
)

// Chart names, also used as image file base names
const (
	NameCharacters = "characters"
	NameWords      = "words"
	NameWater      = "water"
)

// RGB is a display color shared by the terminal and image renderers
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb
func (c RGB) Hex() string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0f]
	}
	return string(b)
}

// Split is a two-part pie dataset
type Split struct {
	Name    string
	Title   string
	Labels  [2]string
	Values  [2]float64
	Colors  [2]RGB
	Percent bool
}

// Total returns the sum of both parts
func (s Split) Total() float64 {
	return s.Values[0] + s.Values[1]
}

// Empty reports whether there is nothing to draw
func (s Split) Empty() bool {
	return s.Total() <= 0
}

// Share returns part i as a fraction of the total
func (s Split) Share(i int) float64 {
	total := s.Total()
	if total <= 0 {
		return 0
	}
	return s.Values[i] / total
}

// Tooltip formats part i as "<label>: <value>", with a percent suffix for
// percentage splits.
func (s Split) Tooltip(i int) string {
	label := s.Labels[i]
	if label != "" {
		label += ": "
	}
	value := strconv.FormatFloat(s.Values[i], 'f', -1, 64)
	if s.Percent {
		value += "%"
	}
	return label + value
}

// Projection holds the three chart datasets derived from one result
type Projection struct {
	CharacterSplit Split
	WordSplit      Split
	WaterSplit     Split
}

// Splits returns the datasets in display order
func (p Projection) Splits() []Split {
	return []Split{p.CharacterSplit, p.WordSplit, p.WaterSplit}
}

// Project derives all chart datasets from result. It reads result only.
func Project(result *stats.AnalysisResult) (Projection, bool) {
	if result == nil {
		return Projection{}, false
	}

	water := round2(clamp(result.WaterPercentage, 0, 1) * 100)

	return Projection{
		CharacterSplit: Split{
			Name:   NameCharacters,
			Title:  "Символы",
			Labels: [2]string{"Символы без пробелов", "Пробелы"},
			Values: [2]float64{float64(result.CharactersNoSpaces), float64(result.Spaces())},
			Colors: [2]RGB{{54, 162, 235}, {255, 99, 132}},
		},
		WordSplit: Split{
			Name:   NameWords,
			Title:  "Слова",
			Labels: [2]string{"Уникальные слова", "Неуникальные слова"},
			Values: [2]float64{float64(result.UniqueWordsCount), float64(result.RepeatedWords())},
			Colors: [2]RGB{{75, 192, 192}, {255, 205, 86}},
		},
		WaterSplit: Split{
			Name:    NameWater,
			Title:   "Вода",
			Labels:  [2]string{"Вода", "Полезное содержание"},
			Values:  [2]float64{water, round2(100 - water)},
			Colors:  [2]RGB{{255, 159, 64}, {153, 102, 255}},
			Percent: true,
		},
	}, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
