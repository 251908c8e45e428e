package stats

// AnalysisResult is the statistics block returned by the analysis service.
// A result is treated as immutable once decoded; views derive from it.
type AnalysisResult struct {
	Characters         int        `json:"characters"`
	CharactersNoSpaces int        `json:"characters_no_spaces"`
	Words              int        `json:"words"`
	UniqueWordsCount   int        `json:"unique_words_count"`
	Sentences          int        `json:"sentences"`
	WaterPercentage    float64    `json:"water_percentage"`
	UniqueWords        []WordStat `json:"unique_words"`
	Stopwords          []WordStat `json:"stopwords"`
	StopwordsCount     int        `json:"stopwords_count,omitempty"`
}

// WordStat is one word's occurrence count and relative frequency
type WordStat struct {
	Word      string  `json:"word"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

// Spaces returns the number of space characters in the analysed text
func (r *AnalysisResult) Spaces() int {
	return r.Characters - r.CharactersNoSpaces
}

// RepeatedWords returns the number of word occurrences that are not first occurrences
func (r *AnalysisResult) RepeatedWords() int {
	return r.Words - r.UniqueWordsCount
}

// WaterPercent returns the water ratio expressed in percent
func (r *AnalysisResult) WaterPercent() float64 {
	return r.WaterPercentage * 100
}
