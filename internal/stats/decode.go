package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// requiredFields are the keys every analysis response carries
var requiredFields = []string{
	"characters",
	"characters_no_spaces",
	"words",
	"unique_words_count",
	"sentences",
	"water_percentage",
	"unique_words",
	"stopwords",
}

// Decode reads exactly one AnalysisResult object from r and validates it.
func Decode(r io.Reader) (*AnalysisResult, error) {
	var raw json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %w", err)
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after analysis result")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("analysis result is not an object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("analysis result is null")
	}
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("analysis result is missing %q", name)
		}
	}

	var result AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate checks the structural invariants of a result.
// The water ratio is only required to be finite and non-negative: the
// service divides stop words by non-stop words, so values above 1 occur.
func (r *AnalysisResult) Validate() error {
	if r.Characters < 0 || r.CharactersNoSpaces < 0 || r.Words < 0 ||
		r.UniqueWordsCount < 0 || r.Sentences < 0 {
		return fmt.Errorf("negative counter in analysis result")
	}
	if r.CharactersNoSpaces > r.Characters {
		return fmt.Errorf("characters_no_spaces (%d) exceeds characters (%d)", r.CharactersNoSpaces, r.Characters)
	}
	if r.UniqueWordsCount > r.Words {
		return fmt.Errorf("unique_words_count (%d) exceeds words (%d)", r.UniqueWordsCount, r.Words)
	}
	if math.IsNaN(r.WaterPercentage) || math.IsInf(r.WaterPercentage, 0) || r.WaterPercentage < 0 {
		return fmt.Errorf("invalid water_percentage: %v", r.WaterPercentage)
	}
	if err := validateWordStats("unique_words", r.UniqueWords); err != nil {
		return err
	}
	return validateWordStats("stopwords", r.Stopwords)
}

func validateWordStats(field string, items []WordStat) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.Count <= 0 {
			return fmt.Errorf("%s[%d]: count must be positive", field, i)
		}
		if item.Frequency <= 0 || item.Frequency > 1 {
			return fmt.Errorf("%s[%d]: frequency %v out of range (0,1]", field, i, item.Frequency)
		}
		if _, dup := seen[item.Word]; dup {
			return fmt.Errorf("%s: duplicate word %q", field, item.Word)
		}
		seen[item.Word] = struct{}{}
	}
	return nil
}
