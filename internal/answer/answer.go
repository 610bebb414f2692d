package answer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/dataset"
)

// maxOptionLetters bounds letter extraction to A–E, the AQuA option range.
const maxOptionLetters = 5

// ParseLLMAnswer extracts a normalized answer from free model output:
// an "Answer:" line when present, else a standalone option letter, else
// the last number. Diagnostic only; validation re-derives its own view.
func ParseLLMAnswer(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}

	if idx := strings.LastIndex(strings.ToLower(s), "answer:"); idx >= 0 {
		s = strings.TrimSpace(s[idx+len("answer:"):])
	}
	if letter, ok := extractLetterToken(s, maxOptionLetters); ok {
		return string(rune('A' + letter))
	}
	if num, ok := extractLastNumber(s); ok {
		return num
	}
	return s
}

// ParseDatasetAnswer normalizes a raw ground-truth solution per dataset
// type: the option letter for aqua, the final number for gsm8k.
func ParseDatasetAnswer(solution string, datasetType string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(datasetType)) {
	case dataset.TypeAqua:
		letter, ok := normalizeOptionLetter(solution)
		if !ok {
			return "", fmt.Errorf("answer: invalid aqua solution %q", solution)
		}
		return letter, nil
	case dataset.TypeGSM8K:
		num, ok := extractExpectedNumber(solution)
		if !ok {
			return "", fmt.Errorf("answer: no number in gsm8k solution %q", solution)
		}
		return num, nil
	default:
		return "", fmt.Errorf("answer: unsupported dataset type %q", datasetType)
	}
}

// ValidateResponse is the sole correctness authority: it compares the
// raw generated text against the raw solution for the dataset type.
func ValidateResponse(generated string, solution string, datasetType string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(datasetType)) {
	case dataset.TypeAqua:
		want, ok := normalizeOptionLetter(solution)
		if !ok {
			return false, fmt.Errorf("answer: invalid aqua solution %q", solution)
		}
		got, ok := extractLetterToken(answerRegion(generated), maxOptionLetters)
		if !ok {
			return false, nil
		}
		return string(rune('A'+got)) == want, nil
	case dataset.TypeGSM8K:
		wantStr, ok := extractExpectedNumber(solution)
		if !ok {
			return false, fmt.Errorf("answer: no number in gsm8k solution %q", solution)
		}
		want, ok := parseFloat(wantStr)
		if !ok {
			return false, fmt.Errorf("answer: invalid gsm8k solution number %q", wantStr)
		}
		gotStr, ok := extractLastNumber(generated)
		if !ok {
			return false, nil
		}
		got, ok := parseFloat(gotStr)
		if !ok {
			return false, nil
		}
		return almostEqual(want, got), nil
	default:
		return false, fmt.Errorf("answer: unsupported dataset type %q", datasetType)
	}
}

// answerRegion narrows the text scanned for an option letter: after the
// final "Answer:" marker when present, otherwise the whole text.
func answerRegion(text string) string {
	if idx := strings.LastIndex(strings.ToLower(text), "answer:"); idx >= 0 {
		return text[idx+len("answer:"):]
	}
	return text
}

// normalizeOptionLetter maps raw solutions like "a", "B)", "C" to a
// canonical single uppercase letter.
func normalizeOptionLetter(solution string) (string, bool) {
	s := strings.TrimSpace(solution)
	s = strings.TrimRight(s, ").:")
	if len(s) != 1 {
		return "", false
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c = c - 'a' + 'A'
	}
	if c < 'A' || c >= 'A'+maxOptionLetters {
		return "", false
	}
	return string(rune(c)), true
}

func extractLetterToken(s string, max int) (int, bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c = c - 'a' + 'A'
		}
		if c < 'A' || c > 'Z' {
			continue
		}
		idx := int(c - 'A')
		if idx < 0 || idx >= max {
			continue
		}

		prevOK := i == 0 || !isAlphaNum(s[i-1])
		nextOK := i+1 == len(s) || !isAlphaNum(s[i+1])
		if prevOK && nextOK {
			return idx, true
		}
	}
	return -1, false
}

// extractExpectedNumber pulls the final number out of a gsm8k-style
// solution, honoring the "####" answer marker when present.
func extractExpectedNumber(solution string) (string, bool) {
	s := strings.TrimSpace(solution)
	if idx := strings.LastIndex(s, "####"); idx >= 0 {
		s = strings.TrimSpace(s[idx+4:])
	}
	return extractLastNumber(s)
}

func extractLastNumber(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	start := -1
	end := -1
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == ',' {
			end = i + 1
			start = i
			for start > 0 {
				pc := s[start-1]
				if (pc >= '0' && pc <= '9') || pc == '.' || pc == ',' || pc == '-' {
					start--
					continue
				}
				break
			}
			break
		}
	}
	if start < 0 || end < 0 || start >= end {
		return "", false
	}
	raw := strings.TrimSpace(s[start:end])
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.Trim(raw, ".")
	if raw == "" || raw == "-" {
		return "", false
	}
	return raw, true
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
