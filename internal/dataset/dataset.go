package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Supported dataset types.
const (
	TypeAqua  = "aqua"
	TypeGSM8K = "gsm8k"
)

// Item is one labeled problem. Options is populated only for
// multiple-choice dataset types. Solution keeps the raw ground-truth
// text; normalization is the answer package's job.
type Item struct {
	Problem  string
	Options  []string
	Solution string
}

// Load reads a dataset file into an ordered item sequence.
func Load(path string, datasetType string) ([]Item, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("dataset: empty path")
	}

	typ := strings.ToLower(strings.TrimSpace(datasetType))
	switch typ {
	case TypeAqua, TypeGSM8K:
	default:
		return nil, fmt.Errorf("dataset: unsupported dataset type %q", datasetType)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	switch typ {
	case TypeAqua:
		rows, err := decodeRows[aquaRow](f)
		if err != nil {
			return nil, fmt.Errorf("dataset: parse %q: %w", path, err)
		}
		return aquaItems(rows)
	default:
		rows, err := decodeRows[gsm8kRow](f)
		if err != nil {
			return nil, fmt.Errorf("dataset: parse %q: %w", path, err)
		}
		return gsm8kItems(rows)
	}
}

type aquaRow struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Rationale string   `json:"rationale,omitempty"`
	Correct   string   `json:"correct"`
}

type gsm8kRow struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func aquaItems(rows []aquaRow) ([]Item, error) {
	out := make([]Item, 0, len(rows))
	for i, row := range rows {
		q := strings.TrimSpace(row.Question)
		if q == "" {
			continue
		}
		opts := compactStrings(row.Options)
		if len(opts) == 0 {
			return nil, fmt.Errorf("dataset: aqua row %d: missing options", i+1)
		}
		correct := strings.TrimSpace(row.Correct)
		if correct == "" {
			return nil, fmt.Errorf("dataset: aqua row %d: missing correct answer", i+1)
		}
		out = append(out, Item{
			Problem:  q,
			Options:  opts,
			Solution: correct,
		})
	}
	return out, nil
}

func gsm8kItems(rows []gsm8kRow) ([]Item, error) {
	out := make([]Item, 0, len(rows))
	for i, row := range rows {
		q := strings.TrimSpace(row.Question)
		if q == "" {
			continue
		}
		ans := strings.TrimSpace(row.Answer)
		if ans == "" {
			return nil, fmt.Errorf("dataset: gsm8k row %d: missing answer", i+1)
		}
		out = append(out, Item{
			Problem:  q,
			Solution: ans,
		})
	}
	return out, nil
}

// decodeRows accepts either a single JSON array or JSONL, one object
// per line. AQuA ships as JSONL but tooling commonly re-wraps it as an
// array, so both are handled.
func decodeRows[T any](r io.Reader) ([]T, error) {
	br := bufio.NewReader(r)

	first, err := firstNonSpaceByte(br)
	if err != nil {
		return nil, err
	}
	if first == '[' {
		var out []T
		if err := json.NewDecoder(br).Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return decodeJSONLStream[T](br)
}

func firstNonSpaceByte(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, errors.New("empty file")
			}
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return 0, err
			}
		default:
			return b[0], nil
		}
	}
}

func decodeJSONLStream[T any](r io.Reader) ([]T, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var out []T
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, item)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func compactStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
