package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupported signals that no template exists for a method/dataset
// combination. It is a planned outcome, not a failure: callers skip the
// run instead of reporting an error.
var ErrUnsupported = errors.New("prompt: unsupported method/dataset combination")

// Factory hands out the built-in prompt templates.
type Factory struct{}

const sotAquaText = `You are solving a math word problem by decomposing it into a syzygy of partial solutions.

Problem:
{{problem}}

Options:
{{options}}

Decompose the problem into {{betti_number}} independent reasoning strands and produce {{solution_number}} candidate solutions. Reconcile the strands, then state the final answer as a single option letter on the last line, e.g. "Answer: A".`

const sotGSM8KText = `You are solving a math word problem by decomposing it into a syzygy of partial solutions.

Problem:
{{problem}}

Decompose the problem into {{betti_number}} independent reasoning strands and produce {{solution_number}} candidate solutions. Reconcile the strands, then state the final answer as a single number on the last line, e.g. "Answer: 42".`

const diyAquaText = `Solve the following multiple-choice math problem.

Problem:
{{problem}}

Options:
{{options}}

Reply with the option letter of the correct answer on the last line, e.g. "Answer: A".`

const diyGSM8KText = `Solve the following math problem.

Problem:
{{problem}}

Reply with the final numeric answer on the last line, e.g. "Answer: 42".`

// Template returns the prompt template for a method/dataset pair. The
// solution count is baked into the text; the Betti number stays a
// per-item variable so input records carry it for sot runs.
func (f *Factory) Template(method string, datasetType string, bettiNumber int, solutionNumber int) (*Template, error) {
	method = strings.ToLower(strings.TrimSpace(method))
	datasetType = strings.ToLower(strings.TrimSpace(datasetType))

	var text string
	required := []string{"problem"}

	switch method + "/" + datasetType {
	case "sot/aqua":
		text = sotAquaText
		required = append(required, "betti_number", "options")
	case "sot/gsm8k":
		text = sotGSM8KText
		required = append(required, "betti_number")
	case "diy/aqua":
		text = diyAquaText
		required = append(required, "options")
	case "diy/gsm8k":
		text = diyGSM8KText
	default:
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupported, method, datasetType)
	}

	if solutionNumber <= 0 {
		solutionNumber = 1
	}
	text = strings.ReplaceAll(text, "{{solution_number}}", strconv.Itoa(solutionNumber))

	return &Template{
		Name:     method + "-" + datasetType,
		Text:     text,
		Required: required,
	}, nil
}
