package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// Template is a fill-in-the-blanks prompt. Variables use {{name}}
// placeholders; Required lists the variables that must be supplied.
type Template struct {
	Name     string
	Text     string
	Required []string
}

// Fill substitutes variables into the template text. A missing required
// variable or a leftover placeholder is an error.
func (t *Template) Fill(vars map[string]any) (string, error) {
	if t == nil {
		return "", errors.New("prompt: nil template")
	}

	for _, name := range t.Required {
		if name == "" {
			continue
		}
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("prompt: missing required variable %q", name)
		}
	}

	rendered := t.Text
	for k, v := range vars {
		placeholder := "{{" + k + "}}"
		if strings.Contains(rendered, placeholder) {
			rendered = strings.ReplaceAll(rendered, placeholder, stringify(v))
		}
	}

	if err := validateDelimiters(rendered); err != nil {
		return "", err
	}
	return rendered, nil
}

func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case []string:
		return strings.Join(value, "\n")
	default:
		return fmt.Sprintf("%v", value)
	}
}

func validateDelimiters(s string) error {
	open := 0
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '{' && s[i+1] == '{' {
			open++
			i++
			continue
		}
		if s[i] == '}' && s[i+1] == '}' {
			if open == 0 {
				return errors.New("prompt: unmatched \"}}\"")
			}
			open--
			i++
		}
	}
	if open != 0 {
		return errors.New("prompt: unfilled placeholder in template")
	}
	return nil
}
