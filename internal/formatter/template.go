package formatter

import (
	"fmt"
	"regexp"
	"strings"
)

// TemplateEngine provides template parsing and variable substitution.
type TemplateEngine interface {
	// Parse returns the variables found in the template, without duplicates.
	Parse(template string) ([]string, error)

	// Substitute replaces variables in the template with values from the context.
	Substitute(template string, ctx VariableContext) (string, error)
}

type templateEngine struct {
	variablePattern *regexp.Regexp
	resolver        VariableResolver
}

// NewTemplateEngine creates a new template engine instance.
func NewTemplateEngine() TemplateEngine {
	return &templateEngine{
		variablePattern: regexp.MustCompile(`\$\{([^}]*)\}`),
		resolver:        NewVariableResolver(),
	}
}

// Parse returns every ${...} name in template, known or not.
func (te *templateEngine) Parse(template string) ([]string, error) {
	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	variables := []string{}
	for _, match := range te.variablePattern.FindAllStringSubmatch(template, -1) {
		if !seen[match[1]] {
			variables = append(variables, match[1])
			seen[match[1]] = true
		}
	}
	return variables, nil
}

// Substitute replaces all variables in the template in a single pass, so
// values containing "${...}" are not expanded again.
func (te *templateEngine) Substitute(template string, ctx VariableContext) (string, error) {
	if err := validateTemplate(template); err != nil {
		return "", err
	}

	var firstErr error
	result := te.variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		name := te.variablePattern.FindStringSubmatch(match)[1]
		value, err := te.resolver.Resolve(name, ctx)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%w (available: %s)", err, strings.Join(Variables, ", "))
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// validateTemplate rejects a "${" that is never closed.
func validateTemplate(template string) error {
	rest := template
	for {
		i := strings.Index(rest, "${")
		if i < 0 {
			return nil
		}
		rest = rest[i+2:]
		j := strings.Index(rest, "}")
		if j < 0 {
			return fmt.Errorf("unclosed variable in template %q", template)
		}
		rest = rest[j+1:]
	}
}
