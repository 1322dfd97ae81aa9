package placeholder

import (
	"regexp"
	"strings"

	"github.com/aretw0/runcmd/pkg/domain"
)

const (
	prefix    = "${arg_"
	suffix    = "}"
	separator = "|"
)

var (
	tokenPattern = regexp.MustCompile(`\$\{arg_.+?\}`)
	exactPattern = regexp.MustCompile(`^\$\{arg_[^}]+\}$`)
)

// Extract returns the tokens of template in order of appearance.
// Duplicates are preserved.
func Extract(template string) []string {
	return tokenPattern.FindAllString(template, -1)
}

// Parse derives the name and the default value of a token.
// The last `|` separates the two: `${arg_a|b|c}` has name "a|b" and default "c".
func Parse(token string) domain.Placeholder {
	p := domain.Placeholder{Token: token}

	body := strings.TrimSuffix(strings.TrimPrefix(token, prefix), suffix)
	if i := strings.LastIndex(body, separator); i >= 0 {
		p.Name = body[:i]
		p.Default = body[i+len(separator):]
	} else {
		p.Name = body
	}
	return p
}

// ParseAll parses every token of template.
func ParseAll(template string) []domain.Placeholder {
	tokens := Extract(template)
	if len(tokens) == 0 {
		return nil
	}
	out := make([]domain.Placeholder, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, Parse(t))
	}
	return out
}

// Replace substitutes every occurrence of token in template.
func Replace(template, token, value string) string {
	if token == "" {
		return template
	}
	return strings.ReplaceAll(template, token, value)
}

// IsToken reports whether key is a single, complete placeholder token.
func IsToken(key string) bool {
	return exactPattern.MatchString(key)
}

// HasTokens reports whether template still holds placeholders.
func HasTokens(template string) bool {
	return tokenPattern.MatchString(template)
}
