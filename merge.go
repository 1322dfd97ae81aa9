package runcmd

import (
	"fmt"
	"sort"

	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/aretw0/runcmd/pkg/placeholder"
	"github.com/mitchellh/mapstructure"
)

// Merge splits kwargs into the known CommandArguments fields and placeholder
// substitutions, on top of defaults.
//
// Known keys match exactly (case-sensitive) and are decoded with weak typing
// so string values coming from flags ("timeout": "5") are accepted. Every
// leftover key must be a complete placeholder token, anything else is
// rejected with domain.ErrUnknownArgument.
func Merge(defaults domain.CommandArguments, kwargs map[string]any) (domain.CommandArguments, map[string]string, error) {
	args := defaults

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &args,
		Metadata:         &md,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		MatchName:        func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return args, nil, fmt.Errorf("building argument decoder: %w", err)
	}
	if err := decoder.Decode(kwargs); err != nil {
		return args, nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	subs := make(map[string]string, len(md.Unused))
	for _, key := range md.Unused {
		if !placeholder.IsToken(key) {
			return args, nil, fmt.Errorf("%w: %q", domain.ErrUnknownArgument, key)
		}
		subs[key] = stringify(kwargs[key])
	}

	if err := args.Validate(); err != nil {
		return args, nil, err
	}
	return args, subs, nil
}

// Substitute applies subs to command in a stable (sorted token) order.
func Substitute(command string, subs map[string]string) string {
	tokens := make([]string, 0, len(subs))
	for token := range subs {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	for _, token := range tokens {
		command = placeholder.Replace(command, token, subs[token])
	}
	return command
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
