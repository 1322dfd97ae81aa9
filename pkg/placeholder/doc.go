/*
Package placeholder parses and substitutes `${arg_<name>}` tokens in command templates.

A token may carry a default value after the last `|`:

	grep -rn ${arg_pattern|TODO} ${arg_dir|.}

Tokens are matched shortest-first: each one ends at the first `}` after its
`${arg_` prefix, so names and defaults cannot contain `}`.
*/
package placeholder
