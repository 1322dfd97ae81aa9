/*
Package runcmd runs shell commands against a text document.

A command is a template that may carry named placeholders:

	grep -n ${arg_pattern|TODO}
	curl -s ${arg_url} | jq ${arg_filter|.}

A placeholder is `${arg_<name>}` or `${arg_<name>|<default>}`; the last `|`
separates the name from the default value. Placeholders are either supplied
up-front (as `"${arg_name}": "value"` pairs next to the known keys) or
collected interactively, one prompt per placeholder, through a Prompter.

The resolved command is executed by the system shell once per source region,
with a hard timeout, and its stdout is routed back to the document:

  - source: "selection" (each selected region), "window" (whole document) or "none" (empty stdin).
  - target: "selection" (replace the region), "window" (a new document named after the command) or "none".

Anything written to stderr is treated as a failure and reported through the
Notifier; stdout is then discarded.

# Usage

	doc := memory.NewDocument("abc", domain.Region{Start: 0, End: 3})
	runner := runcmd.New(doc)

	_, err := runner.Run(ctx, map[string]any{
		"command": "tr a-z A-Z",
		"source":  "selection",
		"target":  "selection",
	})
	// doc.Text() == "ABC"

# Failure Policy

Timeouts, stderr output and invalid UTF-8 end the current region only; the
remaining regions are still attempted. A command that cannot be spawned
aborts the invocation. Run returns every failure joined with errors.Join.
*/
package runcmd
