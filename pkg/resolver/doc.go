/*
Package resolver collects placeholder values one at a time.

Resolution is an explicit state machine. A Step holds the progressively
substituted template, the token being resolved and the tokens still pending.
Confirming a value and advancing yields a fresh Step over the template with
every occurrence of the confirmed token replaced, until no tokens remain.

	step := resolver.Begin("echo ${arg_greeting|hi} ${arg_name}")
	for step != nil {
		step.Confirm(ask(step.Name(), step.Default()))
		next, _ := step.Advance()
		...
	}

Resolve drives the same chain through a ports.Prompter.
*/
package resolver
