/*
Package ports defines the driven ports (interfaces) of the runcmd engine.

These interfaces decouple the core from the host that embeds it, so the same
orchestrator drives a terminal session, an HTTP request or an MCP tool call.
The core never talks to a concrete UI library directly.

# Key Interfaces

  - Document: The text buffer the command reads from and writes to.
  - Prompter: Collects a value for a placeholder (or the command itself).
  - PreviewRenderer: Turns a preview into something the host can display.
  - Variables: Resolves `$name` working directories.
  - Notifier: The single alert-style error surface.
*/
package ports
