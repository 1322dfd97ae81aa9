/*
Package headless runs commands against a text buffer without a user at the keyboard.

Each invocation builds an in-memory document from the request, answers every
placeholder with its default, and returns the edited text together with the
scratch documents the command produced. The HTTP and MCP adapters are thin
transports over Service.
*/
package headless
