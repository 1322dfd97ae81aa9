// Package process runs command lines through the system shell with a hard
// timeout, piped input and captured output.
package process
