package domain

import "time"

// Result holds the captured output of a completed command execution.
type Result struct {
	RunID    string        // unique identifier for this run
	Stdout   []byte        // raw stdout
	Stderr   []byte        // raw stderr
	ExitCode int           // process exit code, not interpreted by the executor
	Duration time.Duration // wall-clock time until exit
}

// Request describes one command execution.
type Request struct {
	Command string        // shell command line, passed verbatim to the shell
	Dir     string        // working directory, empty for the current one
	Timeout time.Duration // hard deadline
	Stdin   []byte        // bytes written to the process input
}
