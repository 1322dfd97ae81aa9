package runcmd

// Version is the release of the runcmd module.
const Version = "0.1.0"
