package worker

// Version is the workers CLI version. Overridden at build time with
// -ldflags "-X github.com/roach88/workers/internal/worker.Version=...".
var Version = "0.1.0"
