package cli

// Version is the build version, overridden at link time with
// -ldflags "-X github.com/Fepozopo/textools/pkg/cli.Version=1.2.3".
var Version = "0.1.0"
