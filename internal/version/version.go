package version

// Version is the main version number that is being run at the moment.
// It is overridden at build time with -ldflags.
var Version = "0.1.0"
