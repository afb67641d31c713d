// Package echronos holds module-wide metadata for the rtosgen tool.
package echronos

// Version is the rtosgen release version.
const Version = "0.3.0"
