// Package consts provides version and release information for this project.
package consts

// Version is set at compile time
var Version = "dev"

// Used when checking for updates
const (
	Owner = "Ddoupal"
	Repo  = "IPMonitor"
)
