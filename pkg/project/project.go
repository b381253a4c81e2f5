// Package project carries the build identity shared by the server and CLI.
package project

import "github.com/carlmjohnson/versioninfo"

// Name is the canonical server and binary name.
const Name = "refspan"

// Version reports the build version from embedded VCS metadata.
func Version() string {
	return versioninfo.Short()
}
