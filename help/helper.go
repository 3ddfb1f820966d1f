package help

import (
	"os"
	"os/user"
	"path/filepath"
)

func HomeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if u, err := user.Current(); err == nil {
		return u.HomeDir
	}
	// Windows fallback
	if h := os.Getenv("USERPROFILE"); h != "" {
		return h
	}
	return "." // last resort: current dir
}

// DataDir is where kubebucket keeps its scores and other state when no
// explicit path is given.
func DataDir() string {
	return filepath.Join(HomeDir(), ".kubebucket")
}
