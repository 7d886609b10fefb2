// ABOUTME: Standard filesystem path for the demo script
// ABOUTME: Resolves ~/.termprogress/demo.yaml, used when no -config flag is given

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".termprogress"
	scriptFileName = "demo.yaml"
)

// GlobalDir returns the user-global config directory (~/.termprogress/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// GlobalScriptFile returns the path of the user's demo script.
func GlobalScriptFile() string {
	return filepath.Join(GlobalDir(), scriptFileName)
}
