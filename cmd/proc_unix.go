//go:build unix

package cmd

import "github.com/timvw/ranger-drop/internal/proc"

func procFinder() proc.Finder {
	return proc.System{}
}
