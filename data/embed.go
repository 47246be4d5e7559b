// Package data holds the default hotel shipped inside the binary.
package data

import (
	"embed"
	"io/fs"
)

//go:embed rooms commands
var assets embed.FS

// Rooms returns the built-in room assets.
func Rooms() fs.FS {
	return mustSub("rooms")
}

// Commands returns the built-in command assets.
func Commands() fs.FS {
	return mustSub("commands")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(assets, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
