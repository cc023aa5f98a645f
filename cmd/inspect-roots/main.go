// Command inspect-roots prints how the files under a path split into root and
// extension, grouped the way companion files are matched.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mydehq/mediafilename/internal/filename"
	"github.com/mydehq/mediafilename/internal/finder"
)

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	paths, err := finder.Find(root, finder.Options{
		OnError: func(path string, err error) {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, err)
		},
	})
	if err != nil {
		fmt.Printf("Error walking path: %v\n", err)
		os.Exit(1)
	}

	var order []string
	groups := make(map[string][]string)
	for _, p := range paths {
		name := filepath.Base(p)
		c, ok := filename.Split(name)
		if !ok {
			fmt.Printf("File: %s\nUNPARSEABLE\n\n", name)
			continue
		}
		if _, seen := groups[c.Root]; !seen {
			order = append(order, c.Root)
		}
		groups[c.Root] = append(groups[c.Root], c.Ext)
	}

	for _, r := range order {
		fmt.Printf("Root: %s\nExtensions: %v\n\n", r, groups[r])
	}
}
