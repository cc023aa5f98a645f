// Package filename splits media filenames into root and extension and builds
// the timestamped names the renamer emits.
package filename

import (
	"path/filepath"
	"strings"
)

// Components is a filename split into its root and trailing extension.
// Ext is empty when the name carries no extension.
type Components struct {
	Root string
	Ext  string
}

// HasExt reports whether an extension was found.
func (c Components) HasExt() bool {
	return c.Ext != ""
}

// Join reassembles the name, adding the separator dot only when an extension
// is present.
func (c Components) Join() string {
	if c.Ext == "" {
		return c.Root
	}
	return c.Root + "." + c.Ext
}

// Split parses the last segment of p into root and extension. Any parent
// directory is kept verbatim in front of the returned root.
//
// A single leading dot marks a dot-file and belongs to the root. Dots inside
// the name are allowed; only the text after the last one is the extension.
// Names with consecutive dots, a trailing dot, or nothing after the dot-file
// marker are rejected and ok is false.
func Split(p string) (c Components, ok bool) {
	dir, name := splitDir(p)
	c, ok = splitName(name)
	if !ok {
		return Components{}, false
	}
	c.Root = dir + c.Root
	return c, true
}

// Root returns p without its extension, or false when p is malformed.
func Root(p string) (string, bool) {
	c, ok := Split(p)
	if !ok {
		return "", false
	}
	return c.Root, true
}

// Extension returns the extension of p. The second value is false both for
// malformed names and for names without an extension.
func Extension(p string) (string, bool) {
	c, ok := Split(p)
	if !ok || !c.HasExt() {
		return "", false
	}
	return c.Ext, true
}

// BaseRoot returns the root of the final path segment with no directory
// attached. This is the key companions are matched on.
func BaseRoot(p string) (string, bool) {
	_, name := splitDir(p)
	c, ok := splitName(name)
	if !ok {
		return "", false
	}
	return c.Root, true
}

func splitName(name string) (Components, bool) {
	if name == "" || strings.ContainsRune(name, '\n') {
		return Components{}, false
	}

	lead, body := "", name
	if body[0] == '.' {
		lead, body = ".", body[1:]
	}
	if body == "" ||
		strings.HasPrefix(body, ".") ||
		strings.HasSuffix(body, ".") ||
		strings.Contains(body, "..") {
		return Components{}, false
	}

	i := strings.LastIndexByte(body, '.')
	if i < 0 {
		return Components{Root: name}, true
	}
	return Components{Root: lead + body[:i], Ext: body[i+1:]}, true
}

// splitDir cuts p after its last separator. dir keeps the trailing separator
// so that dir+name == p.
func splitDir(p string) (dir, name string) {
	i := strings.LastIndexAny(p, "/"+string(filepath.Separator))
	return p[:i+1], p[i+1:]
}
