package generate

import (
	"path/filepath"
	"strings"
)

// OutputPath computes the destination for a source file: the relative path is
// mirrored under the output root with an ".html" suffix appended to the
// original filename.
func OutputPath(outputRoot, rel string) string {
	return filepath.Join(outputRoot, rel) + ".html"
}

// AssetPrefix computes the relative path prefix from a page back to the
// output root, where shared assets live.
func AssetPrefix(rel string) string {
	dir := filepath.Dir(rel)
	if dir == "." {
		return ""
	}
	depth := strings.Count(filepath.ToSlash(dir), "/") + 1
	return strings.Repeat("../", depth)
}
