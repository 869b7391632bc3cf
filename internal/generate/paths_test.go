package generate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputPath_MirrorsRelativePath(t *testing.T) {
	require.Equal(t, filepath.Join("out", "app.js")+".html", OutputPath("out", "app.js"))
	require.Equal(t, filepath.Join("out", "lib", "util.js")+".html", OutputPath("out", filepath.Join("lib", "util.js")))
}

func TestAssetPrefix_Depth(t *testing.T) {
	require.Equal(t, "", AssetPrefix("app.js"))
	require.Equal(t, "../", AssetPrefix(filepath.Join("lib", "util.js")))
	require.Equal(t, "../../", AssetPrefix(filepath.Join("lib", "deep", "x.js")))
}
