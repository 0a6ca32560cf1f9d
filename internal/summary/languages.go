package summary

import (
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// commonExtensions is the fast path for the file types that dominate most
// histories; everything else goes through enry's full detection.
var commonExtensions = []string{
	".go", ".py", ".js", ".ts", ".jsx", ".tsx", ".java", ".rs", ".rb",
	".php", ".c", ".cpp", ".h", ".cs", ".swift", ".kt", ".scala", ".sql",
	".sh", ".yaml", ".yml", ".json", ".html", ".css", ".scss", ".md",
	".toml", ".proto", ".vue", ".svelte",
}

// LanguageIndex maps file paths to programming languages. It is built
// once at startup and immutable afterwards; pass it by reference to
// whichever component needs it.
type LanguageIndex struct {
	byExt map[string]string
}

// NewLanguageIndex precomputes the common-extension table through enry.
func NewLanguageIndex() *LanguageIndex {
	byExt := make(map[string]string, len(commonExtensions))
	for _, ext := range commonExtensions {
		if lang, ok := enry.GetLanguageByExtension("x" + ext); ok {
			byExt[ext] = lang
		}
	}
	return &LanguageIndex{byExt: byExt}
}

// Detect returns the language of a changed file, or "" for paths that are
// vendored or unrecognized. Renamed paths ("old => new") resolve to the
// new name.
func (ix *LanguageIndex) Detect(path string) string {
	if i := strings.LastIndex(path, " => "); i >= 0 {
		path = path[i+4:]
	}
	if enry.IsVendor(path) {
		return ""
	}
	if lang, ok := ix.byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return enry.GetLanguage(filepath.Base(path), nil)
}
