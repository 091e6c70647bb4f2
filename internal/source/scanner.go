package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir discovers dataset files directly under dataDir: nested daily JSON
// files and flat BWP workbooks. Temporary Excel lock files ("~$...") are
// skipped. A missing directory yields no files rather than an error, so a
// fresh install degrades to the empty-dataset behavior.
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []DiscoveredFile
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		path := filepath.Join(dataDir, e.Name())
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json":
			files = append(files, DiscoveredFile{Path: path, Kind: KindJSON})
		case ".xlsx", ".xls":
			files = append(files, DiscoveredFile{Path: path, Kind: KindXLSX})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ParseFile routes a discovered file to the parser for its format.
func ParseFile(df DiscoveredFile) ParseResult {
	if df.Kind == KindXLSX {
		return ParseXLSXFile(df.Path)
	}
	return ParseJSONFile(df.Path)
}
