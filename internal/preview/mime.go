package preview

import (
	"mime"
	"path/filepath"
	"strings"
)

const octetStream = "application/octet-stream"

// Extension types registered on top of the platform's table so that
// classification does not depend on which mime.types files are installed.
var extensionTypes = map[string]string{
	".txt":      "text/plain",
	".log":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".csv":      "text/csv",
	".tsv":      "text/tab-separated-values",
	".html":     "text/html",
	".htm":      "text/html",
	".css":      "text/css",
	".xml":      "text/xml",
	".yaml":     "text/x-yaml",
	".yml":      "text/x-yaml",
	".toml":     "text/x-toml",
	".ini":      "text/plain",
	".go":       "text/x-go",
	".rs":       "text/x-rust",
	".py":       "text/x-python",
	".c":        "text/x-c",
	".h":        "text/x-c",
	".cpp":      "text/x-c++",
	".java":     "text/x-java",
	".sh":       "text/x-shellscript",
	".png":      "image/png",
	".jpg":      "image/jpeg",
	".jpeg":     "image/jpeg",
	".gif":      "image/gif",
	".bmp":      "image/bmp",
	".tif":      "image/tiff",
	".tiff":     "image/tiff",
	".webp":     "image/webp",
	".svg":      "image/svg+xml",
	".svgz":     "image/svg+xml",
	".ico":      "image/x-icon",
	".json":     "application/json",
	".pdf":      "application/pdf",
	".zip":      "application/zip",
	".gz":       "application/gzip",
	".tar":      "application/x-tar",
	".mp3":      "audio/mpeg",
	".mp4":      "video/mp4",
}

func init() {
	for ext, typ := range extensionTypes {
		_ = mime.AddExtensionType(ext, typ)
	}
}

// GuessType guesses a type/subtype pair from the path's extension. The
// file is never opened. Unknown extensions yield application/octet-stream.
func GuessType(path string) (string, string) {
	ext := strings.ToLower(filepath.Ext(path))
	full := octetStream
	if ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			full = t
		}
	}
	if mediaType, _, err := mime.ParseMediaType(full); err == nil {
		full = mediaType
	}
	typ, sub, ok := strings.Cut(full, "/")
	if !ok {
		return "application", "octet-stream"
	}
	return typ, sub
}
