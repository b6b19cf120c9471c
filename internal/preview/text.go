package preview

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"glance/internal/errors"
	"glance/pkg/types"
)

// loadText reads at most size.LineCap() lines. Line terminators ("\n" or
// "\r\n") are stripped; a final line without terminator is kept.
func loadText(path string, size types.Size) (*Text, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.FromOS(err, "cannot open file", path)
	}
	defer f.Close()

	lines, truncated, err := readLines(f, size.LineCap())
	if err != nil {
		return nil, errors.NewFileError("cannot read text", path, errors.KindOf(err), err)
	}
	return &Text{Lines: lines, Truncated: truncated}, nil
}

// readLines returns up to limit lines from r (all of them when limit is
// zero) and whether more input remained.
func readLines(r io.Reader, limit int) ([]string, bool, error) {
	br := bufio.NewReader(r)
	lines := []string{}
	for limit == 0 || len(lines) < limit {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if !utf8.ValidString(line) {
				return nil, false, errors.NewFileError("stream did not contain valid UTF-8", "", errors.DecodeFailed, nil)
			}
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, false, nil
		}
		if err != nil {
			return nil, false, err
		}
	}
	_, err := br.Peek(1)
	return lines, err == nil, nil
}

// isUTF8File reports whether the whole file decodes as UTF-8. It streams
// the file so memory stays bounded regardless of its size.
func isUTF8File(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errors.FromOS(err, "cannot open file", path)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 64*1024)
	for {
		r, width, err := br.ReadRune()
		if err == io.EOF {
			return true, nil
		}
		if err != nil {
			return false, errors.FromOS(err, "cannot read file", path)
		}
		if r == utf8.RuneError && width == 1 {
			return false, nil
		}
	}
}
