package extract

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// extractText returns the file's raw bytes decoded as UTF-8, verbatim.
func extractText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s is not valid UTF-8 text", path)
	}
	return string(b), nil
}
