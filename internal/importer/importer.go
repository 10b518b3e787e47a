package importer

import (
	"fmt"
	"os"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Convert turns saved HTML into markdown ready for the publishing pipeline.
func Convert(html []byte) (string, error) {
	md, err := htmltomarkdown.ConvertString(string(html))
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return md, nil
}

// ConvertFile reads an HTML file and converts it to markdown.
func ConvertFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Convert(data)
}
