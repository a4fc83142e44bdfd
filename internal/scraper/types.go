package scraper

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion
const MaxHTMLSize = 10 * 1024 * 1024

// ValidateHTML checks HTML size and returns error if empty or too large
func ValidateHTML(htmlStr string) error {
	if len(htmlStr) == 0 {
		return fmt.Errorf("html content required")
	}
	if len(htmlStr) > MaxHTMLSize {
		return fmt.Errorf("html exceeds maximum size of %d bytes", MaxHTMLSize)
	}
	return nil
}

// DetectCharset guesses the charset of raw bytes, utf-8 when unsure
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// DecodeBody converts a response body to UTF-8 text.
// A charset declared in contentType wins; otherwise it is detected.
func DecodeBody(data []byte, contentType string) (string, error) {
	if len(data) > MaxHTMLSize {
		return "", fmt.Errorf("body exceeds maximum size of %d bytes", MaxHTMLSize)
	}

	label := declaredCharset(contentType)
	if label == "" {
		label = DetectCharset(data)
	}

	if label == "utf-8" || label == "utf8" || label == "ascii" || label == "us-ascii" {
		return string(data), nil
	}

	reader, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		// Unknown label: let x/net sniff meta tags and BOMs
		reader, err = charset.NewReader(bytes.NewReader(data), contentType)
		if err != nil {
			return string(data), nil
		}
	}

	decoded, err := io.ReadAll(io.LimitReader(reader, MaxHTMLSize))
	if err != nil {
		return "", fmt.Errorf("decode %s body: %w", label, err)
	}
	return string(decoded), nil
}

func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(params["charset"])
}

// LoadHTML parses UTF-8 HTML into a goquery document
func LoadHTML(htmlStr string) (*goquery.Document, error) {
	if err := ValidateHTML(htmlStr); err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
}

// LoadHTMLNode parses UTF-8 HTML into an xpath-compatible node
func LoadHTMLNode(htmlStr string) (*html.Node, error) {
	if err := ValidateHTML(htmlStr); err != nil {
		return nil, err
	}
	return htmlquery.Parse(strings.NewReader(htmlStr))
}

// NormalizeWhitespace collapses runs of whitespace into one space
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Deduplicate removes duplicate strings while preserving order
func Deduplicate(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
