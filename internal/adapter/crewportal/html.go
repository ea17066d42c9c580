package crewportal

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// looksLikeHTML reports whether a response body should be parsed as HTML.
func looksLikeHTML(body []byte, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("<"))
}

// visibleText returns the text a user would see. Non-HTML bodies are returned as is.
func visibleText(body []byte, contentType string) string {
	if !looksLikeHTML(body, contentType) {
		return string(body)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return string(body)
	}
	doc.Find("script, style, noscript, template").Remove()
	return doc.Text()
}

// isLoginForm reports whether an HTML body is the portal's login page.
func isLoginForm(body []byte, contentType string) bool {
	if !looksLikeHTML(body, contentType) {
		return false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return false
	}
	return doc.Find(`input[type="password"], input[type="PASSWORD"], input[name="password"]`).Length() > 0
}
