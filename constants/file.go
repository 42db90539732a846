package constants

import "strings"

// PDFExt is the only document extension the extraction chain accepts.
const PDFExt = "pdf"

// OutputFormats holds the supported result formats, in documentation order.
var OutputFormats = []string{"json", "jsonl", "csv", "html"}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDFExt reports whether ext (with or without a leading dot) is a PDF extension.
func IsPDFExt(ext string) bool {
	return NormalizeExt(ext) == PDFExt
}

// IsOutputFormat reports whether name is one of the supported output formats.
func IsOutputFormat(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range OutputFormats {
		if name == f {
			return true
		}
	}
	return false
}
