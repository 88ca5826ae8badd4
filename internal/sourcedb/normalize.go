package sourcedb

import "strings"

const bom = "\xef\xbb\xbf"

// StripBOM removes a leading UTF-8 byte-order mark and reports whether one
// was present.
func StripBOM(text string) (string, bool) {
	if strings.HasPrefix(text, bom) {
		return text[len(bom):], true
	}
	return text, false
}

// NormalizeCRLF rewrites every "\r\n" to "\n", leaving lone '\r' bytes
// untouched, and reports whether anything changed. Line-start tables key off
// '\n' alone, so callers feeding text from disk normalize first to keep byte
// offsets stable across platforms.
func NormalizeCRLF(text string) (string, bool) {
	if !strings.Contains(text, "\r\n") {
		return text, false
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			b.WriteByte('\n')
			i++
			continue
		}
		b.WriteByte(text[i])
	}
	return b.String(), true
}
