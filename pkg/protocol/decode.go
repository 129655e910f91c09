package protocol

import "strings"

// Splits key-value text into decoded entries. Later duplicates win.
// A pair without = yields the key with an empty value.
func ParseEntries(text string) (entries map[string]string) {
	entries = make(map[string]string)
	if text == "" {
		return
	}

	for _, pair := range strings.Split(text, string(fieldSeparator)) {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, string(pairSeparator))
		entries[unescape(key)] = unescape(value)
	}
	return
}

// Splits a beacon into its fields in wire order, decoded
func ParseFields(text string) (keys []string, values []string) {
	if text == "" {
		return
	}

	for _, pair := range strings.Split(text, string(fieldSeparator)) {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, string(pairSeparator))
		keys = append(keys, unescape(key))
		values = append(values, unescape(value))
	}
	return
}
