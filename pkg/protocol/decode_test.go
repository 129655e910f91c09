package protocol

import (
	"reflect"
	"testing"
)

func TestParseEntries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "empty input",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "status response",
			input: "type=m&id=5&bl=150&mp=1&cp=1",
			want:  map[string]string{"type": "m", "id": "5", "bl": "150", "mp": "1", "cp": "1"},
		},
		{
			name:  "later duplicate wins",
			input: "a=1&a=2",
			want:  map[string]string{"a": "2"},
		},
		{
			name:  "missing value",
			input: "flag&b=",
			want:  map[string]string{"flag": "", "b": ""},
		},
		{
			name:  "percent decoding keeps plus",
			input: "na=a%20b+c&x=%E2%9C%93",
			want:  map[string]string{"na": "a b+c", "x": "✓"},
		},
		{
			name:  "invalid escape kept raw",
			input: "na=100%",
			want:  map[string]string{"na": "100%"},
		},
		{
			name:  "empty segments skipped",
			input: "a=1&&b=2&",
			want:  map[string]string{"a": "1", "b": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEntries(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseEntries(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFields_KeepsOrder(t *testing.T) {
	keys, values := ParseFields("vv=3&et=18&et=19")

	if !reflect.DeepEqual(keys, []string{"vv", "et", "et"}) {
		t.Fatalf("keys = %v", keys)
	}
	if !reflect.DeepEqual(values, []string{"3", "18", "19"}) {
		t.Fatalf("values = %v", values)
	}
}
