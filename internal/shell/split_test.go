package shell

import (
	"reflect"
	"testing"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "single word", input: "milk", want: []string{"milk"}},
		{name: "plain words", input: "1 buy milk", want: []string{"1", "buy", "milk"}},
		{name: "double quoted", input: `1 "buy milk"`, want: []string{"1", "buy milk"}},
		{name: "single quoted", input: "1 'buy milk'", want: []string{"1", "buy milk"}},
		{name: "apostrophe opens a quote", input: `it's`, wantErr: true},
		{name: "escaped space", input: `buy\ milk`, want: []string{"buy milk"}},
		{name: "escaped quote inside double", input: `"say \"hi\""`, want: []string{`say "hi"`}},
		{name: "empty quoted field", input: `""`, want: []string{""}},
		{name: "tabs and runs of spaces", input: "a \t  b", want: []string{"a", "b"}},
		{name: "unterminated double quote", input: `"open`, wantErr: true},
		{name: "unterminated single quote", input: "'open", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitArgs(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitArgs(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitArgs(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}
