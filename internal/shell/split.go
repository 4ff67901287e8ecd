package shell

import "fmt"

// splitArgs splits a command line into fields, honoring single and double
// quotes and backslash escapes, so descriptions with spaces survive.
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur []byte
	inField := false
	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
				continue
			}
			if quote == '"' && c == '\\' && i+1 < len(line) {
				i++
				cur = append(cur, line[i])
				continue
			}
			cur = append(cur, c)
		case c == '\'' || c == '"':
			quote = c
			inField = true
		case c == '\\' && i+1 < len(line):
			i++
			cur = append(cur, line[i])
			inField = true
		case c == ' ' || c == '\t':
			if inField {
				args = append(args, string(cur))
				cur = cur[:0]
				inField = false
			}
		default:
			cur = append(cur, c)
			inField = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inField {
		args = append(args, string(cur))
	}

	return args, nil
}
