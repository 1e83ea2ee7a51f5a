package pretty

// Depth returns the deepest container nesting in a JSON text. Scalars
// have depth zero, `[1]` has depth one and `{"a":[1]}` depth two.
// Brackets inside string literals are ignored; nothing is validated.
func Depth(src []byte) int {
	depth, deepest := 0, 0
	inString, escaped := false, false

	for _, c := range src {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > deepest {
				deepest = depth
			}
		case '}', ']':
			depth--
		}
	}
	return deepest
}
