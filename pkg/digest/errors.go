package digest

import "fmt"

// EncodingError reports an identity seed that is not valid UTF-8 text.
type EncodingError struct {
	// Offset of the first byte that does not start a valid rune.
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("identity seed is not valid UTF-8 (invalid byte at offset %d)", e.Offset)
}
