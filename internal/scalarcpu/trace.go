package scalarcpu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// LoadHexMemory reads a newline-separated stream of two-hex-digit
// byte values — one per line, four lines per instruction, little-endian
// — into a flat byte slice (cpusim.cpp's instruction-memory loader).
func LoadHexMemory(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	var mem []byte

	for scanner.Scan() {
		tok := scanner.Text()
		if tok == "" {
			continue
		}
		b, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("scalarcpu: invalid hex byte %q: %w", tok, err)
		}
		mem = append(mem, byte(b))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scalarcpu: reading hex memory: %w", err)
	}
	return mem, nil
}
