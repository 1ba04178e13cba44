package procsim

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// InstructionSource is the host-supplied trace reader collaborator
// (§6's read_instruction): Next returns false once the trace is
// exhausted. Tag and the five stage timestamps are not read from the
// source — Fetch assigns and stamps them.
type InstructionSource interface {
	Next() (Instruction, bool)
}

// TextTraceSource reads a simple whitespace-delimited trace format, one
// instruction per line: "op_code dest_reg src_reg0 src_reg1". This is
// the repository's own minimal stand-in for the course harness's binary
// trace reader (out of scope per spec.md, but something concrete is
// needed to make the CLI runnable end to end).
type TextTraceSource struct {
	scanner *bufio.Scanner
}

// NewTextTraceSource wraps r as an InstructionSource.
func NewTextTraceSource(r io.Reader) *TextTraceSource {
	return &TextTraceSource{scanner: bufio.NewScanner(r)}
}

// Next implements InstructionSource, skipping blank lines and lines
// beginning with '#'.
func (s *TextTraceSource) Next() (Instruction, bool) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			continue
		}

		values := make([]int, 4)
		ok := true
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				ok = false
				break
			}
			values[i] = v
		}
		if !ok {
			continue
		}

		return Instruction{
			OpCode:  values[0],
			DestReg: values[1],
			SrcReg:  [2]int{values[2], values[3]},
		}, true
	}
	return Instruction{}, false
}

// SliceSource is an in-memory InstructionSource, used heavily by tests to
// drive specific instruction streams without a backing file.
type SliceSource struct {
	insts []Instruction
	pos   int
}

// NewSliceSource returns a source that yields insts in order.
func NewSliceSource(insts []Instruction) *SliceSource {
	return &SliceSource{insts: insts}
}

// Next implements InstructionSource.
func (s *SliceSource) Next() (Instruction, bool) {
	if s.pos >= len(s.insts) {
		return Instruction{}, false
	}
	inst := s.insts[s.pos]
	s.pos++
	return inst, true
}
