package scalarcpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeWordLE(word uint32) []byte {
	return []byte{byte(word), byte(word >> 8), byte(word >> 16), byte(word >> 24)}
}

// encodeR builds an R-type instruction word (opRType).
func encodeR(funct7, rs2, rs1, funct3, rd uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opRType
}

// encodeI builds an I-type instruction word (opIType).
func encodeI(imm uint32, rs1, funct3, rd uint32) uint32 {
	return (imm&0xfff)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opIType
}

func TestDecodeRType(t *testing.T) {
	word := encodeR(0b0100000, 3, 2, 0b000, 10) // sub x10, x2, x3
	inst := Decode(word)
	require.Equal(t, uint32(opRType), inst.Opcode)
	require.EqualValues(t, 10, inst.Rd)
	require.EqualValues(t, 2, inst.Rs1)
	require.EqualValues(t, 3, inst.Rs2)
	require.EqualValues(t, 0b0100000, inst.Funct7)
}

func TestDecodeIImmSignExtends(t *testing.T) {
	word := encodeI(0xFFF, 0, 0b000, 10) // addi x10, x0, -1
	inst := Decode(word)
	require.EqualValues(t, -1, inst.ImmI)
}

func TestAluAddSubAndOr(t *testing.T) {
	require.EqualValues(t, 7, aluR(0b000, 0, 3, 4))
	require.EqualValues(t, -1, aluR(0b000, 0b0100000, 3, 4))
	require.EqualValues(t, 0b0110, aluR(0b111, 0, 0b0110, 0b1110))
	require.EqualValues(t, 0b1110, aluR(0b110, 0, 0b0110, 0b1110))
}

func TestAluArithmeticRightShiftSignExtends(t *testing.T) {
	got := aluR(0b101, 0b0100000, -8, 1) // sra: -8 >> 1 == -4
	require.EqualValues(t, -4, got)
}

func TestAluLogicalRightShiftDoesNotSignExtend(t *testing.T) {
	got := aluR(0b101, 0, -8, 1) // srl on a negative pattern
	require.EqualValues(t, int32(0xFFFFFFF8>>1), got)
}

func TestCPURunAddAndStop(t *testing.T) {
	// addi a0, x0, 5 ; addi a1, x0, 7 ; terminator
	var instMem []byte
	instMem = append(instMem, encodeWordLE(encodeI(5, 0, 0b000, regA0))...)
	instMem = append(instMem, encodeWordLE(encodeI(7, 0, 0b000, regA1))...)
	instMem = append(instMem, encodeWordLE(0)...)

	cpu := NewCPU(nil)
	a0, a1, err := cpu.Run(instMem)
	require.NoError(t, err)
	require.EqualValues(t, 5, a0)
	require.EqualValues(t, 7, a1)
}

func TestCPUX0StaysZero(t *testing.T) {
	var instMem []byte
	instMem = append(instMem, encodeWordLE(encodeI(9, 0, 0b000, 0))...)
	instMem = append(instMem, encodeWordLE(0)...)

	cpu := NewCPU(nil)
	_, _, err := cpu.Run(instMem)
	require.NoError(t, err)
	require.EqualValues(t, 0, cpu.regs[0])
}

func TestLoadHexMemory(t *testing.T) {
	mem, err := LoadHexMemory(strings.NewReader("05\n00\n00\n00\n"))
	require.NoError(t, err)
	require.Equal(t, []byte{0x05, 0x00, 0x00, 0x00}, mem)
}

func TestLoadHexMemoryRejectsInvalidToken(t *testing.T) {
	_, err := LoadHexMemory(strings.NewReader("zz\n"))
	require.Error(t, err)
}
