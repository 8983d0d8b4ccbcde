package vm

import "fmt"

// Kind identifies one of the CHIP-8 instructions. The set is closed, every
// value between KindSys and KindLoadRegistersIndex has a decoder pattern.
type Kind uint8

// CHIP-8 instruction kinds, in opcode order.
const (
	KindSys                   Kind = iota // 0nnn SYS addr
	KindClearDisplay                      // 00E0 CLS
	KindReturn                            // 00EE RET
	KindJump                              // 1nnn JP addr
	KindCall                              // 2nnn CALL addr
	KindSkipEqualByte                     // 3xkk SE Vx, byte
	KindSkipNotEqualByte                  // 4xkk SNE Vx, byte
	KindSkipEqualRegisters                // 5xy0 SE Vx, Vy
	KindLoadByte                          // 6xkk LD Vx, byte
	KindAddByte                           // 7xkk ADD Vx, byte
	KindLoadRegister                      // 8xy0 LD Vx, Vy
	KindOr                                // 8xy1 OR Vx, Vy
	KindAnd                               // 8xy2 AND Vx, Vy
	KindXor                               // 8xy3 XOR Vx, Vy
	KindAddCarry                          // 8xy4 ADD Vx, Vy
	KindSubBorrow                         // 8xy5 SUB Vx, Vy
	KindShiftRight                        // 8xy6 SHR Vx {, Vy}
	KindSubnBorrow                        // 8xy7 SUBN Vx, Vy
	KindShiftLeft                         // 8xyE SHL Vx {, Vy}
	KindSkipNotEqualRegisters             // 9xy0 SNE Vx, Vy
	KindLoadIndex                         // Annn LD I, addr
	KindJumpRegister                      // Bnnn JP V0, addr
	KindRandom                            // Cxkk RND Vx, byte
	KindDraw                              // Dxyn DRW Vx, Vy, nibble
	KindSkipKeyPressed                    // Ex9E SKP Vx
	KindSkipKeyNotPressed                 // ExA1 SKNP Vx
	KindLoadDelayTimer                    // Fx07 LD Vx, DT
	KindWaitKey                           // Fx0A LD Vx, K
	KindSetDelayTimer                     // Fx15 LD DT, Vx
	KindSetSoundTimer                     // Fx18 LD ST, Vx
	KindAddIndex                          // Fx1E ADD I, Vx
	KindLoadFont                          // Fx29 LD F, Vx
	KindLoadBCD                           // Fx33 LD B, Vx
	KindStoreRegisters                    // Fx55 LD [I], Vx
	KindLoadRegistersIndex                // Fx65 LD Vx, [I]

	kindCount
)

var kindNames = [kindCount]string{
	KindSys:                   "SYS",
	KindClearDisplay:          "CLS",
	KindReturn:                "RET",
	KindJump:                  "JP",
	KindCall:                  "CALL",
	KindSkipEqualByte:         "SE",
	KindSkipNotEqualByte:      "SNE",
	KindSkipEqualRegisters:    "SE",
	KindLoadByte:              "LD",
	KindAddByte:               "ADD",
	KindLoadRegister:          "LD",
	KindOr:                    "OR",
	KindAnd:                   "AND",
	KindXor:                   "XOR",
	KindAddCarry:              "ADD",
	KindSubBorrow:             "SUB",
	KindShiftRight:            "SHR",
	KindSubnBorrow:            "SUBN",
	KindShiftLeft:             "SHL",
	KindSkipNotEqualRegisters: "SNE",
	KindLoadIndex:             "LD",
	KindJumpRegister:          "JP",
	KindRandom:                "RND",
	KindDraw:                  "DRW",
	KindSkipKeyPressed:        "SKP",
	KindSkipKeyNotPressed:     "SKNP",
	KindLoadDelayTimer:        "LD",
	KindWaitKey:               "LD",
	KindSetDelayTimer:         "LD",
	KindSetSoundTimer:         "LD",
	KindAddIndex:              "ADD",
	KindLoadFont:              "LD",
	KindLoadBCD:               "LD",
	KindStoreRegisters:        "LD",
	KindLoadRegistersIndex:    "LD",
}

// Mnemonic returns the assembler mnemonic of the instruction kind.
func (k Kind) Mnemonic() string {
	if k >= kindCount {
		return ""
	}
	return kindNames[k]
}

// String returns the mnemonic, or a numeric representation for unknown kinds.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Instruction is a decoded opcode word with its operand fields extracted.
type Instruction struct {
	Kind   Kind
	Opcode uint16

	X   uint8  // second nibble, register index
	Y   uint8  // third nibble, register index
	N   uint8  // last nibble, sprite height
	KK  uint8  // low byte, immediate
	NNN uint16 // low 12 bits, address
}

// String returns the mnemonic followed by the raw opcode word.
func (i Instruction) String() string {
	return fmt.Sprintf("%s (%04X)", i.Kind, i.Opcode)
}
