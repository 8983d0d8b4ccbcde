package vm

// wild matches every value of a nibble field in a pattern.
const wild = -1

// pattern describes an opcode by its four nibble fields, most significant first.
type pattern struct {
	nibbles [4]int8
	kind    Kind
}

// literals returns the count of fields that must match a fixed value.
func (p pattern) literals() int {
	n := 0
	for _, f := range p.nibbles {
		if f != wild {
			n++
		}
	}
	return n
}

func (p pattern) matchesField(field int, value uint8) bool {
	f := p.nibbles[field]
	return f == wild || uint8(f) == value
}

func (p pattern) matches(fields [4]uint8) bool {
	for i, v := range fields {
		if !p.matchesField(i, v) {
			return false
		}
	}
	return true
}

// patterns is the opcode table, one entry per instruction kind.
var patterns = [kindCount]pattern{
	{[4]int8{0x0, wild, wild, wild}, KindSys},
	{[4]int8{0x0, 0x0, 0xE, 0x0}, KindClearDisplay},
	{[4]int8{0x0, 0x0, 0xE, 0xE}, KindReturn},
	{[4]int8{0x1, wild, wild, wild}, KindJump},
	{[4]int8{0x2, wild, wild, wild}, KindCall},
	{[4]int8{0x3, wild, wild, wild}, KindSkipEqualByte},
	{[4]int8{0x4, wild, wild, wild}, KindSkipNotEqualByte},
	{[4]int8{0x5, wild, wild, 0x0}, KindSkipEqualRegisters},
	{[4]int8{0x6, wild, wild, wild}, KindLoadByte},
	{[4]int8{0x7, wild, wild, wild}, KindAddByte},
	{[4]int8{0x8, wild, wild, 0x0}, KindLoadRegister},
	{[4]int8{0x8, wild, wild, 0x1}, KindOr},
	{[4]int8{0x8, wild, wild, 0x2}, KindAnd},
	{[4]int8{0x8, wild, wild, 0x3}, KindXor},
	{[4]int8{0x8, wild, wild, 0x4}, KindAddCarry},
	{[4]int8{0x8, wild, wild, 0x5}, KindSubBorrow},
	{[4]int8{0x8, wild, wild, 0x6}, KindShiftRight},
	{[4]int8{0x8, wild, wild, 0x7}, KindSubnBorrow},
	{[4]int8{0x8, wild, wild, 0xE}, KindShiftLeft},
	{[4]int8{0x9, wild, wild, 0x0}, KindSkipNotEqualRegisters},
	{[4]int8{0xA, wild, wild, wild}, KindLoadIndex},
	{[4]int8{0xB, wild, wild, wild}, KindJumpRegister},
	{[4]int8{0xC, wild, wild, wild}, KindRandom},
	{[4]int8{0xD, wild, wild, wild}, KindDraw},
	{[4]int8{0xE, wild, 0x9, 0xE}, KindSkipKeyPressed},
	{[4]int8{0xE, wild, 0xA, 0x1}, KindSkipKeyNotPressed},
	{[4]int8{0xF, wild, 0x0, 0x7}, KindLoadDelayTimer},
	{[4]int8{0xF, wild, 0x0, 0xA}, KindWaitKey},
	{[4]int8{0xF, wild, 0x1, 0x5}, KindSetDelayTimer},
	{[4]int8{0xF, wild, 0x1, 0x8}, KindSetSoundTimer},
	{[4]int8{0xF, wild, 0x1, 0xE}, KindAddIndex},
	{[4]int8{0xF, wild, 0x2, 0x9}, KindLoadFont},
	{[4]int8{0xF, wild, 0x3, 0x3}, KindLoadBCD},
	{[4]int8{0xF, wild, 0x5, 0x5}, KindStoreRegisters},
	{[4]int8{0xF, wild, 0x6, 0x5}, KindLoadRegistersIndex},
}

// fieldOrder is the order in which nibble fields narrow down the candidates.
// The first and last nibble together separate all but the address and
// immediate forms.
var fieldOrder = [4]int{0, 3, 2, 1}

// Nibbles splits an opcode word into its four 4-bit fields, most significant first.
func Nibbles(word uint16) [4]uint8 {
	return [4]uint8{
		uint8(word>>12) & 0xF,
		uint8(word>>8) & 0xF,
		uint8(word>>4) & 0xF,
		uint8(word) & 0xF,
	}
}

// Decode resolves an opcode word to its instruction. The candidate set is
// filtered field by field until at most one pattern is left. A remaining
// candidate must match all of its fixed fields, if several remain after all
// fields were checked the most specific one wins.
func Decode(word uint16) (Instruction, error) {
	fields := Nibbles(word)

	candidates := make([]pattern, 0, len(patterns))
	candidates = append(candidates, patterns[:]...)

	for _, field := range fieldOrder {
		filtered := candidates[:0]
		for _, p := range candidates {
			if p.matchesField(field, fields[field]) {
				filtered = append(filtered, p)
			}
		}
		candidates = filtered
		if len(candidates) <= 1 {
			break
		}
	}

	p, ok := mostSpecific(candidates)
	if !ok || !p.matches(fields) {
		return Instruction{Opcode: word}, &IllegalOpcodeError{Opcode: word}
	}

	return Instruction{
		Kind:   p.kind,
		Opcode: word,
		X:      fields[1],
		Y:      fields[2],
		N:      fields[3],
		KK:     uint8(word),
		NNN:    word & 0x0FFF,
	}, nil
}

// mostSpecific returns the candidate with the highest number of fixed fields.
// It fails for an empty set and for ties.
func mostSpecific(candidates []pattern) (pattern, bool) {
	if len(candidates) == 0 {
		return pattern{}, false
	}

	best := candidates[0]
	tie := false
	for _, p := range candidates[1:] {
		switch {
		case p.literals() > best.literals():
			best = p
			tie = false
		case p.literals() == best.literals():
			tie = true
		}
	}
	return best, !tie
}
