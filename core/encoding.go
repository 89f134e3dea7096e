// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

import (
	"sync"
)

// Handler executes one decoded instruction. The program counter has
// already advanced past the instruction word w; two-word instructions
// fetch their second word themselves. The cycle cost is returned.
type Handler func(c *Core, w uint16) (cycles int, err error)

// Encoding describes one instruction: the bits that identify it, how its
// operands are laid out, and how it executes.
type Encoding struct {
	Name    string  // Mnemonic.
	Mask    uint16  // Bits of the word that identify the instruction.
	Pattern uint16  // Value of the masked bits.
	Args    ArgKind // Operand layout.
	Syntax  string  // Disassembly template.
	Words   int     // Instruction length, in flash words.
	Exec    Handler // Executor.
}

// Match returns true if the word is an instance of the encoding.
func (enc *Encoding) Match(w uint16) bool {
	return w&enc.Mask == enc.Pattern
}

func (enc *Encoding) String() string {
	return enc.Name
}

// illegal is the decode of every word that matches no encoding.
var illegal = &Encoding{
	Name:  "illegal",
	Words: 1,
	Exec:  execIllegal,
}

// encodings is in priority order, but no two entries may overlap.
// It is filled in by init(), as the handlers decode the words that
// follow skip instructions.
var encodings []*Encoding

var (
	decodeOnce  sync.Once
	decodeTable [1 << 16]*Encoding
)

// Encodings returns the instruction table.
func Encodings() []*Encoding {
	return encodings
}

// Decode returns the encoding of an instruction word. Words that match
// no encoding decode as the illegal instruction.
func Decode(w uint16) *Encoding {
	decodeOnce.Do(func() {
		for word := range len(decodeTable) {
			decodeTable[word] = illegal
			for _, enc := range encodings {
				if enc.Match(uint16(word)) {
					decodeTable[word] = enc
					break
				}
			}
		}
	})

	return decodeTable[w]
}

// Lookup finds an encoding by mnemonic.
func Lookup(name string) (enc *Encoding, ok bool) {
	for _, enc = range encodings {
		if enc.Name == name {
			ok = true
			return
		}
	}

	enc = nil
	return
}

func init() {
	encodings = []*Encoding{
		{"nop", 0xffff, 0x0000, ARGS_NONE, "nop", 1, execNop},
		{"movw", 0xff00, 0x0100, ARGS_PAIR_PAIR, "movw r{d}, r{r}", 1, execMovw},
		{"muls", 0xff00, 0x0200, ARGS_HI_HI, "muls r{d}, r{r}", 1, execMuls},
		{"mulsu", 0xff88, 0x0300, ARGS_MID_MID, "mulsu r{d}, r{r}", 1, execMulsu},
		{"fmul", 0xff88, 0x0308, ARGS_MID_MID, "fmul r{d}, r{r}", 1, unimplemented("fmul")},
		{"fmuls", 0xff88, 0x0380, ARGS_MID_MID, "fmuls r{d}, r{r}", 1, unimplemented("fmuls")},
		{"fmulsu", 0xff88, 0x0388, ARGS_MID_MID, "fmulsu r{d}, r{r}", 1, unimplemented("fmulsu")},

		{"cpc", 0xfc00, 0x0400, ARGS_RD_RR, "cpc r{d}, r{r}", 1, execCpc},
		{"sbc", 0xfc00, 0x0800, ARGS_RD_RR, "sbc r{d}, r{r}", 1, execSbc},
		{"add", 0xfc00, 0x0c00, ARGS_RD_RR, "add r{d}, r{r}", 1, execAdd},
		{"cpse", 0xfc00, 0x1000, ARGS_RD_RR, "cpse r{d}, r{r}", 1, execCpse},
		{"cp", 0xfc00, 0x1400, ARGS_RD_RR, "cp r{d}, r{r}", 1, execCp},
		{"sub", 0xfc00, 0x1800, ARGS_RD_RR, "sub r{d}, r{r}", 1, execSub},
		{"adc", 0xfc00, 0x1c00, ARGS_RD_RR, "adc r{d}, r{r}", 1, execAdc},
		{"and", 0xfc00, 0x2000, ARGS_RD_RR, "and r{d}, r{r}", 1, execAnd},
		{"eor", 0xfc00, 0x2400, ARGS_RD_RR, "eor r{d}, r{r}", 1, execEor},
		{"or", 0xfc00, 0x2800, ARGS_RD_RR, "or r{d}, r{r}", 1, execOr},
		{"mov", 0xfc00, 0x2c00, ARGS_RD_RR, "mov r{d}, r{r}", 1, execMov},
		{"mul", 0xfc00, 0x9c00, ARGS_RD_RR, "mul r{d}, r{r}", 1, execMul},

		{"cpi", 0xf000, 0x3000, ARGS_RD_K8, "cpi r{d}, {k}", 1, execCpi},
		{"sbci", 0xf000, 0x4000, ARGS_RD_K8, "sbci r{d}, {k}", 1, execSbci},
		{"subi", 0xf000, 0x5000, ARGS_RD_K8, "subi r{d}, {k}", 1, execSubi},
		{"ori", 0xf000, 0x6000, ARGS_RD_K8, "ori r{d}, {k}", 1, execOri},
		{"andi", 0xf000, 0x7000, ARGS_RD_K8, "andi r{d}, {k}", 1, execAndi},

		{"ldd.z", 0xd208, 0x8000, ARGS_RD_Q, "ldd r{d}, Z+{q}", 1, execLdd(REG_Z)},
		{"ldd.y", 0xd208, 0x8008, ARGS_RD_Q, "ldd r{d}, Y+{q}", 1, execLdd(REG_Y)},
		{"std.z", 0xd208, 0x8200, ARGS_RD_Q, "std Z+{q}, r{d}", 1, execStd(REG_Z)},
		{"std.y", 0xd208, 0x8208, ARGS_RD_Q, "std Y+{q}, r{d}", 1, execStd(REG_Y)},

		{"lds", 0xfe0f, 0x9000, ARGS_RD_K16, "lds r{d}, {k}", 2, execLds},
		{"ld.z+", 0xfe0f, 0x9001, ARGS_RD, "ld r{d}, Z+", 1, execLd(REG_Z, POST_INC)},
		{"ld.-z", 0xfe0f, 0x9002, ARGS_RD, "ld r{d}, -Z", 1, execLd(REG_Z, PRE_DEC)},
		{"lpm.z", 0xfe0f, 0x9004, ARGS_RD, "lpm r{d}, Z", 1, execLpm(false, false)},
		{"lpm.z+", 0xfe0f, 0x9005, ARGS_RD, "lpm r{d}, Z+", 1, execLpm(false, true)},
		{"elpm.z", 0xfe0f, 0x9006, ARGS_RD, "elpm r{d}, Z", 1, execLpm(true, false)},
		{"elpm.z+", 0xfe0f, 0x9007, ARGS_RD, "elpm r{d}, Z+", 1, execLpm(true, true)},
		{"ld.y+", 0xfe0f, 0x9009, ARGS_RD, "ld r{d}, Y+", 1, execLd(REG_Y, POST_INC)},
		{"ld.-y", 0xfe0f, 0x900a, ARGS_RD, "ld r{d}, -Y", 1, execLd(REG_Y, PRE_DEC)},
		{"ld.x", 0xfe0f, 0x900c, ARGS_RD, "ld r{d}, X", 1, execLd(REG_X, PLAIN)},
		{"ld.x+", 0xfe0f, 0x900d, ARGS_RD, "ld r{d}, X+", 1, execLd(REG_X, POST_INC)},
		{"ld.-x", 0xfe0f, 0x900e, ARGS_RD, "ld r{d}, -X", 1, execLd(REG_X, PRE_DEC)},
		{"pop", 0xfe0f, 0x900f, ARGS_RD, "pop r{d}", 1, execPop},

		{"sts", 0xfe0f, 0x9200, ARGS_RD_K16, "sts {k}, r{d}", 2, execSts},
		{"st.z+", 0xfe0f, 0x9201, ARGS_RD, "st Z+, r{d}", 1, execSt(REG_Z, POST_INC)},
		{"st.-z", 0xfe0f, 0x9202, ARGS_RD, "st -Z, r{d}", 1, execSt(REG_Z, PRE_DEC)},
		{"st.y+", 0xfe0f, 0x9209, ARGS_RD, "st Y+, r{d}", 1, execSt(REG_Y, POST_INC)},
		{"st.-y", 0xfe0f, 0x920a, ARGS_RD, "st -Y, r{d}", 1, execSt(REG_Y, PRE_DEC)},
		{"st.x", 0xfe0f, 0x920c, ARGS_RD, "st X, r{d}", 1, execSt(REG_X, PLAIN)},
		{"st.x+", 0xfe0f, 0x920d, ARGS_RD, "st X+, r{d}", 1, execSt(REG_X, POST_INC)},
		{"st.-x", 0xfe0f, 0x920e, ARGS_RD, "st -X, r{d}", 1, execSt(REG_X, PRE_DEC)},
		{"push", 0xfe0f, 0x920f, ARGS_RD, "push r{d}", 1, execPush},

		{"com", 0xfe0f, 0x9400, ARGS_RD, "com r{d}", 1, execUnary(com8)},
		{"neg", 0xfe0f, 0x9401, ARGS_RD, "neg r{d}", 1, execUnary(neg8)},
		{"swap", 0xfe0f, 0x9402, ARGS_RD, "swap r{d}", 1, execSwap},
		{"inc", 0xfe0f, 0x9403, ARGS_RD, "inc r{d}", 1, execUnary(inc8)},
		{"asr", 0xfe0f, 0x9405, ARGS_RD, "asr r{d}", 1, execUnary(asr8)},
		{"lsr", 0xfe0f, 0x9406, ARGS_RD, "lsr r{d}", 1, execUnary(lsr8)},
		{"ror", 0xfe0f, 0x9407, ARGS_RD, "ror r{d}", 1, execUnary(ror8)},
		{"dec", 0xfe0f, 0x940a, ARGS_RD, "dec r{d}", 1, execUnary(dec8)},

		{"bset", 0xff8f, 0x9408, ARGS_S, "bset {s}", 1, execBset},
		{"bclr", 0xff8f, 0x9488, ARGS_S, "bclr {s}", 1, execBclr},

		{"ret", 0xffff, 0x9508, ARGS_NONE, "ret", 1, execRet},
		{"reti", 0xffff, 0x9518, ARGS_NONE, "reti", 1, execReti},
		{"sleep", 0xffff, 0x9588, ARGS_NONE, "sleep", 1, unimplemented("sleep")},
		{"break", 0xffff, 0x9598, ARGS_NONE, "break", 1, execBreak},
		{"wdr", 0xffff, 0x95a8, ARGS_NONE, "wdr", 1, unimplemented("wdr")},
		{"lpm", 0xffff, 0x95c8, ARGS_NONE, "lpm", 1, execLpm(false, false)},
		{"elpm", 0xffff, 0x95d8, ARGS_NONE, "elpm", 1, execLpm(true, false)},
		{"spm", 0xffff, 0x95e8, ARGS_NONE, "spm", 1, unimplemented("spm")},
		{"spm.z+", 0xffff, 0x95f8, ARGS_NONE, "spm Z+", 1, unimplemented("spm.z+")},

		{"ijmp", 0xffff, 0x9409, ARGS_NONE, "ijmp", 1, execIjmp},
		{"eijmp", 0xffff, 0x9419, ARGS_NONE, "eijmp", 1, unimplemented("eijmp")},
		{"icall", 0xffff, 0x9509, ARGS_NONE, "icall", 1, execIcall},
		{"eicall", 0xffff, 0x9519, ARGS_NONE, "eicall", 1, unimplemented("eicall")},

		{"des", 0xff0f, 0x940b, ARGS_K4, "des {k}", 1, unimplemented("des")},

		{"jmp", 0xfe0e, 0x940c, ARGS_K22, "jmp {k}", 2, execJmp},
		{"call", 0xfe0e, 0x940e, ARGS_K22, "call {k}", 2, execCall},

		{"adiw", 0xff00, 0x9600, ARGS_PAIR_K6, "adiw r{d}, {k}", 1, execAdiw},
		{"sbiw", 0xff00, 0x9700, ARGS_PAIR_K6, "sbiw r{d}, {k}", 1, execSbiw},

		{"cbi", 0xff00, 0x9800, ARGS_A5_B, "cbi {a}, {b}", 1, execCbi},
		{"sbic", 0xff00, 0x9900, ARGS_A5_B, "sbic {a}, {b}", 1, execSbic},
		{"sbi", 0xff00, 0x9a00, ARGS_A5_B, "sbi {a}, {b}", 1, execSbi},
		{"sbis", 0xff00, 0x9b00, ARGS_A5_B, "sbis {a}, {b}", 1, execSbis},

		{"in", 0xf800, 0xb000, ARGS_RD_A6, "in r{d}, {a}", 1, execIn},
		{"out", 0xf800, 0xb800, ARGS_RD_A6, "out {a}, r{d}", 1, execOut},

		{"rjmp", 0xf000, 0xc000, ARGS_K12, "rjmp {o}", 1, execRjmp},
		{"rcall", 0xf000, 0xd000, ARGS_K12, "rcall {o}", 1, execRcall},
		{"ldi", 0xf000, 0xe000, ARGS_RD_K8, "ldi r{d}, {k}", 1, execLdi},

		{"brbs", 0xfc00, 0xf000, ARGS_S_K7, "brbs {s}, {o}", 1, execBranch(true)},
		{"brbc", 0xfc00, 0xf400, ARGS_S_K7, "brbc {s}, {o}", 1, execBranch(false)},

		{"bld", 0xfe08, 0xf800, ARGS_RD_B, "bld r{d}, {b}", 1, execBld},
		{"bst", 0xfe08, 0xfa00, ARGS_RD_B, "bst r{d}, {b}", 1, execBst},
		{"sbrc", 0xfe08, 0xfc00, ARGS_RD_B, "sbrc r{d}, {b}", 1, execSkipBit(false)},
		{"sbrs", 0xfe08, 0xfe00, ARGS_RD_B, "sbrs r{d}, {b}", 1, execSkipBit(true)},
	}
}
