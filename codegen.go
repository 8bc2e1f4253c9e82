package main

import (
	"fmt"
	"io"
	"sort"
)

// Instruction
type OpKind int

const (
	OP_LOAD OpKind = iota // acc = val
	OP_ADD                // acc += val
	OP_SUB                // acc -= val
	OP_RET                // return acc
)

type Inst struct {
	op  OpKind
	val int64
}

// The instructions emitted for one expression, in output order.
type Program struct {
	insts []Inst
}

type Arch interface {
	prologue(w io.Writer, fname string)
	emitInst(w io.Writer, inst Inst)
}

var archs = map[string]Arch{
	"intel": Intel{},
	"x64":   X64{},
	"riscv": RiscV{},
}

func archNames() []string {
	names := make([]string, 0, len(archs))
	for name := range archs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func chooseArch(arch string) (Arch, error) {
	target, ok := archs[arch]
	if !ok {
		return nil, usageError("unsupported architecture: %s", arch)
	}
	return target, nil
}

// x86-64 in Intel syntax with the accumulator in rax.
type Intel struct{}

func (a Intel) prologue(w io.Writer, fname string) {
	fmt.Fprintf(w, ".intel_syntax noprefix\n")
	fmt.Fprintf(w, ".global %s\n", fname)
	fmt.Fprintf(w, "%s:\n", fname)
}

func (a Intel) emitInst(w io.Writer, inst Inst) {
	switch inst.op {
	case OP_LOAD:
		fmt.Fprintf(w, " mov rax, %d\n", inst.val)
	case OP_ADD:
		fmt.Fprintf(w, " add rax, %d\n", inst.val)
	case OP_SUB:
		fmt.Fprintf(w, " sub rax, %d\n", inst.val)
	case OP_RET:
		fmt.Fprintf(w, " ret\n")
	}
}

// x86-64 in AT&T syntax.
type X64 struct{}

func (a X64) prologue(w io.Writer, fname string) {
	fmt.Fprintf(w, "  .globl %s\n", fname)
	fmt.Fprintf(w, "%s:\n", fname)
}

func (a X64) emitInst(w io.Writer, inst Inst) {
	switch inst.op {
	case OP_LOAD:
		fmt.Fprintf(w, "  mov $%d, %%rax\n", inst.val)
	case OP_ADD:
		fmt.Fprintf(w, "  add $%d, %%rax\n", inst.val)
	case OP_SUB:
		fmt.Fprintf(w, "  sub $%d, %%rax\n", inst.val)
	case OP_RET:
		fmt.Fprintf(w, "  ret\n")
	}
}

// RV64 with the accumulator in a0.
type RiscV struct{}

func (a RiscV) prologue(w io.Writer, fname string) {
	fmt.Fprintf(w, "  .globl %s\n", fname)
	fmt.Fprintf(w, "%s:\n", fname)
}

// addi takes a 12-bit signed immediate.
func fitsImm12(v int64) bool {
	return -2048 <= v && v <= 2047
}

func (a RiscV) emitInst(w io.Writer, inst Inst) {
	switch inst.op {
	case OP_LOAD:
		fmt.Fprintf(w, "  li a0, %d\n", inst.val)
	case OP_ADD:
		if fitsImm12(inst.val) {
			fmt.Fprintf(w, "  addi a0, a0, %d\n", inst.val)
			return
		}
		fmt.Fprintf(w, "  li t0, %d\n", inst.val)
		fmt.Fprintf(w, "  add a0, a0, t0\n")
	case OP_SUB:
		if fitsImm12(-inst.val) {
			fmt.Fprintf(w, "  addi a0, a0, %d\n", -inst.val)
			return
		}
		fmt.Fprintf(w, "  li t0, %d\n", inst.val)
		fmt.Fprintf(w, "  sub a0, a0, t0\n")
	case OP_RET:
		fmt.Fprintf(w, "  ret\n")
	}
}

// Writes instructions for a target as the parser recognizes them.
type Codegen struct {
	w      io.Writer
	target Arch
	prog   *Program
}

func newCodegen(w io.Writer, target Arch) *Codegen {
	return &Codegen{w: w, target: target, prog: &Program{}}
}

func (g *Codegen) prologue() {
	g.target.prologue(g.w, "main")
}

func (g *Codegen) emit(op OpKind, val int64) {
	inst := Inst{op: op, val: val}
	g.prog.insts = append(g.prog.insts, inst)
	g.target.emitInst(g.w, inst)
}
