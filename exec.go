package main

// Runs the program on a 64-bit accumulator and returns what `main` would
// leave in the return register. Overflow wraps around like the hardware
// register does.
func (p *Program) eval() int64 {
	var acc int64
	for _, inst := range p.insts {
		switch inst.op {
		case OP_LOAD:
			acc = inst.val
		case OP_ADD:
			acc += inst.val
		case OP_SUB:
			acc -= inst.val
		case OP_RET:
			return acc
		}
	}
	return acc
}

// Returns the number of add and sub instructions.
func (p *Program) terms() int {
	n := 0
	for _, inst := range p.insts {
		if inst.op == OP_ADD || inst.op == OP_SUB {
			n++
		}
	}
	return n
}
