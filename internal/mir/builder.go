/*
 * Copyright 2025 StreamArch Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mir

import (
    `github.com/streamarch/smxgen/internal/rv`
)

// Builder constructs a Func block by block. Branch targets are symbolic
// labels, forward references are patched when the label is bound.
type Builder struct {
    fn    *Func
    cur   *BasicBlock
    pos   Pos
    refs  map[string]*BasicBlock
    pends map[string][]*Instr
}

func CreateBuilder(name string) *Builder {
    return &Builder {
        fn    : &Func { Name: name },
        refs  : map[string]*BasicBlock{},
        pends : map[string][]*Instr{},
    }
}

func (self *Builder) block() *BasicBlock {
    if self.cur == nil {
        self.cur = self.newBlock()
    }
    return self.cur
}

func (self *Builder) newBlock() *BasicBlock {
    bb := &BasicBlock { Id: len(self.fn.Blocks) }
    self.fn.Blocks = append(self.fn.Blocks, bb)
    return bb
}

func (self *Builder) add(p *Instr) *Instr {
    bb := self.block()
    bb.Ins = append(bb.Ins, p.at(self.pos))
    return p
}

func (self *Builder) jmp(p *Instr, to string) *Instr {
    if bb, ok := self.refs[to]; ok {
        p.Br = bb
    } else {
        self.pends[to] = append(self.pends[to], p)
    }
    return self.add(p)
}

// At sets the source position attached to subsequently added instructions.
func (self *Builder) At(file string, line int) *Builder {
    self.pos = Pos { File: file, Line: line }
    return self
}

// Label binds a label to the start of a new basic block. An empty current
// block is reused, so a label directly after another one aliases it.
func (self *Builder) Label(to string) {
    if _, ok := self.refs[to]; ok {
        panic("label " + to + " has already been linked")
    }

    /* start a new block unless the current one is still empty */
    bb := self.cur
    if bb == nil || len(bb.Ins) != 0 {
        bb = self.newBlock()
        self.cur = bb
    }

    /* patch all the pending jumps */
    for _, p := range self.pends[to] {
        p.Br = bb
    }

    /* mark the label as resolved */
    self.refs[to] = bb
    delete(self.pends, to)
}

// Build finalizes the function. It panics if any referenced label was never
// bound.
func (self *Builder) Build() *Func {
    for key := range self.pends {
        panic("labels are not fully resolved: " + key)
    }
    return self.fn
}

func (self *Builder) NOP() *Instr {
    return self.add(newInstr(rv.OP_nop))
}

func (self *Builder) ADD(rd rv.Reg, rs1 rv.Reg, rs2 rv.Reg) *Instr {
    return self.add(newInstr(rv.OP_add).rd(rd).rs1(rs1).rs2(rs2))
}

func (self *Builder) ADDI(rd rv.Reg, rs1 rv.Reg, v int64) *Instr {
    return self.add(newInstr(rv.OP_addi).rd(rd).rs1(rs1).iv(v))
}

func (self *Builder) MUL(rd rv.Reg, rs1 rv.Reg, rs2 rv.Reg) *Instr {
    return self.add(newInstr(rv.OP_mul).rd(rd).rs1(rs1).rs2(rs2))
}

func (self *Builder) LW(rd rv.Reg, rs1 rv.Reg, off int64) *Instr {
    return self.add(newInstr(rv.OP_lw).rd(rd).rs1(rs1).iv(off))
}

func (self *Builder) SW(rs1 rv.Reg, rs2 rv.Reg, off int64) *Instr {
    return self.add(newInstr(rv.OP_sw).rs1(rs1).rs2(rs2).iv(off))
}

func (self *Builder) BEQ(rs1 rv.Reg, rs2 rv.Reg, to string) *Instr {
    return self.jmp(newInstr(rv.OP_beq).rs1(rs1).rs2(rs2), to)
}

func (self *Builder) JAL(rd rv.Reg, to string) *Instr {
    return self.jmp(newInstr(rv.OP_jal).rd(rd), to)
}

func (self *Builder) RET() *Instr {
    return self.add(newInstr(rv.OP_ret))
}

func (self *Builder) READ(rd rv.Reg, sid int64) *Instr {
    return self.add(newInstr(rv.OP_smx_read).rd(rd).sid(sid))
}

func (self *Builder) STEP(rd rv.Reg, sid int64) *Instr {
    return self.add(newInstr(rv.OP_smx_step).rd(rd).sid(sid))
}

func (self *Builder) BL(rd rv.Reg, sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_bl).rd(rd).sid(sid), to)
}

func (self *Builder) BNL(rd rv.Reg, sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_bnl).rd(rd).sid(sid), to)
}

func (self *Builder) STEPBL(rd rv.Reg, sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_step_bl).rd(rd).sid(sid), to)
}

func (self *Builder) STEPBNL(rd rv.Reg, sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_step_bnl).rd(rd).sid(sid), to)
}

func (self *Builder) STEPJ(rd rv.Reg, sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_step_j).rd(rd).sid(sid), to)
}

func (self *Builder) FUSEREAD(rd rv.Reg, sid int64) *Instr {
    return self.add(newInstr(rv.OP_smx_fuse_read).rd(rd).sid(sid))
}

func (self *Builder) FUSESTEP(rd rv.Reg, sid int64) *Instr {
    return self.add(newInstr(rv.OP_smx_fuse_step).rd(rd).sid(sid))
}

func (self *Builder) FUSEBL(sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_fuse_bl).sid(sid), to)
}

func (self *Builder) FUSEBNL(sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_fuse_bnl).sid(sid), to)
}

func (self *Builder) FUSEJ(sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_fuse_j).sid(sid), to)
}

func (self *Builder) STEPZBL(sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_step_zbl).sid(sid), to)
}

func (self *Builder) STEPZBNL(sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_step_zbnl).sid(sid), to)
}

func (self *Builder) STEPZJ(sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_step_zj).sid(sid), to)
}

func (self *Builder) ZBL(sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_zbl).sid(sid), to)
}

func (self *Builder) ZBNL(sid int64, to string) *Instr {
    return self.jmp(newInstr(rv.OP_smx_zbnl).sid(sid), to)
}
