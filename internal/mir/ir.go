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
    `fmt`
    `strings`

    `github.com/streamarch/smxgen/internal/rv`
)

// Instr is one machine instruction after register allocation. Which of the
// operand fields are meaningful for a given opcode is defined by the target
// layout tables in the rv package.
type Instr struct {
    Op  rv.OpCode
    Rd  rv.Reg
    Rs1 rv.Reg
    Rs2 rv.Reg
    Iv  int64
    Sid int64
    Br  *BasicBlock
    Pos Pos
}

func newInstr(op rv.OpCode) *Instr {
    return &Instr { Op: op }
}

func (self *Instr) rd(v rv.Reg)        *Instr { self.Rd = v; return self }
func (self *Instr) rs1(v rv.Reg)       *Instr { self.Rs1 = v; return self }
func (self *Instr) rs2(v rv.Reg)       *Instr { self.Rs2 = v; return self }
func (self *Instr) iv(v int64)         *Instr { self.Iv = v; return self }
func (self *Instr) sid(v int64)        *Instr { self.Sid = v; return self }
func (self *Instr) br(v *BasicBlock)   *Instr { self.Br = v; return self }
func (self *Instr) at(v Pos)           *Instr { self.Pos = v; return self }

func (self *Instr) String() string {
    ops := self.formatOperands()
    if len(ops) == 0 {
        return self.Op.String()
    } else {
        return fmt.Sprintf("%-14s %s", self.Op, strings.Join(ops, ", "))
    }
}

func (self *Instr) formatOperands() []string {
    layout := rv.LayoutOf(self.Op)
    ret := make([]string, 0, len(layout))

    /* operand order and kinds come from the target description */
    for _, k := range layout {
        switch k {
            case rv.OpdRd     : ret = append(ret, "%" + self.Rd.String())
            case rv.OpdRs1    : ret = append(ret, "%" + self.Rs1.String())
            case rv.OpdRs2    : ret = append(ret, "%" + self.Rs2.String())
            case rv.OpdImm    : ret = append(ret, fmt.Sprintf("$%d", self.Iv))
            case rv.OpdStream : ret = append(ret, fmt.Sprintf("#%d", self.Sid))
            case rv.OpdTarget : ret = append(ret, self.formatTarget())
            default           : panic("invalid OperandKind")
        }
    }
    return ret
}

func (self *Instr) formatTarget() string {
    if self.Br == nil {
        return "<nil>"
    } else {
        return fmt.Sprintf("bb_%d", self.Br.Id)
    }
}

// layoutIssue checks the instruction against the layout oracle, it returns
// an empty string when the operands agree with the documented shape.
func (self *Instr) layoutIssue() string {
    if self.Op > rv.OP_max {
        return fmt.Sprintf("unknown opcode 0x%02x", uint8(self.Op))
    }

    /* a branch target is present exactly when the layout carries one */
    if rv.HasOperand(self.Op, rv.OpdTarget) != (self.Br != nil) {
        if self.Br == nil {
            return "missing branch target operand"
        } else {
            return "unexpected branch target operand"
        }
    }

    /* stream identifiers are small non-negative integers */
    if rv.HasOperand(self.Op, rv.OpdStream) && self.Sid < 0 {
        return fmt.Sprintf("invalid stream identifier %d", self.Sid)
    }

    /* every register operand named by the layout must be allocated */
    for _, k := range rv.LayoutOf(self.Op) {
        switch k {
            case rv.OpdRd  : if !self.Rd.IsValid()  { return "invalid destination register" }
            case rv.OpdRs1 : if !self.Rs1.IsValid() { return "invalid rs1 register" }
            case rv.OpdRs2 : if !self.Rs2.IsValid() { return "invalid rs2 register" }
        }
    }
    return ""
}
