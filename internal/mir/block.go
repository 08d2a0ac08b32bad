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

// BasicBlock is an ordered sequence of instructions, it owns the
// instructions it contains. Mutations preserve the identity and order of
// every instruction they do not name.
type BasicBlock struct {
    Id  int
    Ins []*Instr
}

func (self *BasicBlock) indexOf(p *Instr) int {
    for i, q := range self.Ins {
        if q == p {
            return i
        }
    }
    panic(ConsistencyError {
        Block  : self.Id,
        Ins    : p,
        Reason : "instruction does not belong to this block",
    })
}

// InsertBefore inserts p immediately before at, which must be an
// instruction of this block.
func (self *BasicBlock) InsertBefore(p *Instr, at *Instr) {
    i := self.indexOf(at)
    self.Ins = append(self.Ins, nil)
    copy(self.Ins[i + 1:], self.Ins[i:])
    self.Ins[i] = p
}

// Remove unlinks p from the block and discards it.
func (self *BasicBlock) Remove(p *Instr) {
    i := self.indexOf(p)
    self.Ins = append(self.Ins[:i], self.Ins[i + 1:]...)
}

/* opcodes after which control never falls through to the next block */
var _NoFallthrough = map[rv.OpCode]bool {
    rv.OP_ret         : true,
    rv.OP_jal         : true,
    rv.OP_smx_step_j  : true,
    rv.OP_smx_fuse_j  : true,
    rv.OP_smx_step_zj : true,
}

func (self *BasicBlock) fallsThrough() bool {
    if n := len(self.Ins); n == 0 {
        return true
    } else {
        return !_NoFallthrough[self.Ins[n - 1].Op]
    }
}

func (self *BasicBlock) successors() []*BasicBlock {
    var ret []*BasicBlock
    for _, p := range self.Ins {
        if p.Br != nil {
            ret = append(ret, p.Br)
        }
    }
    return ret
}
