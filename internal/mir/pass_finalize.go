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

// BranchFinalize rewrites SMX branch pseudo instructions into their final
// machine forms. It must run after register allocation: the legality of a
// fusion is only fixed once physical registers are assigned, which is why
// the fusion stage plants pseudos instead of final opcodes.
//
// Each block holds at most one fusable producer and at most one branch
// pseudo, planted as a matched pair (or a single standalone form) by the
// fusion stage. Anything else is an upstream defect and aborts the
// compilation with a ConsistencyError.
type BranchFinalize struct{}

/* scan result of one basic block, at most one candidate per bucket */
type _SMXMatch struct {
    op  *Instr      // fusable producer, smx.fuse.read / smx.fuse.step
    br  *Instr      // fused branch, smx.fuse.{bl,bnl,j}
    sub *Instr      // standalone branch, zero-destination form
}

func (self _SMXMatch) empty() bool {
    return self.op == nil && self.br == nil && self.sub == nil
}

/* fused branch pseudo to final opcode, stream-read producers */
var _FuseReadOps = map[rv.OpCode]rv.OpCode {
    rv.OP_smx_fuse_bl  : rv.OP_smx_bl,
    rv.OP_smx_fuse_bnl : rv.OP_smx_bnl,
}

/* fused branch pseudo to final opcode, stream-step producers */
var _FuseStepOps = map[rv.OpCode]rv.OpCode {
    rv.OP_smx_fuse_bl  : rv.OP_smx_step_bl,
    rv.OP_smx_fuse_bnl : rv.OP_smx_step_bnl,
    rv.OP_smx_fuse_j   : rv.OP_smx_step_j,
}

/* standalone branch pseudo to final opcode, destination forced to zero */
var _StandaloneOps = map[rv.OpCode]rv.OpCode {
    rv.OP_smx_step_zbl  : rv.OP_smx_step_bl,
    rv.OP_smx_step_zbnl : rv.OP_smx_step_bnl,
    rv.OP_smx_step_zj   : rv.OP_smx_step_j,
    rv.OP_smx_zbl       : rv.OP_smx_bl,
    rv.OP_smx_zbnl      : rv.OP_smx_bnl,
}

func (BranchFinalize) scan(fn *Func, bb *BasicBlock) (m _SMXMatch) {
    for _, p := range bb.Ins {
        switch p.Op {
            case rv.OP_smx_fuse_read, rv.OP_smx_fuse_step: {
                if m.op != nil {
                    fatal(fn, bb, p, "there can be only one fusable SMX op in a block")
                }
                m.op = p
            }
            case rv.OP_smx_fuse_bl, rv.OP_smx_fuse_bnl, rv.OP_smx_fuse_j: {
                if m.br != nil || m.sub != nil {
                    fatal(fn, bb, p, "there can be only one SMX branch in a block")
                }
                m.br = p
            }
            case rv.OP_smx_step_zbl, rv.OP_smx_step_zbnl, rv.OP_smx_step_zj, rv.OP_smx_zbl, rv.OP_smx_zbnl: {
                if m.br != nil || m.sub != nil {
                    fatal(fn, bb, p, "there can be only one SMX branch in a block")
                }
                m.sub = p
            }
        }
    }
    return
}

func (BranchFinalize) check(fn *Func, bb *BasicBlock, m _SMXMatch) {
    if (m.op == nil) != (m.br == nil) {
        p := m.op
        if p == nil {
            p = m.br
        }
        fatal(fn, bb, p, "fusable SMX op and fused branch are not a pair")
    }

    /* nothing more to check for standalone branches */
    if m.op == nil {
        return
    }

    /* producer kinds only pair with specific branch kinds */
    var legal bool
    switch m.op.Op {
        case rv.OP_smx_fuse_read : _, legal = _FuseReadOps[m.br.Op]
        case rv.OP_smx_fuse_step : _, legal = _FuseStepOps[m.br.Op]
    }

    if !legal {
        fatal(fn, bb, m.br, "fusable SMX op %s cannot be paired with branch %s", m.op.Op, m.br.Op)
    }
    if m.op.Sid != m.br.Sid {
        fatal(fn, bb, m.br, "stream identifier of the fused SMX op (%d) differs from the branch's (%d)", m.op.Sid, m.br.Sid)
    }
}

/* emit inserts p before at, validating it against the layout oracle */
func (BranchFinalize) emit(fn *Func, bb *BasicBlock, p *Instr, at *Instr) {
    if reason := p.layoutIssue(); reason != "" {
        fatal(fn, bb, p, "emitted instruction violates its operand layout: %s", reason)
    }
    bb.InsertBefore(p, at)
}

// fuse replaces a producer/branch pseudo pair with one final instruction:
// destination and stream come from the producer, target from the branch,
// the debug position from the branch since it is the control-flow-defining
// instruction kept in place.
func (self BranchFinalize) fuse(fn *Func, bb *BasicBlock, op rv.OpCode, data *Instr, br *Instr) {
    p := newInstr(op).
        rd(data.Rd).
        sid(data.Sid).
        br(br.Br).
        at(br.Pos)

    self.emit(fn, bb, p, br)
    bb.Remove(data)
    bb.Remove(br)
}

func (self BranchFinalize) fuseRead(fn *Func, bb *BasicBlock, read *Instr, br *Instr) {
    self.fuse(fn, bb, _FuseReadOps[br.Op], read, br)
}

func (self BranchFinalize) fuseStep(fn *Func, bb *BasicBlock, step *Instr, br *Instr) {
    self.fuse(fn, bb, _FuseStepOps[br.Op], step, br)
}

// replaceBranch substitutes a standalone branch pseudo with its final
// opcode, the produced value is discarded through the zero register.
func (self BranchFinalize) replaceBranch(fn *Func, bb *BasicBlock, br *Instr) {
    op, ok := _StandaloneOps[br.Op]
    if !ok {
        fatal(fn, bb, br, "invalid standalone SMX branch opcode")
    }

    p := newInstr(op).
        rd(rv.Rz).
        sid(br.Sid).
        br(br.Br).
        at(br.Pos)

    self.emit(fn, bb, p, br)
    bb.Remove(br)
}

func (self BranchFinalize) finalizeBlock(fn *Func, bb *BasicBlock) bool {
    m := self.scan(fn, bb)

    /* quit if nothing found */
    if m.empty() {
        return false
    }

    /* validate before any mutation */
    self.check(fn, bb, m)

    /* fuse or replace */
    switch {
        case m.op == nil                       : self.replaceBranch(fn, bb, m.sub)
        case m.op.Op == rv.OP_smx_fuse_read    : self.fuseRead(fn, bb, m.op, m.br)
        default                                : self.fuseStep(fn, bb, m.op, m.br)
    }
    return true
}

func (self BranchFinalize) Apply(fn *Func) bool {
    ret := false
    for _, bb := range fn.Blocks {
        if self.finalizeBlock(fn, bb) {
            ret = true
        }
    }
    return ret
}
