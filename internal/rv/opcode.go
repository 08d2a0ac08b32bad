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

package rv

import (
    `fmt`
)

type OpCode uint8

const (
    OP_nop OpCode = iota    // no operation
    OP_add                  // Rs1 + Rs2 -> Rd
    OP_addi                 // Rs1 + Iv -> Rd
    OP_mul                  // Rs1 * Rs2 -> Rd
    OP_lw                   // i64(*(*i32)(Rs1 + Iv)) -> Rd
    OP_sw                   // i32(Rs2) -> *(*i32)(Rs1 + Iv)
    OP_beq                  // if (Rs1 == Rs2) goto Br
    OP_jal                  // link PC -> Rd; goto Br
    OP_ret                  // return to ra

    /* SMX data operations, stream Sid */
    OP_smx_read             // read(Sid) -> Rd
    OP_smx_step             // step(Sid) -> Rd

    /* SMX branches fused with a data operation */
    OP_smx_bl               // read/step(Sid) -> Rd; if in-bounds goto Br
    OP_smx_bnl              // read/step(Sid) -> Rd; if not-in-bounds goto Br
    OP_smx_step_bl          // step(Sid) -> Rd; if in-bounds goto Br
    OP_smx_step_bnl         // step(Sid) -> Rd; if not-in-bounds goto Br
    OP_smx_step_j           // step(Sid) -> Rd; goto Br

    /* SMX fusion pseudos, paired by the fusion stage, removed after RA */
    OP_smx_fuse_read        // fusable read(Sid) -> Rd
    OP_smx_fuse_step        // fusable step(Sid) -> Rd
    OP_smx_fuse_bl          // fused in-bounds branch on Sid to Br
    OP_smx_fuse_bnl         // fused not-in-bounds branch on Sid to Br
    OP_smx_fuse_j           // fused unconditional jump on Sid to Br

    /* SMX standalone branch pseudos, zero-destination forms */
    OP_smx_step_zbl         // step(Sid) -> zero; if in-bounds goto Br
    OP_smx_step_zbnl        // step(Sid) -> zero; if not-in-bounds goto Br
    OP_smx_step_zj          // step(Sid) -> zero; goto Br
    OP_smx_zbl              // if in-bounds(Sid) goto Br
    OP_smx_zbnl             // if not-in-bounds(Sid) goto Br
)

const (
    OP_max = OP_smx_zbnl
)

var _OpNames = [...]string {
    OP_nop           : "nop",
    OP_add           : "add",
    OP_addi          : "addi",
    OP_mul           : "mul",
    OP_lw            : "lw",
    OP_sw            : "sw",
    OP_beq           : "beq",
    OP_jal           : "jal",
    OP_ret           : "ret",
    OP_smx_read      : "smx.read",
    OP_smx_step      : "smx.step",
    OP_smx_bl        : "smx.bl",
    OP_smx_bnl       : "smx.bnl",
    OP_smx_step_bl   : "smx.step.bl",
    OP_smx_step_bnl  : "smx.step.bnl",
    OP_smx_step_j    : "smx.step.j",
    OP_smx_fuse_read : "smx.fuse.read",
    OP_smx_fuse_step : "smx.fuse.step",
    OP_smx_fuse_bl   : "smx.fuse.bl",
    OP_smx_fuse_bnl  : "smx.fuse.bnl",
    OP_smx_fuse_j    : "smx.fuse.j",
    OP_smx_step_zbl  : "smx.step.zbl",
    OP_smx_step_zbnl : "smx.step.zbnl",
    OP_smx_step_zj   : "smx.step.zj",
    OP_smx_zbl       : "smx.zbl",
    OP_smx_zbnl      : "smx.zbnl",
}

func (self OpCode) String() string {
    if self <= OP_max {
        return _OpNames[self]
    } else {
        panic(fmt.Sprintf("invalid OpCode: 0x%02x", uint8(self)))
    }
}

// IsPseudo reports whether the opcode is an SMX placeholder that must be
// eliminated before encoding.
func (self OpCode) IsPseudo() bool {
    return self >= OP_smx_fuse_read && self <= OP_smx_zbnl
}

// IsBranch reports whether the instruction carries a branch target operand.
func (self OpCode) IsBranch() bool {
    _, ok := _Branches[self]
    return ok
}

var _Branches = map[OpCode]bool {
    OP_beq           : true,
    OP_jal           : true,
    OP_smx_bl        : true,
    OP_smx_bnl       : true,
    OP_smx_step_bl   : true,
    OP_smx_step_bnl  : true,
    OP_smx_step_j    : true,
    OP_smx_fuse_bl   : true,
    OP_smx_fuse_bnl  : true,
    OP_smx_fuse_j    : true,
    OP_smx_step_zbl  : true,
    OP_smx_step_zbnl : true,
    OP_smx_step_zj   : true,
    OP_smx_zbl       : true,
    OP_smx_zbnl      : true,
}
