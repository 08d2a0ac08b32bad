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

// OperandKind identifies one slot of an instruction's operand layout.
type OperandKind uint8

const (
    OpdRd     OperandKind = iota    // destination register
    OpdRs1                          // first source register
    OpdRs2                          // second source register
    OpdImm                          // sign-extended immediate
    OpdStream                       // SMX stream identifier
    OpdTarget                       // branch target
)

func (self OperandKind) String() string {
    switch self {
        case OpdRd     : return "rd"
        case OpdRs1    : return "rs1"
        case OpdRs2    : return "rs2"
        case OpdImm    : return "imm"
        case OpdStream : return "stream"
        case OpdTarget : return "target"
        default        : panic("invalid OperandKind")
    }
}

var _Layouts = [OP_max + 1][]OperandKind {
    OP_nop           : {},
    OP_add           : { OpdRd, OpdRs1, OpdRs2 },
    OP_addi          : { OpdRd, OpdRs1, OpdImm },
    OP_mul           : { OpdRd, OpdRs1, OpdRs2 },
    OP_lw            : { OpdRd, OpdRs1, OpdImm },
    OP_sw            : { OpdRs1, OpdRs2, OpdImm },
    OP_beq           : { OpdRs1, OpdRs2, OpdTarget },
    OP_jal           : { OpdRd, OpdTarget },
    OP_ret           : {},
    OP_smx_read      : { OpdRd, OpdStream },
    OP_smx_step      : { OpdRd, OpdStream },
    OP_smx_bl        : { OpdRd, OpdStream, OpdTarget },
    OP_smx_bnl       : { OpdRd, OpdStream, OpdTarget },
    OP_smx_step_bl   : { OpdRd, OpdStream, OpdTarget },
    OP_smx_step_bnl  : { OpdRd, OpdStream, OpdTarget },
    OP_smx_step_j    : { OpdRd, OpdStream, OpdTarget },
    OP_smx_fuse_read : { OpdRd, OpdStream },
    OP_smx_fuse_step : { OpdRd, OpdStream },
    OP_smx_fuse_bl   : { OpdStream, OpdTarget },
    OP_smx_fuse_bnl  : { OpdStream, OpdTarget },
    OP_smx_fuse_j    : { OpdStream, OpdTarget },
    OP_smx_step_zbl  : { OpdStream, OpdTarget },
    OP_smx_step_zbnl : { OpdStream, OpdTarget },
    OP_smx_step_zj   : { OpdStream, OpdTarget },
    OP_smx_zbl       : { OpdStream, OpdTarget },
    OP_smx_zbnl      : { OpdStream, OpdTarget },
}

// LayoutOf returns the ordered operand layout of op. The layout is shared
// static data, callers must not mutate it.
func LayoutOf(op OpCode) []OperandKind {
    if op <= OP_max {
        return _Layouts[op]
    } else {
        panic("LayoutOf: invalid OpCode")
    }
}

// HasOperand reports whether the layout of op contains an operand of kind k.
func HasOperand(op OpCode, k OperandKind) bool {
    for _, v := range LayoutOf(op) {
        if v == k {
            return true
        }
    }
    return false
}
