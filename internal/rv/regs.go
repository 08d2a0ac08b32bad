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

// Reg is a physical RV64 integer register, fixed by register allocation
// before any pass in this package runs.
type Reg uint8

const (
    X0 Reg = iota
    X1
    X2
    X3
    X4
    X5
    X6
    X7
    X8
    X9
    X10
    X11
    X12
    X13
    X14
    X15
    X16
    X17
    X18
    X19
    X20
    X21
    X22
    X23
    X24
    X25
    X26
    X27
    X28
    X29
    X30
    X31
)

const (
    NumRegs = 32
)

/* zero register, reads as zero, writes are discarded */
const (
    Rz = X0
)

var _RegNames = [NumRegs]string {
    X0  : "zero",
    X1  : "ra",
    X2  : "sp",
    X3  : "gp",
    X4  : "tp",
    X5  : "t0",
    X6  : "t1",
    X7  : "t2",
    X8  : "s0",
    X9  : "s1",
    X10 : "a0",
    X11 : "a1",
    X12 : "a2",
    X13 : "a3",
    X14 : "a4",
    X15 : "a5",
    X16 : "a6",
    X17 : "a7",
    X18 : "s2",
    X19 : "s3",
    X20 : "s4",
    X21 : "s5",
    X22 : "s6",
    X23 : "s7",
    X24 : "s8",
    X25 : "s9",
    X26 : "s10",
    X27 : "s11",
    X28 : "t3",
    X29 : "t4",
    X30 : "t5",
    X31 : "t6",
}

func (self Reg) IsValid() bool {
    return self < NumRegs
}

func (self Reg) String() string {
    if self.IsValid() {
        return _RegNames[self]
    } else {
        return fmt.Sprintf("x?%d", uint8(self))
    }
}
