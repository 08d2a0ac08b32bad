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

    `github.com/davecgh/go-spew/spew`
)

var _ErrSpew = spew.ConfigState {
    Indent                  : "    ",
    MaxDepth                : 2,
    SortKeys                : true,
    DisableCapacities       : true,
    DisablePointerAddresses : true,
}

// ConsistencyError reports a violated internal invariant. It always means a
// defect in an earlier pipeline stage, never malformed user input, so it is
// raised as a panic value and aborts the compilation.
type ConsistencyError struct {
    Func   string
    Block  int
    Ins    *Instr
    Reason string
}

func (self ConsistencyError) Error() string {
    if self.Ins == nil {
        return fmt.Sprintf(
            "internal consistency violation in %s, bb_%d: %s",
            self.Func,
            self.Block,
            self.Reason,
        )
    } else {
        return fmt.Sprintf(
            "internal consistency violation in %s, bb_%d: %s\n  instruction: %s (%s)\n  operands: %s",
            self.Func,
            self.Block,
            self.Reason,
            self.Ins,
            self.Ins.Pos,
            _ErrSpew.Sdump(*self.Ins),
        )
    }
}

func fatal(fn *Func, bb *BasicBlock, p *Instr, format string, args ...interface{}) {
    e := ConsistencyError {
        Ins    : p,
        Reason : fmt.Sprintf(format, args...),
    }
    if fn != nil { e.Func = fn.Name }
    if bb != nil { e.Block = bb.Id }
    panic(e)
}
