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
    `go.uber.org/zap`
)

type Pass interface {
    Apply(*Func) bool
}

type _PassDescriptor struct {
    pass Pass
    desc string
}

var _passes = [...]_PassDescriptor {
    { desc: "SMX Branch Finalization"     , pass: new(BranchFinalize) },
    { desc: "Operand Layout Verification" , pass: new(VerifyLayout) },
}

// Finalize runs the finalization pass list over fn, it reports whether any
// pass modified the function.
func Finalize(fn *Func) bool {
    ret := false
    for _, p := range _passes {
        mod := p.pass.Apply(fn)
        ret = ret || mod
        Logger().Debug(
            "pass applied",
            zap.String("func", fn.Name),
            zap.String("pass", p.desc),
            zap.Bool("modified", mod),
        )
    }
    return ret
}
