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

// VerifyLayout checks every instruction of the function against the target
// operand layout tables, and every branch target against the function's
// block list. It never mutates the function.
type VerifyLayout struct{}

func (VerifyLayout) Apply(fn *Func) bool {
    own := make(map[*BasicBlock]bool, len(fn.Blocks))
    for _, bb := range fn.Blocks {
        own[bb] = true
    }

    /* check every instruction of every block */
    for _, bb := range fn.Blocks {
        for _, p := range bb.Ins {
            if reason := p.layoutIssue(); reason != "" {
                fatal(fn, bb, p, "%s", reason)
            }
            if p.Br != nil && !own[p.Br] {
                fatal(fn, bb, p, "branch target bb_%d is not a block of this function", p.Br.Id)
            }
        }
    }
    return false
}
