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

    `github.com/oleiade/lane`
)

// Func is a machine function, an ordered sequence of basic blocks in layout
// order. The function is exclusively owned by the caller for the duration
// of a pass, there is no concurrent reader or writer.
type Func struct {
    Name   string
    Blocks []*BasicBlock
}

func (self *Func) Disassemble() string {
    buf := make([]string, 0, len(self.Blocks) * 4)
    buf = append(buf, self.Name + ":")

    /* dump every block in layout order */
    for _, bb := range self.Blocks {
        buf = append(buf, fmt.Sprintf("bb_%d:", bb.Id))
        for _, p := range bb.Ins {
            buf = append(buf, "    " + p.String())
        }
    }
    return strings.Join(buf, "\n")
}

/* layout successor index for fall-through edges */
func (self *Func) layoutNext() map[*BasicBlock]*BasicBlock {
    next := make(map[*BasicBlock]*BasicBlock, len(self.Blocks))
    for i := 1; i < len(self.Blocks); i++ {
        next[self.Blocks[i - 1]] = self.Blocks[i]
    }
    return next
}

// Reachable returns the blocks reachable from the entry block, following
// branch targets and fall-through edges, in breadth-first order.
func (self *Func) Reachable() []*BasicBlock {
    if len(self.Blocks) == 0 {
        return nil
    }
    next := self.layoutNext()

    /* breadth-first scan from the entry block */
    q := lane.NewQueue()
    v := map[int]bool { self.Blocks[0].Id: true }
    r := make([]*BasicBlock, 0, len(self.Blocks))

    for q.Enqueue(self.Blocks[0]); !q.Empty(); {
        bb := q.Dequeue().(*BasicBlock)
        r = append(r, bb)

        /* all the branch targets */
        for _, to := range bb.successors() {
            if !v[to.Id] {
                v[to.Id] = true
                q.Enqueue(to)
            }
        }

        /* the fall-through edge, if control can reach it */
        if ln := next[bb]; ln != nil && bb.fallsThrough() && !v[ln.Id] {
            v[ln.Id] = true
            q.Enqueue(ln)
        }
    }
    return r
}
