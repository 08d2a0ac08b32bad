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
    `testing`

    `github.com/streamarch/smxgen/internal/rv`
    `github.com/stretchr/testify/assert`
)

func TestInstr_String(t *testing.T) {
    bb := &BasicBlock { Id: 2 }
    assert.Equal(t, "nop", newInstr(rv.OP_nop).String())
    assert.Equal(t, "add            %a0, %a1, %a2", newInstr(rv.OP_add).rd(rv.X10).rs1(rv.X11).rs2(rv.X12).String())
    assert.Equal(t, "smx.bl         %a0, #3, bb_2", newInstr(rv.OP_smx_bl).rd(rv.X10).sid(3).br(bb).String())
    assert.Equal(t, "smx.fuse.bl    #3, bb_2", newInstr(rv.OP_smx_fuse_bl).sid(3).br(bb).String())
}

func TestConsistencyError_Message(t *testing.T) {
    fn := &Func { Name: "broken" }
    bb := &BasicBlock { Id: 4 }
    p := newInstr(rv.OP_smx_fuse_read).rd(rv.X10).sid(3).at(Pos { File: "x.c", Line: 9 })

    defer func() {
        e := recover().(ConsistencyError)
        assert.Equal(t, "broken", e.Func)
        assert.Equal(t, 4, e.Block)
        assert.Same(t, p, e.Ins)
        msg := e.Error()
        assert.Contains(t, msg, "internal consistency violation in broken, bb_4")
        assert.Contains(t, msg, "smx.fuse.read")
        assert.Contains(t, msg, "x.c:9")
    }()
    fatal(fn, bb, p, "boom %d", 1)
}
