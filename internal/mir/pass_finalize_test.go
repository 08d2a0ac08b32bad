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

    `github.com/davecgh/go-spew/spew`
    `github.com/streamarch/smxgen/internal/rv`
    `github.com/stretchr/testify/assert`
    `github.com/stretchr/testify/require`
)

func requireConsistencyPanic(t *testing.T, reason string, f func()) {
    t.Helper()
    defer func() {
        v := recover()
        require.NotNil(t, v, "expected a ConsistencyError panic")
        e, ok := v.(ConsistencyError)
        require.True(t, ok, "panic value is not a ConsistencyError: %v", v)
        assert.Contains(t, e.Reason, reason)
    }()
    f()
}

func TestBranchFinalize_NoRelevantInstructions(t *testing.T) {
    p := CreateBuilder("plain")
    p.ADDI(rv.X5, rv.X0, 1)
    p.ADD(rv.X6, rv.X5, rv.X5)
    p.BEQ(rv.X5, rv.X6, "done")
    p.MUL(rv.X7, rv.X6, rv.X6)
    p.Label("done")
    p.RET()
    fn := p.Build()

    ins := append([]*Instr(nil), fn.Blocks[0].Ins...)
    require.False(t, Finalize(fn))

    /* block must be untouched, same instructions, same order */
    require.Equal(t, len(ins), len(fn.Blocks[0].Ins))
    for i, q := range fn.Blocks[0].Ins {
        assert.Same(t, ins[i], q)
    }
}

func TestBranchFinalize_FuseReadBL(t *testing.T) {
    p := CreateBuilder("readbl")
    p.ADDI(rv.X5, rv.X0, 1)
    p.FUSEREAD(rv.X10, 3)
    p.ADD(rv.X6, rv.X5, rv.X5)
    p.At("loop.c", 42)
    p.FUSEBL(3, "body")
    p.JAL(rv.Rz, "exit")
    p.Label("body")
    p.RET()
    p.Label("exit")
    p.RET()
    fn := p.Build()

    bb := fn.Blocks[0]
    addi, add, jal := bb.Ins[0], bb.Ins[2], bb.Ins[4]
    require.True(t, Finalize(fn))

    /* both pseudos replaced by exactly one instruction at the branch */
    require.Equal(t, 4, len(bb.Ins), spew.Sdump(bb.Ins))
    assert.Same(t, addi, bb.Ins[0])
    assert.Same(t, add, bb.Ins[1])
    assert.Same(t, jal, bb.Ins[3])

    q := bb.Ins[2]
    assert.Equal(t, rv.OP_smx_bl, q.Op)
    assert.Equal(t, rv.X10, q.Rd)
    assert.Equal(t, int64(3), q.Sid)
    assert.Same(t, fn.Blocks[1], q.Br)

    /* debug location comes from the branch, not the read */
    assert.Equal(t, Pos { File: "loop.c", Line: 42 }, q.Pos)
}

func TestBranchFinalize_FuseReadBNL(t *testing.T) {
    p := CreateBuilder("readbnl")
    p.FUSEREAD(rv.X11, 7)
    p.FUSEBNL(7, "exit")
    p.RET()
    p.Label("exit")
    p.RET()
    fn := p.Build()

    require.True(t, Finalize(fn))
    bb := fn.Blocks[0]
    require.Equal(t, 2, len(bb.Ins))
    assert.Equal(t, rv.OP_smx_bnl, bb.Ins[0].Op)
    assert.Equal(t, rv.X11, bb.Ins[0].Rd)
    assert.Equal(t, int64(7), bb.Ins[0].Sid)
}

func TestBranchFinalize_FuseStep(t *testing.T) {
    tests := []struct {
        name string
        emit func(*Builder)
        want rv.OpCode
    } {
        { "bl"  , func(b *Builder) { b.FUSEBL(1, "next") }  , rv.OP_smx_step_bl },
        { "bnl" , func(b *Builder) { b.FUSEBNL(1, "next") } , rv.OP_smx_step_bnl },
        { "j"   , func(b *Builder) { b.FUSEJ(1, "next") }   , rv.OP_smx_step_j },
    }

    for _, tv := range tests {
        t.Run(tv.name, func(t *testing.T) {
            p := CreateBuilder("step_" + tv.name)
            p.FUSESTEP(rv.X12, 1)
            tv.emit(p)
            p.Label("next")
            p.RET()
            fn := p.Build()

            require.True(t, Finalize(fn))
            bb := fn.Blocks[0]
            require.Equal(t, 1, len(bb.Ins))
            assert.Equal(t, tv.want, bb.Ins[0].Op)
            assert.Equal(t, rv.X12, bb.Ins[0].Rd)
            assert.Equal(t, int64(1), bb.Ins[0].Sid)
            assert.Same(t, fn.Blocks[1], bb.Ins[0].Br)
        })
    }
}

func TestBranchFinalize_StandaloneBranches(t *testing.T) {
    tests := []struct {
        name string
        emit func(*Builder)
        want rv.OpCode
    } {
        { "step.zbl"  , func(b *Builder) { b.STEPZBL(5, "next") }  , rv.OP_smx_step_bl },
        { "step.zbnl" , func(b *Builder) { b.STEPZBNL(5, "next") } , rv.OP_smx_step_bnl },
        { "step.zj"   , func(b *Builder) { b.STEPZJ(5, "next") }   , rv.OP_smx_step_j },
        { "zbl"       , func(b *Builder) { b.ZBL(5, "next") }      , rv.OP_smx_bl },
        { "zbnl"      , func(b *Builder) { b.ZBNL(5, "next") }     , rv.OP_smx_bnl },
    }

    for _, tv := range tests {
        t.Run(tv.name, func(t *testing.T) {
            p := CreateBuilder("standalone")
            p.ADDI(rv.X5, rv.X0, 4)
            tv.emit(p)
            p.Label("next")
            p.RET()
            fn := p.Build()

            require.True(t, Finalize(fn))
            bb := fn.Blocks[0]
            require.Equal(t, 2, len(bb.Ins))

            /* destination is forced to the zero register, stream and
             * target are preserved */
            q := bb.Ins[1]
            assert.Equal(t, tv.want, q.Op)
            assert.Equal(t, rv.Rz, q.Rd)
            assert.Equal(t, int64(5), q.Sid)
            assert.Same(t, fn.Blocks[1], q.Br)
        })
    }
}

func TestBranchFinalize_MultipleBlocks(t *testing.T) {
    p := CreateBuilder("multi")
    p.FUSESTEP(rv.X13, 2)
    p.FUSEJ(2, "mid")
    p.Label("mid")
    p.ZBNL(9, "tail")
    p.Label("tail")
    p.RET()
    fn := p.Build()

    require.True(t, Finalize(fn))
    assert.Equal(t, rv.OP_smx_step_j, fn.Blocks[0].Ins[0].Op)
    assert.Equal(t, rv.OP_smx_bnl, fn.Blocks[1].Ins[0].Op)
    assert.Equal(t, rv.Rz, fn.Blocks[1].Ins[0].Rd)
}

func TestBranchFinalize_Idempotent(t *testing.T) {
    p := CreateBuilder("twice")
    p.FUSEREAD(rv.X10, 3)
    p.FUSEBL(3, "body")
    p.Label("body")
    p.RET()
    fn := p.Build()

    require.True(t, Finalize(fn))
    ins := append([]*Instr(nil), fn.Blocks[0].Ins...)

    /* a finalized function contains only real opcodes, the second run must
     * not change anything */
    require.False(t, Finalize(fn))
    require.Equal(t, len(ins), len(fn.Blocks[0].Ins))
    for i, q := range fn.Blocks[0].Ins {
        assert.Same(t, ins[i], q)
    }
}

func TestBranchFinalize_IllegalPairing(t *testing.T) {
    p := CreateBuilder("readj")
    p.FUSEREAD(rv.X10, 3)
    p.FUSEJ(3, "body")
    p.Label("body")
    p.RET()
    fn := p.Build()

    requireConsistencyPanic(t, "cannot be paired", func() {
        Finalize(fn)
    })
}

func TestBranchFinalize_StreamMismatch(t *testing.T) {
    p := CreateBuilder("mismatch")
    p.FUSESTEP(rv.X10, 3)
    p.FUSEBL(4, "body")
    p.Label("body")
    p.RET()
    fn := p.Build()

    requireConsistencyPanic(t, "stream identifier", func() {
        Finalize(fn)
    })
}

func TestBranchFinalize_UnpairedPseudos(t *testing.T) {
    t.Run("producer without branch", func(t *testing.T) {
        p := CreateBuilder("lonely_read")
        p.FUSEREAD(rv.X10, 3)
        p.RET()
        fn := p.Build()

        requireConsistencyPanic(t, "not a pair", func() {
            Finalize(fn)
        })
    })

    t.Run("branch without producer", func(t *testing.T) {
        p := CreateBuilder("lonely_branch")
        p.FUSEBNL(3, "body")
        p.Label("body")
        p.RET()
        fn := p.Build()

        requireConsistencyPanic(t, "not a pair", func() {
            Finalize(fn)
        })
    })
}

func TestBranchFinalize_MultiplicityViolations(t *testing.T) {
    t.Run("two producers", func(t *testing.T) {
        p := CreateBuilder("two_ops")
        p.FUSEREAD(rv.X10, 3)
        p.FUSESTEP(rv.X11, 3)
        p.FUSEBL(3, "body")
        p.Label("body")
        p.RET()
        fn := p.Build()

        requireConsistencyPanic(t, "only one fusable SMX op", func() {
            Finalize(fn)
        })
    })

    t.Run("fused and standalone branch", func(t *testing.T) {
        p := CreateBuilder("two_branches")
        p.FUSEREAD(rv.X10, 3)
        p.FUSEBL(3, "body")
        p.ZBL(3, "body")
        p.Label("body")
        p.RET()
        fn := p.Build()

        requireConsistencyPanic(t, "only one SMX branch", func() {
            Finalize(fn)
        })
    })

    t.Run("two standalone branches", func(t *testing.T) {
        p := CreateBuilder("two_subs")
        p.ZBL(3, "body")
        p.ZBNL(3, "body")
        p.Label("body")
        p.RET()
        fn := p.Build()

        requireConsistencyPanic(t, "only one SMX branch", func() {
            Finalize(fn)
        })
    })
}

func TestBranchFinalize_RealSMXOpsAreIgnored(t *testing.T) {
    p := CreateBuilder("real_ops")
    p.READ(rv.X10, 3)
    p.STEP(rv.X11, 3)
    p.BL(rv.X12, 3, "body")
    p.Label("body")
    p.RET()
    fn := p.Build()

    require.False(t, Finalize(fn))
    require.Equal(t, 3, len(fn.Blocks[0].Ins))
}
