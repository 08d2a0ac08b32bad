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
    `github.com/stretchr/testify/require`
)

func TestBuilder_ForwardAndBackwardLabels(t *testing.T) {
    p := CreateBuilder("labels")
    p.Label("head")
    p.ADDI(rv.X5, rv.X5, -1)
    fwd := p.BEQ(rv.X5, rv.X0, "tail")
    bwd := p.JAL(rv.Rz, "head")
    p.Label("tail")
    p.RET()
    fn := p.Build()

    require.Equal(t, 2, len(fn.Blocks))
    assert.Same(t, fn.Blocks[1], fwd.Br)
    assert.Same(t, fn.Blocks[0], bwd.Br)
}

func TestBuilder_EntryBlockIsImplicit(t *testing.T) {
    p := CreateBuilder("implicit")
    p.NOP()
    p.Label("next")
    p.RET()
    fn := p.Build()

    require.Equal(t, 2, len(fn.Blocks))
    assert.Equal(t, 0, fn.Blocks[0].Id)
    assert.Equal(t, 1, fn.Blocks[1].Id)
}

func TestBuilder_AdjacentLabelsAlias(t *testing.T) {
    p := CreateBuilder("alias")
    a := p.JAL(rv.Rz, "one")
    b := p.JAL(rv.Rz, "two")
    p.Label("one")
    p.Label("two")
    p.RET()
    fn := p.Build()

    require.Equal(t, 2, len(fn.Blocks))
    assert.Same(t, a.Br, b.Br)
}

func TestBuilder_Positions(t *testing.T) {
    p := CreateBuilder("pos")
    q := p.NOP()
    p.At("a.c", 7)
    r := p.NOP()
    p.RET()
    fn := p.Build()

    require.Equal(t, 3, len(fn.Blocks[0].Ins))
    assert.False(t, q.Pos.IsValid())
    assert.Equal(t, Pos { File: "a.c", Line: 7 }, r.Pos)
}

func TestBuilder_DuplicateLabel(t *testing.T) {
    p := CreateBuilder("dup")
    p.Label("x")
    p.RET()
    assert.PanicsWithValue(t, "label x has already been linked", func() {
        p.Label("x")
    })
}

func TestBuilder_UnresolvedLabel(t *testing.T) {
    p := CreateBuilder("dangling")
    p.JAL(rv.Rz, "nowhere")
    assert.PanicsWithValue(t, "labels are not fully resolved: nowhere", func() {
        p.Build()
    })
}
