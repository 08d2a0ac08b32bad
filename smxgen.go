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

// Package smxgen finalizes SMX branch pseudo instructions into target
// instructions after register allocation. The fusion stage upstream may
// combine a stream read or step with a conditional branch into a single
// fused instruction, but the exact opcode can only be fixed once physical
// registers are assigned, so it plants placeholder pseudos and this package
// resolves them.
package smxgen

import (
    `github.com/streamarch/smxgen/internal/mir`
    `go.uber.org/zap`
)

type (
    Func             = mir.Func
    BasicBlock       = mir.BasicBlock
    Instr            = mir.Instr
    Builder          = mir.Builder
    Pos              = mir.Pos
    ConsistencyError = mir.ConsistencyError
)

// CreateBuilder returns a Builder for constructing a machine function.
func CreateBuilder(name string) *Builder {
    return mir.CreateBuilder(name)
}

// Finalize rewrites every SMX branch pseudo instruction of fn into its
// final machine form and verifies the result. It reports whether fn was
// modified. A ConsistencyError panic means an earlier pipeline stage
// produced an invalid pseudo arrangement.
func Finalize(fn *Func) bool {
    return mir.Finalize(fn)
}

// SetLogger installs the logger used for pass debug output. Logging is
// disabled by default.
func SetLogger(l *zap.Logger) {
    mir.SetLogger(l)
}
