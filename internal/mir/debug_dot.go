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
    `html`
    `strings`
)

func dumpbb(bb *BasicBlock) string {
    buf := []string {
        "<table border=\"1\" cellborder=\"0\" cellspacing=\"0\">\n",
        fmt.Sprintf("<tr><td>bb_%d</td></tr>\n", bb.Id),
        "<hr/>\n",
    }
    for _, p := range bb.Ins {
        vv := strings.ReplaceAll(html.EscapeString(p.String()), " ", "&nbsp;")
        buf = append(buf, fmt.Sprintf("<tr><td align=\"left\">%s</td></tr>\n", vv))
    }
    buf = append(buf, "</table>")
    return strings.Join(buf, "")
}

// Dot renders the reachable block graph in Graphviz format, a debugging aid
// for inspecting the function before and after finalization.
func (self *Func) Dot() string {
    buf := []string {
        "digraph " + self.Name + " {",
        `    graph [ fontname = "Fira Code" ]`,
        `    node [ fontname = "Fira Code" fontsize="16" shape = "plaintext" ]`,
        `    edge [ fontname = "Fira Code" ]`,
    }

    /* one node per reachable block, one edge per branch or fall-through */
    next := self.layoutNext()
    for i, bb := range self.Reachable() {
        if i == 0 {
            buf = append(buf, `    START [ shape = "circle" ]`)
            buf = append(buf, fmt.Sprintf(`    START -> bb_%d`, bb.Id))
        }
        buf = append(buf, fmt.Sprintf(`    bb_%d [ label = < %s > ]`, bb.Id, dumpbb(bb)))
        for _, to := range bb.successors() {
            buf = append(buf, fmt.Sprintf(`    bb_%d -> bb_%d`, bb.Id, to.Id))
        }
        if ln := next[bb]; ln != nil && bb.fallsThrough() {
            buf = append(buf, fmt.Sprintf(`    bb_%d -> bb_%d [ label = "goto" ]`, bb.Id, ln.Id))
        }
    }

    buf = append(buf, "}")
    return strings.Join(buf, "\n")
}
