// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package arm7tdmi

// pipelineSlot is one of the three stages described in spec.md §3. Diagnostic
// fields (Mnemonic) never affect semantics.
type pipelineSlot struct {
	valid    bool
	opcode   uint32
	mnemonic string
}

// pipeline is the three-slot fetch/decode/execute record. Its content is
// kept separate from the PC register itself (spec.md §9, "Pipeline flush vs
// branch") so that flushing it is a single, uniform operation regardless of
// which instruction caused the branch.
type pipeline struct {
	fetch, decode, execute pipelineSlot
}

// advance shifts fetch->decode->execute and inserts a freshly fetched
// opcode (or an invalid slot, if fetch itself was flushed this cycle) into
// fetch.
func (p *pipeline) advance(next pipelineSlot) {
	p.execute = p.decode
	p.decode = p.fetch
	p.fetch = next
}

// flush empties the decode and execute slots. Called on every branch or
// mode change (§4.4: "Every branch flushes decode and execute slots";
// §4.1: exception entry implies a branch to the vector).
func (p *pipeline) flush() {
	p.decode = pipelineSlot{}
	p.execute = pipelineSlot{}
}
