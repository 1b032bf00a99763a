// Package hardware is the base package for the console emulation. It and
// its sub-packages contain everything required for a headless emulation.
//
// The Console type is the root of the emulation and owns every
// sub-system: the ARM7TDMI CPU, the memory bus, DMA, timers, the
// interrupt controller, the scheduler, the PPU and the keypad. From here
// the emulation can either be run continuously (with a callback checked
// each frame to decide whether to continue) or stepped instruction by
// instruction.
package hardware
