// Package telemetry implements the activity counters the router's
// pipeline updates on every read/write/traversal but that never affect
// functional behavior (spec §4.6: "Activity monitors... increment
// per-class counters on every read/write/traversal but never affect
// functional behavior"). Grounded on the original's SwitchMonitor and
// BufferMonitor classes (iq_router.cpp, lines below _OutputQueuing).
//
// This package takes plain int class indices rather than sim.FlitType so
// it has no dependency on package sim; the router converts its FlitType
// values to ints at the call site.
package telemetry

import "fmt"

// SwitchMonitor counts, per (input, output, class) triple, how many
// flits of that class crossed the crossbar on that path, plus a total
// cycle count for utilization reporting.
type SwitchMonitor struct {
	inputs, outputs, classes int
	cycles                   int64
	event                    []int64
}

// NewSwitchMonitor creates a SwitchMonitor sized for the given router
// radix and traffic-class count.
func NewSwitchMonitor(inputs, outputs, classes int) *SwitchMonitor {
	return &SwitchMonitor{
		inputs:  inputs,
		outputs: outputs,
		classes: classes,
		event:   make([]int64, inputs*outputs*classes),
	}
}

func (m *SwitchMonitor) index(input, output, class int) int {
	return class + m.classes*(output+m.outputs*input)
}

// Cycle marks one elapsed router cycle, called once per InternalStep.
func (m *SwitchMonitor) Cycle() { m.cycles++ }

// Traversal records one flit of the given class crossing input->output.
func (m *SwitchMonitor) Traversal(input, output, class int) {
	m.event[m.index(input, output, class)]++
}

// Count returns the number of class flits that have crossed input->output.
func (m *SwitchMonitor) Count(input, output, class int) int64 {
	return m.event[m.index(input, output, class)]
}

// Cycles returns the number of cycles observed.
func (m *SwitchMonitor) Cycles() int64 { return m.cycles }

func (m *SwitchMonitor) String() string {
	s := ""
	for i := 0; i < m.inputs; i++ {
		for o := 0; o < m.outputs; o++ {
			s += fmt.Sprintf("[%d -> %d] ", i, o)
			for c := 0; c < m.classes; c++ {
				s += fmt.Sprintf("%d:%d ", c, m.Count(i, o, c))
			}
			s += "\n"
		}
	}
	return s
}

// BufferMonitor counts, per (input, class) pair, how many flits of that
// class were written into and read out of an input's buffers.
type BufferMonitor struct {
	inputs, classes int
	cycles          int64
	reads, writes   []int64
}

// NewBufferMonitor creates a BufferMonitor sized for the given input
// count and traffic-class count.
func NewBufferMonitor(inputs, classes int) *BufferMonitor {
	return &BufferMonitor{
		inputs:  inputs,
		classes: classes,
		reads:   make([]int64, inputs*classes),
		writes:  make([]int64, inputs*classes),
	}
}

func (m *BufferMonitor) index(input, class int) int {
	return class + m.classes*input
}

// Cycle marks one elapsed router cycle.
func (m *BufferMonitor) Cycle() { m.cycles++ }

// Write records one class flit arriving at input.
func (m *BufferMonitor) Write(input, class int) {
	m.writes[m.index(input, class)]++
}

// Read records one class flit leaving input's buffer across the switch.
func (m *BufferMonitor) Read(input, class int) {
	m.reads[m.index(input, class)]++
}

// Reads returns the count of class flits read from input.
func (m *BufferMonitor) Reads(input, class int) int64 {
	return m.reads[m.index(input, class)]
}

// Writes returns the count of class flits written to input.
func (m *BufferMonitor) Writes(input, class int) int64 {
	return m.writes[m.index(input, class)]
}

func (m *BufferMonitor) String() string {
	s := ""
	for i := 0; i < m.inputs; i++ {
		s += fmt.Sprintf("[ %d ] ", i)
		for c := 0; c < m.classes; c++ {
			s += fmt.Sprintf("class=%d:(R#%d,W#%d) ", c, m.Reads(i, c), m.Writes(i, c))
		}
		s += "\n"
	}
	return s
}
