// Package sim implements the core of a cycle-accurate simulator for
// on-chip interconnection networks built from virtual-channel (VC)
// input-queued routers connected by pipelined channels.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - flit.go, credit.go: the control-plane records that flow through the network
//   - channel.go: the fixed-latency pipelines (wires) that carry them
//   - vc.go, buffer.go: per-input virtual-channel state and storage
//   - bufferstate.go: the downstream credit mirror that gates VA and SA
//   - router.go: the RC → VA → SA → ST pipeline, one router per cycle
//   - network.go: owns every router and channel, ticks them in lockstep
//
// # Architecture
//
// sim defines the router pipeline and the allocator machinery that drives
// it; topology construction, routing functions, and traffic generation are
// external collaborators that consume or produce the types defined here.
// Sub-packages hold independently testable machinery:
//   - sim/arbiter: single-resource tie-break policies (round-robin, matrix,
//     weighted round-robin, probabilistic)
//   - sim/allocator: bipartite-matching strategies built on sim/arbiter
//   - sim/telemetry: activity counters for channel/switch/buffer utilization
//   - sim/demo: a minimal ring topology and routing function used only by
//     the CLI and the integration tests; not part of the core
//
// # Key Interfaces
//
// The extension points the spec assigns to external collaborators are
// narrow:
//   - RoutingFunc: (router, flit, inChannel) -> OutputSet
//   - PriorityPolicy: recompute a VC's arbitration priority from its head flit
//
// Everything else — the VC state machine, the allocators, the pipeline
// stage ordering — is owned by this package.
package sim
