// Package sim provides the discrete-event simulation engine for single- and
// multi-server queueing systems with optional bounded waiting capacity and balking.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - customer.go: Customer lifecycle (pending → waiting → in_service → completed, or balked)
//   - system.go: QueueingSystem admission and dispatch policy
//   - event.go: the two event variants (Arrival, ServiceCompletion) and their handling
//   - event_list.go: the FutureEventList, ordered by time with FIFO tie-break
//   - simulator.go: seeding and the event loop
//
// # Architecture
//
// The sim package defines the VariateSource interface it consumes; implementations
// live in sub-packages:
//   - sim/variate/: empirical, constant, sequence and exponential sources
//   - sim/experiment/: YAML experiment specs that build a sim.Config
//   - sim/trace/: per-event trace recording
//   - sim/recorder/: table, CSV and SQLite reporting sinks
//
// Execution is single-threaded: exactly one event is handled at a time, and
// handling never touches the FutureEventList. A handled event may return one
// follow-up event, which the driver pushes.
package sim
