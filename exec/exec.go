// Package exec drives per-frame execution of a compiled render path:
// frame-slot rotation, parallel secondary command buffer recording, pass
// dispatch, and barrier emission.
package exec

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/shsengine/shs/barrierplan"
	"github.com/shsengine/shs/internal/parallel"
	"github.com/shsengine/shs/pass"
	"github.com/shsengine/shs/pathcompiler"
)

// minWorkers and maxWorkers clamp the secondary-recording pool to
// hardware concurrency, per spec.md §4.6.
const (
	minWorkers = 1
	maxWorkers = 8
)

// clampWorkers returns the worker count to use for secondary command
// buffer recording, clamped to [minWorkers, maxWorkers].
func clampWorkers(n int) int {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n < minWorkers {
		return minWorkers
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}

// RingSize is the fixed number of frame slots in flight, per spec.md §5.
const RingSize = 2

// PingPong identifies which post-color buffer a pass reads or writes.
type PingPong uint8

// Ping-pong source states.
const (
	PingPongNone PingPong = iota
	PingPongA
	PingPongB
)

// FrameInfo is handed to every pass handler invocation.
type FrameInfo struct {
	Index     uint64
	Slot      int
	PingPong  PingPong
	Secondary []func()
}

// Telemetry accumulates per-frame counters surfaced to logs/JSONL
// streams, per spec.md §7.
type Telemetry struct {
	RebuildEvents             int
	BarrierEmissions          int
	BarrierFallbacks          int
	UnhandledPassWarningsOnce map[pass.Id]bool
}

func newTelemetry() *Telemetry {
	return &Telemetry{UnhandledPassWarningsOnce: make(map[pass.Id]bool)}
}

// Executor runs frames against a compiled ExecutionPlan + BarrierPlan,
// dispatching through a pass.Registry and recording secondary command
// buffers across a worker pool.
type Executor struct {
	registry *pass.Registry
	pool     *parallel.WorkerPool
	workers  int

	mu        sync.Mutex
	plan      pathcompiler.ExecutionPlan
	barriers  barrierplan.BarrierPlan
	telemetry Telemetry

	emittedEdges map[edgeKey]bool
	frameIndex   uint64
	slot         int

	historyValid bool
	taaEnabled   bool

	log *slog.Logger
}

type edgeKey struct {
	producer pass.Id
	semantic pass.Semantic
	consumer pass.Id
}

// NewExecutor builds an Executor with a secondary-recording pool sized
// by workers (<=0 uses hardware concurrency, clamped to [1,8]).
func NewExecutor(registry *pass.Registry, workers int, log *slog.Logger) *Executor {
	if log == nil {
		log = slog.Default()
	}
	w := clampWorkers(workers)
	return &Executor{
		registry:     registry,
		pool:         parallel.NewWorkerPool(w),
		workers:      w,
		emittedEdges: make(map[edgeKey]bool),
		telemetry:    *newTelemetry(),
		log:          log,
	}
}

// Close releases the executor's worker pool.
func (e *Executor) Close() { e.pool.Close() }

// SetPlan installs a new ExecutionPlan + BarrierPlan, taking effect on
// the next RunFrame call. Installing a plan counts as a rebuild event.
func (e *Executor) SetPlan(ep pathcompiler.ExecutionPlan, bp barrierplan.BarrierPlan) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.plan = ep
	e.barriers = bp
	e.telemetry.RebuildEvents++

	if !hasPass(ep, pass.TAA) {
		// Disabling TAA invalidates history so the next frame doesn't
		// blend against stale data, per spec.md §8 boundary behavior.
		e.historyValid = false
		e.taaEnabled = false
	} else {
		e.taaEnabled = true
	}
}

func hasPass(ep pathcompiler.ExecutionPlan, id pass.Id) bool {
	for _, p := range ep.Passes {
		if p.PassID == id {
			return true
		}
	}
	return false
}

// Telemetry returns a snapshot of the executor's running counters.
func (e *Executor) Telemetry() Telemetry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.telemetry
}

// RecordWork partitions instanceCount work items into batches, one per
// worker, and records them via the executor's pool. recordBatch is
// called once per batch with the [start,end) range of instance indices
// it owns; it must be safe to call concurrently with other batches.
func (e *Executor) RecordWork(instanceCount int, recordBatch func(start, end int)) {
	if instanceCount <= 0 {
		return
	}
	batches := e.workers
	if batches > instanceCount {
		batches = instanceCount
	}
	size := (instanceCount + batches - 1) / batches

	work := make([]func(), 0, batches)
	for start := 0; start < instanceCount; start += size {
		end := start + size
		if end > instanceCount {
			end = instanceCount
		}
		s, en := start, end
		work = append(work, func() { recordBatch(s, en) })
	}
	e.pool.ExecuteAll(work)
}

// BeginFrame rotates to the next frame slot and returns the FrameInfo
// for the upcoming frame.
func (e *Executor) BeginFrame() FrameInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.slot = (e.slot + 1) % RingSize
	e.frameIndex++
	for k := range e.emittedEdges {
		delete(e.emittedEdges, k)
	}
	return FrameInfo{Index: e.frameIndex, Slot: e.slot, PingPong: PingPongNone}
}

// EmitBarrier looks up the BarrierPlan edge bridging producer and
// consumer for the given semantic and calls emit with it. If no such
// edge exists, it falls back to a conservative memory barrier and
// increments the fallback counter, per spec.md §4.6 step 8.
func (e *Executor) EmitBarrier(producer, consumer pass.Id, semantic pass.Semantic, emit func(edge barrierplan.Edge)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := edgeKey{producer, semantic, consumer}
	if e.emittedEdges[key] {
		return // at most once per (semantic, producer, consumer) per frame
	}
	e.emittedEdges[key] = true

	for _, edge := range e.barriers.Edges {
		if edge.ProducerID == producer && edge.ConsumerID == consumer && edge.Semantic == semantic {
			e.telemetry.BarrierEmissions++
			emit(edge)
			return
		}
	}

	e.telemetry.BarrierFallbacks++
	emit(barrierplan.Edge{
		ProducerID:            producer,
		ConsumerID:            consumer,
		Semantic:              semantic,
		RequiresMemoryBarrier: true,
	})
}

// PassContext is the execution context passed to every pass.Handler: frame
// info, the global descriptor set, and the ping-pong source to consume or
// produce. Backends type-assert Descriptor to their own concrete type.
type PassContext struct {
	Frame      FrameInfo
	Descriptor any
}

// DispatchPass looks up compiled pass p's handler and invokes it. An
// unhandled pass logs a one-shot warning and is a no-op thereafter,
// per spec.md §7's frame-transient error kind.
func (e *Executor) DispatchPass(p pathcompiler.CompiledPass, pctx PassContext) error {
	handler, ok := e.registry.Handler(p.PassID)
	if !ok || handler == nil {
		e.mu.Lock()
		warned := e.telemetry.UnhandledPassWarningsOnce[p.PassID]
		if !warned {
			e.telemetry.UnhandledPassWarningsOnce[p.PassID] = true
		}
		e.mu.Unlock()
		if !warned {
			e.log.Warn("unhandled pass, falling back to no-op", "pass", p.PassID.String())
		}
		return nil
	}
	if err := handler(pctx, p.Contract); err != nil {
		return fmt.Errorf("dispatch pass %s: %w", p.PassID, err)
	}
	return nil
}

// RunFrame executes the installed plan once: dispatches every compiled
// pass in order, emitting a barrier for every edge in the installed
// BarrierPlan whose consumer is the about-to-run pass, regardless of how
// many passes back its producer sits in the chain, per spec.md §4.6 step
// 8 / §5 ("emit barriers immediately before each consuming pass").
func (e *Executor) RunFrame(info FrameInfo, descriptor any, emitBarrier func(edge barrierplan.Edge)) error {
	e.mu.Lock()
	plan := e.plan
	barriers := e.barriers
	e.mu.Unlock()

	for i := range plan.Passes {
		p := plan.Passes[i]
		for _, edge := range barriers.Edges {
			if edge.ConsumerID != p.PassID {
				continue
			}
			e.EmitBarrier(edge.ProducerID, p.PassID, edge.Semantic, emitBarrier)
		}
		if err := e.DispatchPass(p, PassContext{Frame: info, Descriptor: descriptor}); err != nil {
			return err
		}
	}
	return nil
}
