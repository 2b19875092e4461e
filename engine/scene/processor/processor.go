package processor

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"golang.org/x/sync/errgroup"
)

const (
	requestQueueSize = 4
	workerTimeout    = 1 * time.Second
)

// Result is one worker output: exactly one of Scene or Frame is non-nil,
// mirroring the two request variants of spec.md §4.7.
type Result struct {
	Scene *PreparedScene
	Frame *PreparedAnimationFrame
}

// Processor is the single background scene-processor worker of spec.md §5:
// a bounded request queue and an unbounded result queue, with the per-entity
// mesh cache owned exclusively by the worker goroutine.
type Processor struct {
	pool worker.DynamicWorkerPool

	requests chan any
	done     chan struct{}

	resultMu sync.Mutex
	results  []Result

	// Worker-owned state; only ever touched from the pool's single task
	// goroutine, never from SubmitFullRebuild/SubmitAnimationFrame/PollResult.
	cache          map[uint32]*cachedEntityMesh
	order          []uint32
	lastGeneration uint64
	lastLayouts    map[uint32]EntityByteLayout
}

// New starts the background worker. Call Close when the scene is torn down.
func New() *Processor {
	p := &Processor{
		pool:     worker.NewDynamicWorkerPool(1, requestQueueSize, workerTimeout),
		requests: make(chan any, requestQueueSize),
		done:     make(chan struct{}),
		cache:    make(map[uint32]*cachedEntityMesh),
	}
	p.pool.SubmitTask(worker.Task{
		ID: 0,
		Do: func() (any, error) {
			p.loop()
			return nil, nil
		},
	})
	return p
}

// SubmitFullRebuild enqueues a FullRebuild request. Returns false if the
// bounded request queue is full; the caller should try again next frame
// rather than block (spec.md §5: "the main thread never blocks on the
// worker").
func (p *Processor) SubmitFullRebuild(req FullRebuildRequest) bool {
	select {
	case p.requests <- req:
		return true
	default:
		return false
	}
}

// SubmitAnimationFrame enqueues an AnimationFrame request.
func (p *Processor) SubmitAnimationFrame(req AnimationFrameRequest) bool {
	select {
	case p.requests <- req:
		return true
	default:
		return false
	}
}

// PollResult pops the oldest available result without blocking.
func (p *Processor) PollResult() (Result, bool) {
	p.resultMu.Lock()
	defer p.resultMu.Unlock()
	if len(p.results) == 0 {
		return Result{}, false
	}
	r := p.results[0]
	p.results = p.results[1:]
	return r, true
}

// Close stops the background worker. In-flight requests are abandoned.
func (p *Processor) Close() {
	close(p.done)
	close(p.requests)
}

func (p *Processor) loop() {
	for {
		select {
		case <-p.done:
			return
		case req, ok := <-p.requests:
			if !ok {
				return
			}
			p.handle(req)
		}
	}
}

func (p *Processor) handle(req any) {
	switch r := req.(type) {
	case FullRebuildRequest:
		p.handleFullRebuild(r)
	case AnimationFrameRequest:
		p.handleAnimationFrame(r)
	}
}

func (p *Processor) handleFullRebuild(req FullRebuildRequest) {
	order := make([]uint32, len(req.Entities))
	for i, e := range req.Entities {
		order[i] = e.EntityID
	}

	var mu sync.Mutex
	missed := make(map[uint32]*cachedEntityMesh, len(req.Entities))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for _, data := range req.Entities {
		data := data
		key := meshCacheKey{
			entityID:    data.EntityID,
			meshVersion: data.MeshVersion,
			display:     req.Display,
			colors:      colorKeyOf(req.Colors),
			geometry:    req.Geometry,
		}
		if existing, ok := p.cache[data.EntityID]; ok && existing.key == key {
			continue
		}
		g.Go(func() error {
			m := generateEntityMesh(data, req.Display, req.Colors, req.Geometry)
			mu.Lock()
			missed[data.EntityID] = m
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for id, m := range missed {
		p.cache[id] = m
	}

	// Drop cache entries for entities no longer present.
	wanted := make(map[uint32]bool, len(order))
	for _, id := range order {
		wanted[id] = true
	}
	for id := range p.cache {
		if !wanted[id] {
			delete(p.cache, id)
		}
	}

	p.order = order
	scene := concatenate(req.Generation, order, p.cache)
	scene.Transitions = req.Transitions

	p.lastGeneration = req.Generation
	p.lastLayouts = make(map[uint32]EntityByteLayout, len(scene.EntityLayouts))
	for _, l := range scene.EntityLayouts {
		p.lastLayouts[l.EntityID] = l
	}

	p.publish(Result{Scene: scene})
}

func (p *Processor) handleAnimationFrame(req AnimationFrameRequest) {
	if req.BaseGeneration != p.lastGeneration {
		p.publish(Result{Frame: &PreparedAnimationFrame{
			Generation:     req.Generation,
			BaseGeneration: req.BaseGeneration,
			Stale:          true,
		}})
		return
	}

	frame := &PreparedAnimationFrame{Generation: req.Generation, BaseGeneration: req.BaseGeneration}

	for _, ae := range req.Entities {
		cached, ok := p.cache[ae.EntityID]
		layout, haveLayout := p.lastLayouts[ae.EntityID]
		if !ok || !haveLayout {
			continue
		}

		vertexBytes := regenerateBackboneBytes(cached, ae.Backbone, layout.ResidueOffset)
		frame.VertexPatches = append(frame.VertexPatches, BytePatch{
			Offset: layout.VertexByteOffset,
			Data:   vertexBytes,
		})

		if ae.SidechainVisible {
			sidechainBytes := regenerateSidechainBytes(cached, ae.Sidechain)
			frame.SidechainPatches = append(frame.SidechainPatches, BytePatch{
				Offset: layout.SidechainByteOffset,
				Data:   sidechainBytes,
			})
		}
	}

	p.publish(Result{Frame: frame})
}

func (p *Processor) publish(r Result) {
	p.resultMu.Lock()
	p.results = append(p.results, r)
	p.resultMu.Unlock()
}
