package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration time.Duration
	Nodes    int    // Positions entered by the search
	Cutoffs  int    // Alpha-beta prunes
	Depth    int    // Deepest fully searched depth
	Outcome  string // How the search ended
}

type MoveMetric struct {
	Ply    int
	Player string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string
	Decisive       bool   // Whether the game ended with a side unable to move
	Reason         string // Why the game stopped
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalPlies     int
}

type Collector interface {
	Start()
	AddNode()
	AddCutoff()
	CompleteDepth(depth int)
	Complete(outcome string) SearchMetric
}

type collector struct {
	startTime time.Time
	nodes     atomic.Int64
	cutoffs   atomic.Int64
	depth     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.depth.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) Complete(outcome string) SearchMetric {
	return SearchMetric{
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		Cutoffs:  int(m.cutoffs.Load()),
		Depth:    int(m.depth.Load()),
		Outcome:  outcome,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                               {}
func (m *dummyCollector) AddNode()                             {}
func (m *dummyCollector) AddCutoff()                           {}
func (m *dummyCollector) CompleteDepth(depth int)              {}
func (m *dummyCollector) Complete(outcome string) SearchMetric { return SearchMetric{} }
