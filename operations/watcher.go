package operations

import (
	"sort"
	"time"

	"github.com/mitchellh/go-ps"
	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/pretty"
)

type (
	// ChildMap maps pid to executable name for processes seen below this
	// process during a watched run.
	ChildMap map[int]string

	// ProcessMap is one sample of the system process table, with every
	// node linked under its parent when the parent is visible in the
	// same sample.
	ProcessMap map[int]*ProcessNode

	// ProcessNode is one process inside a sampled process tree.
	ProcessNode struct {
		Pid        int
		Parent     int
		Executable string
		Children   ProcessMap
	}
)

func NewProcessNode(core ps.Process) *ProcessNode {
	return &ProcessNode{
		Pid:        core.Pid(),
		Parent:     core.PPid(),
		Executable: core.Executable(),
		Children:   make(ProcessMap),
	}
}

// ProcessMapNow takes one sample of the current process table.
func ProcessMapNow() (ProcessMap, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, err
	}
	result := make(ProcessMap)
	for _, process := range processes {
		node := NewProcessNode(process)
		result[node.Pid] = node
	}
	for pid, node := range result {
		parent, ok := result[node.Parent]
		if ok {
			parent.Children[pid] = node
		}
	}
	return result, nil
}

// Descendants collects everything below given pid, to any depth.
func (it ProcessMap) Descendants(pid int) ChildMap {
	result := make(ChildMap)
	node, ok := it[pid]
	if ok {
		node.fill(result)
	}
	return result
}

func (it *ProcessNode) fill(sink ChildMap) {
	for pid, child := range it.Children {
		sink[pid] = child.Executable
		child.fill(sink)
	}
}

// Keys returns the pids of this map in ascending order.
func (it ChildMap) Keys() []int {
	keys := make([]int, 0, len(it))
	for key := range it {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

// WatchChildren samples the subtree below given pid on the given interval
// until the reply pipe is read. The single reply is the union of every
// descendant seen during the watch, including ones that already exited.
func WatchChildren(pid int, delay time.Duration) chan ChildMap {
	common.Debug("Starting subprocess watch below pid #%d.", pid)
	pipe := make(chan ChildMap)
	go babySitter(pid, pipe, delay)
	return pipe
}

func babySitter(pid int, reply chan ChildMap, delay time.Duration) {
	defer close(reply)
	seen := make(ChildMap)
	samples := 0
	for {
		processes, err := ProcessMapNow()
		if err == nil {
			samples++
			for child, executable := range processes.Descendants(pid) {
				seen[child] = executable
			}
		}
		select {
		case reply <- seen:
			common.Debug("Subprocess watch below #%d done, saw %d processes in %d samples.", pid, len(seen), samples)
			return
		case <-time.After(delay):
		}
	}
}

// SubprocessWarning warns about watched children that are still alive
// after the run they belong to has settled. Detection only, nothing is
// killed; the operator decides what a leftover means.
func SubprocessWarning(seen ChildMap, use bool) error {
	if !use || len(seen) == 0 {
		return nil
	}
	processes, err := ProcessMapNow()
	if err != nil {
		return err
	}
	leftovers := make(ChildMap)
	for pid, executable := range seen {
		alive, ok := processes[pid]
		// pid recycling: only the same executable counts as a leftover
		if ok && alive.Executable == executable {
			leftovers[pid] = executable
		}
	}
	if len(leftovers) == 0 {
		return nil
	}
	for _, pid := range leftovers.Keys() {
		pretty.Warning("Subprocess %q (pid #%d) is still running after the generation settled!", leftovers[pid], pid)
	}
	pretty.Note("If those processes should not stay around: %s", common.GenerateKillCommand(leftovers.Keys()))
	return nil
}
