package allocator

// MaxSize is the greedy maximal-size matching named in spec §4.5 alongside
// LOA and SelAlloc as a "variant trading quality for simplicity": rather
// than iterating request/grant/accept rounds like the iSLIP/PIM family
// (iterative.go), it commits the single highest-priority still-available
// (in, out) request on each pass and repeats until no pair can be added,
// giving a maximal (not necessarily maximum) matching in one style of pass
// instead of a fixed iteration budget. Grounded on the original's
// src/allocators/allocator.cpp, which names "max_size" as BookSim2's
// default vc_allocator/sw_allocator; the retrieved pack did not include
// maxsize.cpp's body, so the pass structure below follows the textbook
// greedy-maximal-matching description rather than a line-for-line port.
type MaxSize struct {
	matching
	requestSet
}

// NewMaxSize builds a MaxSize allocator.
func NewMaxSize(inputs, outputs int) *MaxSize {
	return &MaxSize{matching: newMatching(inputs, outputs), requestSet: newRequestSet(inputs)}
}

func (a *MaxSize) Clear()                                       { a.requestSet.clear() }
func (a *MaxSize) AddRequest(in, out, label, inPri, outPri int) { a.requestSet.add(in, out, label, inPri, outPri) }
func (a *MaxSize) RemoveRequest(in, out, label int)             { a.requestSet.remove(in, out, label) }
func (a *MaxSize) ReadRequest(in, out int) (int, bool) {
	req, ok := a.requestSet.read(in, out)
	if !ok {
		return -1, false
	}
	return req.Label, true
}

func (a *MaxSize) Allocate() {
	a.clearMatching()

	for {
		bestIn, bestOut, bestPri := -1, -1, -1<<31
		for in := 0; in < a.inputs; in++ {
			if a.inMatch[in] != -1 {
				continue
			}
			for _, req := range a.forInput(in) {
				if a.outMatch[req.Port] != -1 || a.outMask[req.Port] {
					continue
				}
				pri := req.InPri + req.OutPri
				if pri > bestPri {
					bestIn, bestOut, bestPri = in, req.Port, pri
				}
			}
		}
		if bestIn == -1 {
			break
		}
		a.inMatch[bestIn] = bestOut
		a.outMatch[bestOut] = bestIn
	}
}
