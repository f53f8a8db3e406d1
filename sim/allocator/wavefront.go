package allocator

// Wavefront grants along diagonals of the N×N request matrix (N =
// max(inputs, outputs)), advancing a priority diagonal each cycle so no
// single diagonal starves (spec §4.5). Grounded on the original's
// wavefront.cpp, including its "upward diagonal" indexing quirk (noted
// in the original as matching PPIN's actual behavior rather than the
// textbook downward-diagonal description).
type Wavefront struct {
	matching
	requestSet
	square int
	pri    int
}

// NewWavefront builds a wavefront allocator over the given input/output
// counts.
func NewWavefront(inputs, outputs int) *Wavefront {
	square := inputs
	if outputs > square {
		square = outputs
	}
	return &Wavefront{
		matching:   newMatching(inputs, outputs),
		requestSet: newRequestSet(inputs),
		square:     square,
	}
}

func (w *Wavefront) Clear()                                       { w.requestSet.clear() }
func (w *Wavefront) AddRequest(in, out, label, inPri, outPri int) { w.requestSet.add(in, out, label, inPri, outPri) }
func (w *Wavefront) RemoveRequest(in, out, label int)             { w.requestSet.remove(in, out, label) }
func (w *Wavefront) ReadRequest(in, out int) (int, bool) {
	req, ok := w.requestSet.read(in, out)
	if !ok {
		return -1, false
	}
	return req.Label, true
}

func (w *Wavefront) requested(in, out int) bool {
	if w.outMask[out] {
		return false
	}
	_, ok := w.requestSet.read(in, out)
	return ok
}

func (w *Wavefront) Allocate() {
	w.clearMatching()

	for p := 0; p < w.square; p++ {
		for q := 0; q < w.square; q++ {
			in := (w.pri + p - q + w.square) % w.square
			out := q
			if in >= w.inputs || out >= w.outputs {
				continue
			}
			if w.inMatch[in] != -1 || w.outMatch[out] != -1 {
				continue
			}
			if !w.requested(in, out) {
				continue
			}
			w.inMatch[in] = out
			w.outMatch[out] = in
		}
	}

	w.pri = (w.pri + 1) % w.square
}

// RRWavefront is the fairer wavefront variant: after the usual one-step
// advance of the priority diagonal, it advances further by skipDiags, the
// smallest (in - out - pri) mod N over the requests registered this
// cycle (rr_wavefront.cpp / fair wavefront).
type RRWavefront struct {
	Wavefront
	skipDiags int
}

// NewRRWavefront builds the fairness-improved wavefront variant.
func NewRRWavefront(inputs, outputs int) *RRWavefront {
	square := inputs
	if outputs > square {
		square = outputs
	}
	return &RRWavefront{Wavefront: *NewWavefront(inputs, outputs), skipDiags: square}
}

func (w *RRWavefront) AddRequest(in, out, label, inPri, outPri int) {
	w.Wavefront.AddRequest(in, out, label, inPri, outPri)
	offset := (in + (w.square - out) + (w.square - w.pri)) % w.square
	if offset < w.skipDiags {
		w.skipDiags = offset
	}
}

func (w *RRWavefront) Allocate() {
	w.Wavefront.Allocate()
	// Wavefront.Allocate() already advanced pri by one (rr_wavefront.cpp
	// applies its fairness jump on top of that, not instead of it).
	w.pri = (w.pri + w.skipDiags) % w.square
	w.skipDiags = w.square
}
