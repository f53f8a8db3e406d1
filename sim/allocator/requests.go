package allocator

// requestSet stores the sparse per-input request lists every concrete
// allocator needs (spec §4.5's add_request/remove_request/read_request),
// grounded on the original's list<sRequest> _requests[inputs] sparse
// representation — sparse because a VC allocator's "outputs" are
// (port, vc) pairs and most combinations go unrequested each cycle.
type requestSet struct {
	requests [][]Request // requests[in] is an unordered bag of bids
}

func newRequestSet(inputs int) requestSet {
	return requestSet{requests: make([][]Request, inputs)}
}

func (r *requestSet) clear() {
	for i := range r.requests {
		r.requests[i] = r.requests[i][:0]
	}
}

func (r *requestSet) add(in, out, label, inPri, outPri int) {
	r.requests[in] = append(r.requests[in], Request{Port: out, Label: label, InPri: inPri, OutPri: outPri})
}

func (r *requestSet) remove(in, out, label int) {
	reqs := r.requests[in]
	for i, req := range reqs {
		if req.Port == out && req.Label == label {
			r.requests[in] = append(reqs[:i], reqs[i+1:]...)
			return
		}
	}
}

// read returns the highest-InPri pending request from in to out.
func (r *requestSet) read(in, out int) (Request, bool) {
	best := Request{}
	found := false
	for _, req := range r.requests[in] {
		if req.Port == out && (!found || req.InPri > best.InPri) {
			best = req
			found = true
		}
	}
	return best, found
}

func (r *requestSet) forInput(in int) []Request { return r.requests[in] }
