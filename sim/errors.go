package sim

import "fmt"

// InvariantViolation reports a fatal-invariant failure (§7): buffer
// overflow, a non-head flit arriving at an idle VC, a packet-id mismatch
// within a packet, or an unknown allocator/routing-function name. The
// cycle-accurate semantics cannot safely continue past one of these, so
// callers are expected to abort the run rather than retry.
type InvariantViolation struct {
	Router  int    // router ID where the violation was detected
	Input   int    // input port, or -1 if not applicable
	VC      int    // virtual channel index, or -1 if not applicable
	FlitID  int    // offending flit ID, or -1 if not applicable
	Message string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation at router %d (input=%d vc=%d flit=%d): %s",
		e.Router, e.Input, e.VC, e.FlitID, e.Message)
}

func invariantf(router, input, vc, flitID int, format string, args ...any) error {
	return &InvariantViolation{
		Router:  router,
		Input:   input,
		VC:      vc,
		FlitID:  flitID,
		Message: fmt.Sprintf(format, args...),
	}
}
