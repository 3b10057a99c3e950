package pending

// Result represents an in-flight or completed call.
type Result struct {
	done  chan struct{}
	value any
	err   error
}

// Done returns a channel that is closed when the call completes.
func (r *Result) Done() <-chan struct{} { return r.done }

// Get blocks until the call completes and returns its outcome.
func (r *Result) Get() (any, error) {
	<-r.done
	return r.value, r.err
}

// Err blocks until the call completes and returns its error.
func (r *Result) Err() error {
	<-r.done
	return r.err
}
