package itinerary

// ProgressFunc adapts a plain function to the ProgressReporter
// interface. A nil ProgressFunc drops every tick.
type ProgressFunc func(value int)

func (f ProgressFunc) Progress(value int) {
	if f != nil {
		f(value)
	}
}

// ChannelReporter delivers ticks over a buffered channel. Sends never
// block: when the consumer is slow or gone, ticks are dropped rather
// than stalling the calculation.
type ChannelReporter struct {
	ch chan int
}

func NewChannelReporter(buffer int) *ChannelReporter {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelReporter{ch: make(chan int, buffer)}
}

func (r *ChannelReporter) Progress(value int) {
	select {
	case r.ch <- value:
	default:
	}
}

// Ticks is the consumer side of the reporter
func (r *ChannelReporter) Ticks() <-chan int {
	return r.ch
}
