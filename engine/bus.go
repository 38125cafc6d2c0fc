package engine

// Bus is the bounded FIFO of intents drained once per frame.
//
// Sends never block: the frame loop is single threaded, so a blocked sender
// would never see the drain. When the ring is full the intent is parked in an
// overflow queue and moved into the ring after the next drain, which applies
// it one frame late instead of dropping it. While anything is parked, new
// sends park behind it so ordering is kept.
type Bus struct {
	ring     []Intent
	head     int
	size     int
	overflow []Intent
	closed   bool

	sent     uint64
	deferred uint64
}

func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = 1
	}
	return &Bus{ring: make([]Intent, capacity)}
}

// Send queues an intent. It fails only after Close.
func (b *Bus) Send(in Intent) error {
	if b.closed {
		return ErrChannelClosed
	}

	b.sent++
	if len(b.overflow) > 0 || b.size == len(b.ring) {
		b.overflow = append(b.overflow, in)
		b.deferred++
		return nil
	}

	b.push(in)
	return nil
}

func (b *Bus) push(in Intent) {
	b.ring[(b.head+b.size)%len(b.ring)] = in
	b.size++
}

func (b *Bus) pop() Intent {
	in := b.ring[b.head]
	b.ring[b.head] = nil
	b.head = (b.head + 1) % len(b.ring)
	b.size--
	return in
}

// Drain applies fn to every intent queued when the drain started, oldest
// first. Intents sent from inside fn wait for the next drain. Parked overflow
// is promoted into the ring afterwards. It returns the number applied.
func (b *Bus) Drain(fn func(Intent)) int {
	n := b.size
	for i := 0; i < n; i++ {
		fn(b.pop())
	}

	promoted := 0
	for promoted < len(b.overflow) && b.size < len(b.ring) {
		b.push(b.overflow[promoted])
		promoted++
	}
	if promoted > 0 {
		rest := copy(b.overflow, b.overflow[promoted:])
		clear(b.overflow[rest:])
		b.overflow = b.overflow[:rest]
	}

	return n
}

// Close rejects every later send. Queued intents are kept.
func (b *Bus) Close() {
	b.closed = true
}

func (b *Bus) Closed() bool {
	return b.closed
}

// Len returns the number of intents waiting in the ring.
func (b *Bus) Len() int {
	return b.size
}

// Parked returns the number of intents waiting for ring space.
func (b *Bus) Parked() int {
	return len(b.overflow)
}

func (b *Bus) Cap() int {
	return len(b.ring)
}
