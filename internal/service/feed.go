package service

import "sync"

// FeedService fans out "list changed" signals to the subscribers of each user.
// Signals carry no payload; a subscriber re-reads the list when woken. A slow
// subscriber misses intermediate signals but never the latest one.
type FeedService struct {
	mu   sync.Mutex
	subs map[uint]map[chan struct{}]struct{}
}

func NewFeedService() *FeedService {
	return &FeedService{subs: make(map[uint]map[chan struct{}]struct{})}
}

var _ Feed = (*FeedService)(nil)

// Subscribe registers interest in userID's list. The returned cancel func must
// be called once the caller stops reading.
func (f *FeedService) Subscribe(userID uint) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	f.mu.Lock()
	set, ok := f.subs[userID]
	if !ok {
		set = make(map[chan struct{}]struct{})
		f.subs[userID] = set
	}
	set[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs[userID], ch)
			if len(f.subs[userID]) == 0 {
				delete(f.subs, userID)
			}
		})
	}
	return ch, cancel
}

// Publish wakes every subscriber of userID without blocking.
func (f *FeedService) Publish(userID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs[userID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns how many connections currently watch userID.
func (f *FeedService) Subscribers(userID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[userID])
}
