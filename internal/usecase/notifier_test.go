package usecase

import "sync"

type notice struct {
	Level   NoticeLevel
	Message string
}

// RecordingNotifier keeps every notice in memory.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (r *RecordingNotifier) Notify(level NoticeLevel, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{Level: level, Message: message})
}

func (r *RecordingNotifier) Notices() []notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notice, len(r.notices))
	copy(out, r.notices)
	return out
}
