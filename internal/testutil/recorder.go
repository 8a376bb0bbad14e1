package testutil

import "sync"

// Notification is one recorded notification.
type Notification struct {
	Kind    string // "error", "success" or "loading"
	Message string
}

// Recorder is a notify.Notifier that records every message.
type Recorder struct {
	mu    sync.Mutex
	notes []Notification
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Notification{Kind: kind, Message: msg})
}

func (r *Recorder) Error(msg string)   { r.add("error", msg) }
func (r *Recorder) Success(msg string) { r.add("success", msg) }
func (r *Recorder) Loading(msg string) { r.add("loading", msg) }

// All returns all recorded notifications in order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Notification, len(r.notes))
	copy(result, r.notes)
	return result
}

// Errors returns the messages of recorded error notifications.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []string
	for _, n := range r.notes {
		if n.Kind == "error" {
			result = append(result, n.Message)
		}
	}
	return result
}
