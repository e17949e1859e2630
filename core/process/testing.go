package process

import (
	"context"
	"sync"
)

// === Test doubles ===

// TellRecord is one delivery captured by RecordingDispatcher.
type TellRecord struct {
	To      Identity
	Message any
}

// RecordingDispatcher captures tells and kills instead of delivering them.
type RecordingDispatcher struct {
	mu    sync.Mutex
	tells []TellRecord
	kills []Identity
}

func NewRecordingDispatcher() *RecordingDispatcher { return &RecordingDispatcher{} }

func (d *RecordingDispatcher) Tell(_ context.Context, to Identity, msg any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tells = append(d.tells, TellRecord{To: to, Message: msg})
	return nil
}

func (d *RecordingDispatcher) Kill(_ context.Context, id Identity) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.kills = append(d.kills, id)
	return nil
}

func (d *RecordingDispatcher) Tells() []TellRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]TellRecord(nil), d.tells...)
}

func (d *RecordingDispatcher) Kills() []Identity {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Identity(nil), d.kills...)
}

var _ Dispatcher = (*RecordingDispatcher)(nil)

// RecordingSinks captures dead letters and failures for inspection.
type RecordingSinks struct {
	mu          sync.Mutex
	deadLetters []DeadLetter
	failures    []Failure
}

func NewRecordingSinks() *RecordingSinks { return &RecordingSinks{} }

func (s *RecordingSinks) DeadLetter(dl DeadLetter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadLetters = append(s.deadLetters, dl)
}

func (s *RecordingSinks) Failure(f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, f)
}

func (s *RecordingSinks) DeadLetters() []DeadLetter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DeadLetter(nil), s.deadLetters...)
}

func (s *RecordingSinks) Failures() []Failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Failure(nil), s.failures...)
}

var (
	_ DeadLetterSink = (*RecordingSinks)(nil)
	_ ErrorSink      = (*RecordingSinks)(nil)
)
