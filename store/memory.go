package store

import (
	"context"
	"encoding/json"
	"sync"

	"tripflow/models"
)

// MemoryStore is an in-memory SessionStore used in tests and single-node
// development. Values are stored as JSON blobs so marshaling behaves the
// same as the Redis store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
	jobs     map[string][]byte
	locks    map[string]string // sessionID -> active jobID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]byte),
		jobs:     make(map[string][]byte),
		locks:    make(map[string]string),
	}
}

func (m *MemoryStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (m *MemoryStore) PutSession(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = data
	return nil
}

func (m *MemoryStore) DeleteSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	delete(m.locks, sessionID)
	return nil
}

func (m *MemoryStore) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.jobs[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	var job models.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (m *MemoryStore) PutJob(ctx context.Context, job *models.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = data
	return nil
}

func (m *MemoryStore) AcquireJob(ctx context.Context, sessionID, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if holder, ok := m.locks[sessionID]; ok && holder != jobID {
		return ErrJobConflict
	}
	m.locks[sessionID] = jobID
	return nil
}

func (m *MemoryStore) ReleaseJob(ctx context.Context, sessionID, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if holder, ok := m.locks[sessionID]; ok && holder == jobID {
		delete(m.locks, sessionID)
	}
	return nil
}
