package folder

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SayMoreX/digame/internal/schema"
)

// RetiredSession is a session displaced by a re-import. Retired sessions are
// recoverable until the project is discarded; import never merges.
type RetiredSession struct {
	ID        string // holding-area record id, not the session id
	Session   *Session
	RetiredAt time.Time
}

// Project is the root entity. It owns its own FieldSet plus the session and
// person collections.
//
// The collections are guarded by a mutex: the import collision step (retire
// prior session, finalize new one) must be atomic per entity so two
// concurrent imports cannot retire the same session twice.
type Project struct {
	Folder

	mu       sync.Mutex
	sessions []*Session
	people   []*Person
	bin      []RetiredSession
}

// NewProject creates an empty project.
func NewProject() *Project {
	return &Project{Folder: newFolder(schema.KindProject)}
}

// Sessions returns a snapshot of the session list.
func (p *Project) Sessions() []*Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Session, len(p.sessions))
	copy(out, p.sessions)
	return out
}

// People returns a snapshot of the person list.
func (p *Project) People() []*Person {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Person, len(p.people))
	copy(out, p.people)
	return out
}

// AddSession appends a session without any collision handling.
func (p *Project) AddSession(s *Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions = append(p.sessions, s)
}

// AddPerson appends a person.
func (p *Project) AddPerson(person *Person) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.people = append(p.people, person)
}

// FindSession returns the session with the given identifier, or nil.
func (p *Project) FindSession(id string) *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.findSessionLocked(id)
}

func (p *Project) findSessionLocked(id string) *Session {
	for _, s := range p.sessions {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// FinishSessionImport finalizes an imported session. If a session with the
// same identifier already exists it is retired to the holding area first;
// import is last-write-wins at the identifier level, never a merge. The
// whole step is atomic. Sessions without an identifier never collide.
func (p *Project) FinishSessionImport(s *Session) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if id := s.ID(); id != "" {
		if prior := p.findSessionLocked(id); prior != nil {
			p.retireLocked(prior)
		}
	}
	p.sessions = append(p.sessions, s)
}

func (p *Project) retireLocked(s *Session) {
	for i, existing := range p.sessions {
		if existing == s {
			p.sessions = append(p.sessions[:i], p.sessions[i+1:]...)
			break
		}
	}
	p.bin = append(p.bin, RetiredSession{
		ID:        uuid.NewString(),
		Session:   s,
		RetiredAt: time.Now(),
	})
}

// RetiredSessions returns a snapshot of the holding area.
func (p *Project) RetiredSessions() []RetiredSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]RetiredSession, len(p.bin))
	copy(out, p.bin)
	return out
}
