// Package store owns the live document between ingestion runs and
// exposes the administrative mutation surface. Every mutation requires
// an explicit, verified admin session — there is no ambient admin
// state — and appends an audit entry describing what changed.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/pkg/session"
)

// ── store errors ──

var (
	ErrAdminRequired      = errors.New("admin session required")
	ErrBadCredentials     = errors.New("wrong admin password")
	ErrNoAdminPassword    = errors.New("admin password not configured")
	ErrPasswordAlreadySet = errors.New("admin password already set")
	ErrPersonNotFound     = errors.New("person not found")
	ErrLeaveNotFound      = errors.New("leave record not found")
	ErrTrackingNotFound   = errors.New("tracking record not found")
	ErrDepartureNotFound  = errors.New("departure record not found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidDateRange   = errors.New("end date before start date")
	ErrMergeTooFew        = errors.New("merging requires at least two people")
	ErrMergeDuplicateID   = errors.New("duplicate person id in merge")
)

// Store wraps one document behind a mutex. Reads return copies; writes
// go through admin-gated mutation methods that keep derived fields and
// the audit trail consistent.
type Store struct {
	mu       sync.RWMutex
	doc      *model.Document
	sessions *session.Manager
	auditMax int
	log      *zap.Logger
}

// New wraps an existing document.
func New(doc *model.Document, sessions *session.Manager, auditMax int, log *zap.Logger) *Store {
	return &Store{doc: doc, sessions: sessions, auditMax: auditMax, log: log}
}

// ── persistence ──

// LoadDocument reads a document from disk.
func LoadDocument(path string) (*model.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &doc, nil
}

// WriteDocument writes a document atomically: the JSON goes to a
// temporary file in the target directory which is then renamed over
// the destination, so readers never observe a half-written document.
func WriteDocument(doc *model.Document, path string) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing document: %w", err)
	}
	return nil
}

// Save persists the current document to path.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return WriteDocument(s.doc, path)
}

// Snapshot returns a deep copy of the document, safe to hand to
// rendering or sync collaborators while mutations continue.
func (s *Store) Snapshot() (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := json.Marshal(s.doc)
	if err != nil {
		return nil, err
	}
	var clone model.Document
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

// ── admin auth ──

// SetAdminPassword sets the credential hash. When a hash already
// exists, replacing it requires a valid session.
func (s *Store) SetAdminPassword(password string, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.Meta.AdminHash != nil {
		if err := s.authorize(sess); err != nil {
			return ErrPasswordAlreadySet
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	h := string(hash)
	s.doc.Meta.AdminHash = &h
	s.touch()

	s.audit("SET_PASSWORD", "admin", "credential", nil, sess)
	return nil
}

// Login verifies the admin password and issues a session token.
func (s *Store) Login(password string) (*session.Session, error) {
	s.mu.RLock()
	hash := s.doc.Meta.AdminHash
	s.mu.RUnlock()

	if hash == nil {
		return nil, ErrNoAdminPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	sess, err := s.sessions.Issue()
	if err != nil {
		return nil, err
	}
	s.log.Info("admin session issued", zap.String("session", sess.ID))
	return sess, nil
}

// authorize checks the session token. Callers hold the lock.
func (s *Store) authorize(sess *session.Session) error {
	if sess == nil {
		return ErrAdminRequired
	}
	if _, err := s.sessions.Verify(sess.Token); err != nil {
		return ErrAdminRequired
	}
	return nil
}

// ── audit ──

// audit prepends an entry and trims the trail to the configured cap.
// Callers hold the write lock.
func (s *Store) audit(action, entityType, entityID string, details map[string]any, sess *session.Session) {
	var sessionID *string
	if sess != nil {
		id := sess.ID
		sessionID = &id
	}

	entry := model.AuditEntry{
		ID:           uuid.New().String(),
		Action:       action,
		EntityType:   entityType,
		EntityID:     entityID,
		Details:      details,
		Timestamp:    time.Now().UTC(),
		AdminSession: sessionID,
	}

	s.doc.Audit = append([]model.AuditEntry{entry}, s.doc.Audit...)
	if len(s.doc.Audit) > s.auditMax {
		s.doc.Audit = s.doc.Audit[:s.auditMax]
	}
}

// touch bumps the document's last-updated stamp. Callers hold the
// write lock.
func (s *Store) touch() {
	s.doc.Meta.LastUpdated = time.Now().UTC()
}
