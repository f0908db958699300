// Package document tracks the editor buffers a language server session has
// open. Documents are keyed by URI and replaced wholesale on every change
// notification; the registry bounds how many it will hold so a misbehaving
// client cannot grow memory without limit.
package document

import (
	"sync"

	"github.com/cqlls/cqlls/errors"
	"github.com/cqlls/cqlls/logger"
)

// DefaultMaxOpen bounds the registry when the caller passes no explicit cap.
const DefaultMaxOpen = 100

// Document is one tracked editor buffer. The mutex serializes wholesale text
// replacement against readers taking snapshots.
type Document struct {
	URI string

	mu   sync.RWMutex
	text string
}

// Snapshot returns the document's current text under a read lock.
func (d *Document) Snapshot() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

func (d *Document) replace(text string) {
	d.mu.Lock()
	d.text = text
	d.mu.Unlock()
}

// Registry owns all open documents. The URI map sits behind the registry's
// own mutex, each Document carries its own RWMutex, and the active URI lives
// behind a third small mutex; no path takes one of these locks while holding
// another.
type Registry struct {
	mu    sync.Mutex
	docs  map[string]*Document
	order []string // touch order, oldest first
	max   int

	activeMu sync.Mutex
	active   string
}

// NewRegistry creates a registry holding at most max documents. Non-positive
// max falls back to DefaultMaxOpen.
func NewRegistry(max int) *Registry {
	if max <= 0 {
		max = DefaultMaxOpen
	}
	return &Registry{
		docs: make(map[string]*Document),
		max:  max,
	}
}

// Open tracks a document and makes it active. Opening an already-tracked URI
// replaces its text. When the registry is full the least recently touched
// document is evicted first.
func (r *Registry) Open(uri, text string) {
	r.upsert(uri, text)
	r.setActive(uri)
}

// Change replaces a document's text wholesale and makes it active. A change
// for an untracked URI behaves like an open; clients that notify out of
// order are tolerated rather than refused.
func (r *Registry) Change(uri, text string) {
	r.upsert(uri, text)
	r.setActive(uri)
}

// Close stops tracking a document. Closing the active document leaves no
// document active.
func (r *Registry) Close(uri string) {
	r.mu.Lock()
	if _, ok := r.docs[uri]; ok {
		delete(r.docs, uri)
		r.drop(uri)
	}
	r.mu.Unlock()

	r.activeMu.Lock()
	if r.active == uri {
		r.active = ""
	}
	r.activeMu.Unlock()
}

// Snapshot returns a copy of the document's current text.
func (r *Registry) Snapshot(uri string) (string, error) {
	r.mu.Lock()
	doc, ok := r.docs[uri]
	r.mu.Unlock()
	if !ok {
		return "", errors.NewDocumentNotFoundError("no document tracked for %s", uri)
	}
	return doc.Snapshot(), nil
}

// ActiveURI returns the most recently opened or changed URI.
func (r *Registry) ActiveURI() (string, bool) {
	r.activeMu.Lock()
	defer r.activeMu.Unlock()
	return r.active, r.active != ""
}

// ActiveSnapshot returns the active document's URI and text.
func (r *Registry) ActiveSnapshot() (string, string, error) {
	uri, ok := r.ActiveURI()
	if !ok {
		return "", "", errors.ErrNoActiveDocument
	}
	text, err := r.Snapshot(uri)
	if err != nil {
		return "", "", err
	}
	return uri, text, nil
}

// Len reports how many documents are tracked.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

func (r *Registry) setActive(uri string) {
	r.activeMu.Lock()
	r.active = uri
	r.activeMu.Unlock()
}

func (r *Registry) upsert(uri, text string) {
	r.mu.Lock()

	if doc, ok := r.docs[uri]; ok {
		r.drop(uri)
		r.order = append(r.order, uri)
		r.mu.Unlock()
		doc.replace(text)
		return
	}

	if len(r.docs) >= r.max {
		r.evictOldest()
	}
	r.docs[uri] = &Document{URI: uri, text: text}
	r.order = append(r.order, uri)
	r.mu.Unlock()
}

// drop removes uri from the touch order. Caller holds mu.
func (r *Registry) drop(uri string) {
	for i, u := range r.order {
		if u == uri {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// evictOldest removes the least recently touched document. Caller holds mu;
// the caller is about to insert and activate a new document, so the active
// URI needs no repair here.
func (r *Registry) evictOldest() {
	if len(r.order) == 0 {
		return
	}
	oldest := r.order[0]
	r.order = r.order[1:]
	delete(r.docs, oldest)
	logger.Warnf("document cap reached, evicting least recently touched: %s", oldest)
}
