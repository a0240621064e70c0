// Package fakeapi provides an in-process fake of the workspace API for
// tests. It implements transport.Transport over an in-memory record tree,
// counts calls per method, and supports stub-style failure injection so
// error paths are exercisable without a network.
//
// The fake honors the parent_id filter (so hierarchy traversal is
// testable end to end) and captures every other filter payload verbatim
// for assertions; it deliberately does not re-implement the remote
// query language.
package fakeapi

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/notehq/notehq.go/internal/codec"
	"github.com/notehq/notehq.go/pkg/models"
	"github.com/notehq/notehq.go/pkg/transport"
)

const defaultPageSize = 100

// Stub injects a failure or delay into matching requests.
type Stub struct {
	// Method is one of "fetch_one", "fetch_page", "mutate".
	Method string
	// Matcher optionally narrows the stub to specific records. A nil
	// Matcher matches every request for the method.
	Matcher func(kind models.Kind, id models.ID) bool
	// Err, when set, is returned instead of processing the request.
	Err error
	// Delay is applied before the request is processed.
	Delay time.Duration
	// Times limits how many requests the stub consumes; 0 means
	// unlimited.
	Times int

	used int
}

type storedRecord struct {
	id       models.ID
	kind     models.Kind
	parent   models.ParentRef
	props    map[string]any
	archived bool
	editedAt time.Time
	seq      int // insertion order, the fake's stable sort
}

// Server is the in-memory workspace. All methods are safe for concurrent
// use.
type Server struct {
	codec codec.Codec

	mu      sync.Mutex
	records map[models.Kind]map[models.ID]*storedRecord
	nextSeq int
	stubs   []*Stub
	now     func() time.Time

	// Call counters, readable via Calls.
	fetchOneCalls  int
	fetchPageCalls int
	mutateCalls    int

	// LastPageRequest records the most recent FetchPage request so tests
	// can assert on the translated filter payload that reached the wire.
	lastPageRequest *transport.PageRequest
}

var _ transport.Transport = (*Server)(nil)

// NewServer creates an empty fake workspace using the JSON codec.
func NewServer() *Server {
	return NewServerWithCodec(codec.JSON{})
}

// NewServerWithCodec creates an empty fake workspace that round-trips
// records through the given codec, e.g. codec.CBOR for binary transports.
func NewServerWithCodec(c codec.Codec) *Server {
	return &Server{
		codec:   c,
		records: make(map[models.Kind]map[models.ID]*storedRecord),
		now:     time.Now,
	}
}

// SetClock overrides the clock used for edit stamps.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddStub registers a failure injection stub.
func (s *Server) AddStub(stub *Stub) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubs = append(s.stubs, stub)
}

// Add seeds a record. It overwrites any existing record with the same
// kind and id, which also lets tests overwrite parents to build cycles.
func (s *Server) Add(kind models.Kind, id models.ID, parent models.ParentRef, props map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.records[kind]
	if !ok {
		m = make(map[models.ID]*storedRecord)
		s.records[kind] = m
	}
	seq := s.nextSeq
	if prev, ok := m[id]; ok {
		seq = prev.seq
	} else {
		s.nextSeq++
	}
	if props == nil {
		props = map[string]any{}
	}
	m[id] = &storedRecord{
		id:       id,
		kind:     kind,
		parent:   parent,
		props:    props,
		editedAt: s.now(),
		seq:      seq,
	}
}

// SetParent rewires a record's parent in place, without touching the
// regular mutate path.
func (s *Server) SetParent(kind models.Kind, id models.ID, parent models.ParentRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[kind][id]; ok {
		rec.parent = parent
	}
}

// Calls reports the number of calls per method.
func (s *Server) Calls() (fetchOne, fetchPage, mutate int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchOneCalls, s.fetchPageCalls, s.mutateCalls
}

// LastPageRequest returns the most recent FetchPage request, or nil.
func (s *Server) LastPageRequest() *transport.PageRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPageRequest
}

// FetchOne implements transport.Transport.
func (s *Server) FetchOne(ctx context.Context, kind models.Kind, id models.ID) (*models.Record, error) {
	s.mu.Lock()
	s.fetchOneCalls++
	delay, stubErr := s.matchStubLocked("fetch_one", kind, id)
	rec, ok := s.records[kind][id]
	var wire *models.Record
	var err error
	if ok {
		wire, err = s.toWireLocked(rec)
	}
	s.mu.Unlock()

	if werr := sleepCtx(ctx, delay); werr != nil {
		return nil, werr
	}
	if stubErr != nil {
		return nil, stubErr
	}
	if !ok {
		return nil, &transport.NotFoundError{Kind: kind, ID: id}
	}
	return wire, err
}

// FetchPage implements transport.Transport.
func (s *Server) FetchPage(ctx context.Context, req transport.PageRequest) (transport.PageResult, error) {
	s.mu.Lock()
	s.fetchPageCalls++
	reqCopy := req
	s.lastPageRequest = &reqCopy
	delay, stubErr := s.matchStubLocked("fetch_page", req.Kind, "")

	matching := s.matchRecordsLocked(req)
	s.mu.Unlock()

	if werr := sleepCtx(ctx, delay); werr != nil {
		return transport.PageResult{}, werr
	}
	if stubErr != nil {
		return transport.PageResult{}, stubErr
	}

	offset := 0
	if req.Cursor != "" {
		n, err := strconv.Atoi(req.Cursor)
		if err != nil {
			return transport.PageResult{}, fmt.Errorf("bad cursor %q", req.Cursor)
		}
		offset = n
	}
	size := req.PageSize
	if size <= 0 {
		size = defaultPageSize
	}

	if offset > len(matching) {
		offset = len(matching)
	}
	end := offset + size
	if end > len(matching) {
		end = len(matching)
	}

	s.mu.Lock()
	out := make([]*models.Record, 0, end-offset)
	for _, rec := range matching[offset:end] {
		wire, err := s.toWireLocked(rec)
		if err != nil {
			s.mu.Unlock()
			return transport.PageResult{}, err
		}
		out = append(out, wire)
	}
	s.mu.Unlock()

	res := transport.PageResult{Records: out}
	if end < len(matching) {
		res.NextCursor = strconv.Itoa(end)
		res.HasMore = true
	}
	return res, nil
}

// Mutate implements transport.Transport.
func (s *Server) Mutate(ctx context.Context, kind models.Kind, id models.ID, m transport.Mutation) (*models.Record, error) {
	s.mu.Lock()
	s.mutateCalls++
	delay, stubErr := s.matchStubLocked("mutate", kind, id)
	s.mu.Unlock()

	if werr := sleepCtx(ctx, delay); werr != nil {
		return nil, werr
	}
	if stubErr != nil {
		return nil, stubErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recs, ok := s.records[kind]
	if !ok {
		recs = make(map[models.ID]*storedRecord)
		s.records[kind] = recs
	}
	rec, exists := recs[id]
	if !exists {
		if !m.Create {
			return nil, &transport.NotFoundError{Kind: kind, ID: id}
		}
		rec = &storedRecord{
			id:     id,
			kind:   kind,
			parent: models.RootParent(),
			props:  map[string]any{},
			seq:    s.nextSeq,
		}
		s.nextSeq++
		recs[id] = rec
	}

	for k, v := range m.Properties {
		rec.props[k] = v
	}
	if m.Parent != nil {
		rec.parent = *m.Parent
	}
	if m.Archived != nil {
		rec.archived = *m.Archived
	}
	rec.editedAt = s.now()

	return s.toWireLocked(rec)
}

// matchRecordsLocked returns records of the requested kind in insertion
// order, narrowed by the parent_id filter when present.
func (s *Server) matchRecordsLocked(req transport.PageRequest) []*storedRecord {
	parentID, filterByParent := "", false
	if v, ok := req.Filter["parent_id"].(string); ok {
		parentID, filterByParent = v, true
	}

	var out []*storedRecord
	for _, rec := range s.records[req.Kind] {
		if rec.archived {
			continue
		}
		if filterByParent && (rec.parent.IsRoot() || rec.parent.ID.String() != parentID) {
			continue
		}
		out = append(out, rec)
	}
	sortBySeq(out)
	return out
}

func (s *Server) matchStubLocked(method string, kind models.Kind, id models.ID) (delay time.Duration, stubErr error) {
	for _, stub := range s.stubs {
		if stub.Method != method {
			continue
		}
		if stub.Times > 0 && stub.used >= stub.Times {
			continue
		}
		if stub.Matcher != nil && !stub.Matcher(kind, id) {
			continue
		}
		stub.used++
		return stub.Delay, stub.Err
	}
	return 0, nil
}

// toWireLocked round-trips the stored record through the codec, exactly as
// a real transport would decode it off the wire. Every caller gets an
// independent copy.
func (s *Server) toWireLocked(rec *storedRecord) (*models.Record, error) {
	props, err := s.codec.Marshal(rec.props)
	if err != nil {
		return nil, err
	}
	// The parent descriptor is always JSON on the wire, whatever codec
	// the property bags negotiate.
	parent, err := codec.JSON{}.Marshal(rec.parent.Wire())
	if err != nil {
		return nil, err
	}
	return &models.Record{
		ID:         rec.id,
		Kind:       rec.kind,
		EditedAt:   rec.editedAt,
		Parent:     parent,
		Properties: props,
		Archived:   rec.archived,
	}, nil
}

func sortBySeq(recs []*storedRecord) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
