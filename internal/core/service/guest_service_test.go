package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/guestwifi/portal-api/internal/core/domain"
	"github.com/guestwifi/portal-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub store with transaction semantics
// ---------------------------------------------------------------------------

// stubGuestStore keeps both "stores" in maps. WithinTx snapshots the state
// before running fn and restores it when fn fails, mirroring a rollback.
type stubGuestStore struct {
	guests map[uint]*domain.Guest
	checks map[string]string // username \x00 attribute -> value
	groups map[string]int    // username \x00 groupname -> priority
	nextID uint

	setAttrCalls   int
	createGuestErr error
}

func newStubGuestStore() *stubGuestStore {
	return &stubGuestStore{
		guests: make(map[uint]*domain.Guest),
		checks: make(map[string]string),
		groups: make(map[string]int),
	}
}

func key(username, second string) string { return username + "\x00" + second }

func (s *stubGuestStore) snapshot() (map[uint]*domain.Guest, map[string]string, map[string]int) {
	g := make(map[uint]*domain.Guest, len(s.guests))
	for id, v := range s.guests {
		clone := *v
		g[id] = &clone
	}
	c := make(map[string]string, len(s.checks))
	for k, v := range s.checks {
		c[k] = v
	}
	m := make(map[string]int, len(s.groups))
	for k, v := range s.groups {
		m[k] = v
	}
	return g, c, m
}

func (s *stubGuestStore) WithinTx(_ context.Context, fn func(tx ports.GuestTx) error) error {
	guests, checks, groups := s.snapshot()
	if err := fn(s); err != nil {
		s.guests, s.checks, s.groups = guests, checks, groups
		return err
	}
	return nil
}

func (s *stubGuestStore) GuestByID(_ context.Context, id uint) (*domain.Guest, error) {
	g, ok := s.guests[id]
	if !ok {
		return nil, domain.ErrGuestNotFound
	}
	clone := *g
	return &clone, nil
}

func (s *stubGuestStore) GuestByEmail(_ context.Context, email string) (*domain.Guest, error) {
	for _, g := range s.guests {
		if g.Email == email {
			clone := *g
			return &clone, nil
		}
	}
	return nil, domain.ErrGuestNotFound
}

func (s *stubGuestStore) CreateGuest(_ context.Context, guest *domain.Guest) error {
	if s.createGuestErr != nil {
		return s.createGuestErr
	}
	s.nextID++
	guest.ID = s.nextID
	clone := *guest
	s.guests[guest.ID] = &clone
	return nil
}

func (s *stubGuestStore) SaveGuest(_ context.Context, guest *domain.Guest) error {
	clone := *guest
	s.guests[guest.ID] = &clone
	return nil
}

func (s *stubGuestStore) DeleteGuest(_ context.Context, id uint) error {
	delete(s.guests, id)
	return nil
}

func (s *stubGuestStore) CredentialExists(_ context.Context, username string) (bool, error) {
	for k := range s.checks {
		if strings.HasPrefix(k, username+"\x00") {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubGuestStore) SetCheckAttribute(_ context.Context, username, attribute, value string) error {
	s.setAttrCalls++
	s.checks[key(username, attribute)] = value
	return nil
}

func (s *stubGuestStore) DeleteCheckAttribute(_ context.Context, username, attribute string) error {
	delete(s.checks, key(username, attribute))
	return nil
}

func (s *stubGuestStore) DeleteAllCheckAttributes(_ context.Context, username string) error {
	for k := range s.checks {
		if strings.HasPrefix(k, username+"\x00") {
			delete(s.checks, k)
		}
	}
	return nil
}

func (s *stubGuestStore) EnsureGroupMembership(_ context.Context, username, groupname string) error {
	if _, ok := s.groups[key(username, groupname)]; !ok {
		s.groups[key(username, groupname)] = domain.BlockedGroupPriority
	}
	return nil
}

func (s *stubGuestStore) RemoveGroupMembership(_ context.Context, username, groupname string) error {
	delete(s.groups, key(username, groupname))
	return nil
}

func (s *stubGuestStore) RemoveAllGroupMemberships(_ context.Context, username string) error {
	for k := range s.groups {
		if strings.HasPrefix(k, username+"\x00") {
			delete(s.groups, k)
		}
	}
	return nil
}

func (s *stubGuestStore) ListGuests(_ context.Context, departments []int) ([]domain.Guest, error) {
	var out []domain.Guest
	for _, g := range s.guests {
		if departments != nil {
			found := false
			for _, d := range departments {
				if g.Department == d {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValidUntil.After(out[j].ValidUntil) })
	return out, nil
}

func (s *stubGuestStore) CheckAttribute(_ context.Context, username, attribute string) (string, error) {
	v, ok := s.checks[key(username, attribute)]
	if !ok {
		return "", domain.ErrCredentialNotFound
	}
	return v, nil
}

// countChecks returns how many radcheck rows exist for a username.
func (s *stubGuestStore) countChecks(username string) int {
	n := 0
	for k := range s.checks {
		if strings.HasPrefix(k, username+"\x00") {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Stub mailer and ledger
// ---------------------------------------------------------------------------

type stubMailer struct {
	sent    []ports.CredentialMail
	sendErr error
}

func (m *stubMailer) SendCredentials(_ context.Context, msg ports.CredentialMail) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

type stubLedger struct {
	failed map[uint]string
}

func newStubLedger() *stubLedger { return &stubLedger{failed: make(map[uint]string)} }

func (l *stubLedger) MarkFailed(_ context.Context, guestID uint, reason string) error {
	l.failed[guestID] = reason
	return nil
}

func (l *stubLedger) Clear(_ context.Context, guestID uint) error {
	delete(l.failed, guestID)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const blockedGroup = "guests-blocked"

var (
	adminClaims  = domain.Claims{UserID: 1, Username: "root", Role: domain.RoleAdmin}
	scopedClaims = domain.Claims{UserID: 2, Username: "frontdesk", Role: domain.RoleUser, Departments: []int{1, 2}}
)

func newGuestService(store *stubGuestStore) (*GuestService, *stubMailer, *stubLedger) {
	mailer := &stubMailer{}
	ledger := newStubLedger()
	svc := NewGuestService(store, mailer, ledger, blockedGroup, zerolog.Nop())
	return svc, mailer, ledger
}

func createInput(email string, department int) ports.CreateGuestInput {
	return ports.CreateGuestInput{
		Name:       "Ada",
		Surname:    "Lovelace",
		Email:      email,
		ValidFrom:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
		Department: department,
	}
}

func mustCreate(t *testing.T, svc *GuestService, email string, department int) *domain.Guest {
	t.Helper()
	res, err := svc.Create(context.Background(), adminClaims, createInput(email, department))
	if err != nil {
		t.Fatalf("Create(%s) returned error: %v", email, err)
	}
	return res.Guest
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestGuestService_Create_RoundTripConsistency(t *testing.T) {
	store := newStubGuestStore()
	svc, mailer, _ := newGuestService(store)

	res, err := svc.Create(context.Background(), adminClaims, createInput("ada@example.com", 1))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !res.EmailDelivered {
		t.Fatalf("expected EmailDelivered=true")
	}
	if res.Guest.ID == 0 || res.Guest.Blocked {
		t.Fatalf("unexpected guest: %+v", res.Guest)
	}

	// Exactly one password row, one expiration row, zero group rows.
	if n := store.countChecks("ada@example.com"); n != 2 {
		t.Fatalf("expected 2 radcheck rows, got %d", n)
	}
	pw := store.checks[key("ada@example.com", domain.AttrCleartextPassword)]
	if len(pw) != 10 {
		t.Fatalf("expected 10-char password, got %q", pw)
	}
	exp := store.checks[key("ada@example.com", domain.AttrExpiration)]
	if exp != "Jun 08 2024 00:00:00 GMT+00:00" {
		t.Fatalf("unexpected expiration value: %q", exp)
	}
	if len(store.groups) != 0 {
		t.Fatalf("expected zero group rows, got %d", len(store.groups))
	}

	// The secret goes out on the side-channel only.
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}
	if mailer.sent[0].Password != pw || mailer.sent[0].Username != "ada@example.com" {
		t.Fatalf("mail does not carry the stored credential: %+v", mailer.sent[0])
	}
}

func TestGuestService_Create_DuplicateEmail(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)

	mustCreate(t, svc, "dup@example.com", 1)
	if _, err := svc.Create(context.Background(), adminClaims, createInput("dup@example.com", 1)); !errors.Is(err, domain.ErrGuestExists) {
		t.Fatalf("expected ErrGuestExists, got %v", err)
	}
	if len(store.guests) != 1 {
		t.Fatalf("duplicate create must not add rows, got %d guests", len(store.guests))
	}
}

func TestGuestService_Create_DuplicateRadiusUsername(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)

	// A stray radcheck row with no matching guest still blocks the email.
	store.checks[key("stray@example.com", domain.AttrCleartextPassword)] = "x"

	if _, err := svc.Create(context.Background(), adminClaims, createInput("stray@example.com", 1)); !errors.Is(err, domain.ErrGuestExists) {
		t.Fatalf("expected ErrGuestExists, got %v", err)
	}
	if len(store.guests) != 0 {
		t.Fatalf("expected zero guests, got %d", len(store.guests))
	}
}

func TestGuestService_Create_Forbidden(t *testing.T) {
	store := newStubGuestStore()
	svc, mailer, _ := newGuestService(store)

	if _, err := svc.Create(context.Background(), scopedClaims, createInput("x@example.com", 3)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(store.guests) != 0 || len(store.checks) != 0 || len(mailer.sent) != 0 {
		t.Fatalf("forbidden create must not touch any store")
	}
}

func TestGuestService_Create_InvalidWindow(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)

	in := createInput("x@example.com", 1)
	in.ValidUntil = in.ValidFrom
	if _, err := svc.Create(context.Background(), adminClaims, in); !errors.Is(err, domain.ErrValidityWindow) {
		t.Fatalf("expected ErrValidityWindow, got %v", err)
	}
	in.ValidUntil = in.ValidFrom.Add(-time.Hour)
	if _, err := svc.Create(context.Background(), adminClaims, in); !errors.Is(err, domain.ErrValidityWindow) {
		t.Fatalf("expected ErrValidityWindow, got %v", err)
	}
	if len(store.guests) != 0 || len(store.checks) != 0 {
		t.Fatalf("invalid window must cause zero store writes")
	}
}

func TestGuestService_Create_MailFailureIsSoft(t *testing.T) {
	store := newStubGuestStore()
	svc, mailer, ledger := newGuestService(store)
	mailer.sendErr = errors.New("smtp unreachable")

	res, err := svc.Create(context.Background(), adminClaims, createInput("soft@example.com", 1))
	if err != nil {
		t.Fatalf("mail failure must not fail the create: %v", err)
	}
	if res.EmailDelivered {
		t.Fatalf("expected EmailDelivered=false")
	}
	if res.EmailError == "" {
		t.Fatalf("expected EmailError to be set")
	}
	// The guest is provisioned and usable regardless.
	if len(store.guests) != 1 || store.countChecks("soft@example.com") != 2 {
		t.Fatalf("guest must survive a delivery failure")
	}
	if _, ok := ledger.failed[res.Guest.ID]; !ok {
		t.Fatalf("expected delivery failure to be recorded in the ledger")
	}
}

func TestGuestService_Create_StoreFailureRollsBack(t *testing.T) {
	store := newStubGuestStore()
	svc, mailer, _ := newGuestService(store)
	store.createGuestErr = errors.New("insert failed")

	if _, err := svc.Create(context.Background(), adminClaims, createInput("x@example.com", 1)); err == nil {
		t.Fatalf("expected error")
	}
	if len(store.guests) != 0 || len(store.checks) != 0 {
		t.Fatalf("failed transaction must leave no partial rows")
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no mail may be sent without a commit")
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestGuestService_Update_ExtendValidity(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "ext@example.com", 1)
	passwordBefore := store.checks[key("ext@example.com", domain.AttrCleartextPassword)]

	until := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	updated, err := svc.Update(context.Background(), adminClaims, guest.ID, ports.UpdateGuestInput{ValidUntil: &until})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.ValidUntil.Equal(until) {
		t.Fatalf("valid_until not updated: %v", updated.ValidUntil)
	}
	if got := store.checks[key("ext@example.com", domain.AttrExpiration)]; got != "Dec 31 2024 23:59:59 GMT+00:00" {
		t.Fatalf("expiration not re-rendered: %q", got)
	}
	if store.checks[key("ext@example.com", domain.AttrCleartextPassword)] != passwordBefore {
		t.Fatalf("password attribute must stay untouched")
	}
}

func TestGuestService_Update_NoopWhenUnchanged(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "noop@example.com", 1)

	store.setAttrCalls = 0
	until := guest.ValidUntil
	if _, err := svc.Update(context.Background(), adminClaims, guest.ID, ports.UpdateGuestInput{ValidUntil: &until}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if store.setAttrCalls != 0 {
		t.Fatalf("unchanged value must skip writes, got %d attribute writes", store.setAttrCalls)
	}
}

func TestGuestService_Update_InvalidWindow(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "bad@example.com", 1)
	expBefore := store.checks[key("bad@example.com", domain.AttrExpiration)]

	until := guest.ValidFrom // not strictly after
	if _, err := svc.Update(context.Background(), adminClaims, guest.ID, ports.UpdateGuestInput{ValidUntil: &until}); !errors.Is(err, domain.ErrValidityWindow) {
		t.Fatalf("expected ErrValidityWindow, got %v", err)
	}
	if store.checks[key("bad@example.com", domain.AttrExpiration)] != expBefore {
		t.Fatalf("failed update must roll back the expiration row")
	}
	stored, _ := store.GuestByID(context.Background(), guest.ID)
	if !stored.ValidUntil.Equal(guest.ValidUntil) {
		t.Fatalf("failed update must not change the guest row")
	}
}

func TestGuestService_Update_BlockUnblockIdempotent(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "blk@example.com", 1)
	blocked, unblocked := true, false

	for i := 0; i < 2; i++ {
		updated, err := svc.Update(context.Background(), adminClaims, guest.ID, ports.UpdateGuestInput{Blocked: &blocked})
		if err != nil {
			t.Fatalf("block #%d returned error: %v", i+1, err)
		}
		if !updated.Blocked {
			t.Fatalf("expected blocked=true")
		}
		if len(store.groups) != 1 {
			t.Fatalf("expected exactly 1 group row, got %d", len(store.groups))
		}
	}
	if p := store.groups[key("blk@example.com", blockedGroup)]; p != domain.BlockedGroupPriority {
		t.Fatalf("expected priority %d, got %d", domain.BlockedGroupPriority, p)
	}

	for i := 0; i < 2; i++ {
		updated, err := svc.Update(context.Background(), adminClaims, guest.ID, ports.UpdateGuestInput{Blocked: &unblocked})
		if err != nil {
			t.Fatalf("unblock #%d returned error: %v", i+1, err)
		}
		if updated.Blocked {
			t.Fatalf("expected blocked=false")
		}
		if len(store.groups) != 0 {
			t.Fatalf("expected zero group rows, got %d", len(store.groups))
		}
	}
}

func TestGuestService_Update_CombinedValidityAndBlock(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "both@example.com", 1)

	until := guest.ValidUntil.AddDate(0, 1, 0)
	blocked := true
	updated, err := svc.Update(context.Background(), adminClaims, guest.ID, ports.UpdateGuestInput{ValidUntil: &until, Blocked: &blocked})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.ValidUntil.Equal(until) || !updated.Blocked {
		t.Fatalf("both changes must apply: %+v", updated)
	}
	if len(store.groups) != 1 {
		t.Fatalf("expected 1 group row, got %d", len(store.groups))
	}
}

func TestGuestService_Update_EmptyInput(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "e@example.com", 1)

	if _, err := svc.Update(context.Background(), adminClaims, guest.ID, ports.UpdateGuestInput{}); !errors.Is(err, domain.ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
}

func TestGuestService_Update_NotFound(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	blocked := true

	if _, err := svc.Update(context.Background(), adminClaims, 99, ports.UpdateGuestInput{Blocked: &blocked}); !errors.Is(err, domain.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound, got %v", err)
	}
}

func TestGuestService_Update_Forbidden(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "f@example.com", 3)
	blocked := true

	if _, err := svc.Update(context.Background(), scopedClaims, guest.ID, ports.UpdateGuestInput{Blocked: &blocked}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(store.groups) != 0 {
		t.Fatalf("forbidden update must not write group rows")
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestGuestService_Delete_CascadeCompleteness(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "gone@example.com", 1)
	blocked := true
	if _, err := svc.Update(context.Background(), adminClaims, guest.ID, ports.UpdateGuestInput{Blocked: &blocked}); err != nil {
		t.Fatalf("block returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), adminClaims, guest.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(store.guests) != 0 {
		t.Fatalf("guest row must be gone")
	}
	if n := store.countChecks("gone@example.com"); n != 0 {
		t.Fatalf("expected zero radcheck rows, got %d", n)
	}
	if len(store.groups) != 0 {
		t.Fatalf("expected zero group rows, got %d", len(store.groups))
	}

	guests, err := svc.List(context.Background(), adminClaims)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(guests) != 0 {
		t.Fatalf("deleted guest must be absent from listings")
	}
}

func TestGuestService_Delete_NotFound(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "twice@example.com", 1)

	if err := svc.Delete(context.Background(), adminClaims, guest.ID); err != nil {
		t.Fatalf("first delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), adminClaims, guest.ID); !errors.Is(err, domain.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound on repeat delete, got %v", err)
	}
}

func TestGuestService_Delete_Forbidden(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "keep@example.com", 3)

	if err := svc.Delete(context.Background(), scopedClaims, guest.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(store.guests) != 1 {
		t.Fatalf("forbidden delete must not remove the guest")
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestGuestService_List_DepartmentScoping(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	mustCreate(t, svc, "d1@example.com", 1)
	mustCreate(t, svc, "d2@example.com", 2)
	mustCreate(t, svc, "d3@example.com", 3)

	all, err := svc.List(context.Background(), adminClaims)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("admin must see all guests, got %d", len(all))
	}

	scoped, err := svc.List(context.Background(), scopedClaims)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("scoped user must see 2 guests, got %d", len(scoped))
	}
	for _, g := range scoped {
		if g.Department != 1 && g.Department != 2 {
			t.Fatalf("guest outside scope leaked: %+v", g)
		}
	}
}

func TestGuestService_List_EmptyDepartmentsIsEmptyNotError(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	mustCreate(t, svc, "a@example.com", 1)

	guests, err := svc.List(context.Background(), domain.Claims{UserID: 9, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(guests) != 0 {
		t.Fatalf("user with no departments must get an empty list, got %d", len(guests))
	}
}

// ---------------------------------------------------------------------------
// Resend
// ---------------------------------------------------------------------------

func TestGuestService_Resend_Success(t *testing.T) {
	store := newStubGuestStore()
	svc, mailer, ledger := newGuestService(store)
	mailer.sendErr = errors.New("smtp down")
	res, err := svc.Create(context.Background(), adminClaims, createInput("retry@example.com", 1))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, ok := ledger.failed[res.Guest.ID]; !ok {
		t.Fatalf("expected failure recorded")
	}

	mailer.sendErr = nil
	if err := svc.ResendCredentials(context.Background(), adminClaims, res.Guest.ID); err != nil {
		t.Fatalf("ResendCredentials returned error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}
	if mailer.sent[0].Password != store.checks[key("retry@example.com", domain.AttrCleartextPassword)] {
		t.Fatalf("resend must carry the stored secret")
	}
	if _, ok := ledger.failed[res.Guest.ID]; ok {
		t.Fatalf("resend must clear the failure flag")
	}
}

func TestGuestService_Resend_MissingCredential(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "nopw@example.com", 1)
	_ = store.DeleteCheckAttribute(context.Background(), "nopw@example.com", domain.AttrCleartextPassword)

	if err := svc.ResendCredentials(context.Background(), adminClaims, guest.ID); !errors.Is(err, domain.ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
}

func TestGuestService_Resend_MailFailure(t *testing.T) {
	store := newStubGuestStore()
	svc, mailer, _ := newGuestService(store)
	guest := mustCreate(t, svc, "again@example.com", 1)

	mailer.sendErr = errors.New("smtp down")
	if err := svc.ResendCredentials(context.Background(), adminClaims, guest.ID); !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
}

func TestGuestService_Resend_Forbidden(t *testing.T) {
	store := newStubGuestStore()
	svc, _, _ := newGuestService(store)
	guest := mustCreate(t, svc, "scope@example.com", 3)

	if err := svc.ResendCredentials(context.Background(), scopedClaims, guest.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
