package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AveryLClark/janus/internal/janus/credential"
	"github.com/AveryLClark/janus/internal/janus/store"
	"github.com/AveryLClark/janus/internal/janus/types"
	"github.com/AveryLClark/janus/internal/metrics"
)

var (
	ErrVisitorNameRequired    = errors.New("visitor_name is required")
	ErrPhoneRequired          = errors.New("phone is required")
	ErrBadArrival             = errors.New("expected_arrival must be a valid RFC3339 timestamp")
	ErrBadDeparture           = errors.New("expected_departure must be a valid RFC3339 timestamp")
	ErrDepartureBeforeArrival = errors.New("expected_departure must be after expected_arrival")
	ErrDepartureInPast        = errors.New("expected_departure is already in the past")
	ErrVisitorBlacklisted     = errors.New("visitor is blacklisted")
	ErrNoCurrentPass          = errors.New("no current pass")
	ErrPassTerminal           = errors.New("pass is in a terminal state")
	ErrPassNotActive          = errors.New("pass has not been verified for entry")
)

// PassPolicy tunes the lifecycle controller.
type PassPolicy struct {
	// EnforceBlacklist rejects issuance for blacklisted phone numbers.
	// Off by default: the blacklist and the pass lifecycle are
	// independent structures unless the deployment opts in.
	EnforceBlacklist bool

	// CountdownResolution is the expiry tick interval. 0 means one second.
	CountdownResolution time.Duration

	// NotifyExpired, when set, is called (outside the controller lock)
	// with a snapshot of a pass that just expired.
	NotifyExpired func(types.VisitorPass)
}

// PassService owns the single current pass and drives its lifecycle:
// issue, verify-entry, mark-exit, and countdown-driven expiry. Issuing a
// new pass supersedes the previous one and cancels its countdown, so at
// most one countdown is live at a time.
type PassService struct {
	passes    store.PassStore
	audit     store.AuditStore
	blacklist store.BlacklistStore
	policy    PassPolicy
	metrics   *metrics.Metrics
	logger    *log.Logger

	mu      sync.Mutex
	current *types.VisitorPass
	cd      *countdown
}

func NewPassService(
	passes store.PassStore,
	audit store.AuditStore,
	blacklist store.BlacklistStore,
	policy PassPolicy,
	m *metrics.Metrics,
	logger *log.Logger,
) *PassService {
	return &PassService{
		passes:    passes,
		audit:     audit,
		blacklist: blacklist,
		policy:    policy,
		metrics:   m,
		logger:    logger,
	}
}

// Issue validates the request, mints a credential, snapshots it into the
// pass store, and starts the expiry countdown. Any previously current
// pass is superseded and its countdown cancelled. No partial state is
// created on validation failure.
func (s *PassService) Issue(ctx context.Context, req types.IssueRequest) (types.PassResponse, error) {
	now := time.Now().UTC()

	name := strings.TrimSpace(req.VisitorName)
	phone := strings.TrimSpace(req.Phone)

	if name == "" {
		return types.PassResponse{}, ErrVisitorNameRequired
	}
	if phone == "" {
		return types.PassResponse{}, ErrPhoneRequired
	}

	// Arrival defaults to now when omitted, but a malformed non-empty
	// value is rejected like a malformed departure.
	arrival := now
	if raw := strings.TrimSpace(req.ExpectedArrival); raw != "" {
		t := parseOptionalTimestamp(raw)
		if t == nil {
			return types.PassResponse{}, ErrBadArrival
		}
		arrival = *t
	}

	departure := parseOptionalTimestamp(req.ExpectedDeparture)
	if departure == nil {
		return types.PassResponse{}, ErrBadDeparture
	}
	if !departure.After(arrival) {
		return types.PassResponse{}, ErrDepartureBeforeArrival
	}
	if !departure.After(now) {
		return types.PassResponse{}, ErrDepartureInPast
	}

	if s.policy.EnforceBlacklist {
		listed, err := s.blacklist.Contains(ctx, phone)
		if err != nil {
			return types.PassResponse{}, err
		}
		if listed {
			return types.PassResponse{}, ErrVisitorBlacklisted
		}
	}

	code, err := credential.NewPassCode()
	if err != nil {
		return types.PassResponse{}, err
	}
	pin, err := credential.NewPIN()
	if err != nil {
		return types.PassResponse{}, err
	}

	pass := types.VisitorPass{
		ID:                uuid.NewString(),
		PassCode:          code,
		PIN:               pin,
		VisitorName:       name,
		Phone:             phone,
		Purpose:           types.ParsePurpose(req.Purpose),
		Vehicle:           strings.TrimSpace(req.Vehicle),
		ResidentName:      strings.TrimSpace(req.ResidentName),
		Unit:              strings.TrimSpace(req.Unit),
		ExpectedArrival:   arrival,
		ExpectedDeparture: departure.UTC(),
		Status:            types.StatusPending,
		IssuedAt:          now,
	}

	if err := s.passes.Append(ctx, pass); err != nil {
		return types.PassResponse{}, err
	}

	s.mu.Lock()
	if s.cd != nil {
		s.cd.Stop()
	}
	s.current = &pass
	passID := pass.ID
	s.cd = newCountdown(pass.ExpectedDeparture, s.policy.CountdownResolution, func() {
		s.expire(passID)
	})
	resp := s.responseLocked(now)
	s.mu.Unlock()

	s.metrics.PassesIssued.Inc()
	s.logger.Printf("pass issued code=%s visitor=%q departs=%s",
		pass.PassCode, pass.VisitorName, pass.ExpectedDeparture.Format(time.RFC3339))

	return resp, nil
}

// VerifyEntry transitions the current pass from Pending to Active when
// the supplied PIN matches. A mismatch is a denial, not an error: state
// is unchanged and no audit record is written. A call against an
// already-active pass is a no-op.
func (s *PassService) VerifyEntry(ctx context.Context, pin string) (types.VerifyResponse, error) {
	now := time.Now().UTC()
	pin = strings.TrimSpace(pin)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return types.VerifyResponse{}, ErrNoCurrentPass
	}
	if s.current.Status.Terminal() {
		return types.VerifyResponse{}, ErrPassTerminal
	}

	// Already verified: gate on SecurityVerified, not the PIN.
	if s.current.SecurityVerified {
		return types.VerifyResponse{
			OK:         true,
			Verified:   false,
			Status:     s.current.Status,
			ServerTime: now.Format(time.RFC3339Nano),
		}, nil
	}

	if pin != s.current.PIN {
		s.metrics.VerificationsDenied.Inc()
		return types.VerifyResponse{
			OK:         true,
			Denied:     true,
			Status:     s.current.Status,
			ServerTime: now.Format(time.RFC3339Nano),
		}, nil
	}

	s.current.Status = types.StatusActive
	s.current.SecurityVerified = true

	s.appendAudit(ctx, types.AuditLogEntry{
		ID:          uuid.NewString(),
		VisitorName: s.current.VisitorName,
		Type:        types.AuditEntry,
		PassCode:    s.current.PassCode,
		Timestamp:   now,
		VerifiedBy:  types.VerifiedBySecurity,
	})
	s.metrics.EntriesVerified.Inc()
	s.logger.Printf("entry verified code=%s visitor=%q", s.current.PassCode, s.current.VisitorName)

	return types.VerifyResponse{
		OK:         true,
		Verified:   true,
		Status:     types.StatusActive,
		ServerTime: now.Format(time.RFC3339Nano),
	}, nil
}

// MarkExit transitions an Active pass to Completed, records an Exit
// audit event, and cancels the countdown. Calling it again on a
// Completed pass is a no-op and does not re-append an audit record.
func (s *PassService) MarkExit(ctx context.Context) (types.ExitResponse, error) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return types.ExitResponse{}, ErrNoCurrentPass
	}

	switch s.current.Status {
	case types.StatusCompleted:
		return types.ExitResponse{
			OK:         true,
			Status:     types.StatusCompleted,
			ServerTime: now.Format(time.RFC3339Nano),
		}, nil
	case types.StatusExpired:
		return types.ExitResponse{}, ErrPassTerminal
	case types.StatusPending:
		return types.ExitResponse{}, ErrPassNotActive
	}

	s.current.Status = types.StatusCompleted
	if s.cd != nil {
		s.cd.Stop()
	}

	s.appendAudit(ctx, types.AuditLogEntry{
		ID:          uuid.NewString(),
		VisitorName: s.current.VisitorName,
		Type:        types.AuditExit,
		PassCode:    s.current.PassCode,
		Timestamp:   now,
		VerifiedBy:  types.VerifiedBySecurity,
	})
	s.metrics.Exits.Inc()
	s.logger.Printf("exit recorded code=%s visitor=%q", s.current.PassCode, s.current.VisitorName)

	return types.ExitResponse{
		OK:         true,
		Status:     types.StatusCompleted,
		ServerTime: now.Format(time.RFC3339Nano),
	}, nil
}

// Current returns the live pass and its remaining seconds.
func (s *PassService) Current(_ context.Context) (types.PassResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return types.PassResponse{}, ErrNoCurrentPass
	}
	return s.responseLocked(time.Now().UTC()), nil
}

// History returns the bounded pass-store snapshots, newest first.
func (s *PassService) History(ctx context.Context) ([]types.VisitorPass, error) {
	return s.passes.Recent(ctx)
}

// RecentAudit returns the bounded audit trail, newest first.
func (s *PassService) RecentAudit(ctx context.Context) ([]types.AuditLogEntry, error) {
	return s.audit.Recent(ctx)
}

// Close cancels any live countdown. Part of session teardown; safe to
// call more than once.
func (s *PassService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cd != nil {
		s.cd.Stop()
	}
}

// expire is the countdown callback. The pass ID guard makes a late
// firing against a superseded or already-terminal pass a no-op.
func (s *PassService) expire(passID string) {
	s.mu.Lock()
	if s.current == nil || s.current.ID != passID || s.current.Status.Terminal() {
		s.mu.Unlock()
		return
	}
	s.current.Status = types.StatusExpired
	snapshot := *s.current
	s.mu.Unlock()

	s.metrics.PassesExpired.Inc()
	s.logger.Printf("pass expired code=%s visitor=%q", snapshot.PassCode, snapshot.VisitorName)

	if s.policy.NotifyExpired != nil {
		s.policy.NotifyExpired(snapshot)
	}
}

// appendAudit persists an audit event. Errors are logged, not returned —
// a failed audit write should not reverse a lifecycle transition the
// caller has already been granted.
func (s *PassService) appendAudit(ctx context.Context, entry types.AuditLogEntry) {
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Printf("audit append error: %v", err)
	}
}

func (s *PassService) responseLocked(now time.Time) types.PassResponse {
	resp := types.PassResponse{
		OK:         true,
		Pass:       *s.current,
		ServerTime: now.Format(time.RFC3339Nano),
	}
	if s.cd != nil && !s.current.Status.Terminal() {
		resp.RemainingSeconds = s.cd.Remaining()
	}
	return resp
}

// parseOptionalTimestamp attempts to parse an operator-supplied timestamp.
// Returns nil if the string is empty or unparseable.
func parseOptionalTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		u := t.UTC()
		return &u
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		u := t.UTC()
		return &u
	}
	return nil
}
