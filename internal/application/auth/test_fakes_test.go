package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error

	creates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.creates++
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

type fakeHasher struct {
	mu        sync.Mutex
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
	compares  int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Compare(hash string, password string) error {
	h.mu.Lock()
	h.compares++
	h.mu.Unlock()

	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash == "hash:"+password {
		return nil
	}
	return errors.New("mismatch")
}

func (h *fakeHasher) compareCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.compares
}

// fakeIssuer encodes tokens as "tok|<userID>|<email>|<n>".
type fakeIssuer struct {
	now     func() time.Time
	ttl     time.Duration
	issued  int
	issueFn func(userID, email string) (string, time.Time, error)
	parseFn func(token string) (TokenClaims, error)
}

func (f *fakeIssuer) Issue(userID, email string) (string, time.Time, error) {
	if f.issueFn != nil {
		return f.issueFn(userID, email)
	}
	f.issued++
	return fmt.Sprintf("tok|%s|%s|%d", userID, email, f.issued), f.now().Add(f.ttl), nil
}

func (f *fakeIssuer) Reissue(userID, email string, prevExpiry time.Time) (string, time.Time, error) {
	tok, exp, err := f.Issue(userID, email)
	if err == nil && !exp.After(prevExpiry) {
		exp = prevExpiry.Add(time.Second)
	}
	return tok, exp, err
}

func (f *fakeIssuer) ParseForRefresh(token string) (TokenClaims, error) {
	if f.parseFn != nil {
		return f.parseFn(token)
	}
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != "tok" || parts[1] == "" {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	return TokenClaims{UserID: parts[1], Email: parts[2]}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []UserRegisteredEvent
}

func (p *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

type testEnv struct {
	svc    *Service
	users  *fakeUserRepo
	hasher *fakeHasher
	tokens *fakeIssuer
	pub    *fakePublisher
	audit  []string
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newSvcForTest(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:  newFakeUserRepo(),
		hasher: &fakeHasher{},
		tokens: &fakeIssuer{now: func() time.Time { return fixedNow }, ttl: 12 * time.Hour},
		pub:    &fakePublisher{},
	}
	ids := 0
	env.svc = NewService(env.users, env.hasher, env.tokens, env.pub).
		WithClock(func() time.Time { return fixedNow }).
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("00000000-0000-0000-0000-%012d", ids)
		}).
		WithAudit(func(_ context.Context, action string, _ map[string]string) {
			env.audit = append(env.audit, action)
		})
	return env
}

func requireFailure(t *testing.T, res Result, code, msg string) {
	t.Helper()
	if res.Success {
		t.Fatalf("expected failure %q, got success %+v", code, res)
	}
	if res.Code() != code {
		t.Fatalf("expected code=%q, got %q (%+v)", code, res.Code(), res)
	}
	if msg != "" && res.Message != msg {
		t.Fatalf("expected message %q, got %q", msg, res.Message)
	}
	if res.Token != "" || res.ExpiresAt != nil {
		t.Fatalf("failure must not carry a token: %+v", res)
	}
}
