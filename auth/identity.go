package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"snatchup/kv"
	"snatchup/models"
	"snatchup/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrUnknownUser        = errors.New("unknown user")
)

// RegisterInput is the signup form payload.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// ProfileInput carries partial profile edits; empty fields are left as-is.
type ProfileInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// Identity is the remote-identity-service port. The production value is the
// deterministic mock backend below; tests inject it with zero delay.
type Identity interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, input RegisterInput) (models.User, error)
	Update(ctx context.Context, userID string, input ProfileInput) (models.User, error)
	Resolve(ctx context.Context, userID string) (models.User, error)
}

// userRecord is the persisted shape; the hash never travels in models.User.
type userRecord struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

const (
	testUserID    = "u1"
	testUserEmail = "test@gmail.com"
	testUserPass  = "password"
)

// MockIdentity accepts exactly one hardcoded credential pair plus any account
// registered through it. Registered profiles persist through the kv port;
// edits to the hardcoded test user are kept in memory only.
type MockIdentity struct {
	kv    kv.Store
	delay time.Duration

	mu       sync.Mutex
	testUser models.User
}

// NewMockIdentity builds the backend. delay simulates remote latency and
// should be zero in tests.
func NewMockIdentity(store kv.Store, delay time.Duration) *MockIdentity {
	return &MockIdentity{
		kv:    store,
		delay: delay,
		testUser: models.User{
			UserID:    testUserID,
			Email:     testUserEmail,
			FirstName: "Test",
			LastName:  "User",
		},
	}
}

// simulate stands in for the network round-trip. Once started it always
// completes; there is no cancellation.
func (m *MockIdentity) simulate() {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
}

func userKey(id string) string     { return "user:" + id }
func emailKey(email string) string { return "useremail:" + email }

func (m *MockIdentity) loadRecord(ctx context.Context, id string) (userRecord, error) {
	raw, err := m.kv.Get(ctx, userKey(id))
	if err != nil {
		return userRecord{}, err
	}
	var rec userRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.Println("user record unmarshal error:", err)
		return userRecord{}, kv.ErrNotFound
	}
	return rec, nil
}

func (m *MockIdentity) saveRecord(ctx context.Context, rec userRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := m.kv.Set(ctx, userKey(rec.UserID), raw); err != nil {
		return err
	}
	return m.kv.Set(ctx, emailKey(rec.Email), []byte(rec.UserID))
}

func (m *MockIdentity) Login(ctx context.Context, email, password string) (models.User, error) {
	m.simulate()

	if email == testUserEmail {
		if password != testUserPass {
			return models.User{}, ErrInvalidCredentials
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.testUser, nil
	}

	idRaw, err := m.kv.Get(ctx, emailKey(email))
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	rec, err := m.loadRecord(ctx, string(idRaw))
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return rec.User, nil
}

func (m *MockIdentity) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	m.simulate()

	if input.Email == testUserEmail {
		return models.User{}, ErrEmailExists
	}
	if _, err := m.kv.Get(ctx, emailKey(input.Email)); err == nil {
		return models.User{}, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	rec := userRecord{
		User: models.User{
			UserID:    "u" + utils.GenerateRandomString(10),
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Address:   input.Address,
			Phone:     input.Phone,
		},
		PasswordHash: string(hashed),
	}
	if err := m.saveRecord(ctx, rec); err != nil {
		return models.User{}, err
	}
	return rec.User, nil
}

func (m *MockIdentity) Update(ctx context.Context, userID string, input ProfileInput) (models.User, error) {
	m.simulate()

	if userID == testUserID {
		// the hardcoded account is never persisted; edits last the session
		m.mu.Lock()
		defer m.mu.Unlock()
		merge(&m.testUser, input)
		return m.testUser, nil
	}

	rec, err := m.loadRecord(ctx, userID)
	if err != nil {
		return models.User{}, ErrUnknownUser
	}
	merge(&rec.User, input)
	if err := m.saveRecord(ctx, rec); err != nil {
		return models.User{}, err
	}
	return rec.User, nil
}

func (m *MockIdentity) Resolve(ctx context.Context, userID string) (models.User, error) {
	if userID == testUserID {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.testUser, nil
	}

	rec, err := m.loadRecord(ctx, userID)
	if err != nil {
		return models.User{}, ErrUnknownUser
	}
	return rec.User, nil
}

func merge(u *models.User, input ProfileInput) {
	if input.FirstName != "" {
		u.FirstName = input.FirstName
	}
	if input.LastName != "" {
		u.LastName = input.LastName
	}
	if input.Address != "" {
		u.Address = input.Address
	}
	if input.Phone != "" {
		u.Phone = input.Phone
	}
}
