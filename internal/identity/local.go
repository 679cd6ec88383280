package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider implementa Provider en memoria, con los passwords hasheados
// con bcrypt. Para desarrollo y tests.
type LocalProvider struct {
	mu    sync.Mutex
	users map[string]localUser // key: email en lowercase
}

type localUser struct {
	uid  string
	hash []byte
}

func NewLocal() *LocalProvider {
	return &LocalProvider{users: map[string]localUser{}}
}

func (p *LocalProvider) CreateUser(_ context.Context, email, password string) (string, error) {
	if len(password) < 6 {
		return "", ErrWeakPassword
	}
	key := strings.ToLower(strings.TrimSpace(email))

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.users[key]; ok {
		return "", ErrEmailInUse
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	uid := uuid.NewString()
	p.users[key] = localUser{uid: uid, hash: hash}
	return uid, nil
}

// Verify chequea las credenciales contra el registro local.
func (p *LocalProvider) Verify(_ context.Context, email, password string) bool {
	key := strings.ToLower(strings.TrimSpace(email))
	p.mu.Lock()
	u, ok := p.users[key]
	p.mu.Unlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(u.hash, []byte(password)) == nil
}
