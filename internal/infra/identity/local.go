package identity

import (
	"context"
	"sync"
	"time"

	"portfolio/internal/identity"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type localAccount struct {
	account      identity.Account
	passwordHash []byte
}

// LocalProvider はdev/test用の自己発行IdP。
// アカウントはプロセス内にだけ持ち、HS256でトークンを署名する。
type LocalProvider struct {
	secret    []byte
	accessTTL time.Duration

	mu       sync.RWMutex
	accounts map[string]localAccount // email -> account
}

// DI
func NewLocalProvider(secret string) *LocalProvider {
	return &LocalProvider{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
		accounts:  make(map[string]localAccount),
	}
}

var _ identity.Provider = (*LocalProvider)(nil)

func (p *LocalProvider) SignUp(ctx context.Context, in identity.SignUpInput) (identity.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.accounts[in.Email]; ok {
		return identity.Account{}, identity.ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return identity.Account{}, err
	}

	username := in.Username
	if username == "" {
		username = in.Email
	}

	account := identity.Account{
		Subject:   uuid.NewString(),
		Email:     in.Email,
		Username:  username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	p.accounts[in.Email] = localAccount{account: account, passwordHash: hash}

	return account, nil
}

func (p *LocalProvider) Authenticate(ctx context.Context, email string, password string) (identity.Tokens, identity.Account, error) {
	p.mu.RLock()
	la, ok := p.accounts[email]
	p.mu.RUnlock()

	if !ok {
		return identity.Tokens{}, identity.Account{}, identity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(la.passwordHash, []byte(password)); err != nil {
		return identity.Tokens{}, identity.Account{}, identity.ErrInvalidCredentials
	}

	signed, expiresIn, err := p.issue(la.account)
	if err != nil {
		return identity.Tokens{}, identity.Account{}, err
	}

	tokens := identity.Tokens{
		IDToken:     signed,
		AccessToken: signed,
		ExpiresIn:   expiresIn,
	}
	return tokens, la.account, nil
}

func (p *LocalProvider) FetchAccount(ctx context.Context, email string) (identity.Account, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	la, ok := p.accounts[email]
	if !ok {
		return identity.Account{}, identity.ErrAccountNotFound
	}
	return la.account, nil
}

func (p *LocalProvider) UpdateAttributes(ctx context.Context, email string, firstName string, lastName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	la, ok := p.accounts[email]
	if !ok {
		return identity.ErrAccountNotFound
	}
	la.account.FirstName = firstName
	la.account.LastName = lastName
	p.accounts[email] = la
	return nil
}

// issue はHS256のIDトークンを発行する。
func (p *LocalProvider) issue(account identity.Account) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(p.accessTTL)

	claims := jwt.MapClaims{
		"sub":      account.Subject,
		"email":    account.Email,
		"username": account.Username,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(p.secret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(p.accessTTL.Seconds()), nil
}
