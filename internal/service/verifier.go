package service

import (
	"context"
	"strings"

	"carbon-bazar/config"
	"carbon-bazar/internal/core/domain"
	"carbon-bazar/internal/core/ports"

	"github.com/rs/zerolog"
)

// DemoVerifier implements ports.CredentialVerifier for demo deployments.
// Any non-empty credential pair resolves to the configured demo account;
// the submitted email is ignored so the demo ledger is always the same.
type DemoVerifier struct {
	cfg config.DemoConfig
}

// NewDemoVerifier creates a verifier backed by the demo account config.
func NewDemoVerifier(cfg config.DemoConfig) *DemoVerifier {
	return &DemoVerifier{cfg: cfg}
}

func (v *DemoVerifier) Verify(_ context.Context, email, password string) (*domain.Identity, *ports.AccountSeed, error) {
	if email == "" || password == "" {
		return nil, nil, ErrBadCredentials
	}
	return &domain.Identity{
			Email:       v.cfg.Email,
			DisplayName: v.cfg.DisplayName,
		}, &ports.AccountSeed{
			CreditBalance:    v.cfg.StartingCredits,
			TransactionCount: v.cfg.StartingTransactions,
		}, nil
}

// ErrBadCredentials is returned by verifiers on any credential failure.
// Deliberately carries no detail about which part failed.
var ErrBadCredentials = credentialError("credential verification failed")

type credentialError string

func (e credentialError) Error() string { return string(e) }

// StaticVerifier implements ports.CredentialVerifier against a fixed
// credential table of email -> Argon2id hash. All accounts start from
// the same configured seed.
type StaticVerifier struct {
	users  map[string]string
	seed   ports.AccountSeed
	hasher *Argon2HashService
	log    zerolog.Logger
}

// NewStaticVerifier creates a verifier over the configured user table.
func NewStaticVerifier(cfg config.AuthConfig, demo config.DemoConfig, log zerolog.Logger) *StaticVerifier {
	users := make(map[string]string, len(cfg.Users))
	for email, hash := range cfg.Users {
		users[strings.ToLower(email)] = hash
	}
	return &StaticVerifier{
		users: users,
		seed: ports.AccountSeed{
			CreditBalance:    demo.StartingCredits,
			TransactionCount: demo.StartingTransactions,
		},
		hasher: NewArgon2HashService(),
		log:    log.With().Str("component", "static_verifier").Logger(),
	}
}

func (v *StaticVerifier) Verify(_ context.Context, email, password string) (*domain.Identity, *ports.AccountSeed, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	hash, ok := v.users[normalized]
	if !ok {
		// Burn a hash anyway so unknown emails take as long as bad passwords.
		_, _ = v.hasher.Verify(password, dummyHash)
		return nil, nil, ErrBadCredentials
	}

	match, err := v.hasher.Verify(password, hash)
	if err != nil {
		v.log.Warn().Str("email", normalized).Err(err).Msg("credential hash unreadable")
		return nil, nil, ErrBadCredentials
	}
	if !match {
		return nil, nil, ErrBadCredentials
	}

	seed := v.seed
	return &domain.Identity{
		Email:       normalized,
		DisplayName: displayNameFromEmail(normalized),
	}, &seed, nil
}

// dummyHash is a throwaway Argon2id hash used to equalize timing for
// unknown emails.
const dummyHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// displayNameFromEmail derives a readable name from the local part of
// an email address ("jane.doe" -> "Jane Doe").
func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return email
	}
	return strings.Join(words, " ")
}
