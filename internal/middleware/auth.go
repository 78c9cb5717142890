package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/AdamBeresnev/sinuca-bracket/internal/config"
	users "github.com/AdamBeresnev/sinuca-bracket/internal/user"
	"github.com/alexedwards/scs/v2"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/discord"
	"github.com/markbates/goth/providers/google"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassphrase = errors.New("wrong passphrase")
	ErrNotAdmin          = errors.New("this account is not allowed to manage the tournament")
)

const (
	sessionAdminName     = "adminName"
	sessionAdminProvider = "adminProvider"
	sessionAdminSince    = "adminSince"
)

// InitAuth registers the OAuth providers that have credentials configured and
// returns their names for the login page.
func InitAuth(cfg *config.Config) []string {
	var providers []goth.Provider
	var names []string
	if cfg.Discord.Enabled() {
		providers = append(providers, discord.New(cfg.Discord.Key, cfg.Discord.Secret, cfg.Discord.CallbackURL, discord.ScopeIdentify, discord.ScopeEmail))
		names = append(names, "discord")
	}
	if cfg.Google.Enabled() {
		providers = append(providers, google.New(cfg.Google.Key, cfg.Google.Secret, cfg.Google.CallbackURL, "email", "profile"))
		names = append(names, "google")
	}
	if len(providers) > 0 {
		goth.UseProviders(providers...)
	}
	return names
}

// Authenticator grants the admin capability. It is kept in the server side
// session, so it is per browser and never process wide.
type Authenticator struct {
	sessions       *scs.SessionManager
	passphraseHash []byte
	adminEmails    []string
}

func NewAuthenticator(sessions *scs.SessionManager, cfg *config.Config) (*Authenticator, error) {
	a := &Authenticator{sessions: sessions}
	for _, email := range cfg.AdminEmails {
		a.adminEmails = append(a.adminEmails, strings.ToLower(email))
	}

	switch {
	case cfg.AdminPassphraseHash != "":
		if _, err := bcrypt.Cost([]byte(cfg.AdminPassphraseHash)); err != nil {
			return nil, errors.New("ADMIN_PASSPHRASE_HASH is not a bcrypt hash")
		}
		a.passphraseHash = []byte(cfg.AdminPassphraseHash)
	case cfg.AdminPassphrase != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassphrase), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		a.passphraseHash = hash
	}
	return a, nil
}

func (a *Authenticator) PassphraseEnabled() bool {
	return len(a.passphraseHash) > 0
}

func (a *Authenticator) LoginWithPassphrase(ctx context.Context, passphrase string) error {
	if !a.PassphraseEnabled() {
		return ErrInvalidPassphrase
	}
	if err := bcrypt.CompareHashAndPassword(a.passphraseHash, []byte(passphrase)); err != nil {
		return ErrInvalidPassphrase
	}
	return a.grant(ctx, users.Admin{Name: "admin", Provider: users.ProviderPassphrase})
}

// LoginWithProvider accepts an OAuth user only if its email is listed in ADMIN_EMAILS.
func (a *Authenticator) LoginWithProvider(ctx context.Context, gothUser goth.User) error {
	email := strings.ToLower(strings.TrimSpace(gothUser.Email))
	if email == "" || !slices.Contains(a.adminEmails, email) {
		return ErrNotAdmin
	}
	name := gothUser.Name
	if name == "" {
		name = gothUser.NickName
	}
	if name == "" {
		name = email
	}
	return a.grant(ctx, users.Admin{Name: name, Provider: gothUser.Provider})
}

func (a *Authenticator) grant(ctx context.Context, admin users.Admin) error {
	// new token on privilege change
	if err := a.sessions.RenewToken(ctx); err != nil {
		return err
	}
	a.sessions.Put(ctx, sessionAdminName, admin.Name)
	a.sessions.Put(ctx, sessionAdminProvider, admin.Provider)
	a.sessions.Put(ctx, sessionAdminSince, time.Now().Unix())
	return nil
}

func (a *Authenticator) Logout(ctx context.Context) error {
	return a.sessions.Destroy(ctx)
}

// LoadAdmin puts the session's admin, if any, into the request context.
func (a *Authenticator) LoadAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if name := a.sessions.GetString(ctx, sessionAdminName); name != "" {
			ctx = WithAdmin(ctx, &users.Admin{
				Name:       name,
				Provider:   a.sessions.GetString(ctx, sessionAdminProvider),
				LoggedInAt: time.Unix(a.sessions.GetInt64(ctx, sessionAdminSince), 0).UTC(),
			})
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin sends visitors to the login page, or answers 403 on the API.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsAdmin(r.Context()) {
			next.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") || r.Header.Get("HX-Request") != "" {
			http.Error(w, "admin login required", http.StatusForbidden)
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}

func WithAdmin(ctx context.Context, admin *users.Admin) context.Context {
	return context.WithValue(ctx, users.AdminKey, admin)
}

func GetAdmin(ctx context.Context) *users.Admin {
	val := ctx.Value(users.AdminKey)
	if val == nil {
		return nil
	}
	admin, ok := val.(*users.Admin)
	if !ok {
		return nil
	}
	return admin
}

func IsAdmin(ctx context.Context) bool {
	return GetAdmin(ctx) != nil
}
