package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseConfig del adapter.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string // vacío => Application Default Credentials
}

// FirebaseProvider implementa Provider sobre Firebase Auth. Es el backend de
// producción: los dueños inician sesión en el portal con estas cuentas.
type FirebaseProvider struct {
	auth *auth.Client
}

// NewFirebase inicializa la app admin y su cliente de auth.
func NewFirebase(ctx context.Context, cfg FirebaseConfig) (*FirebaseProvider, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return &FirebaseProvider{auth: client}, nil
}

func (p *FirebaseProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	if len(password) < 6 {
		return "", ErrWeakPassword
	}
	u, err := p.auth.CreateUser(ctx, (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		EmailVerified(false).
		Disabled(false))
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", ErrEmailInUse
		}
		return "", fmt.Errorf("firebase create user: %w", err)
	}
	return u.UID, nil
}
