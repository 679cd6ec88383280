package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// URLs por defecto para los portales (mismo fallback que los deploys actuales).
const (
	DefaultCustomersBaseURL = "https://cordely-customers.vercel.app"
	DefaultOwnersBaseURL    = "https://cordely-owners.vercel.app"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		MetricsAddr        string   `yaml:"metrics_addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
	} `yaml:"server"`

	// Portales: base URLs para el QR y el cuerpo del correo.
	Portals struct {
		CustomersBaseURL string `yaml:"customers_base_url"`
		OwnersBaseURL    string `yaml:"owners_base_url"`
	} `yaml:"portals"`

	// Mailer: backend de envío ("gmail" | "smtp").
	Mailer struct {
		Kind string `yaml:"kind"`

		Gmail struct {
			ClientID     string `yaml:"client_id"`
			ClientSecret string `yaml:"client_secret"`
			RedirectURI  string `yaml:"redirect_uri"`
			RefreshToken string `yaml:"refresh_token"`
			SenderEmail  string `yaml:"sender_email"`
			SenderName   string `yaml:"sender_name"`
		} `yaml:"gmail"`

		SMTP struct {
			Host               string `yaml:"host"`
			Port               int    `yaml:"port"`
			Username           string `yaml:"username"`
			Password           string `yaml:"password"`
			From               string `yaml:"from"`
			TLS                string `yaml:"tls"`                  // auto | starttls | ssl | none
			InsecureSkipVerify bool   `yaml:"insecure_skip_verify"` // sólo dev
		} `yaml:"smtp"`
	} `yaml:"mailer"`

	// QR del URL de clientes adjunto al correo de credenciales.
	QR struct {
		Width int `yaml:"width"`
	} `yaml:"qr"`

	Storage struct {
		// Driver: "firestore" | "postgres" | "memory"
		Driver    string `yaml:"driver"`
		Firestore struct {
			ProjectID       string `yaml:"project_id"`
			CredentialsFile string `yaml:"credentials_file"`
			Collection      string `yaml:"collection"`
		} `yaml:"firestore"`
		Postgres struct {
			DSN string `yaml:"dsn"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// Kind: "memory" | "redis" | "off"
		Kind  string `yaml:"kind"`
		TTL   string `yaml:"ttl"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	Billing struct {
		StripeSecretKey string `yaml:"stripe_secret_key"`
		PriceID         string `yaml:"price_id"`
	} `yaml:"billing"`

	Identity struct {
		// Driver: "firebase" | "local"
		Driver          string `yaml:"driver"`
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"identity"`

	// Auth de la consola (operadores). Si Secret está vacío, no se exige token.
	Console struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"console"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load lee el YAML (si existe), aplica defaults y pisa con variables de entorno.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			// sin YAML: solo env + defaults
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MetricsAddr == "" {
		c.Server.MetricsAddr = ":9090"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Portals.CustomersBaseURL == "" {
		c.Portals.CustomersBaseURL = DefaultCustomersBaseURL
	}
	if c.Portals.OwnersBaseURL == "" {
		c.Portals.OwnersBaseURL = DefaultOwnersBaseURL
	}
	if c.Mailer.Kind == "" {
		c.Mailer.Kind = "gmail"
	}
	if c.Mailer.SMTP.TLS == "" {
		c.Mailer.SMTP.TLS = "auto"
	}
	if c.QR.Width == 0 {
		c.QR.Width = 240
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "firestore"
	}
	if c.Storage.Firestore.Collection == "" {
		c.Storage.Firestore.Collection = "siteSettings"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "2m"
	}
	if c.Identity.Driver == "" {
		c.Identity.Driver = "firebase"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate valida duraciones y combinaciones críticas.
func (c *Config) Validate() error {
	for _, d := range []string{c.Server.ReadTimeout, c.Server.WriteTimeout, c.Cache.TTL} {
		if d != "" {
			if _, err := time.ParseDuration(d); err != nil {
				return err
			}
		}
	}
	switch c.Mailer.Kind {
	case "gmail", "smtp":
	default:
		return fmt.Errorf("mailer.kind inválido: %q (gmail|smtp)", c.Mailer.Kind)
	}
	switch c.Storage.Driver {
	case "firestore", "postgres", "memory":
	default:
		return fmt.Errorf("storage.driver inválido: %q (firestore|postgres|memory)", c.Storage.Driver)
	}
	switch c.Identity.Driver {
	case "firebase", "local":
	default:
		return fmt.Errorf("identity.driver inválido: %q (firebase|local)", c.Identity.Driver)
	}
	return nil
}

// CacheTTL retorna el TTL del cache ya parseado.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 2 * time.Minute
	}
	return d
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
// Los nombres GOOGLE_* y NEXT_PUBLIC_* se mantienen por compatibilidad con los
// deploys existentes de la consola.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("METRICS_ADDR"); ok {
		c.Server.MetricsAddr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// PORTALS
	if v, ok := getEnvStr("CUSTOMERS_BASE_URL"); ok {
		c.Portals.CustomersBaseURL = v
	} else if v, ok := getEnvStr("NEXT_PUBLIC_CUSTOMERS_BASE_URL"); ok {
		c.Portals.CustomersBaseURL = v
	}
	if v, ok := getEnvStr("OWNERS_BASE_URL"); ok {
		c.Portals.OwnersBaseURL = v
	} else if v, ok := getEnvStr("NEXT_PUBLIC_OWNERS_BASE_URL"); ok {
		c.Portals.OwnersBaseURL = v
	}

	// MAILER
	if v, ok := getEnvStr("MAILER_KIND"); ok {
		c.Mailer.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("GOOGLE_CLIENT_ID"); ok {
		c.Mailer.Gmail.ClientID = v
	}
	if v, ok := getEnvStr("GOOGLE_CLIENT_SECRET"); ok {
		c.Mailer.Gmail.ClientSecret = v
	}
	if v, ok := getEnvStr("GOOGLE_REDIRECT_URI"); ok {
		c.Mailer.Gmail.RedirectURI = v
	}
	if v, ok := getEnvStr("GOOGLE_REFRESH_TOKEN"); ok {
		c.Mailer.Gmail.RefreshToken = v
	}
	if v, ok := getEnvStr("GOOGLE_SENDER_EMAIL"); ok {
		c.Mailer.Gmail.SenderEmail = v
	}
	if v, ok := getEnvStr("GOOGLE_SENDER_NAME"); ok {
		c.Mailer.Gmail.SenderName = v
	}
	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.Mailer.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.Mailer.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USERNAME"); ok {
		c.Mailer.SMTP.Username = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD"); ok {
		c.Mailer.SMTP.Password = v
	}
	if v, ok := getEnvStr("SMTP_FROM"); ok {
		c.Mailer.SMTP.From = v
	}
	if v, ok := getEnvStr("SMTP_TLS"); ok {
		c.Mailer.SMTP.TLS = strings.ToLower(v)
	}
	if v, ok := getEnvBool("SMTP_INSECURE_SKIP_VERIFY"); ok {
		c.Mailer.SMTP.InsecureSkipVerify = v
	}

	// QR
	if v, ok := getEnvInt("QR_WIDTH"); ok {
		c.QR.Width = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("FIRESTORE_PROJECT_ID"); ok {
		c.Storage.Firestore.ProjectID = v
	}
	if v, ok := getEnvStr("FIRESTORE_CREDENTIALS_FILE"); ok {
		c.Storage.Firestore.CredentialsFile = v
	} else if v, ok := getEnvStr("GOOGLE_APPLICATION_CREDENTIALS"); ok {
		c.Storage.Firestore.CredentialsFile = v
	}
	if v, ok := getEnvStr("FIRESTORE_COLLECTION"); ok {
		c.Storage.Firestore.Collection = v
	}
	if v, ok := getEnvStr("POSTGRES_DSN"); ok {
		c.Storage.Postgres.DSN = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("CACHE_TTL"); ok {
		c.Cache.TTL = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// BILLING
	if v, ok := getEnvStr("STRIPE_SECRET_KEY"); ok {
		c.Billing.StripeSecretKey = v
	}
	if v, ok := getEnvStr("STRIPE_PRICE_ID"); ok {
		c.Billing.PriceID = v
	}

	// IDENTITY
	if v, ok := getEnvStr("IDENTITY_DRIVER"); ok {
		c.Identity.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("IDENTITY_CREDENTIALS_FILE"); ok {
		c.Identity.CredentialsFile = v
	}

	// CONSOLE
	if v, ok := getEnvStr("CONSOLE_JWT_SECRET"); ok {
		c.Console.JWTSecret = v
	}

	// LOG
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
}
