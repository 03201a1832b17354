package config

import "time"

type Config struct {
	Web     Web
	DB      DB
	Session Session
	Cors    Cors
	Storage Storage
	Oauth   Oauth
	Login   Login
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:artmarket"`
	DisableTLS bool   `conf:"default:true"`
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

type Cors struct {
	Origin string
}

// Storage points at the S3-compatible bucket holding listing images.
type Storage struct {
	Endpoint  string `conf:"default:localhost:9000"`
	AccessKey string
	SecretKey string `conf:"mask"`
	Bucket    string `conf:"default:art-market-images"`
	UseSSL    bool   `conf:"default:false"`
}

type Oauth struct {
	DiscoveryTimeout time.Duration `conf:"default:30s"`
	LoginRedirectURL string        `conf:"default:/"`
	Google           OauthProvider
}

type OauthProvider struct {
	Client      string
	Secret      string `conf:"mask"`
	URL         string `conf:"default:https://accounts.google.com"`
	RedirectURL string
}

// Login bounds credential attempts per client address.
type Login struct {
	RateBurst  int           `conf:"default:5"`
	RateEvery  time.Duration `conf:"default:2s"`
	RateExpiry int           `conf:"default:10"`
}
