package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env  string
	Port string

	LogLevel string

	Accounts Database
	Products Database

	Pagination Pagination

	Odoo Odoo
}

// Database describes one logical document-store connection.
type Database struct {
	URI  string
	Name string
}

type Pagination struct {
	Page    int32
	PerPage int32
}

// Odoo holds the ERP partner integration settings. The integration is
// disabled unless a URL is configured.
type Odoo struct {
	URL      string
	DB       string
	UID      int
	Password string
}

func (o Odoo) Enabled() bool {
	return o.URL != ""
}

// Load reads configuration from the environment with sane defaults.
// Variables follow the key path, e.g. ACCOUNTS_URI, PAGINATION_PER_PAGE.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("port", "4000")
	v.SetDefault("log.level", "info")
	v.SetDefault("accounts.uri", "mongodb://localhost:27017")
	v.SetDefault("accounts.name", "ei_accounts")
	v.SetDefault("products.uri", "mongodb://localhost:27017")
	v.SetDefault("products.name", "ei_products")
	v.SetDefault("pagination.page", 1)
	v.SetDefault("pagination.per_page", 10)
	v.SetDefault("odoo.url", "")
	v.SetDefault("odoo.db", "")
	v.SetDefault("odoo.uid", 0)
	v.SetDefault("odoo.password", "")

	cfg := &Config{
		Env:      v.GetString("env"),
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		Accounts: Database{
			URI:  v.GetString("accounts.uri"),
			Name: v.GetString("accounts.name"),
		},
		Products: Database{
			URI:  v.GetString("products.uri"),
			Name: v.GetString("products.name"),
		},
		Pagination: Pagination{
			Page:    v.GetInt32("pagination.page"),
			PerPage: v.GetInt32("pagination.per_page"),
		},
		Odoo: Odoo{
			URL:      v.GetString("odoo.url"),
			DB:       v.GetString("odoo.db"),
			UID:      v.GetInt("odoo.uid"),
			Password: v.GetString("odoo.password"),
		},
	}
	return cfg, nil
}
