package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
	"github.com/tendant/simple-admin/pkg/config"
	"github.com/tendant/simple-admin/pkg/directory"
	directoryapi "github.com/tendant/simple-admin/pkg/directory/api"
	"github.com/tendant/simple-admin/pkg/identity"
	"github.com/tendant/simple-admin/pkg/password"
	"github.com/tendant/simple-admin/pkg/roleassign"
	roleassignapi "github.com/tendant/simple-admin/pkg/roleassign/api"
)

type Config struct {
	DbConfig  config.DatabaseConfig
	JwtConfig config.JwtConfig
}

func main() {
	myApp := app.Default()

	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	// Connect to the database
	dbConfig := cfg.DbConfig.ToDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(1)
	}

	store, err := identity.NewStore("postgres", identity.StoreConfig{Pool: pool})
	if err != nil {
		slog.Error("Failed creating identity store", "err", err)
		os.Exit(1)
	}
	directoryService := directory.NewDirectoryService(store, password.NewBcryptHasher())
	roleAssignService := roleassign.NewRoleAssignmentService(store)

	jwtAuth := jwtauth.New("HS256", []byte(cfg.JwtConfig.Secret), nil)

	myApp.R.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtAuth))
		r.Use(jwtauth.Authenticator(jwtAuth))

		r.Mount("/api/admin/users", directoryapi.Handler(directoryapi.NewHandle(directoryService)))
		r.Mount("/api/admin/memberships", roleassignapi.Handler(roleassignapi.NewHandle(roleAssignService)))
	})

	myApp.Run()
}
