// Command createuser provisions an API user and prints its token.
//
//	createuser --username alice [--admin] [--token <token>]
//
// The token is generated when not given. Only its digest is stored, so the
// printed value cannot be recovered later.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"ftl/cmd"
	"ftl/internal/adapters/out/postgres"
	"ftl/internal/core/application/usecases/commands"
	"ftl/internal/platform/observability"

	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
)

func main() {
	username := pflag.StringP("username", "u", "", "name of the new user")
	admin := pflag.Bool("admin", false, "allow the user to change settings")
	token := pflag.String("token", "", "API token to assign (generated when empty)")
	envFile := pflag.String("env", ".env", "environment file to load")
	pflag.Parse()

	if *token == "" {
		generated, err := newToken()
		if err != nil {
			log.Fatal(err)
		}
		*token = generated
	}

	configs, err := cmd.LoadConfig(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	logger := observability.NewLogger(observability.ParseLevel(configs.LogLevel))

	command, err := commands.NewCreateUserCommand(*username, *token, *admin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		pflag.Usage()
		os.Exit(2)
	}

	gormDB, err := postgres.Open(postgres.DSN(
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode))
	if err != nil {
		log.Fatal(err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatal(err)
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	handler := commands.NewCreateUserCommandHandler(cmd.FuncAccountUoWFactory(func() commands.AccountUoW {
		return uowFactory.Create()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := handler.Handle(ctx, command)
	if err != nil {
		log.Fatal(err)
	}
	logger.InfoContext(ctx, "User created", "user_id", user.ID().String(), "username", user.Username(), "admin", user.IsAdmin())
	fmt.Println(*token)
}

func newToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
