// Command token issues a back-office access token for an operator.
//
//	go run ./cmd/token -operator desk-1 -role admin
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/config"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/jwt"
)

func main() {
	operator := flag.String("operator", "", "operator name carried in the sub claim")
	role := flag.String("role", jwt.RoleOperator, "admin or operator")
	flag.Parse()

	if *operator == "" {
		fmt.Fprintln(os.Stderr, "-operator is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(*operator, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error issuing token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
