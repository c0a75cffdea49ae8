package main

import (
	"flag"
	"fmt"
	"log"

	"role-match/internal/config"
	"role-match/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	operator := flag.String("operator", "ops", "operator name embedded in the token")
	ttl := flag.Duration("ttl", cfg.Auth.OperatorTokenTTL, "token lifetime")
	flag.Parse()

	if cfg.Auth.OperatorTokenSecret == "" {
		log.Fatalf("OPERATOR_TOKEN_SECRET is not configured")
	}

	tok, err := jwt.NewHMACService(cfg.Auth.OperatorTokenSecret, *ttl).GenerateOperatorToken(*operator)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}
	fmt.Println(tok)
}
