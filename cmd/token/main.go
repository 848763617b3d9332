// Command token prints a signed editor token for POST /movies/ when the
// server runs with JWT_SECRET set.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

func main() {
	config.LoadDotEnv()
	sub := flag.String("sub", "editor", "token subject")
	ttl := flag.Int("ttl", 0, "lifetime in minutes (default ACCESS_TOKEN_TTL_MIN)")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	minutes := *ttl
	if minutes <= 0 {
		minutes = 60
		if cfg, err := config.Load(); err == nil {
			minutes = cfg.AccessTTLMin
		}
	}

	tok, err := utils.NewAccessToken(secret, *sub, utils.RoleEditor, minutes)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(tok.Token)
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format(time.RFC3339))
}
