package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"chatapp/backend/internal/auth"
	"chatapp/backend/internal/notify"

	"github.com/joho/godotenv"
)

// Small ops tool: mint a development token for a user, or probe a
// running instance and its push dispatcher.
func main() {
	mint := flag.String("mint", "", "mint a token for this user id")
	ttl := flag.Duration("ttl", 72*time.Hour, "token lifetime")
	probe := flag.String("probe", "", "probe a running instance at this base URL (e.g. http://localhost:8080)")
	push := flag.String("push", "", "health-check the push dispatcher at this base URL")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	if *mint != "" {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			log.Fatal("JWT_SECRET is not set")
		}
		token, err := auth.NewJWTVerifier(secret).Issue(*mint, *ttl)
		if err != nil {
			log.Fatalf("Failed to mint token: %v", err)
		}
		fmt.Println(token)
		return
	}

	if *probe != "" {
		for _, path := range []string{"/api/chat/health", "/api/chat/info"} {
			resp, err := http.Get(*probe + path)
			if err != nil {
				log.Fatalf("GET %s failed: %v", path, err)
			}
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			fmt.Printf("%s %d %s\n", path, resp.StatusCode, body)
		}
		return
	}

	if *push != "" {
		if notify.NewService(*push).HealthCheck() {
			fmt.Println("push dispatcher: healthy")
		} else {
			fmt.Println("push dispatcher: unhealthy")
		}
		return
	}

	flag.Usage()
}
