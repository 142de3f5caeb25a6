//go:build ignore

// Mints a dev session directly in Redis, since there is no password login
// to get one through. Usage:
//
//	go run scripts/devsession.go -user u1 [-addr localhost:6379]
//
// Prints the session id to use as the session_id cookie.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

func main() {
	user := flag.String("user", "", "user id to bind the session to")
	addr := flag.String("addr", "localhost:6379", "redis address")
	ttl := flag.Duration("ttl", 24*time.Hour, "session ttl")
	flag.Parse()
	if *user == "" {
		log.Fatal("-user is required")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("rand: %v", err)
	}
	id := hex.EncodeToString(b)

	rdb := redis.NewClient(&redis.Options{Addr: *addr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Set(ctx, "session:"+id, *user, *ttl).Err(); err != nil {
		log.Fatalf("redis set: %v", err)
	}
	fmt.Printf("session_id=%s\n", id)
}
