// cmd/cachectl inspects or evicts cached deck and grammar set read models.
//
//	cachectl [-addr host:port] [-pattern 'deck:*'] [-del]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/infrastructure/redis"
)

const keyPrefix = "langlearn:"

type cacheStore interface {
	Scan(ctx context.Context, pattern string, fn func(redis.Entry) error) error
	Purge(ctx context.Context, pattern string) (int, error)
}

type opener func(addr, password string, db int) (cacheStore, func() error, error)

func openRedis(addr, password string, db int) (cacheStore, func() error, error) {
	c := redis.New(addr, password, db)
	if err := c.Ping(context.Background()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return redis.NewCache(c, keyPrefix), c.Close, nil
}

func run(args []string, open opener, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cachectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		addr    = fs.String("addr", envOr("REDIS_ADDR", "127.0.0.1:6379"), "redis address host:port")
		pass    = fs.String("pass", os.Getenv("REDIS_PASSWORD"), "redis password")
		db      = fs.Int("db", 0, "redis db")
		pattern = fs.String("pattern", "*", "key pattern, without the "+keyPrefix+" prefix")
		doDel   = fs.Bool("del", false, "delete matched keys")
		timeout = fs.Duration("timeout", 10*time.Second, "overall timeout")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(stderr, "usage: cachectl [-addr host:port] [-pattern glob] [-del]")
		return 2
	}

	store, closeFn, err := open(*addr, *pass, *db)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *doDel {
		n, err := store.Purge(ctx, *pattern)
		if err != nil {
			fmt.Fprintf(stderr, "purge failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "deleted %d keys\n", n)
		return 0
	}

	total := 0
	err = store.Scan(ctx, *pattern, func(e redis.Entry) error {
		total++
		fmt.Fprintf(stdout, "%d) %s\n   ttl=%s\n   val=%q\n", total, e.Key, e.TTL, e.Raw)
		return nil
	})
	if err != nil {
		fmt.Fprintf(stderr, "scan failed: %v\n", err)
		return 1
	}
	if total == 0 {
		fmt.Fprintln(stdout, "No keys matched.")
	}
	return 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], openRedis, os.Stdout, os.Stderr))
}
