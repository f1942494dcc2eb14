package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

type recorder struct {
	ran []string
	dsn string
	err error
}

func (r *recorder) migrator(t *testing.T) migrator {
	t.Helper()
	cmd := func(name string) func(context.Context, *sql.DB) error {
		return func(context.Context, *sql.DB) error {
			r.ran = append(r.ran, name)
			return r.err
		}
	}
	return migrator{
		open: func(dsn string, _ bool) (*sql.DB, error) {
			r.dsn = dsn
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock: %v", err)
			}
			mock.ExpectClose()
			return db, nil
		},
		commands: map[string]func(context.Context, *sql.DB) error{
			"up":     cmd("up"),
			"down":   cmd("down"),
			"status": cmd("status"),
		},
	}
}

func TestRun_DispatchesCommand(t *testing.T) {
	for _, name := range []string{"up", "down", "status"} {
		r := &recorder{}
		var stderr bytes.Buffer

		if code := r.migrator(t).run([]string{"-dsn", "postgres://x", name}, &stderr); code != 0 {
			t.Fatalf("%s: expected 0, got %d (%s)", name, code, stderr.String())
		}
		if len(r.ran) != 1 || r.ran[0] != name {
			t.Fatalf("%s: unexpected calls %v", name, r.ran)
		}
		if r.dsn != "postgres://x" {
			t.Fatalf("unexpected dsn %q", r.dsn)
		}
	}
}

func TestRun_DSNFromEnv(t *testing.T) {
	t.Setenv("DB_ADDR", "postgres://from-env")

	r := &recorder{}
	if code := r.migrator(t).run([]string{"up"}, &bytes.Buffer{}); code != 0 {
		t.Fatalf("expected 0, got %d", code)
	}
	if r.dsn != "postgres://from-env" {
		t.Fatalf("unexpected dsn %q", r.dsn)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	t.Setenv("DB_ADDR", "")

	cases := map[string][]string{
		"no command":      {"-dsn", "postgres://x"},
		"unknown command": {"-dsn", "postgres://x", "sideways"},
		"no dsn":          {"up"},
		"bad flag":        {"-nope", "up"},
	}
	for name, args := range cases {
		r := &recorder{}
		if code := r.migrator(t).run(args, &bytes.Buffer{}); code != 2 {
			t.Fatalf("%s: expected 2, got %d", name, code)
		}
		if len(r.ran) != 0 {
			t.Fatalf("%s: nothing should run, got %v", name, r.ran)
		}
	}
}

func TestRun_Failures(t *testing.T) {
	r := &recorder{err: errors.New("dirty")}
	if code := r.migrator(t).run([]string{"-dsn", "postgres://x", "up"}, &bytes.Buffer{}); code != 1 {
		t.Fatalf("expected 1 on migration error, got %d", code)
	}

	m := (&recorder{}).migrator(t)
	m.open = func(string, bool) (*sql.DB, error) { return nil, errors.New("refused") }
	if code := m.run([]string{"-dsn", "postgres://x", "up"}, &bytes.Buffer{}); code != 1 {
		t.Fatalf("expected 1 on connect error, got %d", code)
	}
}
