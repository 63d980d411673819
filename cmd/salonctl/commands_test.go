package main

import (
	"testing"
	"time"

	"github.com/alecthomas/kong"
)

func TestParseDay(t *testing.T) {
	d, err := parseDay(" 2024-03-05 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %s", d)
	}
	if _, err := parseDay("05/03/2024"); err == nil {
		t.Fatal("expected error for non ISO date")
	}
}

func TestCreateUserFlags(t *testing.T) {
	var cli struct {
		CreateUser CreateUserCmd `cmd:"" name:"create-user"`
	}
	parser, err := kong.New(&cli, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	if _, err := parser.Parse([]string{"create-user", "--email=ana@salon.test", "--name=Ana", "--password=secret123"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cli.CreateUser.Role != "admin" {
		t.Errorf("role default = %q, want admin", cli.CreateUser.Role)
	}
	if _, err := parser.Parse([]string{"create-user", "--email=a@b.c", "--name=A", "--password=x", "--role=owner"}); err == nil {
		t.Error("expected enum violation for unknown role")
	}
}
