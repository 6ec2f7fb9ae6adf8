// Command gen-invites pre-registers members and prints their landing links.
//
// Usage:
//
//	gen-invites -file nicknames.txt
//	gen-invites alice bob
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/DreamJournal_Go/internal/bootstrap"
	"github.com/osse101/DreamJournal_Go/internal/config"
	"github.com/osse101/DreamJournal_Go/internal/database"
	"github.com/osse101/DreamJournal_Go/internal/invite"
	"github.com/osse101/DreamJournal_Go/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	file := flag.String("file", "", "file with one nickname per line")
	flag.Parse()

	nicknames := flag.Args()
	if *file != "" {
		fromFile, err := readNicknames(*file)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *file, err)
		}
		nicknames = append(nicknames, fromFile...)
	}
	if len(nicknames) == 0 {
		log.Fatal("No nicknames given")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 2, time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repos := bootstrap.InitializeRepositories(pool)
	invites := invite.NewService(invite.Deps{
		Invites:  repos.Invite,
		Accounts: repos.Account,
		Codec:    invite.NewTokenCodec(cfg.InviteSecret, cfg.LegacyInviteKey, cfg.InviteTokenTTL),
		Sessions: session.NewManager(cfg.SessionSecret, cfg.SessionTTL),
		Secret:   cfg.InviteSecret,
		BaseURL:  cfg.InviteBaseURL,
	})

	failed := 0
	for _, name := range nicknames {
		inv, err := invites.IssueInvite(ctx, name)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s\tERROR\t%v\n", name, err)
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", inv.PreUser.Nickname, inv.PreUser.ID, inv.Link)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func readNicknames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
