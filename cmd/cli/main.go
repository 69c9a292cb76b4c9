package main

import (
	"context"
	"fmt"
	"os"

	"github.com/marcelsud/webhook-relay/channel"
	"github.com/marcelsud/webhook-relay/channel/jsonstore"
	"github.com/marcelsud/webhook-relay/config"
)

// Small registry admin for operating the file-backed store directly.
func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx := context.Background()
	repo, err := jsonstore.NewRepository(cfg.DataDir)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer repo.Close(ctx)
	s := channel.NewService(repo)

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		return
	}
	switch args[0] {
	case "create":
		if len(args) < 2 {
			usage()
			return
		}
		secret := ""
		if len(args) > 2 {
			secret = args[2]
		}
		chatID := ""
		if len(args) > 3 {
			chatID = args[3]
		}
		ch, err := s.Create(ctx, args[1], secret, chatID)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%s\t%s\t%s\n", ch.ID, ch.Name, ch.URL())
	case "list":
		all, err := s.List(ctx)
		if err != nil {
			fmt.Println(err)
			return
		}
		for _, ch := range all {
			fmt.Printf("%s\t%s\t%s\tsecret=%v\n", ch.ID, ch.Name, ch.URL(), ch.HasSecret())
		}
	case "delete":
		if len(args) < 2 {
			usage()
			return
		}
		if err := s.Delete(ctx, args[1]); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("deleted", args[1])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("usage: cli create <name> [secret] [telegram_chat_id] | list | delete <id>")
}
