package main

import (
	"bufio"
	"cmp"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/atinyakov/PageGuard/internal/client"
)

var (
	version   string
	buildDate string
)

// repl runs the interactive shell loop, accepting admin commands.
func repl(ctx context.Context, c *client.AdminClient) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("pageguard> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Println("Bye")
			return
		}
		if err := client.Run(ctx, c, args, os.Stdout); err != nil {
			fmt.Println(err)
			fmt.Println("Type 'help' for a list of commands.")
		}
	}
}

// main parses flags and runs one command, or the shell when none is given.
func main() {
	var (
		baseURL string
		token   string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&token, "token", os.Getenv("ADMIN_TOKEN"), "admin bearer token")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("PageGuard Client\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	c := client.NewAdminClient(baseURL, token)
	ctx := context.Background()

	if flag.NArg() == 0 {
		repl(ctx, c)
		return
	}
	if err := client.Run(ctx, c, flag.Args(), os.Stdout); err != nil {
		log.Fatal(err)
	}
}
