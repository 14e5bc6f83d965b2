package client

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/atinyakov/PageGuard/internal/models"
)

// Usage lists the commands accepted by Run.
const Usage = `Available commands:
  protect [-off] <item> <password>   save an item's protection
  show <item>                        print an item's protection
  purge <item>...                    delete records of removed items
  settings                           print global settings
  set-settings [-bg c] [-fg c] [-terms] [-terms-copy text]
  help`

// ErrUsage is returned for unknown commands or missing arguments.
var ErrUsage = errors.New("invalid usage")

func printJSON(out io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(out, string(b))
}

// Run executes a single admin command against c and writes its result to out.
func Run(ctx context.Context, c *AdminClient, args []string, out io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "help":
		fmt.Fprintln(out, Usage)
		return nil

	case "protect":
		fs := flag.NewFlagSet("protect", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		off := fs.Bool("off", false, "store the password with protection disabled")
		if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 2 {
			return fmt.Errorf("%w: protect [-off] <item> <password>", ErrUsage)
		}
		p, err := c.Protect(ctx, fs.Arg(0), !*off, fs.Arg(1))
		if err != nil {
			return err
		}
		printJSON(out, p)
		return nil

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("%w: show <item>", ErrUsage)
		}
		p, err := c.Show(ctx, args[1])
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Fprintln(out, "Item is not protected")
			return nil
		}
		printJSON(out, p)
		return nil

	case "purge":
		if len(args) < 2 {
			return fmt.Errorf("%w: purge <item>...", ErrUsage)
		}
		n, err := c.Purge(ctx, args[1:])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d record(s)\n", n)
		return nil

	case "settings":
		s, err := c.Settings(ctx)
		if err != nil {
			return err
		}
		printJSON(out, s)
		return nil

	case "set-settings":
		var s models.Settings
		fs := flag.NewFlagSet("set-settings", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.StringVar(&s.BackgroundColor, "bg", "", "challenge background color")
		fs.StringVar(&s.FontColor, "fg", "", "challenge font color")
		fs.BoolVar(&s.TermsEnabled, "terms", false, "require agreeing to terms")
		fs.StringVar(&s.TermsCopy, "terms-copy", "", "terms popup text")
		if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 0 {
			return fmt.Errorf("%w: set-settings [-bg c] [-fg c] [-terms] [-terms-copy text]", ErrUsage)
		}
		saved, err := c.SaveSettings(ctx, s)
		if err != nil {
			return err
		}
		printJSON(out, saved)
		return nil
	}

	return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
}
