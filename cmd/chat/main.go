package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"healthai-backend/internal/chat"
)

func main() {
	serverURL := flag.String("server", "http://localhost:3000", "relay base URL")
	timeout := flag.Duration("timeout", 90*time.Second, "per-request timeout (0 disables)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, chat.NewHTTPRelay(*serverURL, *timeout)); err != nil {
		fmt.Fprintf(os.Stderr, "chat: %v\n", err)
		os.Exit(1)
	}
}

type relayClient interface {
	chat.Relay
	chat.Reporter
}

func run(ctx context.Context, in io.Reader, out io.Writer, relay relayClient) error {
	view := chat.NewTerminalView(out)
	ctrl := chat.NewController(view, relay)
	ctrl.Start()
	fmt.Fprintln(out, "Type a message, /report [path] to export a PDF, /quit to exit.")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "/quit":
			return nil
		case line == "/report" || strings.HasPrefix(line, "/report "):
			path := strings.TrimSpace(strings.TrimPrefix(line, "/report"))
			saved, summary, err := chat.ExportReport(ctx, relay, ctrl.Snapshot(), path)
			if err != nil {
				fmt.Fprintf(out, "report failed: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "saved %s (%d page)\n", saved, summary.Pages)
		default:
			err := ctrl.Send(ctx, line)
			if err != nil && !errors.Is(err, chat.ErrEmptyMessage) && !errors.Is(err, chat.ErrTransport) {
				return err
			}
		}
	}
	return scanner.Err()
}
