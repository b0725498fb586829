// Command lyskom-chat is a minimal interactive client for a LysKOM Protocol
// A server: it logs in, subscribes to the message-related asynchronous
// messages, prints whatever the server sends, and sends a message to a
// conference for every line read from standard input.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/lyskom-go/lyskom"
	"github.com/lyskom-go/lyskom/internal/config"
	"github.com/lyskom-go/lyskom/schema"
	"github.com/lyskom-go/lyskom/schema/query"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lyskom-chat:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML configuration file (optional)")
	addr := flag.String("addr", "", "server address, overrides the configured one")
	recipient := flag.Int64("to", 0, "conference number to send lines to")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()
	sugar := log.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl, err := lyskom.Dial(ctx, "tcp", cfg.Server.Address,
		lyskom.WithUser(cfg.User.Name),
		lyskom.WithHostname(cfg.User.Hostname),
		lyskom.WithLogger(sugar),
	)
	if err != nil {
		return fmt.Errorf("dial %s: %w", cfg.Server.Address, err)
	}
	defer cl.Close()

	registerHandlers(cl, sugar)

	if cfg.User.Person != 0 {
		if _, err := cl.Call(ctx, "login", schema.NewRecord(
			"person", schema.Int64(cfg.User.Person),
			"passwd", schema.Str(cfg.User.Password),
			"invisible", schema.Boolean(false),
		)); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		sugar.Infow("logged in", "person", cfg.User.Person)
	}

	if _, err := cl.Call(ctx, "acceptAsync", schema.NewRecord(
		"requestList", schema.Seq{Len: 3, Elems: []schema.Value{
			schema.Int64(12), schema.Int64(13), schema.Int64(14),
		}},
	)); err != nil {
		return fmt.Errorf("acceptAsync: %w", err)
	}

	return chatLoop(ctx, cl, sugar, *recipient)
}

// registerHandlers wires the three async message kinds this client cares
// about to console output, extracting fields with [query] rather than type
// switching on the returned [schema.Value] by hand.
func registerHandlers(cl *lyskom.Client, log *zap.SugaredLogger) {
	cl.OnAsync(12, func(v schema.Value) {
		sender, _ := query.Eval(v, query.Path("sender"))
		msg, _ := query.Eval(v, query.Path("message"))
		fmt.Printf("[message from %v] %s\n", sender, asText(msg))
	})
	cl.OnAsync(13, func(v schema.Value) {
		person, _ := query.Eval(v, query.Path("person"))
		fmt.Printf("[person %v logged out]\n", person)
	})
	cl.OnAsync(14, func(v schema.Value) {
		person, _ := query.Eval(v, query.Path("person"))
		fmt.Printf("[person %v logged in]\n", person)
	})
}

func asText(v schema.Value) string {
	switch t := v.(type) {
	case schema.Bytes:
		return string(t)
	case schema.Str:
		return string(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// chatLoop reads lines from standard input until EOF or ctx is cancelled,
// sending each as a message to recipient.
func chatLoop(ctx context.Context, cl *lyskom.Client, log *zap.SugaredLogger, recipient int64) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := sendLine(ctx, cl, recipient, line); err != nil {
				log.Warnw("send failed", "error", err)
			}
		}
	}
}

func sendLine(ctx context.Context, cl *lyskom.Client, recipient int64, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if to, rest, ok := strings.Cut(line, ":"); ok {
		if n, err := strconv.ParseInt(to, 10, 64); err == nil {
			recipient = n
			line = strings.TrimSpace(rest)
		}
	}
	if recipient == 0 {
		return fmt.Errorf("no recipient given; prefix a line with confNo: or pass -to")
	}
	_, err := cl.Call(ctx, "sendMessage", schema.NewRecord(
		"recipient", schema.Int64(recipient),
		"message", schema.Str(line),
	))
	return err
}
