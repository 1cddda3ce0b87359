// Command transcode converts a storefront order event into a POS artifact
// without running the HTTP service.
//
//	transcode -in hook.json -template pos_template.json -out ./artifacts
//	transcode -in event.json -print
//	transcode -in order.json -pos -out ./artifacts
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Apurer/go-gin-order-bridge/internal/app/api"
	pos "github.com/Apurer/go-gin-order-bridge/internal/domains/pos/domain"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/filesystem"
	relayapp "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application"
	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	storefront "github.com/Apurer/go-gin-order-bridge/internal/domains/storefront/domain"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitRejected = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	in       string
	template string
	out      string
	print    bool
	posMode  bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewTextHandler(stderr, nil))
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}

	raw, err := readInput(opts.in, stdin)
	if err != nil {
		logger.Error("failed to read input", slog.String("in", opts.in), slog.String("error", err.Error()))
		return exitFailure
	}

	switch {
	case opts.print:
		err = printSource(raw, stdout)
	case opts.posMode:
		err = writePOSOrder(ctx, raw, opts, stdout)
	default:
		err = transcode(ctx, raw, opts, stdout, logger)
	}
	if err != nil {
		logger.Error("transcode failed", slog.String("error", err.Error()))
		if relayapp.IsRejected(err) {
			return exitRejected
		}
		return exitFailure
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("transcode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.in, "in", "-", "input file; a webhook body or a bare order event (- for stdin)")
	fs.StringVar(&opts.template, "template", os.Getenv("POS_TEMPLATE_PATH"), "POS order skeleton to map onto")
	fs.StringVar(&opts.out, "out", ".", "directory receiving <order id>.bok")
	fs.BoolVar(&opts.print, "print", false, "print the parsed storefront order and exit")
	fs.BoolVar(&opts.posMode, "pos", false, "input is a POS order: validate it and write its artifact")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.print && opts.posMode {
		fmt.Fprintln(stderr, "-print and -pos are mutually exclusive")
		return options{}, errors.New("conflicting flags")
	}
	return opts, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// eventPayload unwraps a webhook body; anything else is taken as a bare event.
func eventPayload(raw []byte) ([]byte, error) {
	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || len(probe.Data) == 0 {
		return raw, nil
	}
	hook, err := storefront.ParseWebhook(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: webhook envelope: %w", relayapp.ErrInvalidInput, err)
	}
	return []byte(hook.Data.Data), nil
}

func printSource(raw []byte, stdout io.Writer) error {
	payload, err := eventPayload(raw)
	if err != nil {
		return err
	}
	event, err := storefront.ParseOrderEvent(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", relayapp.ErrInvalidInput, err)
	}
	out, err := storefront.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", out)
	return err
}

func transcode(ctx context.Context, raw []byte, opts options, stdout io.Writer, logger *slog.Logger) error {
	payload, err := eventPayload(raw)
	if err != nil {
		return err
	}
	template, err := api.LoadTemplate(opts.template)
	if err != nil {
		return err
	}
	store, err := filesystem.NewArtifactStore(opts.out)
	if err != nil {
		return err
	}
	saved, err := relayapp.NewService(template, store).HandleWebhook(ctx, types.WebhookInput{Payload: payload})
	if err != nil {
		return err
	}
	for _, notice := range saved.Entity.Unsupported {
		logger.Warn("mapping skipped", slog.String("notice", notice))
	}
	_, err = fmt.Fprintln(stdout, store.Path(saved.Entity.OrderID))
	return err
}

func writePOSOrder(ctx context.Context, raw []byte, opts options, stdout io.Writer) error {
	order, err := pos.ParseOrder(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", relayapp.ErrInvalidInput, err)
	}
	body, err := pos.Serialize(order)
	if err != nil {
		return err
	}
	store, err := filesystem.NewArtifactStore(opts.out)
	if err != nil {
		return err
	}
	saved, err := store.Save(ctx, types.Artifact{OrderID: order.ID, Body: body})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, store.Path(saved.Entity.OrderID))
	return err
}
