package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dukex/flowalert/pkg/cmd"
	"github.com/dukex/flowalert/pkg/composer"
	"github.com/dukex/flowalert/pkg/log"
	"github.com/dukex/flowalert/pkg/mail"
	"github.com/dukex/flowalert/pkg/services"
	"github.com/dukex/flowalert/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"
)

const nothingToNotify = "Nothing to notify: the flow has no recipients for this alert."

var errUnknownFormat = errors.New("format must be html or text")

func NewRenderCommand() *cli.Command {
	return &cli.Command{
		Name:    "render",
		Aliases: []string{"r"},
		Usage:   "Compose one alert from a JSON document and print it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "kind",
				Aliases:  []string{"k"},
				Usage:    "Alert kind (" + kindNames() + ")",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "JSON document with the alert inputs, - for stdin",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:  "composer",
				Usage: "Composer name, overriding the one configured on the flow",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format (html, text)",
				Value: "text",
			},
			&cli.StringFlag{
				Name:    "plugins-path",
				Usage:   "Path to the directory containing composer plugins",
				Value:   "",
				Sources: cli.EnvVars("PLUGINS_PATH"),
			},
			&cli.StringFlag{
				Name:    "server-name",
				Usage:   "Installation name appended to alert subjects",
				Sources: cli.EnvVars("SERVER_NAME"),
			},
			&cli.StringFlag{
				Name:    "server-url",
				Usage:   "Base URL of the web UI used for execution links",
				Sources: cli.EnvVars("SERVER_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"), "text")

			logger := log.WithModule("flowalert").With("action", "render")

			opts, err := cmd.ComposerOptions(command.String("server-name"), command.String("server-url"))
			if err != nil {
				return err
			}

			registry, err := cmd.NewRegistry(ctx, logger, command.String("plugins-path"), opts...)
			if err != nil {
				return err
			}

			input, err := readInput(command.String("input"))
			if err != nil {
				return err
			}

			return render(ctx, os.Stdout, services.NewAlerts(registry, nil), renderOptions{
				kind:     command.String("kind"),
				composer: command.String("composer"),
				format:   command.String("format"),
			}, input)
		},
	}
}

type renderOptions struct {
	kind     string
	composer string
	format   string
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

// render decodes input as the request body of the given kind, composes it
// and writes the headers and body to w.
func render(ctx context.Context, w io.Writer, alerts *services.Alerts, opts renderOptions, input []byte) error {
	kind, err := composer.ParseKind(opts.kind)
	if err != nil {
		return err
	}

	if opts.format != "html" && opts.format != "text" {
		return errUnknownFormat
	}

	req, err := decodeRequest(kind, input)
	if err != nil {
		return err
	}

	req.Composer = opts.composer

	result, err := alerts.Compose(ctx, *req)
	if err != nil {
		return err
	}

	if !result.Composed {
		_, err = fmt.Fprintln(w, nothingToNotify)

		return err
	}

	msg := result.Message

	body := mail.RenderText(msg)
	if opts.format == "html" {
		body = mail.RenderHTML(msg)
	}

	_, err = fmt.Fprintf(w, "Composer: %s\nTo: %s\nContent-Type: %s\nSubject: %s\n\n%s",
		result.Composer, strings.Join(msg.To(), ", "), msg.MimeType(), msg.Subject(), body)

	return err
}

func decodeRequest(kind composer.Kind, input []byte) (*services.ComposeRequest, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	req := &services.ComposeRequest{Kind: kind}

	decode := func(body any) error {
		if err := json.Unmarshal(input, body); err != nil {
			return fmt.Errorf("decode %s input: %w", kind, err)
		}

		if err := validate.Struct(body); err != nil {
			return fmt.Errorf("invalid %s input: %w", kind, err)
		}

		return nil
	}

	switch kind {
	case composer.KindFailure:
		var body web.FailureAlertRequest
		if err := decode(&body); err != nil {
			return nil, err
		}

		req.Flow = body.Flow
		req.Past = body.PastExecutions
		req.Reasons = body.Reasons
	case composer.KindExecutorUpdateFailure:
		var body web.ExecutorUpdateFailureRequest
		if err := decode(&body); err != nil {
			return nil, err
		}

		req.Flows = body.Flows
		req.Executor = body.Executor
		req.UpdateErr = body.UpdateErr()
	default:
		var body web.FlowAlertRequest
		if err := decode(&body); err != nil {
			return nil, err
		}

		req.Flow = body.Flow
	}

	return req, nil
}

func kindNames() string {
	names := make([]string, 0, len(composer.Kinds()))
	for _, kind := range composer.Kinds() {
		names = append(names, string(kind))
	}

	return strings.Join(names, ", ")
}
