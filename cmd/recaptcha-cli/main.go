package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-recaptcha/pkg/config"
	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

const (
	modeRender = "render"
	modeVerify = "verify"
)

type cliFlags struct {
	configPath string
	envPrefix  string
	mode       string
	token      string
	remoteIP   string
	prompt     bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, surveyPrompter{}))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, prompter Prompter) int {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	client, err := cfg.NewClient(recaptcha.WithLogger(logger), recaptcha.WithRemoteIP(flags.remoteIP))
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return 1
	}

	switch flags.mode {
	case modeRender:
		err = render(client, stdout)
	case modeVerify:
		err = verify(ctx, client, flags, prompter, stdout)
	}
	if err != nil {
		logger.Error("recaptcha-cli failed", zap.String("mode", flags.mode), zap.Error(err))
		return 1
	}
	return 0
}

func parseFlags(args []string, output io.Writer) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("recaptcha-cli", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.configPath, "config", "", "YAML config file (environment variables override it)")
	fs.StringVar(&f.envPrefix, "env-prefix", config.DefaultEnvPrefix, "environment variable prefix")
	fs.StringVar(&f.mode, "mode", modeRender, "render or verify")
	fs.StringVar(&f.token, "token", "", "widget token to verify")
	fs.StringVar(&f.remoteIP, "remote-ip", "", "end user address sent as remoteip")
	fs.BoolVar(&f.prompt, "prompt", false, "prompt for a missing secret or token")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}

	f.mode = strings.ToLower(strings.TrimSpace(f.mode))
	if f.mode != modeRender && f.mode != modeVerify {
		return cliFlags{}, fmt.Errorf("unknown mode %q (want %s or %s)", f.mode, modeRender, modeVerify)
	}
	return f, nil
}

func loadConfig(f cliFlags) (config.Config, error) {
	var base config.Config
	if f.configPath != "" {
		loaded, err := config.LoadFile(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		base = loaded
	}
	env, err := config.FromEnv(f.envPrefix)
	if err != nil {
		return config.Config{}, err
	}
	return config.Merge(base, env), nil
}

func render(client *recaptcha.Client, out io.Writer) error {
	snippet, err := client.Snippet()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, snippet.Script)
	if snippet.Markup != "" {
		fmt.Fprintln(out, snippet.Markup)
	}
	return nil
}

var errVerificationFailed = errors.New("verification failed")

func verify(ctx context.Context, client *recaptcha.Client, f cliFlags, prompter Prompter, out io.Writer) error {
	if strings.TrimSpace(client.Options().SecretKey) == "" && f.prompt {
		secret, err := prompter.Password(ctx, "Secret key")
		if err != nil {
			return err
		}
		client.SetSecretKey(strings.TrimSpace(secret))
	}

	token := strings.TrimSpace(f.token)
	if token == "" && f.prompt {
		answer, err := prompter.Input(ctx, "Token")
		if err != nil {
			return err
		}
		token = strings.TrimSpace(answer)
	}

	res, err := client.VerifyResult(ctx, token)
	if err != nil {
		return err
	}
	if res.Success {
		fmt.Fprintln(out, "verification passed")
		if res.Score != nil {
			fmt.Fprintf(out, "score: %.2f\n", *res.Score)
		}
		return nil
	}

	fmt.Fprintln(out, "verification failed")
	for _, code := range client.ErrorCodes() {
		fmt.Fprintf(out, "  %s: %s\n", code.Code, code.Name)
	}
	return errVerificationFailed
}
