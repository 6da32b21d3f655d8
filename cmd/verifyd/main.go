package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/verifyd/verifyd-go/client"
	"github.com/verifyd/verifyd-go/qr"
	"github.com/verifyd/verifyd-go/types"
	"github.com/verifyd/verifyd-go/utils/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger.SetOutput(os.Stderr)
	logger.SetLogLevel(logrus.WarnLevel)

	var err error
	switch os.Args[1] {
	case "start":
		err = runStart(os.Args[2:])
	case "result":
		err = runResult(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "verifyd: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  verifyd start -check age_over=18 [-check residency=DE] [-redirect-url URL] [-webhook-url URL] [-qr FILE]
  verifyd result -session ID [-wait]`)
}

func runStart(args []string) error {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	var checks checkFlags
	fs.Var(&checks, "check", "check to request, as type or type=value (repeatable)")
	redirectURL := fs.String("redirect-url", "", "HTTPS URL the end user is sent to afterwards")
	webhookURL := fs.String("webhook-url", "", "HTTPS URL that receives result webhooks")
	qrFile := fs.String("qr", "", "write the verification URL as a QR code PNG to this file")
	enableAI := fs.Bool("enable-ai", false, "enable AI-assisted document checks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var renderer client.QRRenderer
	if *qrFile != "" {
		renderer = qr.NewGenerator()
	}

	c, err := client.NewFromEnvWith(renderer)
	if err != nil {
		return err
	}

	session, err := c.StartVerification(context.Background(), types.NewSessionRequest{
		Checks:      checks.checks,
		RedirectURL: *redirectURL,
		WebhookURL:  *webhookURL,
		EnableAI:    *enableAI,
	})
	if err != nil {
		return err
	}

	fmt.Printf("session:  %s\n", session.ID)
	fmt.Printf("status:   %s\n", session.Status)
	fmt.Printf("verify:   %s\n", session.VerificationURL)

	if *qrFile != "" {
		png, err := c.VerificationQR(session, 0)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*qrFile, png, 0644); err != nil {
			return fmt.Errorf("failed to write QR file: %w", err)
		}
		fmt.Printf("qr code:  %s\n", *qrFile)
	}

	return nil
}

func runResult(args []string) error {
	fs := flag.NewFlagSet("result", flag.ExitOnError)
	sessionID := fs.String("session", "", "session id to fetch")
	wait := fs.Bool("wait", false, "poll until the session reaches a terminal status")
	interval := fs.Duration("interval", 3*time.Second, "poll interval used with -wait")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := client.NewFromEnv()
	if err != nil {
		return err
	}

	var result *types.VerificationResult
	if *wait {
		result, err = c.WaitForResult(context.Background(), *sessionID, *interval)
	} else {
		result, err = c.GetResult(context.Background(), *sessionID)
	}
	if err != nil {
		return err
	}

	fmt.Printf("session:  %s\n", result.SessionID)
	fmt.Printf("status:   %s\n", result.Status)
	for _, check := range result.Checks {
		outcome := "pending"
		if check.Passed != nil {
			if *check.Passed {
				outcome = "passed"
			} else {
				outcome = "failed"
			}
		}
		fmt.Printf("check:    %s %s\n", check.Type, outcome)
	}

	return nil
}

// checkFlags accumulates repeated -check flags of the form type or
// type=value.
type checkFlags struct {
	checks []types.VerificationCheck
}

func (f *checkFlags) String() string {
	var parts []string
	for _, c := range f.checks {
		parts = append(parts, string(c.Type))
	}
	return strings.Join(parts, ",")
}

func (f *checkFlags) Set(value string) error {
	name, raw, hasValue := strings.Cut(value, "=")
	check := types.VerificationCheck{Type: types.CheckType(name)}
	if hasValue {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			check.Value = n
		} else {
			check.Value = raw
		}
	}
	f.checks = append(f.checks, check)
	return nil
}
