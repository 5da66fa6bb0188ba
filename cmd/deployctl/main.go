package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/deploy"
)

const usage = `Usage: deployctl <command> [flags]

Commands:
  validate   parse the manifest and check its references
  plan       print the ordered provisioning steps

Flags:
  -f path    manifest file (default "deploy/serverless_movies.hcl")
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	command := args[0]

	flags := flag.NewFlagSet(command, flag.ContinueOnError)
	manifestPath := flags.String("f", "deploy/serverless_movies.hcl", "manifest file")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	switch command {
	case "validate":
		manifest, err := deploy.Load(*manifestPath)
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d resources)\n", *manifestPath, len(manifest.Plan()))
		return nil
	case "plan":
		manifest, err := deploy.Load(*manifestPath)
		if err != nil {
			return err
		}
		manifest.RenderPlan(os.Stdout)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}
