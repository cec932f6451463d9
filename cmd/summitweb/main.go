package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/summitleadership/summitweb"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runServe()
	case "seed":
		if err := runSeed(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("summitweb %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() {
	cfg := siteConfig()
	app := summitweb.New(cfg, builtinViews(cfg))
	defer app.Close()
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func siteConfig() summitweb.SiteConfig {
	return summitweb.SiteConfig{
		Name:        summitweb.EnvOr("SITE_NAME", "Summit Leadership Group"),
		URL:         strings.TrimSuffix(summitweb.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: os.Getenv("SITE_DESCRIPTION"),
		Author:      os.Getenv("SITE_AUTHOR"),

		Addr:         summitweb.EnvOr("LISTEN_ADDR", ":3000"),
		DatabasePath: summitweb.EnvOr("DATABASE_PATH", "data/site.db"),

		AnalyticsEnabled:      !strings.EqualFold(os.Getenv("ANALYTICS_DISABLED"), "true"),
		AnalyticsDatabasePath: summitweb.EnvOr("ANALYTICS_DATABASE_PATH", "data/analytics.db"),

		AdminPassword: summitweb.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: summitweb.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailFrom:    os.Getenv("EMAIL_FROM"),
		EmailTo:      os.Getenv("EMAIL_TO"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	}
}

func printUsage() {
	fmt.Println(`summitweb - marketing site and CMS backend for Summit Leadership Group

Usage:
  summitweb <command>

Commands:
  serve         Start the web server (configured via environment variables)
  seed          Create the default page set and sample trainings
  version       Print the summitweb version
  help          Show this help message

Environment:
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, SITE_AUTHOR
  LISTEN_ADDR, DATABASE_PATH, ANALYTICS_DATABASE_PATH, ANALYTICS_DISABLED
  ADMIN_PASSWORD (required), ADMIN_SESSION_SECRET (required), COOKIE_SECURE
  RESEND_API_KEY, EMAIL_FROM, EMAIL_TO
  GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REDIRECT_URL`)
}
