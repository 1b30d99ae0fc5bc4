package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/newrelic/go-agent/v3/newrelic"

	"swiftride/internal/client"
	"swiftride/internal/config"
	"swiftride/internal/geocode"
	"swiftride/internal/tui"
)

func main() {
	cfg := config.Load()

	var opts []client.Option
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName+"-portal"),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			opts = append(opts, client.WithNewRelic(nrApp))
		}
	}

	api := client.New(cfg.Portal.APIBaseURL, opts...)
	geocoder := geocode.New(cfg.Portal.GeocoderURL)

	program := tea.NewProgram(tui.New(api, geocoder), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("portal error: %v", err)
	}
}
