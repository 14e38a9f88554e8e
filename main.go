package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"guadavillas/config"
	"guadavillas/model"
	"guadavillas/provider"
	"guadavillas/storage"
	"guadavillas/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		showStartupError("Configuration invalide", fmt.Sprintf(
			"%v\n\nCorrigez %s ou les variables GUADAVILLAS_* puis relancez.",
			err, config.GetSettingsFilePath()))
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())
	defer config.Log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	catalog, err := storage.NewCatalog(ctx, storage.DefaultVillas())
	cancel()
	if err != nil {
		showStartupError("Catalogue indisponible", err.Error())
		os.Exit(1)
	}
	defer catalog.Close()

	// The chat session is built on the first message sent to Lola
	factory, err := provider.NewSessionFactory(provider.ConfigFromApp(cfg), cfg.SystemInstruction)
	if err != nil {
		showStartupError("Fournisseur inconnu", err.Error())
		os.Exit(1)
	}
	sessions := provider.NewSessionManager(factory, config.Log)

	config.Log.Info("starting",
		zap.String("version", Version),
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model()))

	dataModel := model.NewModel(cfg, catalog, sessions, Version, License)
	defer dataModel.Shutdown()

	p := tea.NewProgram(
		ui.NewAppView(dataModel),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running guadavillas: %v\n", err)
		os.Exit(1)
	}

	config.Log.Info("stopped",
		zap.Bool("session_ready", sessions.Ready()),
		zap.Int("sessions_built", sessions.Constructions()))
}

func showStartupError(title, message string) {
	p := tea.NewProgram(
		ui.NewErrorModal(title, message),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
