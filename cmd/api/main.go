package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"internship-journey-agent/config"
	_ "internship-journey-agent/docs" // Swagger docs
	"internship-journey-agent/internal/httpserver"
	"internship-journey-agent/internal/inference"
	"internship-journey-agent/internal/matcher"
	"internship-journey-agent/internal/middleware"
	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/segment"
	updateHTTP "internship-journey-agent/internal/update/delivery/http"
	"internship-journey-agent/internal/update/repository"
	csvRepo "internship-journey-agent/internal/update/repository/csvfile"
	sheetsRepo "internship-journey-agent/internal/update/repository/gsheets"
	"internship-journey-agent/internal/update/usecase"
	"internship-journey-agent/pkg/datemath"
	"internship-journey-agent/pkg/gemini"
	"internship-journey-agent/pkg/gsheets"
	"internship-journey-agent/pkg/log"
)

// @title       Internship Journey Agent API
// @description Interprets free-form status updates and reconciles them against a Google Sheets tracking sheet.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Internship Journey Agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Mention extractor: Gemini when configured, rule-based fallback
	var extractor segment.Extractor
	if cfg.Gemini.APIKey != "" {
		geminiClient := gemini.NewClient(cfg.Gemini.APIKey)
		if cfg.Gemini.Model != "" {
			geminiClient.SetModel(cfg.Gemini.Model)
		}
		extractor = segment.NewLLMExtractor(geminiClient, logger)
		logger.Infof(ctx, "Mention extraction: Gemini (%s)", geminiClient.Model())
	} else {
		extractor = segment.NewRuleExtractor()
		logger.Warn(ctx, "GEMINI_API_KEY not set, using rule-based mention extraction")
	}

	// 4. Sheet repository: Google Sheets when configured, CSV fallback
	var repo repository.SheetRepository
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsClient, scErr := gsheets.NewClientFromCredentialsFile(
			ctx, cfg.Sheets.CredentialsPath, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName)
		if scErr != nil {
			logger.Errorf(ctx, "Failed to initialize Google Sheets client: %v", scErr)
			return
		}
		repo = sheetsRepo.New(sheetsClient, logger)
		logger.Infof(ctx, "Sheet backend: Google Sheets (%s / %s)", cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName)
	} else {
		repo = csvRepo.New(cfg.Sheets.CSVPath)
		logger.Infof(ctx, "Sheet backend: CSV file (%s)", cfg.Sheets.CSVPath)
	}

	// 5. Engine components
	policy := inference.DefaultPolicy()
	if cfg.Engine.DefaultStatus != "" {
		if st, ok := model.ParseStatus(cfg.Engine.DefaultStatus); ok {
			policy.DefaultStatus = st
		} else {
			logger.Warnf(ctx, "Unknown engine.default_status %q, keeping %s", cfg.Engine.DefaultStatus, policy.DefaultStatus)
		}
	}
	if cfg.Engine.MinEffort > 0 {
		policy.MinEffort = cfg.Engine.MinEffort
	}
	if cfg.Engine.MaxEffort > 0 {
		policy.MaxEffort = cfg.Engine.MaxEffort
	}
	inferencer := inference.New(policy)

	match := matcher.New(matcher.NewSimilarityScorer(), cfg.Engine.MatchThreshold, cfg.Engine.MatchEpsilon)

	timezone := cfg.Gemini.Timezone
	dates, dtErr := datemath.NewParser(timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, dtErr)
		dates, _ = datemath.NewParser("UTC")
	}

	// 6. UseCase
	updateUC := usecase.New(logger, extractor, repo, inferencer, match, dates, cfg.Sheets.BackupDir)

	// 7. Delivery
	updateHandler := updateHTTP.New(logger, updateUC, cfg.Engine.PendingTTL)
	mw := middleware.New(logger, cfg.Engine.RateLimitPerMin)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:        logger,
		Port:          cfg.HTTPServer.Port,
		Mode:          cfg.HTTPServer.Mode,
		Environment:   cfg.Environment.Name,
		UpdateHandler: updateHandler,
		Middleware:    mw,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
