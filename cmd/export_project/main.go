package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ai-docauthor-be/internal/config"
	"ai-docauthor-be/internal/repository/unitofwork"
	"ai-docauthor-be/internal/service"
	"ai-docauthor-be/pkg/database"
	"ai-docauthor-be/pkg/docconv"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// export_project renders a project to markdown (or docx) straight from the
// database, bypassing the HTTP layer. Useful for backups and debugging
// export issues.
func main() {
	var (
		projectIDArg = flag.String("project", "", "project id (uuid)")
		outPath      = flag.String("o", "", "output file (default stdout)")
		asDocx       = flag.Bool("docx", false, "render docx via the converter service instead of markdown")
	)
	flag.Parse()

	if *projectIDArg == "" {
		color.Red("Usage: export_project -project <uuid> [-o out.md] [-docx]")
		os.Exit(1)
	}
	projectID, err := uuid.Parse(*projectIDArg)
	if err != nil {
		color.Red("Invalid project id: %v", err)
		os.Exit(1)
	}

	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	converter := docconv.NewConverter(cfg.Converter.BaseURL)
	exporter := service.NewExporterService(uowFactory, converter)

	ctx := context.Background()

	var output []byte
	if *asDocx {
		color.Cyan("Rendering project %s to docx...", projectID)
		output, err = exporter.ExportToDocument(ctx, projectID)
	} else {
		color.Cyan("Rendering project %s to markdown...", projectID)
		var markdown string
		markdown, err = exporter.ExportToMarkdown(ctx, projectID)
		output = []byte(markdown)
	}
	if err != nil {
		color.Red("Export failed: %v", err)
		os.Exit(1)
	}

	if *outPath == "" {
		fmt.Print(string(output))
		return
	}
	if err := os.WriteFile(*outPath, output, 0o644); err != nil {
		color.Red("Failed to write %s: %v", *outPath, err)
		os.Exit(1)
	}
	color.Green("✅ Exported to %s (%d bytes)", *outPath, len(output))
}
