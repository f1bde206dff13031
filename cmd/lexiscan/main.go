// Command lexiscan runs a single analysis task against a local file or
// inline text and prints the result as JSON. Useful for smoke-testing a
// model configuration without standing up the API server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/anishqd/lexiscan/internal/bootstrap"
	"github.com/anishqd/lexiscan/internal/config"
	"github.com/anishqd/lexiscan/internal/core/domain"
	"github.com/anishqd/lexiscan/internal/observability/logging"
)

func main() {
	var (
		taskName  = flag.String("task", string(domain.TaskDocumentAnalysis), "analysis task to run")
		filePath  = flag.String("file", "", "path to a PDF, DOCX, HTML or plain-text document")
		text      = flag.String("text", "", "inline document text (alternative to -file)")
		language  = flag.String("language", "", "output language hint")
		languages = flag.String("languages", "", "comma-separated target languages for multilingual_simplify")
		target    = flag.String("target", "", "target language for translate")
		listTasks = flag.Bool("list-tasks", false, "print supported tasks and exit")
	)
	flag.Parse()

	if *listTasks {
		for _, task := range domain.AllTasks() {
			fmt.Println(string(task))
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("config error: %v", err)
	}
	slog.SetDefault(logging.NewJSONLogger("lexiscan-cli", "warn"))

	input := domain.AnalysisInput{
		Text: *text,
		Params: domain.TaskParams{
			Language:       *language,
			TargetLanguage: *target,
		},
	}
	if *languages != "" {
		for _, lang := range strings.Split(*languages, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				input.Params.Languages = append(input.Params.Languages, lang)
			}
		}
	}
	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			fatalf("read file: %v", err)
		}
		input.Document = &domain.SourceDocument{
			Bytes:    data,
			MIMEType: mimeForExtension(*filePath),
			Filename: filepath.Base(*filePath),
		}
	}

	app := bootstrap.New(cfg)
	result, err := app.AnalyzeUC.Analyze(context.Background(), domain.AnalysisTask(*taskName), input)
	if err != nil {
		fatalf("analysis failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result.Payload()); err != nil {
		fatalf("encode result: %v", err)
	}
}

func mimeForExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".doc":
		return "application/msword"
	case ".html", ".htm":
		return "text/html"
	default:
		return "text/plain"
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
