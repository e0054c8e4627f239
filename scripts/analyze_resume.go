package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/form"
	applog "alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/services"
)

var errNoResume = errors.New("a resume is required: pass --resume or set RESUME_PATH")

// Runs one analysis against a local resume without the server or database.
//
//	go run ./scripts/analyze_resume.go --resume cv.pdf --jd job.txt
func main() {
	if err := newRootCommand(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "analyze-resume",
		Short:        "Score a local resume PDF against a job description with Gemini",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resumePath, jobDescription, err := loadInputs(v, cfg)
			if err != nil {
				return err
			}
			return analyze(cmd.Context(), cfg, resumePath, jobDescription, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("resume", "r", "", "path to the resume PDF")
	cmd.Flags().StringP("jd", "j", "", "path to a job description text file (defaults to the built-in sample)")

	v.BindPFlag("resume", cmd.Flags().Lookup("resume"))
	v.BindPFlag("jd", cmd.Flags().Lookup("jd"))
	if err := v.BindEnv("resume", "RESUME_PATH"); err != nil {
		log.Fatalf("binding RESUME_PATH environment variable: %v", err)
	}
	if err := v.BindEnv("jd", "JD_PATH"); err != nil {
		log.Fatalf("binding JD_PATH environment variable: %v", err)
	}

	return cmd
}

// loadInputs applies the upload form's rules to the local files.
func loadInputs(v *viper.Viper, cfg *config.Config) (string, string, error) {
	resumePath := v.GetString("resume")
	if resumePath == "" {
		return "", "", errNoResume
	}

	info, err := os.Stat(resumePath)
	if err != nil {
		return "", "", fmt.Errorf("resume not readable: %w", err)
	}

	handle := form.FileHandle{Name: info.Name(), Size: info.Size()}
	if err := form.ValidateFile(handle, false, cfg.Storage.MaxFileSize); err != nil {
		return "", "", fmt.Errorf("%s: %w", form.MessageFor(err), err)
	}

	jobDescription := services.SampleJobDescription
	if jdPath := v.GetString("jd"); jdPath != "" {
		raw, err := os.ReadFile(jdPath)
		if err != nil {
			return "", "", fmt.Errorf("job description not readable: %w", err)
		}
		jobDescription = strings.TrimSpace(string(raw))
	}

	if err := form.ValidateDescription(jobDescription, cfg.Form.MinDescriptionLength); err != nil {
		return "", "", fmt.Errorf("%s: %w", form.MessageFor(err), err)
	}

	return resumePath, jobDescription, nil
}

func analyze(ctx context.Context, cfg *config.Config, resumePath, jobDescription string, out io.Writer) error {
	logger, err := applog.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("extracting resume text", zap.String("file", resumePath))
	resumeText, err := services.NewPDFParserService().ExtractText(resumePath)
	if errors.Is(err, services.ErrNoPDFText) {
		return fmt.Errorf("no text layer in resume, is it a scanned document? %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Worker.RetryInitialDelay,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize gemini: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Worker.AnalysisTimeout)
	defer cancel()

	prompt := services.NewPromptBuilder().BuildAnalysisPrompt(resumeText, jobDescription)
	response, err := geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, cfg.Worker.RetryMaxAttempts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	result, err := services.ParseAnalysisResult(response)
	if err != nil {
		logger.Warn("unreadable analysis response", zap.String("response", applog.TruncateForLog(response, 500)))
		return fmt.Errorf("unreadable analysis response: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
