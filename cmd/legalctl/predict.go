package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
	"github.com/suPer8Hu/legal-assistant/internal/ingest"
	"github.com/suPer8Hu/legal-assistant/internal/prompt"
)

type predictOpts struct {
	model     string
	file      string
	text      string
	lang      string
	tesseract string
	width     int
}

func newPredictCmd() *cobra.Command {
	opts := &predictOpts{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify a case file or text with the local model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.model, "model", "court_case_predictor.json", "classifier artifact")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "case file (pdf, docx, txt, html or image)")
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "case text")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "en", "output language")
	cmd.Flags().StringVar(&opts.tesseract, "tesseract", "", "tesseract binary for images")
	cmd.Flags().IntVar(&opts.width, "width", 100, "word wrap width")
	cmd.MarkFlagsMutuallyExclusive("file", "text")
	return cmd
}

func runPredict(ctx context.Context, opts *predictOpts) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lang, err := i18n.Parse(opts.lang)
	if err != nil {
		return err
	}

	text := opts.text
	if opts.file != "" {
		if text, err = extractFile(ctx, opts.file, opts.tesseract, lang); err != nil {
			return err
		}
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("either --file or --text is required")
	}

	model, err := classifier.Load(opts.model)
	if err != nil {
		return err
	}
	pred, err := model.Predict(text)
	if err != nil {
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(opts.width),
	)
	if err != nil {
		return err
	}
	// The header ends with the explanation heading, which has no body here.
	header := strings.SplitN(prompt.PredictionHeader(lang, pred), "\n\n", 2)[0]
	out, err := r.Render(header + "\n\n" + prompt.DisclaimerChunk(lang))
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func extractFile(ctx context.Context, path, tesseract string, lang i18n.Lang) (string, error) {
	format, err := ingest.DetectFormat(filepath.Base(path), "")
	if err != nil {
		return "", err
	}
	var ocr *ingest.OCR
	if format == ingest.FormatImage {
		if ocr, err = ingest.NewOCR(tesseract); err != nil {
			return "", err
		}
	}
	ext, err := ingest.NewExtractor(ctx, ocr)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return ext.Extract(ctx, format, f, lang)
}
