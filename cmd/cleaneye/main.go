package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"cleaneye/config"
	app "cleaneye/internal/application"
	"cleaneye/internal/domain/entity"
	"cleaneye/internal/infrastructure/storage"
	"cleaneye/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	model := flag.String("model", cfg.ModelPath, "path to YOLOv8 ONNX weights")
	conf := flag.Float64("conf", cfg.Confidence, "confidence threshold")
	out := flag.String("out", cfg.ReportsDir, "reports output directory")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <image>\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Generates a before/after waste detection report for one image.")
		fmt.Fprintln(flag.CommandLine.Output(), "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	imagePath := flag.Arg(0)

	detector, err := vision.NewYOLODetector(*model, cfg.ClassNames, *conf)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	defer detector.Close()

	reports := storage.NewFileReportRepository(*out)
	service := app.NewReportService(detector, reports, *conf)

	report, err := service.Inspect(context.Background(), imagePath)
	if err != nil {
		exitWithError(err)
	}

	fmt.Print(storage.RenderText(report))
	fmt.Printf("Report generated: %s\n", reports.Dir(report.ID))
}

// exitWithError печатает понятное сообщение и завершает процесс с ненулевым кодом
func exitWithError(err error) {
	var inputErr *entity.InputError
	var storageErr *entity.StorageError
	switch {
	case errors.As(err, &inputErr):
		log.Fatalf("Invalid input: %v", err)
	case errors.As(err, &storageErr):
		log.Fatalf("Failed to write report: %v", err)
	default:
		log.Fatalf("Detection failed: %v", err)
	}
}
