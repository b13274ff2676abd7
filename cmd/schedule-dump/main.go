package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	schedule_parser_service "github.com/N08I40K/schedule-parser-next/internal/app/schedule-parser/service"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	pretty     bool
	timezone   string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "schedule-dump [schedule.xlsx]",
		Short: "Parse a schedule workbook and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&timezone, "timezone", "Europe/Moscow", "Timezone of the dates in the workbook")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	file, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	var handler slog.Handler = slog.NewTextHandler(io.Discard, nil)
	if verbose {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	parser := schedule_parser_service.New(slog.New(handler), loc)
	res, err := parser.Parse(context.Background(), file, nil)
	if err != nil {
		return err
	}

	var js []byte
	if pretty {
		js, err = json.MarshalIndent(res, "", "  ")
	} else {
		js, err = json.Marshal(res)
	}
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(js))
		return err
	}
	return os.WriteFile(outputPath, js, 0644)
}
