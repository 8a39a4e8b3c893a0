package cmd

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobpulse/internal/config"
	"jobpulse/internal/dataset"
	"jobpulse/internal/summary"
)

var (
	summarizeCSVPath string
	summarizeSample  int
	summarizeFreq    string
)

var summarizeCommand = &cobra.Command{
	Use:   "summarize",
	Short: "Stream the raw source and print a summary as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := config.InitConfig(configFile)
		if err != nil {
			logrus.Fatal("initConfig error, ", err.Error())
		}
		path := conf.Dataset.CSVPath
		if summarizeCSVPath != "" {
			path = summarizeCSVPath
		}
		sampleSize := conf.Dataset.SampleSize
		if summarizeSample > 0 {
			sampleSize = summarizeSample
		}
		freqStr := conf.Dataset.Freq
		if summarizeFreq != "" {
			freqStr = summarizeFreq
		}
		freq, err := dataset.ParseFreq(freqStr)
		if err != nil {
			logrus.Fatal(err)
		}

		sum, err := summary.Summarize(path, summary.Options{
			SampleSize: sampleSize,
			Freq:       freq,
		})
		if err != nil {
			logrus.Fatal(err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sum); err != nil {
			logrus.Fatal(err)
		}
	},
}

func init() {
	summarizeCommand.Flags().StringVar(&summarizeCSVPath, "csv", "", "Raw source path (overrides config)")
	summarizeCommand.Flags().IntVar(&summarizeSample, "sample-size", 0, "Row sample size (overrides config)")
	summarizeCommand.Flags().StringVar(&summarizeFreq, "freq", "", "Period bucket: week or month (overrides config)")
}
