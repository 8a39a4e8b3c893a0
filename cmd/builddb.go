package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobpulse/internal/builder"
	"jobpulse/internal/config"
	"jobpulse/internal/dataset"
	"jobpulse/internal/model"
)

var (
	buildCSVPath   string
	buildFreq      string
	clearBeforeRun bool
)

var buildDBCommand = &cobra.Command{
	Use:   "builddb",
	Short: "Build the aggregate store from the raw source",
	Long: `Streams the raw job-postings export once and populates the aggregate
store (companies, company×period and industry×period vacancy sums).

Inserts are additive: rerunning without --clear duplicates aggregates.`,
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := config.InitConfig(configFile)
		if err != nil {
			logrus.Fatal("initConfig error, ", err.Error())
		}
		if buildCSVPath != "" {
			conf.Dataset.CSVPath = buildCSVPath
		}
		if buildFreq != "" {
			conf.Dataset.Freq = buildFreq
		}
		freq, err := dataset.ParseFreq(conf.Dataset.Freq)
		if err != nil {
			logrus.Fatal(err)
		}

		db, err := model.InitDB(conf.DB)
		if err != nil {
			logrus.Fatal("failed to init database", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			sqlDB.Close()
		}()

		if err := model.AutoMigrate(db); err != nil {
			logrus.Fatal("failed to auto migrate database", err)
		}

		if clearBeforeRun {
			if err := model.ClearAggregates(); err != nil {
				logrus.Fatal("failed to clear aggregates", err)
			}
			logrus.Info("cleared previous aggregates")
		}

		stats, err := builder.Build(conf.Dataset.CSVPath, freq)
		if err != nil {
			logrus.Fatal("build failed: ", err)
		}
		logrus.Infof("store built: %d rows, %d companies, %d company-periods, %d industry-periods",
			stats.Rows, stats.Companies, stats.CompanyPeriods, stats.IndustryPeriods)
	},
}

func init() {
	buildDBCommand.Flags().StringVar(&buildCSVPath, "csv", "", "Raw source path (overrides config)")
	buildDBCommand.Flags().StringVar(&buildFreq, "freq", "", "Period bucket: week or month (overrides config)")
	buildDBCommand.Flags().BoolVar(&clearBeforeRun, "clear", false, "Delete existing aggregates before building")
}
