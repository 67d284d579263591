package utils

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/piotrniepolak/watchtower2-sub003/config"
	"github.com/piotrniepolak/watchtower2-sub003/models"
)

func logScheduler(job, message string) {
	logrus.WithField("job", job).Info(message)
}

// GenerateDailyBriefs runs the pipeline for every sector for today. Sectors
// are independent; a failure in one falls back without stopping the others.
func GenerateDailyBriefs(db *gorm.DB, g *BriefGenerator) {
	date := time.Now().UTC().Format("2006-01-02")
	for _, sector := range models.AllSectors() {
		if _, err := RegenerateBrief(db, g, sector, date); err != nil {
			logrus.WithField("sector", sector).Errorf("Failed to store daily brief: %v", err)
			continue
		}
		logScheduler("daily-brief", "Stored brief for "+sector+" "+date)
	}
}

// StartBriefScheduler generates briefs daily at the configured UTC hour
func StartBriefScheduler(c *cron.Cron, db *gorm.DB, g *BriefGenerator) {
	spec := fmt.Sprintf("0 %d * * *", config.AppConfig.BriefHourUTC)
	c.AddFunc(spec, func() {
		logScheduler("daily-brief", "Daily brief generation started")
		GenerateDailyBriefs(db, g)
		logScheduler("daily-brief", "Daily brief generation finished")
	})
	logScheduler("daily-brief", "Scheduler started: "+spec+" UTC")
}

// StartQuoteScheduler refreshes stock quotes every 30 minutes on weekdays
func StartQuoteScheduler(c *cron.Cron, db *gorm.DB, client *YahooFinanceClient) {
	c.AddFunc("*/30 * * * 1-5", func() {
		logScheduler("quote-refresh", "Quote refresh started")
		updated, err := RefreshAllQuotes(db, client)
		if err != nil {
			logrus.Errorf("Quote refresh aborted: %v", err)
			return
		}
		logScheduler("quote-refresh", fmt.Sprintf("Quote refresh finished, %d symbols updated", updated))
	})
	logScheduler("quote-refresh", "Scheduler started: every 30 minutes on weekdays")
}

// StartHealthMetricScheduler refreshes World Bank indicators weekly
func StartHealthMetricScheduler(c *cron.Cron, db *gorm.DB, client *WorldBankClient) {
	c.AddFunc("0 4 * * 0", func() {
		logScheduler("health-metrics", "Indicator refresh started")
		updated, err := RefreshHealthMetrics(db, client)
		if err != nil {
			logrus.Errorf("Indicator refresh aborted: %v", err)
			return
		}
		logScheduler("health-metrics", fmt.Sprintf("Indicator refresh finished, %d rows updated", updated))
	})
	logScheduler("health-metrics", "Scheduler started: weekly on Sunday 04:00 UTC")
}

// InitializeSchedulers wires all recurring jobs and starts the cron runner.
// The returned scheduler should be stopped on shutdown.
func InitializeSchedulers(db *gorm.DB) *cron.Cron {
	logScheduler("init", "Initializing schedulers")

	c := cron.New(cron.WithLocation(time.UTC))

	StartBriefScheduler(c, db, NewBriefGenerator())
	StartQuoteScheduler(c, db, NewYahooFinanceClient())
	StartHealthMetricScheduler(c, db, NewWorldBankClient())

	c.Start()

	logScheduler("init", "All schedulers initialized")
	return c
}
