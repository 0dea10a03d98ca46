// Command orgadmin onboards a student organization: it creates the login and,
// optionally, opens a period by seeding its default funds.
//
//	orgadmin -username compsoc -name "Computer Society" [-semester "First Semester" -school-year "S.Y. 2025-2026"]
//
// The password is read from ORGADMIN_PASSWORD so it stays out of shell history.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fundledger/internal/config"
	"fundledger/internal/database"
	"fundledger/internal/logger"
	"fundledger/internal/models"
	"fundledger/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("orgadmin: %v", err)
	}
}

func run() error {
	username := flag.String("username", "", "organization login name")
	fullName := flag.String("name", "", "organization display name")
	semester := flag.String("semester", "", "seed the default funds for this semester")
	schoolYear := flag.String("school-year", "", "school year of -semester")
	flag.Parse()

	password := os.Getenv("ORGADMIN_PASSWORD")
	if *username == "" || password == "" {
		flag.Usage()
		return fmt.Errorf("-username and ORGADMIN_PASSWORD are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return err
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx := context.Background()
	db := dbManager.DB()

	org, err := services.NewOrganizationService(db).CreateOrganization(ctx, *username, password, *fullName)
	if err != nil {
		return err
	}
	logger.Get().Infow("organization created", "org_id", org.ID, "username", org.Username)

	period := models.NewPeriod(*semester, *schoolYear)
	if period.Semester == "" && period.SchoolYear == "" {
		return nil
	}
	funds, err := services.NewFundService(db, cfg.DefaultFunds).GetPeriodFunds(ctx, org.ID, period)
	if err != nil {
		return err
	}
	logger.Get().Infow("period opened", "org_id", org.ID, "period", period.String(), "funds", len(funds))
	return nil
}
