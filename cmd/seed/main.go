// Command seed prepares a deployment: it can wipe the data, load the default
// experiences and mint operator tokens for the staff and admin consoles.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"chequered/config"
	"chequered/database"
	"chequered/database/repository"
	"chequered/services/admin"
	"chequered/utils"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// needsDatabase reports whether any requested step touches MongoDB. Minting a
// token alone does not.
func needsDatabase(reset, defaults, indexes bool) bool {
	return reset || defaults || indexes
}

func main() {
	var (
		reset      = pflag.Bool("reset", false, "delete all experiences, schedules, slot counters and bookings first")
		defaults   = pflag.Bool("defaults", false, "load the default experiences")
		tokenRole  = pflag.String("token-role", "", "mint an operator token with this role (ADMIN or STAFF)")
		tokenSub   = pflag.String("token-subject", "console", "subject of the minted token")
		tokenTTL   = pflag.Duration("token-ttl", 12*time.Hour, "lifetime of the minted token")
		ensureIdxs = pflag.Bool("indexes", false, "ensure collection indexes")
	)
	pflag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()

	if *tokenRole != "" {
		if *tokenRole != utils.RoleAdmin && *tokenRole != utils.RoleStaff {
			logger.Fatal("unknown role", zap.String("role", *tokenRole))
		}
		token, err := utils.GenerateToken(*tokenSub, *tokenRole, *tokenTTL)
		if err != nil {
			logger.Fatal("failed to mint token", zap.Error(err))
		}
		fmt.Fprintln(os.Stdout, token)
	}

	if !needsDatabase(*reset, *defaults, *ensureIdxs) {
		return
	}

	database.InitDB()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	defer database.CloseDB(ctx)

	svc := &admin.DefaultAdminService{
		Experiences:     repository.NewMongoExperienceRepo(),
		Schedules:       repository.NewMongoScheduleRepo(),
		Slots:           repository.NewMongoSlotRepo(),
		Bookings:        repository.NewMongoBookingRepo(),
		Logger:          logger,
		DefaultLocation: config.DefaultLocation(),
	}

	if *ensureIdxs {
		for _, ensure := range []func(context.Context) error{
			svc.Experiences.EnsureIndexes,
			svc.Schedules.EnsureIndexes,
			svc.Slots.EnsureIndexes,
			svc.Bookings.EnsureIndexes,
		} {
			if err := ensure(ctx); err != nil {
				logger.Fatal("failed to ensure indexes", zap.Error(err))
			}
		}
	}
	if *reset {
		if err := svc.ResetSystem(ctx); err != nil {
			logger.Fatal("reset failed", zap.Error(err))
		}
	}
	if *defaults {
		exps, err := svc.LoadDefaults(ctx)
		if err != nil {
			logger.Fatal("failed to load defaults", zap.Error(err))
		}
		for _, exp := range exps {
			logger.Info("experience created", zap.String("id", exp.ID), zap.String("name", exp.Name))
		}
	}
}
