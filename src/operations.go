package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"datagen/src/config"
	dgerrors "datagen/src/errors"
	"datagen/src/generator"
	"datagen/src/spec"
	"datagen/src/util"
)

// resolveSchema validates the constraint overrides and draws the column
// schema for the run. The schema is fixed here and reused by every file.
func resolveSchema(cfg *config.Config) (*spec.ConstraintSet, []spec.ColumnType, error) {
	constraints := spec.DefaultConstraints()
	if err := constraints.Update(cfg.Constraints); err != nil {
		return nil, nil, errors.Trace(err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return constraints, spec.RandomSchema(cfg.Common.Columns, rng), nil
}

// ShowSchema prints the schema a run with this configuration would use,
// without writing anything.
func ShowSchema(cfg *config.Config) error {
	constraints, schema, err := resolveSchema(cfg)
	if err != nil {
		return err
	}
	fmt.Print(spec.FormatSchemaTable(schema, constraints))
	return nil
}

// preflight rejects the run before anything is generated when the target
// directory is not writable or, in size mode, cannot hold the requested
// volume.
func preflight(cfg *config.Config, plan *config.Plan) error {
	if err := util.CheckDirWritable(cfg.Common.TargetDir); err != nil {
		return errors.Trace(err)
	}

	if plan.BySize {
		available, err := util.GetDiskAvailableSpace(cfg.Common.TargetDir)
		if err != nil {
			return errors.Trace(err)
		}
		if uint64(plan.Total) > available {
			return dgerrors.ErrInsufficientSpace.GenWithStackByArgs(
				cfg.Common.TargetDir, plan.Total, available)
		}
	}
	return nil
}

// GenerateFiles runs the whole pipeline: constraint resolution, volume
// planning, pre-flight checks and file generation. Every failure is
// terminal; completed files are never rolled back.
func GenerateFiles(cfg *config.Config) error {
	constraints, schema, err := resolveSchema(cfg)
	if err != nil {
		return errors.Trace(err)
	}

	plan, err := config.BuildPlan(cfg)
	if err != nil {
		return errors.Trace(err)
	}

	if err := preflight(cfg, plan); err != nil {
		return errors.Trace(err)
	}

	log.Info("starting generation",
		zap.Int("files", plan.NumFiles),
		zap.Int64("total", plan.Total),
		zap.Bool("bySize", plan.BySize),
		zap.Int("columns", cfg.Common.Columns),
		zap.Int("threads", cfg.Common.Threads))

	logger := util.NewProgressLogger(plan.NumFiles, time.Second)
	orch := generator.NewOrchestrator(cfg, plan, schema, constraints, logger)
	return errors.Trace(orch.Run())
}
