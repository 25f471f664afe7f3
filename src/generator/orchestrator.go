package generator

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"datagen/src/config"
	"datagen/src/spec"
	"datagen/src/util"
	"datagen/src/writer"
)

// FileTask is one unit of work: a target path and the quota (rows or bytes)
// its writer must reach. A task is owned exclusively by the worker running
// it.
type FileTask struct {
	Path  string
	Quota int64
}

// Orchestrator drives a whole run: it derives one task per output file and
// executes the tasks sequentially or in bounded concurrent waves. The
// constraint set and schema are read-only here and safely shared by every
// worker.
type Orchestrator struct {
	cfg         *config.Config
	plan        *config.Plan
	schema      []spec.ColumnType
	constraints *spec.ConstraintSet
	logger      *util.ProgressLogger
}

func NewOrchestrator(
	cfg *config.Config,
	plan *config.Plan,
	schema []spec.ColumnType,
	constraints *spec.ConstraintSet,
	logger *util.ProgressLogger,
) *Orchestrator {
	return &Orchestrator{
		cfg:         cfg,
		plan:        plan,
		schema:      schema,
		constraints: constraints,
		logger:      logger,
	}
}

// Tasks lays out the file tasks as {prefix}{index}{suffix} under the target
// directory, indexed 1..NumFiles.
func (o *Orchestrator) Tasks() []FileTask {
	tasks := make([]FileTask, 0, o.plan.NumFiles)
	for i := 1; i <= o.plan.NumFiles; i++ {
		name := fmt.Sprintf("%s%d%s", o.cfg.Common.Prefix, i, o.cfg.ResolvedSuffix)
		tasks = append(tasks, FileTask{
			Path:  filepath.Join(o.cfg.Common.TargetDir, name),
			Quota: o.plan.FileQuota(i),
		})
	}
	return tasks
}

// Run executes every task. With threads <= 1 the tasks run strictly one
// after another. With threads = K > 1 the tasks are drained in fixed waves
// of up to K; each wave is joined completely before the next one launches,
// so peak concurrency never exceeds K. The first failure aborts the run at
// the wave join; files already completed stay on disk.
func (o *Orchestrator) Run() error {
	start := time.Now()
	tasks := o.Tasks()

	var err error
	if o.cfg.Common.Threads > 1 {
		err = o.runWaves(tasks, o.cfg.Common.Threads)
	} else {
		err = o.runSequential(tasks)
	}
	o.logger.Finish()
	if err != nil {
		return errors.Trace(err)
	}

	o.printSummary(time.Since(start))
	return nil
}

func (o *Orchestrator) runSequential(tasks []FileTask) error {
	for _, task := range tasks {
		if err := o.runTask(task); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) runWaves(tasks []FileTask, threads int) error {
	for _, wave := range SplitWaves(tasks, threads) {
		var eg errgroup.Group
		for _, task := range wave {
			task := task
			eg.Go(func() error {
				return o.runTask(task)
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// SplitWaves slices the task list into consecutive waves of up to size
// tasks, preserving order.
func SplitWaves(tasks []FileTask, size int) [][]FileTask {
	var waves [][]FileTask
	for start := 0; start < len(tasks); start += size {
		waves = append(waves, tasks[start:min(start+size, len(tasks))])
	}
	return waves
}

func (o *Orchestrator) runTask(task FileTask) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(rand.Intn(16))))
	fw := writer.NewFileWriter(
		task.Path, o.schema, o.constraints,
		o.cfg.ResolvedDelimiter, o.cfg.Common.Compress,
		rng, o.logger,
	)

	var err error
	if o.plan.BySize {
		err = fw.WriteSize(task.Quota)
	} else {
		err = fw.WriteCount(task.Quota)
	}
	if err != nil {
		return err
	}

	o.logger.UpdateFiles(1)
	log.Debug("file completed", zap.String("path", task.Path), zap.Int64("quota", task.Quota))
	return nil
}

func (o *Orchestrator) printSummary(elapsed time.Duration) {
	files, bytes := o.logger.Snapshot()
	throughput := 0.0
	if elapsed.Seconds() > 0 {
		throughput = float64(bytes) / elapsed.Seconds()
	}

	target := "records"
	if o.plan.BySize {
		target = "bytes"
	}

	fmt.Println("Summary:")
	fmt.Printf("  Files: %d\n", files)
	fmt.Printf("  Target: %d %s\n", o.plan.Total, target)
	fmt.Printf("  Schema: %s\n", formatSchema(o.schema))
	fmt.Printf("  Bytes: %s\n", units.BytesSize(float64(bytes)))
	fmt.Printf("  Throughput: %s/s\n", units.BytesSize(throughput))
	fmt.Printf("  Path: %s\n", o.cfg.Common.TargetDir)
}

func formatSchema(schema []spec.ColumnType) string {
	names := make([]string, len(schema))
	for i, t := range schema {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}
