package builder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"phirapack/internal/archive"
	"phirapack/internal/fileutil"
	"phirapack/internal/history"
	"phirapack/internal/logging"
	"phirapack/internal/manifest"
	"phirapack/internal/packerr"
	"phirapack/internal/params"
	"phirapack/internal/preflight"
	"phirapack/internal/spritesheet"
	"phirapack/internal/staging"
)

// SuccessMessage is the Result message of a successful build.
const SuccessMessage = "Pack created successfully"

// Result is the outcome of one build.
type Result struct {
	OK          bool              `json:"ok"`
	PackName    string            `json:"pack_name"`
	ArchivePath string            `json:"archive_path,omitempty"`
	Message     string            `json:"message"`
	ErrorKind   string            `json:"error_kind,omitempty"`
	BuildID     string            `json:"build_id"`
	StagingDir  string            `json:"staging_dir,omitempty"`
	Skipped     []staging.Skipped `json:"skipped,omitempty"`
	States      []State           `json:"states"`
	FailedAt    State             `json:"failed_at,omitempty"`
	StartedAt   time.Time         `json:"started_at"`
	Duration    time.Duration     `json:"duration"`
}

// Recorder receives every finished build.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Options configures a Builder. Zero values select defaults.
type Options struct {
	Logger      *slog.Logger
	StagingRoot string
	Recorder    Recorder
	NewID       func() string
	Now         func() time.Time
}

// Builder assembles resource packs.
type Builder struct {
	logger      *slog.Logger
	stagingRoot string
	recorder    Recorder
	newID       func() string
	now         func() time.Time
}

// New constructs a Builder.
func New(opts Options) *Builder {
	b := &Builder{
		logger:      opts.Logger,
		stagingRoot: opts.StagingRoot,
		recorder:    opts.Recorder,
		newID:       opts.NewID,
		now:         opts.Now,
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	b.logger = logging.NewComponentLogger(b.logger, "builder")
	if b.newID == nil {
		b.newID = func() string { return uuid.NewString() }
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// Build runs a build with default options.
func Build(ctx context.Context, p params.BuildParameters) Result {
	return New(Options{}).Build(ctx, p)
}

// run carries the mutable state of a single build.
type run struct {
	ctx       context.Context
	base      *slog.Logger
	logger    *slog.Logger
	params    params.BuildParameters
	result    *Result
	workspace *staging.Workspace
	current   State
}

// Build validates p and assembles the pack. Parameter problems are reported
// before any staging directory is created.
func (b *Builder) Build(ctx context.Context, p params.BuildParameters) (result Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := b.now()
	result = Result{
		PackName:  strings.TrimSpace(p.Name),
		BuildID:   b.newID(),
		States:    []State{StateIdle},
		StartedAt: start,
	}
	ctx = logging.WithBuildID(ctx, result.BuildID)
	r := &run{
		ctx:     ctx,
		base:    b.logger,
		logger:  logging.WithContext(ctx, b.logger),
		params:  p,
		result:  &result,
		current: StateIdle,
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			r.fail(r.current, packerr.Wrap(packerr.ErrInternal, string(r.current), "panic", fmt.Sprint(recovered), nil))
		}
		r.cleanup()
		result.Duration = b.now().Sub(start)
		b.finish(ctx, r.logger, result)
	}()

	r.logger.Info("build started",
		logging.String(logging.FieldEventType, "build_start"),
		logging.String("pack_name", strings.TrimSpace(p.Name)),
		logging.String("output_dir", p.OutputDir),
	)

	if err := p.Validate(); err != nil {
		r.fail(StateIdle, err)
		return result
	}
	if check := preflight.CheckDirectoryAccess("Output directory", p.OutputDir); !check.Passed {
		r.fail(StateIdle, packerr.Wrap(packerr.ErrEnvironment, "preflight", "destination", check.Detail, nil))
		return result
	}

	steps := []struct {
		state State
		fn    func() error
	}{
		{StateStagingCreated, func() error { return r.createStaging(b.stagingRoot) }},
		{StateBasicAssetsCopied, r.copyImages},
		{StateHitEffectResolved, r.resolveHitEffect},
		{StateManifestWritten, r.writeManifest},
		{StateArchived, r.createArchive},
	}
	for _, step := range steps {
		if err := r.transition(step.state, step.fn); err != nil {
			r.fail(step.state, err)
			return result
		}
	}

	result.OK = true
	result.Message = SuccessMessage
	return result
}

func (r *run) transition(state State, fn func() error) error {
	if err := r.ctx.Err(); err != nil {
		return packerr.Wrap(packerr.ErrCanceled, string(state), "check context", "build canceled before stage", err)
	}
	r.current = state
	logger := logging.WithContext(logging.WithStage(r.ctx, string(state)), r.base)
	logger.Debug("stage started", logging.String(logging.FieldEventType, "stage_start"))
	began := time.Now()
	if err := fn(); err != nil {
		return err
	}
	r.result.States = append(r.result.States, state)
	logger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("elapsed", time.Since(began)),
	)
	return nil
}

func (r *run) fail(at State, err error) {
	if r.result.FailedAt != "" {
		return
	}
	r.result.OK = false
	r.result.ArchivePath = ""
	r.result.FailedAt = at
	r.result.Message = err.Error()
	r.result.ErrorKind = packerr.Kind(err)
	r.result.States = append(r.result.States, StateFailed)
	logging.ErrorWithContext(r.logger, "build failed", "build_failure",
		logging.String(logging.FieldStage, string(at)),
		logging.String(logging.FieldErrorKind, r.result.ErrorKind),
		logging.String(logging.FieldErrorHint, hintFor(err)),
		logging.Error(err),
	)
}

func (r *run) cleanup() {
	if r.workspace == nil {
		return
	}
	if err := r.workspace.Remove(); err != nil {
		logging.WarnWithContext(r.logger, "staging cleanup failed", "staging_cleanup_failed",
			logging.String("staging_dir", r.workspace.Dir()),
			logging.String(logging.FieldErrorHint, "remove the directory manually or run phirapack staging clean"),
			logging.Error(err),
		)
		return
	}
	r.result.States = append(r.result.States, StateCleanedUp)
}

func (r *run) createStaging(root string) error {
	ws, err := staging.NewWorkspace(root, r.result.BuildID)
	if err != nil {
		return err
	}
	r.workspace = ws
	r.result.StagingDir = ws.Dir()
	return nil
}

func (r *run) copyImages() error {
	skipped, err := r.workspace.CopyImages(r.params)
	r.noteSkipped(skipped)
	return err
}

func (r *run) resolveHitEffect() error {
	if src := strings.TrimSpace(r.params.HitFx.Image); src != "" {
		if fileutil.Exists(src) {
			return r.workspace.CopyHitEffect(src)
		}
		r.noteSkipped([]staging.Skipped{{Role: "hit_fx.image", Path: src}})
	}
	img, err := spritesheet.Synthesize(spritesheet.GeometryOf(r.params.HitFx))
	if err != nil {
		return err
	}
	return spritesheet.WritePNG(r.workspace.Path(params.SynthesizedHitFxName), img)
}

func (r *run) writeManifest() error {
	audio, skipped, err := r.workspace.CopyAudio(r.params)
	r.noteSkipped(skipped)
	if err != nil {
		return err
	}
	_, err = manifest.FromParams(r.params, audio).WriteFile(r.workspace.Dir())
	return err
}

func (r *run) createArchive() error {
	path, err := archive.Create(r.workspace.Dir(), r.params.OutputDir, r.params.Name)
	if err != nil {
		return err
	}
	r.result.ArchivePath = path
	return nil
}

func (r *run) noteSkipped(skipped []staging.Skipped) {
	for _, s := range skipped {
		logging.WarnWithContext(r.logger, "configured asset not found; skipping", "asset_skipped",
			logging.String("role", s.Role),
			logging.String("path", s.Path),
			logging.String(logging.FieldErrorKind, packerr.Kind(packerr.ErrMissingInput)),
			logging.String(logging.FieldErrorHint, "check the path in the pack file or flags"),
			logging.String(logging.FieldImpact, "role omitted from pack"),
		)
	}
	r.result.Skipped = append(r.result.Skipped, skipped...)
}

func (b *Builder) finish(ctx context.Context, logger *slog.Logger, result Result) {
	if result.OK {
		logger.Info("build completed",
			logging.String(logging.FieldEventType, "build_complete"),
			logging.String("archive_path", result.ArchivePath),
			logging.Int("skipped", len(result.Skipped)),
			logging.Duration("duration", result.Duration),
		)
	}
	if b.recorder == nil {
		return
	}
	if err := b.recorder.Record(context.WithoutCancel(ctx), entryFor(result)); err != nil {
		logging.WarnWithContext(logger, "failed to record build history", "history_write_failed",
			logging.String(logging.FieldErrorHint, "check paths.history_db permissions"),
			logging.Error(err),
		)
	}
}

func entryFor(result Result) history.Entry {
	final := string(StateIdle)
	if n := len(result.States); n > 0 {
		final = string(result.States[n-1])
	}
	if !result.OK && result.FailedAt != "" {
		final = string(StateFailed) + ":" + string(result.FailedAt)
	}
	return history.Entry{
		BuildID:     result.BuildID,
		PackName:    result.PackName,
		OK:          result.OK,
		FinalState:  final,
		ArchivePath: result.ArchivePath,
		Message:     result.Message,
		ErrorKind:   result.ErrorKind,
		Skipped:     len(result.Skipped),
		StartedAt:   result.StartedAt,
		Duration:    result.Duration,
	}
}

func hintFor(err error) string {
	switch packerr.Kind(err) {
	case "validation":
		return "fix the pack file or flags and retry"
	case "environment":
		return "check that the output and staging directories exist and are writable"
	case "serialization":
		return "check free space in the staging directory"
	case "archive":
		return "check free space and permissions in the output directory"
	case "canceled":
		return "build was interrupted; rerun when ready"
	case "internal":
		return "unexpected failure; report it with the log output"
	default:
		return "rerun with --log-level debug for details"
	}
}
