package pulse

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	cronlib "github.com/robfig/cron/v3"
	"go.jetify.com/typeid/v2"

	reactium "github.com/ReactiumCore/ReactiumFramework-sub005"
	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
	"github.com/ReactiumCore/ReactiumFramework-sub005/registry"
)

// Func is the work a pulse task performs on each run.
type Func func(ctx context.Context) error

// Task is one recurring unit of work.
type Task struct {
	// ID defaults to a generated TypeID with the "pulse" prefix.
	ID string

	// Schedule is a standard 5-field cron expression or a descriptor
	// like "@every 30s".
	Schedule string

	// Repeat limits the number of completed runs; <= 0 means unlimited.
	Repeat int

	// MaxAttempts is the number of tries per run, including the first.
	// Defaults to 1 (no retries).
	MaxAttempts int

	// Immediate makes the task due on the first tick instead of waiting
	// for the schedule's next boundary.
	Immediate bool

	// Run performs the work.
	Run Func

	sched cronlib.Schedule
	next  time.Time
	runs  int
}

// Runs returns the number of completed runs.
func (t *Task) Runs() int { return t.runs }

// scheduleParser accepts standard 5-field cron plus @every descriptors.
var scheduleParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// ParseSchedule parses a cron expression, wrapping failures in
// ErrBadSchedule.
func ParseSchedule(expr string) (cronlib.Schedule, error) {
	sched, err := scheduleParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", reactium.ErrBadSchedule, expr, err)
	}
	return sched, nil
}

// Option configures a Runner.
type Option func(*Runner)

// WithEngine attaches a hook engine; pulse-fired and pulse-exhausted
// dispatch through it on the sync namespace.
func WithEngine(e *hook.Engine) Option {
	return func(r *Runner) { r.engine = e }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithTick sets how often the runner checks for due tasks.
func WithTick(d time.Duration) Option {
	return func(r *Runner) { r.tick = d }
}

// WithStrategy sets the retry backoff strategy.
func WithStrategy(s Strategy) Option {
	return func(r *Runner) { r.strategy = s }
}

// Runner executes due tasks on a tick loop.
type Runner struct {
	engine   *hook.Engine
	logger   *slog.Logger
	tasks    *registry.Registry[*Task]
	tick     time.Duration
	strategy Strategy

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRunner creates a stopped Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:   slog.Default(),
		tasks:    registry.New[*Task](),
		tick:     1 * time.Second,
		strategy: DefaultStrategy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces a task. The schedule is parsed eagerly so a
// bad expression fails here, not on the tick loop.
func (r *Runner) Register(t *Task, opts ...registry.EntryOption) (string, error) {
	if t.Run == nil {
		return "", fmt.Errorf("pulse: task %q has no run func", t.ID)
	}
	sched, err := ParseSchedule(t.Schedule)
	if err != nil {
		return "", err
	}
	if t.ID == "" {
		tid, genErr := typeid.Generate("pulse")
		if genErr != nil {
			return "", fmt.Errorf("pulse: generate id: %w", genErr)
		}
		t.ID = tid.String()
	}
	if t.MaxAttempts <= 0 {
		t.MaxAttempts = 1
	}

	r.mu.Lock()
	t.sched = sched
	if t.Immediate {
		t.next = time.Time{}
	} else {
		t.next = sched.Next(time.Now().UTC())
	}
	r.mu.Unlock()

	if err := r.tasks.Register(t.ID, t, opts...); err != nil {
		return "", fmt.Errorf("pulse: register %s: %w", t.ID, err)
	}
	return t.ID, nil
}

// Unregister removes a task. Absent ids fail with ErrTaskNotFound;
// protected tasks refuse removal.
func (r *Runner) Unregister(id string) error {
	if _, ok := r.tasks.Get(id); !ok {
		return fmt.Errorf("%w: %s", reactium.ErrTaskNotFound, id)
	}
	return r.tasks.Unregister(id)
}

// Get returns the task at id.
func (r *Runner) Get(id string) (*Task, error) {
	t, ok := r.tasks.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", reactium.ErrTaskNotFound, id)
	}
	return t, nil
}

// Protect marks a task immune to replacement and removal.
func (r *Runner) Protect(id string) error { return r.tasks.Protect(id) }

// Tasks returns the underlying task registry.
func (r *Runner) Tasks() *registry.Registry[*Task] { return r.tasks }

// Start launches the tick loop.
func (r *Runner) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return reactium.ErrRunnerStarted
	}
	r.started = true
	r.stopCh = make(chan struct{})
	r.wg.Add(1)
	go r.tickLoop(r.stopCh)
	r.logger.Info("pulse runner started", slog.Duration("tick", r.tick))
	return nil
}

// Stop signals the tick loop and waits for it to finish.
func (r *Runner) Stop(_ context.Context) error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	stopCh := r.stopCh
	r.started = false
	r.mu.Unlock()

	close(stopCh)
	r.wg.Wait()
	r.logger.Info("pulse runner stopped")
	return nil
}

func (r *Runner) tickLoop(stopCh chan struct{}) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			r.runDue(context.Background(), stopCh)
		}
	}
}

func (r *Runner) runDue(ctx context.Context, stopCh chan struct{}) {
	now := time.Now().UTC()
	for _, entry := range r.tasks.List() {
		t := entry.Value

		r.mu.Lock()
		due := !t.next.After(now)
		r.mu.Unlock()
		if !due {
			continue
		}
		r.fire(ctx, t, now, stopCh)
	}
}

func (r *Runner) fire(ctx context.Context, t *Task, now time.Time, stopCh chan struct{}) {
	var lastErr error
	for attempt := 1; attempt <= t.MaxAttempts; attempt++ {
		lastErr = t.Run(ctx)
		if lastErr == nil {
			break
		}
		r.logger.Warn("pulse task attempt failed",
			slog.String("task_id", t.ID),
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()),
		)
		if attempt < t.MaxAttempts {
			select {
			case <-stopCh:
				return
			case <-time.After(r.strategy.Delay(attempt)):
			}
		}
	}

	if lastErr != nil {
		r.dispatch(ctx, reactium.HookPulseExhausted, t.ID, lastErr)
		r.advance(t, now)
		return
	}

	r.mu.Lock()
	t.runs++
	runs := t.runs
	finished := t.Repeat > 0 && runs >= t.Repeat
	r.mu.Unlock()

	r.dispatch(ctx, reactium.HookPulseFired, t.ID, runs)

	if finished {
		if err := r.tasks.Unregister(t.ID); err != nil {
			r.logger.Warn("pulse task retire failed",
				slog.String("task_id", t.ID),
				slog.String("error", err.Error()),
			)
		} else {
			r.logger.Info("pulse task complete",
				slog.String("task_id", t.ID),
				slog.Int("runs", runs),
			)
		}
		return
	}
	r.advance(t, now)
}

func (r *Runner) advance(t *Task, now time.Time) {
	r.mu.Lock()
	t.next = t.sched.Next(now)
	r.mu.Unlock()
}

// dispatch runs a lifecycle hook on the sync namespace. Subscriber
// failures are logged, never propagated into the tick loop.
func (r *Runner) dispatch(ctx context.Context, name string, params ...any) {
	if r.engine == nil {
		return
	}
	if _, err := r.engine.RunSync(ctx, name, params...); err != nil {
		r.logger.Warn("pulse hook error",
			slog.String("hook", name),
			slog.String("error", err.Error()),
		)
	}
}
