// Package dashboard holds the operator view state and keeps it in sync with
// the remote service.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/hms-console/internal/logger"
	"github.com/dtroode/hms-console/internal/model"
	"github.com/dtroode/hms-console/internal/service"
)

const (
	DefaultMessageTTL    = 5 * time.Second
	DefaultProbeInterval = 30 * time.Second
)

// Loader fetches the collections shown by the dashboard.
type Loader interface {
	LoadPatients(ctx context.Context) ([]model.Patient, error)
	LoadAppointments(ctx context.Context) (service.AppointmentsResult, error)
	LoadRecords(ctx context.Context) (service.RecordsResult, error)
}

// Remote is the set of remote endpoints mutations and the probe talk to.
type Remote struct {
	Patients     model.PatientAPI
	Appointments model.AppointmentAPI
	Records      model.RecordAPI
	Health       model.HealthChecker
}

type Options struct {
	MessageTTL    time.Duration
	ProbeInterval time.Duration
}

// Controller owns the dashboard state. Loads run in background goroutines
// and only the latest load issued for a collection may update it.
type Controller struct {
	loader        Loader
	remote        Remote
	logger        *logger.Logger
	messageTTL    time.Duration
	probeInterval time.Duration

	// ctx bounds in-flight loads; cancel ends them
	ctx    context.Context
	cancel context.CancelFunc
	loads  sync.WaitGroup

	updates chan struct{}

	mu         sync.Mutex
	state      state
	msgTimer   *time.Timer
	msgVersion uint64
}

func NewController(loader Loader, remote Remote, logger *logger.Logger, opts Options) *Controller {
	if opts.MessageTTL <= 0 {
		opts.MessageTTL = DefaultMessageTTL
	}
	if opts.ProbeInterval <= 0 {
		opts.ProbeInterval = DefaultProbeInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		loader:        loader,
		remote:        remote,
		logger:        logger,
		messageTTL:    opts.MessageTTL,
		probeInterval: opts.ProbeInterval,
		ctx:           ctx,
		cancel:        cancel,
		updates:       make(chan struct{}, 1),
		state: state{
			tab:   TabOverview,
			probe: ProbeChecking,
		},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.snapshot()
}

// Updates is signalled after every state change. Signals coalesce.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// Wait blocks until all in-flight loads have finished.
func (c *Controller) Wait() {
	c.loads.Wait()
}

// Close cancels in-flight loads and the pending message timer.
func (c *Controller) Close() {
	c.cancel()
	c.loads.Wait()

	c.mu.Lock()
	if c.msgTimer != nil {
		c.msgTimer.Stop()
	}
	c.mu.Unlock()
}

// SelectTab activates tab and reloads what it shows: overview loads
// patients and appointments, appointments also refresh patients, records
// run the full aggregation.
func (c *Controller) SelectTab(tab Tab) {
	c.mu.Lock()
	c.state.tab = tab
	c.mu.Unlock()
	c.signal()

	c.logger.Debug("Dashboard: tab selected",
		"tab", tab)

	switch tab {
	case TabOverview:
		c.loadPatients()
		c.loadAppointments()
	case TabPatients:
		c.loadPatients()
	case TabAppointments:
		c.loadAppointments()
	case TabRecords:
		c.loadRecords()
	}
}

// Notify shows a message and schedules its removal. A newer message
// replaces the current one and cancels its removal.
func (c *Controller) Notify(kind MessageKind, text string) {
	c.mu.Lock()
	c.notifyLocked(kind, text)
	c.mu.Unlock()
	c.signal()
}

func (c *Controller) notifyLocked(kind MessageKind, text string) {
	if c.msgTimer != nil {
		c.msgTimer.Stop()
	}
	c.msgVersion++
	version := c.msgVersion

	c.state.message = &Message{Kind: kind, Text: text}
	c.msgTimer = time.AfterFunc(c.messageTTL, func() {
		c.clearMessage(version)
	})
}

func (c *Controller) clearMessage(version uint64) {
	c.mu.Lock()
	if version != c.msgVersion {
		c.mu.Unlock()
		return
	}
	c.state.message = nil
	c.mu.Unlock()
	c.signal()
}

func (c *Controller) loadPatients() {
	gen := c.issue(collPatients)

	c.spawn(func(ctx context.Context) {
		patients, err := c.loader.LoadPatients(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.current(collPatients, gen) || ctx.Err() != nil {
			return
		}
		if err != nil {
			c.notifyLocked(MessageError, "Failed to load patients")
			return
		}
		c.state.patients = patients
	})
}

func (c *Controller) loadAppointments() {
	apptGen := c.issue(collAppointments)
	patientGen := c.issue(collPatients)

	c.spawn(func(ctx context.Context) {
		result, err := c.loader.LoadAppointments(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}

		if c.current(collAppointments, apptGen) {
			if err != nil {
				c.notifyLocked(MessageError, "Failed to load appointments")
			} else {
				c.state.appointments = result.Appointments
				c.state.stale.Appointments = false
			}
		}

		if c.current(collPatients, patientGen) {
			if result.PatientsErr != nil {
				c.notifyLocked(MessageError, "Failed to load patients")
			} else {
				c.state.patients = result.Patients
			}
		}
	})
}

func (c *Controller) loadRecords() {
	gen := c.issue(collRecords)
	patientGen := c.issue(collPatients)

	c.mu.Lock()
	c.state.recordsLoading++
	c.mu.Unlock()

	c.spawn(func(ctx context.Context) {
		result, err := c.loader.LoadRecords(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.state.recordsLoading--
		if ctx.Err() != nil {
			return
		}

		if c.current(collRecords, gen) {
			if err != nil {
				c.notifyLocked(MessageError, "Failed to load records")
				return
			}
			c.state.records = result.Records
			c.state.recordFailures = result.Failures
			c.state.stale.Records = false
		}

		if err == nil && c.current(collPatients, patientGen) {
			c.state.patients = result.Patients
		}
	})
}

// issue starts a new load generation for coll, superseding earlier loads.
func (c *Controller) issue(coll collection) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.issued[coll]++
	return c.state.issued[coll]
}

// current reports whether gen is still the latest load of coll. Callers
// hold c.mu.
func (c *Controller) current(coll collection, gen uint64) bool {
	if c.state.issued[coll] == gen {
		return true
	}
	c.logger.Debug("Dashboard: discarding superseded load",
		"collection", coll.String(),
		"generation", gen,
		"latest", c.state.issued[coll])
	return false
}

func (c *Controller) spawn(fn func(ctx context.Context)) {
	c.loads.Add(1)
	go func() {
		defer c.loads.Done()
		fn(c.ctx)
		c.signal()
	}()
}

func (c *Controller) signal() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
