package dashboard

import (
	"fmt"

	"github.com/dtroode/hms-console/internal/model"
)

// Tab is a dashboard view. Entering a tab reloads the collections it shows.
type Tab string

const (
	TabOverview     Tab = "overview"
	TabPatients     Tab = "patients"
	TabAppointments Tab = "appointments"
	TabRecords      Tab = "records"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabOverview, TabPatients, TabAppointments, TabRecords}

func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is transient operator feedback.
type Message struct {
	Kind MessageKind
	Text string
}

// ProbeStatus is the last observed remote liveness.
type ProbeStatus string

const (
	ProbeChecking ProbeStatus = "checking"
	ProbeOnline   ProbeStatus = "online"
	ProbeOffline  ProbeStatus = "offline"
)

// Stale marks collections known to be outdated since their last load.
type Stale struct {
	Appointments bool
	Records      bool
}

// Stats are the overview counters.
type Stats struct {
	Patients     int
	Appointments int
	Scheduled    int
	Records      int
}

// Snapshot is an immutable copy of the dashboard state.
type Snapshot struct {
	ActiveTab      Tab
	Patients       []model.Patient
	Appointments   []model.Appointment
	Records        []model.MedicalRecord
	RecordFailures []model.PatientFetchError
	Message        *Message
	Probe          ProbeStatus
	Loading        bool
	Stale          Stale
	Stats          Stats
}

// PatientName returns the name of the patient with the given id from the
// loaded patients, or "" if it is not loaded.
func (s Snapshot) PatientName(id int64) string {
	for _, p := range s.Patients {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

type collection int

const (
	collPatients collection = iota
	collAppointments
	collRecords
	numCollections
)

func (c collection) String() string {
	switch c {
	case collPatients:
		return "patients"
	case collAppointments:
		return "appointments"
	case collRecords:
		return "records"
	}
	return "unknown"
}

type state struct {
	tab            Tab
	patients       []model.Patient
	appointments   []model.Appointment
	records        []model.MedicalRecord
	recordFailures []model.PatientFetchError
	message        *Message
	probe          ProbeStatus
	recordsLoading int
	stale          Stale

	// generation of the latest load issued per collection
	issued [numCollections]uint64
}

func (s *state) snapshot() Snapshot {
	snap := Snapshot{
		ActiveTab:      s.tab,
		Patients:       append([]model.Patient{}, s.patients...),
		Appointments:   append([]model.Appointment{}, s.appointments...),
		Records:        append([]model.MedicalRecord{}, s.records...),
		RecordFailures: append([]model.PatientFetchError(nil), s.recordFailures...),
		Probe:          s.probe,
		Loading:        s.recordsLoading > 0,
		Stale:          s.stale,
	}
	if s.message != nil {
		m := *s.message
		snap.Message = &m
	}

	snap.Stats = Stats{
		Patients:     len(snap.Patients),
		Appointments: len(snap.Appointments),
		Records:      len(snap.Records),
	}
	for _, a := range snap.Appointments {
		if a.Status == model.AppointmentScheduled {
			snap.Stats.Scheduled++
		}
	}

	return snap
}
