package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dtroode/hms-console/internal/model"
)

const recentPatients = 5

// Render writes the active tab of snap as text. Datetimes are shown in loc.
func Render(w io.Writer, snap Snapshot, loc *time.Location) error {
	var b strings.Builder

	fmt.Fprintf(&b, "System: %s\n", probeLabel(snap.Probe))
	if snap.Message != nil {
		fmt.Fprintf(&b, "[%s] %s\n", snap.Message.Kind, snap.Message.Text)
	}
	b.WriteString("\n")

	switch snap.ActiveTab {
	case TabOverview:
		renderOverview(&b, snap)
	case TabPatients:
		RenderPatients(&b, snap.Patients)
	case TabAppointments:
		if snap.Stale.Appointments {
			b.WriteString("(outdated, reload to refresh)\n")
		}
		RenderAppointments(&b, snap, loc)
	case TabRecords:
		if snap.Stale.Records {
			b.WriteString("(outdated, reload to refresh)\n")
		}
		if snap.Loading {
			b.WriteString("Loading records...\n")
		}
		RenderRecords(&b, snap)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func probeLabel(s ProbeStatus) string {
	switch s {
	case ProbeOnline:
		return "Healthy"
	case ProbeOffline:
		return "Offline"
	}
	return "Checking..."
}

func renderOverview(b *strings.Builder, snap Snapshot) {
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total patients\t%d\n", snap.Stats.Patients)
	fmt.Fprintf(tw, "Appointments\t%d\n", snap.Stats.Appointments)
	fmt.Fprintf(tw, "Scheduled\t%d\n", snap.Stats.Scheduled)
	fmt.Fprintf(tw, "Medical records\t%d\n", snap.Stats.Records)
	fmt.Fprintf(tw, "System status\t%s\n", probeLabel(snap.Probe))
	tw.Flush()

	b.WriteString("\nRecent patients\n")
	if len(snap.Patients) == 0 {
		b.WriteString("No patients yet.\n")
		return
	}

	recent := snap.Patients
	if len(recent) > recentPatients {
		recent = recent[:recentPatients]
	}
	tw = tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	for _, p := range recent {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Email, model.Deref(p.BloodGroup))
	}
	tw.Flush()
}

// RenderPatients writes patients as a table.
func RenderPatients(w io.Writer, patients []model.Patient) {
	if len(patients) == 0 {
		io.WriteString(w, "No patients.\n")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBORN\tEMAIL\tPHONE\tBLOOD\tADDRESS")
	for _, p := range patients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.DateOfBirth, p.Email,
			dash(p.Phone), dash(p.BloodGroup), dash(p.Address))
	}
	tw.Flush()
}

// RenderAppointments writes appointments as a table, resolving patient
// names from the snapshot.
func RenderAppointments(w io.Writer, snap Snapshot, loc *time.Location) {
	if len(snap.Appointments) == 0 {
		io.WriteString(w, "No appointments.\n")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATIENT\tDOCTOR\tWHEN\tSTATUS\tREASON")
	for _, a := range snap.Appointments {
		patient := snap.PatientName(a.PatientID)
		if patient == "" {
			patient = fmt.Sprintf("#%d", a.PatientID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, patient, a.DoctorName,
			model.DisplayTime(a.AppointmentDateTime, loc),
			a.Status, dash(a.Reason))
	}
	tw.Flush()
}

// RenderRecords writes records as a table followed by any patients whose
// records could not be loaded.
func RenderRecords(w io.Writer, snap Snapshot) {
	if len(snap.Records) == 0 {
		io.WriteString(w, "No medical records.\n")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tPATIENT\tDATE\tDOCTOR\tDIAGNOSIS\tPRESCRIPTION")
		for _, r := range snap.Records {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.PatientName, r.RecordDate, r.DoctorName,
				r.Diagnosis, dash(r.Prescription))
		}
		tw.Flush()
	}

	for _, f := range snap.RecordFailures {
		fmt.Fprintf(w, "! records of %s (#%d) unavailable: %s\n",
			f.PatientName, f.PatientID, model.ErrorMessage(f.Err))
	}
}

func dash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
