package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/harrisonrobin/lockin/pkg/agenda"
	"github.com/harrisonrobin/lockin/pkg/model"
	"github.com/harrisonrobin/lockin/pkg/util"
)

// Formats lists the accepted values for Export.
var Formats = []string{"json", "csv", "pdf", "gcal"}

// Source is the part of the task store an Exporter reads from.
type Source interface {
	All() []model.Task
	List(filter model.Filter) []model.Task
}

type Exporter struct {
	src Source
	now func() time.Time
}

func NewExporter(src Source) *Exporter {
	return &Exporter{src: src, now: time.Now}
}

func (e *Exporter) Export(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(e.src.All(), "", "  ")
	case "csv":
		return e.csv()
	case "pdf":
		return e.pdf()
	case "gcal":
		events, errs := agenda.Events(e.src.All(), e.now())
		if len(errs) > 0 {
			return nil, fmt.Errorf("could not convert %d task(s), first: %w", len(errs), errs[0])
		}
		return agenda.Marshal(events)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func (e *Exporter) csv() ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "title", "dueDate", "completed"})
	for _, t := range e.src.All() {
		_ = w.Write([]string{t.ID, t.Title, t.DueDate, strconv.FormatBool(t.Completed)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (e *Exporter) pdf() ([]byte, error) {
	now := e.now()
	pending := e.src.List(model.Pending)
	completed := e.src.List(model.Completed)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Lock-In")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 8, fmt.Sprintf("%d of %d tasks completed", len(completed), len(pending)+len(completed)))
	pdf.Ln(12)

	section := func(name string, tasks []model.Task) {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(40, 8, fmt.Sprintf("%s (%d)", name, len(tasks)))
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 10)
		for _, t := range tasks {
			due := util.FormatDate(t.DueDate)
			if !t.Completed && util.IsOverdue(t.DueDate, now) {
				due = "Overdue: " + due
			}
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s  -  %s", t.Title, due)), "0", "L", false)
		}
		pdf.Ln(4)
	}
	section("Pending", pending)
	section("Completed", completed)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
