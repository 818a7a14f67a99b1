package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	f "github.com/multimediallc/rect-intersections/pkg/functional"
	"github.com/multimediallc/rect-intersections/pkg/intersection"
	"github.com/multimediallc/rect-intersections/pkg/rect"
)

// Report is the result of one input document: its rectangles and the
// intersections found, already in presentation order.
type Report struct {
	Source        string
	Input         []rect.Rectangle
	Intersections []intersection.Record
}

// Write renders the reports in the given format. Text formats prefix each
// report with its source when there is more than one; JSON emits a single
// object for one report and an array otherwise.
func Write(w io.Writer, format OutputFormat, reports []Report) error {
	var out string
	switch format {
	case FormatJSON:
		encoded, err := jsonReports(reports)
		if err != nil {
			return err
		}
		out = encoded
	case FormatOneLine:
		out = textReports(reports, oneLineReport)
	default:
		out = textReports(reports, defaultReport)
	}
	_, err := io.WriteString(w, out)
	return err
}

func textReports(reports []Report, render func(*strings.Builder, Report)) string {
	var sb strings.Builder
	for _, r := range reports {
		if len(reports) > 1 {
			fmt.Fprintf(&sb, "== %s\n", r.Source)
		}
		render(&sb, r)
	}
	return sb.String()
}

func defaultReport(sb *strings.Builder, r Report) {
	sb.WriteString("Input:\n")
	for _, in := range r.Input {
		fmt.Fprintf(sb, "\t%d: Rectangle at %s.\n", in.ID, in)
	}

	sb.WriteString("Intersections:\n")
	if len(r.Intersections) == 0 {
		sb.WriteString("No intersections found.\n")
		return
	}
	for _, record := range r.Intersections {
		fmt.Fprintf(sb, "\tBetween rectangle %s at %s.\n", ParticipantsText(record.Participants), record.Rect)
	}
}

func oneLineReport(sb *strings.Builder, r Report) {
	for _, record := range r.Intersections {
		ids := strings.Join(f.Map(record.Participants, strconv.Itoa), ",")
		fmt.Fprintf(sb, "%s: (%d,%d) w=%d h=%d\n", ids, record.Rect.X, record.Rect.Y, record.Rect.W, record.Rect.H)
	}
}

// ParticipantsText joins ids as "1, 2 and 3", keeping the order they were combined in
func ParticipantsText(ids []int) string {
	names := f.Map(ids, strconv.Itoa)
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

type jsonRect struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
	W  int `json:"w"`
	H  int `json:"h"`
}

type jsonIntersection struct {
	Participants []int `json:"participants"`
	X            int   `json:"x"`
	Y            int   `json:"y"`
	W            int   `json:"w"`
	H            int   `json:"h"`
}

type jsonReport struct {
	Source        string             `json:"source,omitempty"`
	Input         []jsonRect         `json:"input"`
	Intersections []jsonIntersection `json:"intersections"`
}

func toJSONReport(r Report) jsonReport {
	return jsonReport{
		Source: r.Source,
		Input: f.Map(r.Input, func(in rect.Rectangle) jsonRect {
			return jsonRect{ID: in.ID, X: in.X, Y: in.Y, W: in.W, H: in.H}
		}),
		Intersections: f.Map(r.Intersections, func(record intersection.Record) jsonIntersection {
			return jsonIntersection{
				Participants: record.Participants,
				X:            record.Rect.X,
				Y:            record.Rect.Y,
				W:            record.Rect.W,
				H:            record.Rect.H,
			}
		}),
	}
}

func jsonReports(reports []Report) (string, error) {
	var payload any
	if len(reports) == 1 {
		payload = toJSONReport(reports[0])
	} else {
		payload = f.Map(reports, toJSONReport)
	}
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error encoding report: %w", err)
	}
	return string(jsonBytes) + "\n", nil
}
