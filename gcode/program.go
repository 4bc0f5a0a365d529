package gcode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/engravetools/engrave"
	"github.com/engravetools/engrave/bezier"
	"github.com/engravetools/engrave/orient"
)

// ErrNoOutputDir flags an export target directory that does not exist.
// Exports never create directories.
var ErrNoOutputDir = errors.New("output directory does not exist")

// Units selects the measurement system of a program.
type Units int8

const (
	// UnitsMillimeters measures in mm (G21).
	UnitsMillimeters Units = iota
	// UnitsInches measures in inches (G20).
	UnitsInches
)

// Directive returns the annotated units line for the program header.
// The exact text is part of the output contract.
func (u Units) Directive() string {
	if u == UnitsInches {
		return "G20  ; Units in inches"
	}
	return "G21  ; Units in mm"
}

// Spacing returns the default calibration marker spacing in these units.
func (u Units) Spacing() float64 {
	if u == UnitsInches {
		return 5
	}
	return 100
}

// Formatter collects program lines and optionally optimizes the final
// text: leading blank lines are dropped, and consecutive duplicate
// comments and modal directives (G90/G91/G20/G21) collapse to one.
type Formatter struct {
	lines []string
}

// AddLine appends a line to the program. Empty lines are ignored; use
// AddBlankLine for deliberate spacing.
func (f *Formatter) AddLine(line string) {
	if line == "" {
		return
	}
	f.lines = append(f.lines, line)
}

// AddLines appends a batch of lines.
func (f *Formatter) AddLines(lines []string) {
	for _, line := range lines {
		f.AddLine(line)
	}
}

// AddComment appends a comment line.
func (f *Formatter) AddComment(text string) {
	f.lines = append(f.lines, "; "+text)
}

// AddBlankLine appends a blank separator line.
func (f *Formatter) AddBlankLine() {
	f.lines = append(f.lines, "")
}

// Optimized returns the collected lines with redundancy removed.
func (f *Formatter) Optimized() []string {
	out := make([]string, 0, len(f.lines))
	last := ""
	for _, line := range f.lines {
		if line == "" {
			if len(out) == 0 {
				continue
			}
			out = append(out, line)
			continue
		}
		if (strings.HasPrefix(line, ";") || modal(line)) && line == last {
			tracer().Debugf("dropping redundant line %q", line)
			continue
		}
		out = append(out, line)
		last = line
	}
	return out
}

func modal(line string) bool {
	switch strings.Fields(line)[0] {
	case "G90", "G91", "G20", "G21":
		return true
	}
	return false
}

// String renders the program as newline-joined text with a trailing
// newline.
func (f *Formatter) String(optimize bool) string {
	lines := f.lines
	if optimize {
		lines = f.Optimized()
	}
	return strings.Join(lines, "\n") + "\n"
}

// Layer couples a named coordinate frame with the subpaths drawn on it.
type Layer struct {
	Frame    string
	Subpaths []*bezier.Subpath
}

// Job bundles the settings of one program build.
type Job struct {
	Options  Options
	Units    Units
	Frame    DocFrame
	Describe bool // annotate the program with the drawing extents
	Optimize bool
}

// Build renders a complete program for machine-space subpaths: the
// absolute-positioning and units header, the motion body, and the
// return-home shutdown footer. The footer lines are literal for
// controller compatibility.
func (job Job) Build(subpaths []*bezier.Subpath) []string {
	f := &Formatter{}
	job.header(f, subpaths)
	f.AddLines(NewGenerator().Render(Emit(subpaths, job.Options), job.Frame))
	job.footer(f)
	if job.Optimize {
		return f.Optimized()
	}
	return f.lines
}

// BuildLayers renders a program for layered drawing-space input. Each
// layer's subpaths are normalized through the job's document frame, then
// mapped into machine space by the frame registry's similarity transform;
// machine coordinates serialize unchanged. Calibration drawing
// coordinates must be given in the normalized frame (see
// DocFrame.Normalize). A layer whose frame has no calibration anywhere in
// its ancestry falls back to the default calibration for the job's units,
// attached to that frame; solve failures abort the build.
func (job Job) BuildLayers(layers []Layer, reg *orient.Registry) ([]string, error) {
	f := &Formatter{}
	gen := NewGenerator()
	var all []*bezier.Subpath
	var bodies [][]string
	for _, layer := range layers {
		tr, err := reg.TransformFor(layer.Frame)
		if errors.Is(err, orient.ErrNoCalibration) {
			tracer().Infof("frame %q not calibrated, attaching default calibration", layer.Frame)
			reg.Attach(layer.Frame, orient.DefaultCalibration(job.Units.Spacing(), 1, 0))
			tr, err = reg.TransformFor(layer.Frame)
		}
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer.Frame, err)
		}
		mapped := make([]*bezier.Subpath, len(layer.Subpaths))
		for i, sp := range layer.Subpaths {
			mapped[i] = sp.Transform(func(p engrave.Pair) engrave.Pair {
				return tr.Apply(job.Frame.Normalize(p))
			})
		}
		all = append(all, mapped...)
		bodies = append(bodies, gen.Render(Emit(mapped, job.Options), DocFrame{}))
	}
	job.header(f, all)
	for i, body := range bodies {
		if len(layers) > 1 {
			f.AddComment("layer " + layers[i].Frame)
		}
		f.AddLines(body)
	}
	job.footer(f)
	if job.Optimize {
		return f.Optimized(), nil
	}
	return f.lines, nil
}

func (job Job) header(f *Formatter, subpaths []*bezier.Subpath) {
	f.AddLine("G90")
	f.AddLine(job.Units.Directive())
	if job.Describe {
		if min, max, ok := Extents(subpaths, job.Options.withDefaults().Segments); ok {
			f.AddComment(fmt.Sprintf("extents X%s..%s Y%s..%s",
				Format(min.X()), Format(max.X()), Format(min.Y()), Format(max.Y())))
		}
	}
}

func (job Job) footer(f *Formatter) {
	f.AddLine("G0 X0.0000 Y0.0000")
	f.AddLine("M05")
	f.AddLine("M02")
}

// Export writes program lines to filename inside dir, which must already
// exist. With numbered set the filename stem gets a 4-digit counter
// suffix, one above the highest counter of matching files already
// present, so repeated exports never overwrite. Returns the path written.
func Export(dir, filename string, numbered bool, lines []string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNoOutputDir, dir)
	}
	if numbered {
		filename, err = numberedFilename(dir, filename)
		if err != nil {
			return "", err
		}
	}
	path := filepath.Join(dir, filename)
	tracer().Infof("exporting %d program lines to %s", len(lines), path)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// numberedFilename inserts "_NNNN" before the extension, continuing the
// highest counter found in dir.
func numberedFilename(dir, filename string) (string, error) {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	pattern, err := regexp.Compile(
		"^" + regexp.QuoteMeta(stem) + `_(\d+)` + regexp.QuoteMeta(ext) + "$")
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	max := 0
	for _, entry := range entries {
		m := pattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n := 0
		fmt.Sscanf(m[1], "%d", &n)
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s_%04d%s", stem, max+1, ext), nil
}
