package outputter

import (
	"fmt"
	"io"

	"benchkit/internal/params"
	"benchkit/internal/result"

	"github.com/charmbracelet/lipgloss"
)

// padWidth is the right-aligned column used for statistic lines.
const padWidth = 34

// Console prints a human readable, optionally coloured report.
type Console struct {
	w      *errWriter
	styles consoleStyles
}

// NewConsole creates a console renderer writing to w. Color enables styling
// when w supports it; false always produces plain text.
func NewConsole(w io.Writer, color bool) *Console {
	return newConsole(w, newRenderer(w, color))
}

func newConsole(w io.Writer, r *lipgloss.Renderer) *Console {
	return &Console{w: &errWriter{w: w}, styles: newConsoleStyles(r)}
}

// Err returns the first write error.
func (c *Console) Err() error { return c.w.err }

func (c *Console) Begin(enabledCount, disabledCount int) {
	line := "Running " + plural(enabledCount, "benchmark")
	if disabledCount > 0 {
		line += ", skipping " + plural(disabledCount, "benchmark")
	}
	c.w.printf("%s %s.\n", c.styles.banner.Render("[==========]"), line)
}

func (c *Console) End(executedCount, disabledCount int) {
	line := "Ran " + plural(executedCount, "benchmark")
	if disabledCount > 0 {
		line += ", skipped " + plural(disabledCount, "benchmark")
	}
	c.w.printf("%s %s.\n", c.styles.banner.Render("[==========]"), line)
}

func (c *Console) BeginTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
	c.beginOrSkip(c.styles.banner.Render("[ RUN      ]"), fixtureName, testName, parameters, runsCount, iterationsCount)
}

func (c *Console) SkipDisabledTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
	c.beginOrSkip(c.styles.disabled.Render("[ DISABLED ]"), fixtureName, testName, parameters, runsCount, iterationsCount)
}

func (c *Console) beginOrSkip(tag, fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
	c.w.printf("%s %s (%s, %s per run)\n",
		tag,
		c.styles.name.Render(FormatName(fixtureName, testName, parameters)),
		plural(runsCount, "run"),
		plural(iterationsCount, "iteration"))
}

func (c *Console) EndTest(fixtureName, testName string, parameters params.Parameters, res result.Result) {
	const us = 1000.0

	c.w.printf("%s %s (%.6f ms)\n",
		c.styles.banner.Render("[     DONE ]"),
		c.styles.name.Render(FormatName(fixtureName, testName, parameters)),
		res.TimeTotal()/1e6)

	c.w.printf("%s       Average time: %.3f us\n", c.styles.section.Render("[   RUNS   ]"), res.RunTimeAverage()/us)
	c.deviation("Fastest: ", res.RunTimeMinimum()/us, res.RunTimeAverage()/us, "us", 3, true)
	c.deviation("Slowest: ", res.RunTimeMaximum()/us, res.RunTimeAverage()/us, "us", 3, true)
	c.stat("", "")
	c.stat("Average performance: ", fmt.Sprintf("%.5f runs/s", res.RunsPerSecondAverage()))
	c.deviation("Best performance: ", res.RunsPerSecondMaximum(), res.RunsPerSecondAverage(), "runs/s", 5, false)
	c.deviation("Worst performance: ", res.RunsPerSecondMinimum(), res.RunsPerSecondAverage(), "runs/s", 5, false)

	c.w.printf("%s       Average time: %.3f us\n", c.styles.section.Render("[ITERATIONS]"), res.IterationTimeAverage()/us)
	c.deviation("Fastest: ", res.IterationTimeMinimum()/us, res.IterationTimeAverage()/us, "us", 3, true)
	c.deviation("Slowest: ", res.IterationTimeMaximum()/us, res.IterationTimeAverage()/us, "us", 3, true)
	c.stat("", "")
	c.stat("Average performance: ", fmt.Sprintf("%.5f iterations/s", res.IterationsPerSecondAverage()))
	c.deviation("Best performance: ", res.IterationsPerSecondMaximum(), res.IterationsPerSecondAverage(), "iterations/s", 5, false)
	c.deviation("Worst performance: ", res.IterationsPerSecondMinimum(), res.IterationsPerSecondAverage(), "iterations/s", 5, false)
}

// deviation prints value and its difference from average. For times
// (lowerIsBetter) a value above average is flagged; for rates a value below.
func (c *Console) deviation(label string, value, average float64, unit string, precision int, lowerIsBetter bool) {
	d := value - average
	worse := d < 0
	if lowerIsBetter {
		worse = d > 0
	}
	style := c.styles.better
	if worse {
		style = c.styles.worse
	}

	sign := ""
	if value > average {
		sign = "+"
	}
	delta := fmt.Sprintf("%s%.*f %s / %s%.*f %%", sign, precision, d, unit, sign, precision, d*100/average)
	c.w.printf("%*s%.*f %s (%s)\n", padWidth, label, precision, value, unit, style.Render(delta))
}

// stat prints label right-aligned in the statistics column followed by text.
func (c *Console) stat(label, text string) {
	c.w.printf("%*s%s\n", padWidth, label, text)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
