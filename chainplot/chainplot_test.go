package chainplot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

var (
	start  = []r2.Point{{X: 0.75, Y: 0.0001}, {X: 1.5}}
	end    = []r2.Point{{X: 0.75, Y: 0.66}, {X: 1.5}}
	target = r2.Point{X: 1.5}
)

func TestPlot(t *testing.T) {
	p, err := Plot("two segments", start, end, target)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Title.Text, test.ShouldEqual, "two segments")

	// Both axes span the same distance.
	test.That(t, p.X.Max-p.X.Min, test.ShouldAlmostEqual, p.Y.Max-p.Y.Min)
	test.That(t, p.X.Min, test.ShouldBeLessThan, 0)
	test.That(t, p.X.Max, test.ShouldBeGreaterThan, 1.5)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	test.That(t, Write(&buf, "svg", "chain", start, end, target), test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldContainSubstring, "<svg")

	test.That(t, Write(&buf, "bogus", "chain", start, end, target), test.ShouldNotBeNil)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.png")
	test.That(t, Save(path, "chain", start, end, target), test.ShouldBeNil)
	info, err := os.Stat(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
}
