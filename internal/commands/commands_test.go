package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akasprzok/cubeplot/internal/cube"
	"github.com/akasprzok/cubeplot/internal/dashboard"
	"github.com/akasprzok/cubeplot/internal/prometheus"
	"github.com/xuri/excelize/v2"
)

func testGlobals() Globals {
	return Globals{
		LogLevel:  "error",
		LogFormat: "json",
		Source:    SourceDemo,
		From:      "2025-02-01",
		To:        "2025-02-28",
		Seed:      dashboard.DefaultDemoSeed,
	}
}

func testContext(t *testing.T, g Globals) (*Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ctx, err := NewContext(g, &out, io.Discard)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	return ctx, &out
}

func TestNewContextBadLevel(t *testing.T) {
	g := testGlobals()
	g.LogLevel = "chatty"
	if _, err := NewContext(g, io.Discard, io.Discard); err == nil {
		t.Error("NewContext() error = nil, want error")
	}
}

func TestClient(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Globals)
		want    string
		wantErr bool
	}{
		{name: "demo", mutate: func(*Globals) {}, want: "*cube.StaticClient"},
		{name: "cube", mutate: func(g *Globals) { g.Source = SourceCube; g.CubeURL = "http://localhost:4000" }, want: "*cube.HTTPClient"},
		{name: "cube without url", mutate: func(g *Globals) { g.Source = SourceCube }, wantErr: true},
		{name: "prometheus", mutate: func(g *Globals) { g.Source = SourcePrometheus; g.PrometheusURL = "http://localhost:9090" }, want: "*prometheus.Source"},
		{name: "prometheus without url", mutate: func(g *Globals) { g.Source = SourcePrometheus }, wantErr: true},
		{name: "unknown", mutate: func(g *Globals) { g.Source = "carrier-pigeon" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGlobals()
			tt.mutate(&g)
			ctx, _ := testContext(t, g)

			client, err := ctx.Client(dashboard.DefaultDefinition(), dashboard.DefaultDateRange())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Client() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			var got string
			switch client.(type) {
			case *cube.StaticClient:
				got = "*cube.StaticClient"
			case *cube.HTTPClient:
				got = "*cube.HTTPClient"
			case *prometheus.Source:
				got = "*prometheus.Source"
			}
			if got != tt.want {
				t.Errorf("Client() = %T, want %s", client, tt.want)
			}
		})
	}
}

func TestComposerBadDates(t *testing.T) {
	g := testGlobals()
	g.From, g.To = "2025-02-28", "2025-02-01"
	ctx, _ := testContext(t, g)
	if _, err := ctx.Composer(); err == nil {
		t.Error("Composer() error = nil, want error for reversed range")
	}
}

func TestDefinitionFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.yaml")
	data := `title: Orders
cards:
  - id: orders
    title: Orders
    kind: line
    measures: [orders.count]
    time_dimension: orders.created_at
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	g := testGlobals()
	g.Dashboard = path
	ctx, _ := testContext(t, g)

	def, err := ctx.Definition()
	if err != nil {
		t.Fatalf("Definition() error = %v", err)
	}
	if def.Title != "Orders" || len(def.Cards) != 1 {
		t.Errorf("Definition() = %+v", def)
	}
}

func TestRenderTrace(t *testing.T) {
	ctx, out := testContext(t, testGlobals())
	cmd := &RenderCmd{Width: 600, Height: 250, Ratio: 2, ComparisonFactor: 0.9, Needle: 0.6, Trace: true}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"# sales", "# quantity", "# top-cities", "This Month", "Last Month"} {
		if !strings.Contains(got, want) {
			t.Errorf("trace missing %q", want)
		}
	}
	if strings.Contains(got, "# skus") {
		t.Error("trace contains a table card")
	}
}

func TestRenderFiles(t *testing.T) {
	for _, format := range []string{"png", "svg"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			ctx, out := testContext(t, testGlobals())
			cmd := &RenderCmd{
				Dir: dir, Format: format, Width: 300, Height: 150, Ratio: 1,
				ComparisonFactor: 0.9, Needle: 0.6, Cards: []string{dashboard.SalesCardID, dashboard.TopCitiesCardID},
			}

			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			for _, id := range []string{dashboard.SalesCardID, dashboard.TopCitiesCardID} {
				path := filepath.Join(dir, id+"."+format)
				info, err := os.Stat(path)
				if err != nil {
					t.Errorf("missing %s: %v", path, err)
					continue
				}
				if info.Size() == 0 {
					t.Errorf("%s is empty", path)
				}
				if !strings.Contains(out.String(), path) {
					t.Errorf("output does not list %s", path)
				}
			}
			if _, err := os.Stat(filepath.Join(dir, dashboard.QuantityCardID+"."+format)); err == nil {
				t.Error("rendered a card that was not selected")
			}
		})
	}
}

func TestRenderBadRatio(t *testing.T) {
	ctx, _ := testContext(t, testGlobals())
	cmd := &RenderCmd{Width: 600, Height: 250, Ratio: 0}
	if err := cmd.Run(ctx); err == nil {
		t.Error("Run() error = nil, want error for zero ratio")
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name   string
		card   string
		output string
		want   []string
	}{
		{name: "table", card: dashboard.SKUTableCardID, output: "table", want: []string{"SKU Name", "Protein Bar 100g", "₹93,132.12"}},
		{name: "yaml", card: dashboard.TopCitiesCardID, output: "yaml", want: []string{"blinkit_insights_city.name: New Delhi"}},
		{name: "series table", card: dashboard.SalesCardID, output: "table", want: []string{"created_at", "2025-02-28"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, testGlobals())
			cmd := &QueryCmd{Card: tt.card, Output: tt.output}
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestQueryJSON(t *testing.T) {
	ctx, out := testContext(t, testGlobals())
	cmd := &QueryCmd{Card: dashboard.SalesCardID, Output: "json"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(rows) != 28 {
		t.Errorf("got %d rows, want 28", len(rows))
	}
}

func TestQueryUnknownCard(t *testing.T) {
	ctx, _ := testContext(t, testGlobals())
	cmd := &QueryCmd{Card: "nope", Output: "table"}
	err := cmd.Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "unknown card") {
		t.Errorf("Run() error = %v, want unknown card", err)
	}
}

func TestMassageRows(t *testing.T) {
	rows := []cube.Row{{"a.x": json.Number("1.5"), "a.y": "text"}}
	got := massageRows(rows)
	if got[0]["a.x"] != 1.5 {
		t.Errorf("massageRows() a.x = %v (%T), want 1.5", got[0]["a.x"], got[0]["a.x"])
	}
	if got[0]["a.y"] != "text" {
		t.Errorf("massageRows() a.y = %v, want text", got[0]["a.y"])
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	ctx, _ := testContext(t, testGlobals())
	cmd := &ExportCmd{File: path}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 2 {
		t.Errorf("GetSheetList() = %v, want 2 sheets", got)
	}
}

func TestPromQL(t *testing.T) {
	ctx, out := testContext(t, testGlobals())
	cmd := &PromQLCmd{Card: dashboard.TopCitiesCardID}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "blinkit_insights_city_sales_mrp_sum") || !strings.Contains(got, "name") {
		t.Errorf("output = %q", got)
	}
}

func TestPromQLRange(t *testing.T) {
	ctx, out := testContext(t, testGlobals())
	cmd := &PromQLCmd{Card: dashboard.SalesCardID}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "range 2025-02-01..2025-02-28 step 24h0m0s") {
		t.Errorf("output = %q", out.String())
	}
}

type stubEncoder struct{ err error }

func (e stubEncoder) Encode(w io.Writer) error {
	if e.err != nil {
		return e.err
	}
	_, err := io.WriteString(w, "chart")
	return err
}

func (stubEncoder) Extension() string { return "png" }

type stubFile struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *stubFile) Close() error {
	f.closed = true
	return f.closeErr
}

func TestEncodeAndClose(t *testing.T) {
	errDisk := errors.New("disk full")
	errEncode := errors.New("bad surface")
	tests := []struct {
		name     string
		encErr   error
		closeErr error
		wantErr  error
	}{
		{name: "ok"},
		{name: "close fails", closeErr: errDisk, wantErr: errDisk},
		{name: "encode fails", encErr: errEncode, wantErr: errEncode},
		{name: "encode and close fail", encErr: errEncode, closeErr: errDisk, wantErr: errEncode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &stubFile{closeErr: tt.closeErr}
			err := encodeAndClose(f, stubEncoder{err: tt.encErr}, "sales.png")
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil) != (err == nil) {
				t.Errorf("encodeAndClose() error = %v, want %v", err, tt.wantErr)
			}
			if !f.closed {
				t.Error("encodeAndClose() did not close the file")
			}
		})
	}
}
